package queuectl

import "strconv"

// Recognized config keys stored in the key-value config table.
const (
	ConfigDefaultMaxRetries = "default-max-retries"
	ConfigBackoffBase       = "backoff-base"
	ConfigJobTimeout        = "job-timeout"
)

// Default values used to seed the config table on first Init, and as
// the fallback when a stored value fails to parse.
const (
	DefaultMaxRetries = 3
	DefaultBackoffBase = 2
	DefaultJobTimeoutSeconds = 10
)

// DefaultConfig returns the seed key-value pairs sqlstore's Init writes with
// INSERT OR IGNORE semantics so existing values are never clobbered.
func DefaultConfig() map[string]string {
	return map[string]string{
		ConfigDefaultMaxRetries: strconv.Itoa(DefaultMaxRetries),
		ConfigBackoffBase:       strconv.Itoa(DefaultBackoffBase),
		ConfigJobTimeout:        strconv.Itoa(DefaultJobTimeoutSeconds),
	}
}

// ParseUintDefault parses s as a base-10 unsigned integer, returning
// def if s is empty or fails to parse. This implements the worker
// loop's documented behavior of falling back to a hardcoded default on
// a config parse failure rather than propagating the error.
func ParseUintDefault(s string, def uint32) uint32 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return def
	}
	return uint32(v)
}

// ParseIntDefault parses s as a base-10 integer, returning def if s is
// empty or fails to parse.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

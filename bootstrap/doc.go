// Package bootstrap reads the optional ~/.queuectl/queuectl.toml file
// once at process start to seed config defaults and CLI flag
// defaults.
//
// Once the store's config table is populated, it is authoritative:
// spec.md §5 rules out in-memory caching, so every job consults the
// store directly. This file only ever affects what gets written into
// that table the first time, and what a CLI flag defaults to before
// the user overrides it.
package bootstrap

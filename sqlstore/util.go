package sqlstore

import (
	"database/sql"
	"strings"
)

func isAffected(res sql.Result) bool {
	rows, err := res.RowsAffected()
	if err != nil {
		return true
	}
	return rows != 0
}

func getAffected(res sql.Result) int64 {
	n, err := res.RowsAffected()
	if err != nil {
		return -1
	}
	return n
}

// isDuplicateErr recognizes the unique-constraint violation text used
// by sqlite and postgres, the two dialects this package targets. bun
// does not normalize constraint-violation errors across dialects, so
// this is a pragmatic string match rather than a typed error check.
func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

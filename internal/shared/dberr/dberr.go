// Package dberr classifies driver errors that callers turn into domain errors.
package dberr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique violation of the named
// constraint. Postgres errors are matched by constraint name; sqlite only
// reports "table.column", so columns are matched as a fallback.
func IsUniqueViolation(err error, constraint string, columns ...string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == constraint
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, strings.ToLower(constraint)) {
		return true
	}
	if strings.Contains(errMsg, "unique constraint failed") {
		for _, col := range columns {
			if strings.Contains(errMsg, strings.ToLower(col)) {
				return true
			}
		}
	}
	return false
}

package repository

import (
	"errors"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Storage-level sentinel errors. Services translate these into their own
// error vocabulary so handlers never depend on this package directly.
var (
	// ErrDuplicateUser is returned when an insert trips the UNIQUE
	// constraint on username or email.
	ErrDuplicateUser = errors.New("duplicate username or email")

	// ErrNotFound is returned when a row does not exist, including the
	// case where it exists but belongs to another user.
	ErrNotFound = errors.New("record not found")
)

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

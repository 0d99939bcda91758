// Package repository holds the MySQL-backed stores and the sentinel errors
// they share.  Handlers answer 404 for ErrNotFound.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup by key matches no row.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when a unique email column already holds the
// address.
var ErrEmailExists = errors.New("email already exists")

// MySQL server error numbers we classify.
const (
	errAccessDenied   = 1045
	errDuplicateEntry = 1062
	errBadField       = 1054
	errNoSuchTable    = 1146
	errTruncatedValue = 1292
	errIncorrectValue = 1366
)

// Describe returns an operator-facing hint for known MySQL failures, or ""
// when err is not one of them.
func Describe(err error) string {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return ""
	}
	switch me.Number {
	case errBadField:
		return "database schema is missing a column"
	case errIncorrectValue, errTruncatedValue:
		return "a value does not match the column type"
	case errAccessDenied:
		return "database authentication failed"
	case errNoSuchTable:
		return "database table is missing"
	case errDuplicateEntry:
		return "record already exists"
	}
	return ""
}

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == errDuplicateEntry
}

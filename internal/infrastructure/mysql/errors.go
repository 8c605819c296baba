package mysql

import (
	"errors"
	"regexp"

	"github.com/go-sql-driver/mysql"
)

const (
	errLockWaitTimeout = 1205
	errDeadlock        = 1213
	errOutOfRange      = 1264
	errRowIsReferenced = 1451
	errNoReferencedRow = 1452
)

var (
	fkColumnRe    = regexp.MustCompile("FOREIGN KEY \\(`([^`]+)`\\)")
	rangeColumnRe = regexp.MustCompile(`column '([^']+)'`)
)

// IsDeadlock reports whether err is a retryable lock failure.
func IsDeadlock(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == errDeadlock || mysqlErr.Number == errLockWaitTimeout
	}
	return false
}

// IsRowReferenced reports a delete blocked by a foreign key from another table.
func IsRowReferenced(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == errRowIsReferenced
}

// MissingReference returns the foreign key column of an insert/update that pointed
// at a row that does not exist.
func MissingReference(err error) (string, bool) {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != errNoReferencedRow {
		return "", false
	}
	if m := fkColumnRe.FindStringSubmatch(mysqlErr.Message); len(m) == 2 {
		return m[1], true
	}
	return "", true
}

// OutOfRange returns the column of an insert/update whose value did not fit it.
func OutOfRange(err error) (string, bool) {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != errOutOfRange {
		return "", false
	}
	if m := rangeColumnRe.FindStringSubmatch(mysqlErr.Message); len(m) == 2 {
		return m[1], true
	}
	return "", true
}

package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

const (
	postgresUniqueViolation = "23505"
	mysqlDuplicateEntry     = 1062
)

// isUniqueViolation reports whether err is a unique constraint violation on either server.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == postgresUniqueViolation
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}

	return false
}

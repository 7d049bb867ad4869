// Package database provides connection management, SQL dialects and the explicit
// session object that carries one unit of work at a time.
package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// Config holds database configuration settings.
type Config struct {
	Driver             string
	ConnectionString   string
	MaxOpenConnections int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

// Connect opens the pool, applies the limits from cfg and pings the server.
func Connect(cfg Config) (*sql.DB, error) {
	if _, err := DialectFor(cfg.Driver); err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Dialect captures the differences between the supported SQL servers.
type Dialect interface {
	// Name returns the driver name ("postgres" or "mysql").
	Name() string
	// Placeholder returns the bind marker for the n-th argument (1-based).
	Placeholder(n int) string
	// ReturningID reports whether INSERT ... RETURNING id is used instead of LastInsertId.
	ReturningID() bool
	// Quote quotes an identifier.
	Quote(identifier string) string
}

type postgresDialect struct{}

func (postgresDialect) Name() string             { return "postgres" }
func (postgresDialect) Placeholder(n int) string { return fmt.Sprintf("$%d", n) }
func (postgresDialect) ReturningID() bool        { return true }
func (postgresDialect) Quote(identifier string) string {
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string           { return "mysql" }
func (mysqlDialect) Placeholder(int) string { return "?" }
func (mysqlDialect) ReturningID() bool      { return false }
func (mysqlDialect) Quote(identifier string) string {
	return "`" + strings.ReplaceAll(identifier, "`", "``") + "`"
}

// Supported dialects.
var (
	Postgres Dialect = postgresDialect{}
	MySQL    Dialect = mysqlDialect{}
)

// DialectFor resolves the dialect of a driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "postgres":
		return Postgres, nil
	case "mysql":
		return MySQL, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

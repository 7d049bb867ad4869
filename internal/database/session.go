package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNoTransaction is returned when a write or a commit is attempted outside a unit of work.
	ErrNoTransaction = errors.New("no active transaction")

	// ErrTransactionActive is returned when a unit of work is started while another is open.
	ErrTransactionActive = errors.New("transaction already active")
)

// Querier represents a database query executor (either *sql.DB or *sql.Tx).
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxManager runs fn inside a unit of work, committing on success and rolling back on error.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Transactional is the explicit start/commit/rollback contract shared by sessions
// and the repositories bound to them.
type Transactional interface {
	StartTransaction(ctx context.Context) error
	CommitTransaction() error
	RollbackTransaction() error
	InTransaction() bool
}

// Session is one connection context holding at most one open transaction.
// Repositories bound to the same session take part in the same unit of work.
type Session struct {
	db      *sql.DB
	dialect Dialect

	mu sync.Mutex
	tx *sql.Tx
}

// NewSession binds a session to the pool.
func NewSession(db *sql.DB, dialect Dialect) *Session {
	return &Session{db: db, dialect: dialect}
}

// DB returns the underlying pool.
func (s *Session) DB() *sql.DB {
	return s.db
}

// Dialect returns the SQL dialect of the pool.
func (s *Session) Dialect() Dialect {
	return s.dialect
}

// StartTransaction opens a unit of work. Nested transactions are rejected.
func (s *Session) StartTransaction(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx != nil {
		return ErrTransactionActive
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	s.tx = tx
	return nil
}

// CommitTransaction durably applies the open unit of work.
func (s *Session) CommitTransaction() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx == nil {
		return ErrNoTransaction
	}

	tx := s.tx
	s.tx = nil
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RollbackTransaction discards the open unit of work. Without one it does nothing.
func (s *Session) RollbackTransaction() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx == nil {
		return nil
	}

	tx := s.tx
	s.tx = nil
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// InTransaction reports whether a unit of work is open.
func (s *Session) InTransaction() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tx != nil
}

// Querier returns the open transaction, or the pool when none is open.
func (s *Session) Querier() Querier {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

// WithTx runs fn as one unit of work on this session.
func (s *Session) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := s.StartTransaction(ctx); err != nil {
		return err
	}

	if err := fn(ctx); err != nil {
		if rbErr := s.RollbackTransaction(); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}

	return s.CommitTransaction()
}

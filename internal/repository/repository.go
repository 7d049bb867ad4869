// Package repository provides the generic persistence gateway shared by every entity
// type, together with the table mappings of the shopfloor entities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopfloor/shopfloor/internal/database"

	apperrors "github.com/shopfloor/shopfloor/internal/errors"
)

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Mapper describes how an entity type is laid out in its table.
type Mapper[T any, K comparable] struct {
	// Table is the table name.
	Table string
	// Key is the auto-increment primary key column.
	Key string
	// Columns lists the writable columns in the order Values returns them.
	Columns []string
	// Values returns the column values of entity for insert and update.
	Values func(entity *T) []any
	// Scan reads one row selected as Key followed by Columns.
	Scan func(row Scanner) (*T, error)
	// ID returns the primary key of entity.
	ID func(entity *T) K
	// SetID backfills the generated key after an insert.
	SetID func(entity *T, id int64)
	// NotFound is returned when an update or delete targets a missing row.
	NotFound error
}

// Hook runs against one entity inside the repository's session.
type Hook[T any] func(ctx context.Context, entity *T) error

type hooks[T any] struct {
	beforeWrite []Hook[T]
	afterLoad   []Hook[T]
	afterDelete []Hook[T]
}

// Option configures a Repository.
type Option[T any] func(*hooks[T])

// WithBeforeWrite runs hook before every insert and update, after the transaction check.
func WithBeforeWrite[T any](hook Hook[T]) Option[T] {
	return func(h *hooks[T]) { h.beforeWrite = append(h.beforeWrite, hook) }
}

// WithAfterLoad runs hook on every entity returned by FindAll, FindBy and Get.
func WithAfterLoad[T any](hook Hook[T]) Option[T] {
	return func(h *hooks[T]) { h.afterLoad = append(h.afterLoad, hook) }
}

// WithAfterDelete runs hook after the entity's row was deleted.
func WithAfterDelete[T any](hook Hook[T]) Option[T] {
	return func(h *hooks[T]) { h.afterDelete = append(h.afterDelete, hook) }
}

// Repository offers find/get/insert/update/delete for T plus explicit transaction
// demarcation. Writes require an open transaction on the bound session.
type Repository[T any, K comparable] struct {
	session *database.Session
	dialect database.Dialect
	mapper  Mapper[T, K]
	hooks   hooks[T]
}

// New binds mapper to session.
func New[T any, K comparable](session *database.Session, mapper Mapper[T, K], opts ...Option[T]) *Repository[T, K] {
	r := &Repository[T, K]{
		session: session,
		dialect: session.Dialect(),
		mapper:  mapper,
	}
	if r.mapper.NotFound == nil {
		r.mapper.NotFound = apperrors.ErrNotFound
	}
	for _, opt := range opts {
		opt(&r.hooks)
	}
	return r
}

// Session returns the session the repository is bound to.
func (r *Repository[T, K]) Session() *database.Session {
	return r.session
}

// StartTransaction opens a unit of work on the bound session.
func (r *Repository[T, K]) StartTransaction(ctx context.Context) error {
	return r.session.StartTransaction(ctx)
}

// CommitTransaction durably applies the open unit of work.
func (r *Repository[T, K]) CommitTransaction() error {
	return r.session.CommitTransaction()
}

// RollbackTransaction discards the open unit of work; a no-op without one.
func (r *Repository[T, K]) RollbackTransaction() error {
	return r.session.RollbackTransaction()
}

// InTransaction reports whether the bound session has an open unit of work.
func (r *Repository[T, K]) InTransaction() bool {
	return r.session.InTransaction()
}

// FindAll returns every stored entity ordered by key. The slice is never nil.
func (r *Repository[T, K]) FindAll(ctx context.Context) ([]*T, error) {
	query := fmt.Sprintf("%s ORDER BY %s", r.selectSQL(), r.q(r.mapper.Key))
	return r.query(ctx, query)
}

// FindBy returns the entities whose column equals value, ordered by key.
// column must be the key or one of the mapped columns.
func (r *Repository[T, K]) FindBy(ctx context.Context, column string, value any) ([]*T, error) {
	if column != r.mapper.Key && !slices.Contains(r.mapper.Columns, column) {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "unknown column %q on %s", column, r.mapper.Table)
	}
	query := fmt.Sprintf("%s WHERE %s = %s ORDER BY %s",
		r.selectSQL(), r.q(column), r.dialect.Placeholder(1), r.q(r.mapper.Key))
	return r.query(ctx, query, value)
}

// Get returns the entity with key id. A missing row yields found=false and a nil error.
func (r *Repository[T, K]) Get(ctx context.Context, id K) (*T, bool, error) {
	query := fmt.Sprintf("%s WHERE %s = %s", r.selectSQL(), r.q(r.mapper.Key), r.dialect.Placeholder(1))

	entity, err := r.mapper.Scan(r.session.Querier().QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, apperrors.Wrapf(err, "failed to get %s", r.mapper.Table)
	}

	if err := r.run(ctx, r.hooks.afterLoad, entity); err != nil {
		return nil, false, err
	}
	return entity, true, nil
}

// Exists reports whether a row with key id is stored.
func (r *Repository[T, K]) Exists(ctx context.Context, id K) (bool, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = %s",
		r.q(r.mapper.Table), r.q(r.mapper.Key), r.dialect.Placeholder(1))

	var count int
	if err := r.session.Querier().QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return false, apperrors.Wrapf(err, "failed to check %s existence", r.mapper.Table)
	}
	return count > 0, nil
}

// Insert stores entity and backfills its generated key.
func (r *Repository[T, K]) Insert(ctx context.Context, entity *T) error {
	if err := r.requireTransaction(); err != nil {
		return err
	}
	if err := r.run(ctx, r.hooks.beforeWrite, entity); err != nil {
		return err
	}

	columns := make([]string, len(r.mapper.Columns))
	placeholders := make([]string, len(r.mapper.Columns))
	for i, column := range r.mapper.Columns {
		columns[i] = r.q(column)
		placeholders[i] = r.dialect.Placeholder(i + 1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		r.q(r.mapper.Table), strings.Join(columns, ", "), strings.Join(placeholders, ", "))
	values := r.mapper.Values(entity)
	querier := r.session.Querier()

	var id int64
	if r.dialect.ReturningID() {
		query += " RETURNING " + r.q(r.mapper.Key)
		if err := querier.QueryRowContext(ctx, query, values...).Scan(&id); err != nil {
			return r.writeError(err, "insert")
		}
	} else {
		result, err := querier.ExecContext(ctx, query, values...)
		if err != nil {
			return r.writeError(err, "insert")
		}
		if id, err = result.LastInsertId(); err != nil {
			return apperrors.Wrapf(err, "failed to read %s id", r.mapper.Table)
		}
	}

	r.mapper.SetID(entity, id)
	return nil
}

// Update stores the current state of entity and returns it.
func (r *Repository[T, K]) Update(ctx context.Context, entity *T) (*T, error) {
	if err := r.requireTransaction(); err != nil {
		return nil, err
	}
	if err := r.run(ctx, r.hooks.beforeWrite, entity); err != nil {
		return nil, err
	}

	assignments := make([]string, len(r.mapper.Columns))
	for i, column := range r.mapper.Columns {
		assignments[i] = fmt.Sprintf("%s = %s", r.q(column), r.dialect.Placeholder(i+1))
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s",
		r.q(r.mapper.Table), strings.Join(assignments, ", "),
		r.q(r.mapper.Key), r.dialect.Placeholder(len(r.mapper.Columns)+1))
	args := append(r.mapper.Values(entity), r.mapper.ID(entity))

	result, err := r.session.Querier().ExecContext(ctx, query, args...)
	if err != nil {
		return nil, r.writeError(err, "update")
	}

	// MySQL reports zero affected rows for an unchanged row.
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		exists, err := r.Exists(ctx, r.mapper.ID(entity))
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, r.mapper.NotFound
		}
	}
	return entity, nil
}

// Delete removes entity's row.
func (r *Repository[T, K]) Delete(ctx context.Context, entity *T) error {
	if err := r.requireTransaction(); err != nil {
		return err
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = %s",
		r.q(r.mapper.Table), r.q(r.mapper.Key), r.dialect.Placeholder(1))

	result, err := r.session.Querier().ExecContext(ctx, query, r.mapper.ID(entity))
	if err != nil {
		return r.writeError(err, "delete")
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return r.mapper.NotFound
	}

	return r.run(ctx, r.hooks.afterDelete, entity)
}

func (r *Repository[T, K]) selectSQL() string {
	columns := make([]string, 0, len(r.mapper.Columns)+1)
	columns = append(columns, r.q(r.mapper.Key))
	for _, column := range r.mapper.Columns {
		columns = append(columns, r.q(column))
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), r.q(r.mapper.Table))
}

func (r *Repository[T, K]) query(ctx context.Context, query string, args ...any) ([]*T, error) {
	entities, err := r.scanAll(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	// Hooks may query the same transaction, so rows must be closed first.
	for _, entity := range entities {
		if err := r.run(ctx, r.hooks.afterLoad, entity); err != nil {
			return nil, err
		}
	}
	return entities, nil
}

func (r *Repository[T, K]) scanAll(ctx context.Context, query string, args ...any) ([]*T, error) {
	rows, err := r.session.Querier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to list %s", r.mapper.Table)
	}
	defer func() {
		_ = rows.Close()
	}()

	entities := make([]*T, 0)
	for rows.Next() {
		entity, err := r.mapper.Scan(rows)
		if err != nil {
			return nil, apperrors.Wrapf(err, "failed to scan %s", r.mapper.Table)
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrapf(err, "failed to list %s", r.mapper.Table)
	}
	return entities, nil
}

func (r *Repository[T, K]) requireTransaction() error {
	if !r.session.InTransaction() {
		return database.ErrNoTransaction
	}
	return nil
}

func (r *Repository[T, K]) run(ctx context.Context, hooks []Hook[T], entity *T) error {
	for _, hook := range hooks {
		if err := hook(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository[T, K]) writeError(err error, op string) error {
	if isUniqueViolation(err) {
		return apperrors.Wrapf(apperrors.ErrConflict, "%s %s", op, r.mapper.Table)
	}
	return apperrors.Wrapf(err, "failed to %s %s", op, r.mapper.Table)
}

func (r *Repository[T, K]) q(identifier string) string {
	return r.dialect.Quote(identifier)
}

package repository

import (
	"context"
	"database/sql"

	"github.com/shopfloor/shopfloor/internal/database"
	"github.com/shopfloor/shopfloor/internal/domain"

	apperrors "github.com/shopfloor/shopfloor/internal/errors"
)

// AddressRepository persists addresses. Addresses are owned, so callers usually reach
// them through the user and site repositories.
type AddressRepository = Repository[domain.Address, int]

var addressMapper = Mapper[domain.Address, int]{
	Table:   "addresses",
	Key:     "id",
	Columns: []string{"street", "number", "postal_code", "city"},
	Values: func(a *domain.Address) []any {
		return []any{a.Street, a.Number, a.PostalCode, a.City}
	},
	Scan: func(row Scanner) (*domain.Address, error) {
		var a domain.Address
		if err := row.Scan(&a.ID, &a.Street, &a.Number, &a.PostalCode, &a.City); err != nil {
			return nil, err
		}
		return &a, nil
	},
	ID:       func(a *domain.Address) int { return a.ID },
	SetID:    func(a *domain.Address, id int64) { a.ID = int(id) },
	NotFound: apperrors.Wrap(apperrors.ErrNotFound, "address not found"),
}

// NewAddressRepository binds the address table to session.
func NewAddressRepository(session *database.Session) *AddressRepository {
	return New(session, addressMapper)
}

// ownedAddress cascades writes, loads and deletes of the address owned by T through
// the same session as the owner.
type ownedAddress[T any] struct {
	addresses *AddressRepository
	field     func(owner *T) **domain.Address
}

func (o ownedAddress[T]) options() []Option[T] {
	return []Option[T]{
		WithBeforeWrite[T](o.save),
		WithAfterLoad[T](o.load),
		WithAfterDelete[T](o.remove),
	}
}

func (o ownedAddress[T]) save(ctx context.Context, owner *T) error {
	address := *o.field(owner)
	if address == nil {
		return nil
	}
	if address.ID == 0 {
		return o.addresses.Insert(ctx, address)
	}
	_, err := o.addresses.Update(ctx, address)
	return err
}

func (o ownedAddress[T]) load(ctx context.Context, owner *T) error {
	ref := o.field(owner)
	if *ref == nil {
		return nil
	}
	address, found, err := o.addresses.Get(ctx, (*ref).ID)
	if err != nil {
		return err
	}
	if !found {
		*ref = nil
		return nil
	}
	*ref = address
	return nil
}

func (o ownedAddress[T]) remove(ctx context.Context, owner *T) error {
	address := *o.field(owner)
	if address == nil || address.ID == 0 {
		return nil
	}
	return o.addresses.Delete(ctx, address)
}

// addressRef turns a nullable address_id column into an id-only stub.
func addressRef(id sql.NullInt64) *domain.Address {
	if !id.Valid {
		return nil
	}
	return &domain.Address{ID: int(id.Int64)}
}

// addressID is the nullable address_id value of an owner.
func addressID(address *domain.Address) any {
	if address == nil {
		return nil
	}
	return address.ID
}

package repository

import (
	"database/sql"

	"github.com/shopfloor/shopfloor/internal/database"
	"github.com/shopfloor/shopfloor/internal/domain"
)

// UserRepository persists users together with their owned address.
type UserRepository = Repository[domain.User, int]

var userMapper = Mapper[domain.User, int]{
	Table: "users",
	Key:   "id",
	Columns: []string{
		"first_name", "last_name", "email", "phone_number", "password_hash",
		"birthdate", "role", "status", "address_id",
	},
	Values: func(u *domain.User) []any {
		return []any{
			u.FirstName, u.LastName, u.Email, u.PhoneNumber, u.Password,
			u.Birthdate, string(u.Role), string(u.Status), addressID(u.Address),
		}
	},
	Scan: func(row Scanner) (*domain.User, error) {
		var (
			u         domain.User
			role      string
			status    string
			addressID sql.NullInt64
		)
		err := row.Scan(
			&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PhoneNumber, &u.Password,
			&u.Birthdate, &role, &status, &addressID,
		)
		if err != nil {
			return nil, err
		}
		u.Role = domain.Role(role)
		u.Status = domain.Status(status)
		u.Address = addressRef(addressID)
		return &u, nil
	},
	ID:       func(u *domain.User) int { return u.ID },
	SetID:    func(u *domain.User, id int64) { u.ID = int(id) },
	NotFound: domain.ErrUserNotFound,
}

// NewUserRepository binds the user table to session. The owned address is written,
// loaded and deleted through the same session.
func NewUserRepository(session *database.Session) *UserRepository {
	owned := ownedAddress[domain.User]{
		addresses: NewAddressRepository(session),
		field:     func(u *domain.User) **domain.Address { return &u.Address },
	}
	return New(session, userMapper, owned.options()...)
}

package repository

import (
	"database/sql"

	"github.com/shopfloor/shopfloor/internal/database"
	"github.com/shopfloor/shopfloor/internal/domain"
)

// SiteRepository persists sites together with their owned address. Machine
// membership is stored on the machines table.
type SiteRepository = Repository[domain.Site, int]

var siteMapper = Mapper[domain.Site, int]{
	Table:   "sites",
	Key:     "id",
	Columns: []string{"name", "status", "responsible_id", "address_id"},
	Values: func(s *domain.Site) []any {
		return []any{s.Name, string(s.Status), userID(s.Responsible), addressID(s.Address)}
	},
	Scan: func(row Scanner) (*domain.Site, error) {
		var (
			s             domain.Site
			status        string
			responsibleID sql.NullInt64
			addressID     sql.NullInt64
		)
		if err := row.Scan(&s.ID, &s.Name, &status, &responsibleID, &addressID); err != nil {
			return nil, err
		}
		s.Status = domain.Status(status)
		if responsibleID.Valid {
			s.Responsible = domain.UserRef(int(responsibleID.Int64))
		}
		s.Address = addressRef(addressID)
		return &s, nil
	},
	ID:       func(s *domain.Site) int { return s.ID },
	SetID:    func(s *domain.Site, id int64) { s.ID = int(id) },
	NotFound: domain.ErrSiteNotFound,
}

// NewSiteRepository binds the site table to session.
func NewSiteRepository(session *database.Session) *SiteRepository {
	owned := ownedAddress[domain.Site]{
		addresses: NewAddressRepository(session),
		field:     func(s *domain.Site) **domain.Address { return &s.Address },
	}
	return New(session, siteMapper, owned.options()...)
}

func userID(u *domain.User) any {
	if u == nil {
		return nil
	}
	return u.ID
}

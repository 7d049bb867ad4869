package repository

import (
	"encoding/json"
	"strings"

	"github.com/shopfloor/shopfloor/internal/database"
	"github.com/shopfloor/shopfloor/internal/domain"
)

// KPIRepository persists dashboard KPI definitions.
type KPIRepository = Repository[domain.KPI, int]

// KPIValueRepository persists KPI measurements.
type KPIValueRepository = Repository[domain.KPIValue, int]

var kpiMapper = Mapper[domain.KPI, int]{
	Table:   "kpis",
	Key:     "id",
	Columns: []string{"subject", "roles", "chart"},
	Values: func(k *domain.KPI) []any {
		roles := make([]string, len(k.Roles))
		for i, role := range k.Roles {
			roles[i] = string(role)
		}
		return []any{k.Subject, strings.Join(roles, ","), string(k.Chart)}
	},
	Scan: func(row Scanner) (*domain.KPI, error) {
		var (
			k     domain.KPI
			roles string
			chart string
		)
		if err := row.Scan(&k.ID, &k.Subject, &roles, &chart); err != nil {
			return nil, err
		}
		for _, role := range strings.Split(roles, ",") {
			if role = strings.TrimSpace(role); role != "" {
				k.Roles = append(k.Roles, domain.Role(role))
			}
		}
		k.Chart = domain.Chart(chart)
		return &k, nil
	},
	ID:       func(k *domain.KPI) int { return k.ID },
	SetID:    func(k *domain.KPI, id int64) { k.ID = int(id) },
	NotFound: domain.ErrKPINotFound,
}

var kpiValueMapper = Mapper[domain.KPIValue, int]{
	Table:   "kpi_values",
	Key:     "id",
	Columns: []string{"kpi_id", "measured_at", "value", "site_id"},
	Values: func(v *domain.KPIValue) []any {
		return []any{v.KPIID, v.Date, string(v.Value), v.SiteID}
	},
	Scan: func(row Scanner) (*domain.KPIValue, error) {
		var (
			v     domain.KPIValue
			value []byte
		)
		if err := row.Scan(&v.ID, &v.KPIID, &v.Date, &value, &v.SiteID); err != nil {
			return nil, err
		}
		v.Value = json.RawMessage(append([]byte(nil), value...))
		return &v, nil
	},
	ID:    func(v *domain.KPIValue) int { return v.ID },
	SetID: func(v *domain.KPIValue, id int64) { v.ID = int(id) },
}

// NewKPIRepository binds the kpi table to session.
func NewKPIRepository(session *database.Session) *KPIRepository {
	return New(session, kpiMapper)
}

// NewKPIValueRepository binds the kpi value table to session.
func NewKPIValueRepository(session *database.Session) *KPIValueRepository {
	return New(session, kpiValueMapper)
}

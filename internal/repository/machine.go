package repository

import (
	"github.com/shopfloor/shopfloor/internal/database"
	"github.com/shopfloor/shopfloor/internal/domain"
)

// MachineRepository persists machines. Site and technician are loaded as id-only
// references.
type MachineRepository = Repository[domain.Machine, int]

var machineMapper = Mapper[domain.Machine, int]{
	Table: "machines",
	Key:   "id",
	Columns: []string{
		"code", "location", "product_info", "machine_status", "production_status",
		"site_id", "technician_id", "last_maintenance", "future_maintenance",
	},
	Values: func(m *domain.Machine) []any {
		var siteID any
		if m.Site() != nil {
			siteID = m.Site().ID
		}
		return []any{
			m.Code, m.Location, m.ProductInfo, string(m.MachineStatus), string(m.ProductionStatus),
			siteID, userID(m.Technician), m.LastMaintenance, m.FutureMaintenance,
		}
	},
	Scan: func(row Scanner) (*domain.Machine, error) {
		var (
			m                domain.Machine
			machineStatus    string
			productionStatus string
			siteID           int
			technicianID     int
		)
		err := row.Scan(
			&m.ID, &m.Code, &m.Location, &m.ProductInfo, &machineStatus, &productionStatus,
			&siteID, &technicianID, &m.LastMaintenance, &m.FutureMaintenance,
		)
		if err != nil {
			return nil, err
		}
		m.MachineStatus = domain.MachineStatus(machineStatus)
		m.ProductionStatus = domain.ProductionStatus(productionStatus)
		m.Technician = domain.UserRef(technicianID)
		m.SetSite(domain.SiteRef(siteID))
		return &m, nil
	},
	ID:       func(m *domain.Machine) int { return m.ID },
	SetID:    func(m *domain.Machine, id int64) { m.ID = int(id) },
	NotFound: domain.ErrMachineNotFound,
}

// NewMachineRepository binds the machine table to session.
func NewMachineRepository(session *database.Session) *MachineRepository {
	return New(session, machineMapper)
}

package repository

import (
	"github.com/shopfloor/shopfloor/internal/database"
	"github.com/shopfloor/shopfloor/internal/domain"
)

// MaintenanceRepository persists maintenances.
type MaintenanceRepository = Repository[domain.Maintenance, int]

var maintenanceMapper = Mapper[domain.Maintenance, int]{
	Table: "maintenances",
	Key:   "id",
	Columns: []string{
		"execution_date", "start_date", "end_date", "technician_id", "machine_id",
		"reason", "comments", "status",
	},
	Values: func(m *domain.Maintenance) []any {
		var machineID any
		if m.Machine != nil {
			machineID = m.Machine.ID
		}
		return []any{
			m.ExecutionDate, m.StartDate, m.EndDate, userID(m.Technician), machineID,
			m.Reason, m.Comments, string(m.Status),
		}
	},
	Scan: func(row Scanner) (*domain.Maintenance, error) {
		var (
			m            domain.Maintenance
			technicianID int
			machineID    int
			status       string
		)
		err := row.Scan(
			&m.ID, &m.ExecutionDate, &m.StartDate, &m.EndDate, &technicianID, &machineID,
			&m.Reason, &m.Comments, &status,
		)
		if err != nil {
			return nil, err
		}
		m.Technician = domain.UserRef(technicianID)
		m.Machine = domain.MachineRef(machineID)
		m.Status = domain.MaintenanceStatus(status)
		return &m, nil
	},
	ID:       func(m *domain.Maintenance) int { return m.ID },
	SetID:    func(m *domain.Maintenance, id int64) { m.ID = int(id) },
	NotFound: domain.ErrMaintenanceNotFound,
}

// NewMaintenanceRepository binds the maintenance table to session.
func NewMaintenanceRepository(session *database.Session) *MaintenanceRepository {
	return New(session, maintenanceMapper)
}

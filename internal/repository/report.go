package repository

import (
	"github.com/shopfloor/shopfloor/internal/database"
	"github.com/shopfloor/shopfloor/internal/domain"
)

// ReportRepository persists maintenance reports.
type ReportRepository = Repository[domain.Report, int]

var reportMapper = Mapper[domain.Report, int]{
	Table: "reports",
	Key:   "id",
	Columns: []string{
		"site_id", "maintenance_id", "technician_id", "start_date", "start_time",
		"end_date", "end_time", "reason", "remarks",
	},
	Values: func(r *domain.Report) []any {
		var siteID, maintenanceID any
		if r.Site != nil {
			siteID = r.Site.ID
		}
		if r.Maintenance != nil {
			maintenanceID = r.Maintenance.ID
		}
		return []any{
			siteID, maintenanceID, userID(r.Technician), r.StartDate, r.StartTime,
			r.EndDate, r.EndTime, r.Reason, r.Remarks,
		}
	},
	Scan: func(row Scanner) (*domain.Report, error) {
		var (
			r             domain.Report
			siteID        int
			maintenanceID int
			technicianID  int
		)
		err := row.Scan(
			&r.ID, &siteID, &maintenanceID, &technicianID, &r.StartDate, &r.StartTime,
			&r.EndDate, &r.EndTime, &r.Reason, &r.Remarks,
		)
		if err != nil {
			return nil, err
		}
		r.Site = domain.SiteRef(siteID)
		r.Maintenance = domain.MaintenanceRef(maintenanceID)
		r.Technician = domain.UserRef(technicianID)
		return &r, nil
	},
	ID:       func(r *domain.Report) int { return r.ID },
	SetID:    func(r *domain.Report, id int64) { r.ID = int(id) },
	NotFound: domain.ErrReportNotFound,
}

// NewReportRepository binds the report table to session.
func NewReportRepository(session *database.Session) *ReportRepository {
	return New(session, reportMapper)
}

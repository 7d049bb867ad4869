package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopfloor/shopfloor/internal/domain"
	"github.com/shopfloor/shopfloor/internal/notification"
)

type reportUseCase struct {
	*controller
	reports      ReportRepository
	sites        SiteRepository
	maintenances MaintenanceRepository
	users        UserRepository
}

// NewReportUseCase creates a ReportUseCase. The repositories must share one session.
func NewReportUseCase(
	reports ReportRepository,
	sites SiteRepository,
	maintenances MaintenanceRepository,
	users UserRepository,
	persistence notification.Observer,
	logger *slog.Logger,
	opts ...Option,
) ReportUseCase {
	return &reportUseCase{
		controller:   newController(logger, persistence, opts...),
		reports:      reports,
		sites:        sites,
		maintenances: maintenances,
		users:        users,
	}
}

func (r *reportUseCase) Create(ctx context.Context, input *ReportInput) (*domain.Report, error) {
	report, err := r.create(ctx, input)
	if err != nil {
		return nil, err
	}
	r.NotifyObservers(ctx, fmt.Sprintf("Report created: %d", report.ID))
	return report, nil
}

// create resolves the references, builds and inserts the report in one unit of work.
func (r *reportUseCase) create(ctx context.Context, input *ReportInput) (*domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var report *domain.Report
	err := unitOfWork(ctx, r.reports, func() error {
		site, err := resolve(ctx, r.sites, input.SiteID, domain.ErrSiteNotFound)
		if err != nil {
			return err
		}
		maintenance, err := resolve(ctx, r.maintenances, input.MaintenanceID, domain.ErrMaintenanceNotFound)
		if err != nil {
			return err
		}
		technician, err := resolve(ctx, r.users, input.TechnicianID, domain.ErrUserNotFound)
		if err != nil {
			return err
		}

		builder := domain.NewReportBuilder().
			WithSite(site).
			WithMaintenance(maintenance).
			WithTechnician(technician).
			WithStartDate(input.StartDate).
			WithEndDate(input.EndDate).
			WithReason(input.Reason).
			WithRemarks(input.Remarks)
		if input.StartTime != nil {
			builder.WithStartTime(*input.StartTime)
		}
		if input.EndTime != nil {
			builder.WithEndTime(*input.EndTime)
		}

		if report, err = builder.Build(); err != nil {
			return err
		}
		return r.reports.Insert(ctx, report)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (r *reportUseCase) Get(ctx context.Context, reportID int) (*domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return mustGet(ctx, r.reports, reportID, domain.ErrReportNotFound)
}

func (r *reportUseCase) List(ctx context.Context) ([]*domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reports.FindAll(ctx)
}

func (r *reportUseCase) ListByTechnician(ctx context.Context, technicianID int) ([]*domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reports.FindBy(ctx, "technician_id", technicianID)
}

func (r *reportUseCase) ListBySite(ctx context.Context, siteID int) ([]*domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reports.FindBy(ctx, "site_id", siteID)
}

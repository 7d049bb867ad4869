package usecase

import (
	"context"
	"time"

	"github.com/shopfloor/shopfloor/internal/domain"
	"github.com/shopfloor/shopfloor/internal/metrics"
	"github.com/shopfloor/shopfloor/internal/notification"
)

// machineUseCaseWithMetrics decorates MachineUseCase with metrics instrumentation.
type machineUseCaseWithMetrics struct {
	notification.Subject
	next    MachineUseCase
	metrics metrics.BusinessMetrics
}

// NewMachineUseCaseWithMetrics wraps a MachineUseCase with metrics recording.
func NewMachineUseCaseWithMetrics(useCase MachineUseCase, m metrics.BusinessMetrics) MachineUseCase {
	return &machineUseCaseWithMetrics{
		Subject: useCase,
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for machine creation.
func (c *machineUseCaseWithMetrics) Create(ctx context.Context, input *MachineInput) (*domain.Machine, error) {
	start := time.Now()
	machine, err := c.next.Create(ctx, input)
	metrics.Observe(ctx, c.metrics, "machine", "machine_create", start, err)
	return machine, err
}

// Update records metrics for machine updates.
func (c *machineUseCaseWithMetrics) Update(
	ctx context.Context,
	machineID int,
	input *MachineInput,
) (*domain.Machine, error) {
	start := time.Now()
	machine, err := c.next.Update(ctx, machineID, input)
	metrics.Observe(ctx, c.metrics, "machine", "machine_update", start, err)
	return machine, err
}

// SaveMachine records metrics for saving an already built machine.
func (c *machineUseCaseWithMetrics) SaveMachine(ctx context.Context, machine *domain.Machine) (*domain.Machine, error) {
	start := time.Now()
	saved, err := c.next.SaveMachine(ctx, machine)
	metrics.Observe(ctx, c.metrics, "machine", "machine_save", start, err)
	return saved, err
}

// AdvanceLastMaintenance records metrics for the derived last maintenance write.
func (c *machineUseCaseWithMetrics) AdvanceLastMaintenance(
	ctx context.Context,
	machineID int,
	executed time.Time,
) (bool, error) {
	start := time.Now()
	advanced, err := c.next.AdvanceLastMaintenance(ctx, machineID, executed)
	metrics.Observe(ctx, c.metrics, "machine", "machine_advance_last_maintenance", start, err)
	return advanced, err
}

// Get records metrics for machine retrieval.
func (c *machineUseCaseWithMetrics) Get(ctx context.Context, machineID int) (*domain.Machine, error) {
	start := time.Now()
	machine, err := c.next.Get(ctx, machineID)
	metrics.Observe(ctx, c.metrics, "machine", "machine_get", start, err)
	return machine, err
}

// List records metrics for machine listing.
func (c *machineUseCaseWithMetrics) List(ctx context.Context) ([]*domain.Machine, error) {
	start := time.Now()
	machines, err := c.next.List(ctx)
	metrics.Observe(ctx, c.metrics, "machine", "machine_list", start, err)
	return machines, err
}

// ListBySite records metrics for machine listing by site.
func (c *machineUseCaseWithMetrics) ListBySite(ctx context.Context, siteID int) ([]*domain.Machine, error) {
	start := time.Now()
	machines, err := c.next.ListBySite(ctx, siteID)
	metrics.Observe(ctx, c.metrics, "machine", "machine_list_by_site", start, err)
	return machines, err
}

// maintenanceUseCaseWithMetrics decorates MaintenanceUseCase with metrics instrumentation.
type maintenanceUseCaseWithMetrics struct {
	notification.Subject
	next    MaintenanceUseCase
	metrics metrics.BusinessMetrics
}

// NewMaintenanceUseCaseWithMetrics wraps a MaintenanceUseCase with metrics recording.
func NewMaintenanceUseCaseWithMetrics(useCase MaintenanceUseCase, m metrics.BusinessMetrics) MaintenanceUseCase {
	return &maintenanceUseCaseWithMetrics{
		Subject: useCase,
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for maintenance planning.
func (c *maintenanceUseCaseWithMetrics) Create(
	ctx context.Context,
	input *MaintenanceInput,
) (*domain.Maintenance, error) {
	start := time.Now()
	maintenance, err := c.next.Create(ctx, input)
	metrics.Observe(ctx, c.metrics, "maintenance", "maintenance_create", start, err)
	return maintenance, err
}

// Update records metrics for maintenance updates.
func (c *maintenanceUseCaseWithMetrics) Update(
	ctx context.Context,
	maintenanceID int,
	input *MaintenanceInput,
) (*domain.Maintenance, error) {
	start := time.Now()
	maintenance, err := c.next.Update(ctx, maintenanceID, input)
	metrics.Observe(ctx, c.metrics, "maintenance", "maintenance_update", start, err)
	return maintenance, err
}

// Get records metrics for maintenance retrieval.
func (c *maintenanceUseCaseWithMetrics) Get(ctx context.Context, maintenanceID int) (*domain.Maintenance, error) {
	start := time.Now()
	maintenance, err := c.next.Get(ctx, maintenanceID)
	metrics.Observe(ctx, c.metrics, "maintenance", "maintenance_get", start, err)
	return maintenance, err
}

// List records metrics for maintenance listing.
func (c *maintenanceUseCaseWithMetrics) List(ctx context.Context) ([]*domain.Maintenance, error) {
	start := time.Now()
	maintenances, err := c.next.List(ctx)
	metrics.Observe(ctx, c.metrics, "maintenance", "maintenance_list", start, err)
	return maintenances, err
}

// ListByMachine records metrics for maintenance listing by machine.
func (c *maintenanceUseCaseWithMetrics) ListByMachine(
	ctx context.Context,
	machineID int,
) ([]*domain.Maintenance, error) {
	start := time.Now()
	maintenances, err := c.next.ListByMachine(ctx, machineID)
	metrics.Observe(ctx, c.metrics, "maintenance", "maintenance_list_by_machine", start, err)
	return maintenances, err
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopfloor/shopfloor/internal/domain"
	"github.com/shopfloor/shopfloor/internal/notification"
)

type maintenanceUseCase struct {
	*controller
	maintenances MaintenanceRepository
	machines     MachineRepository
	users        UserRepository
	machineCase  MachineUseCase
}

// NewMaintenanceUseCase creates a MaintenanceUseCase. machineUseCase performs the
// derived last-maintenance write on its own session.
func NewMaintenanceUseCase(
	maintenances MaintenanceRepository,
	machines MachineRepository,
	users UserRepository,
	machineUseCase MachineUseCase,
	persistence notification.Observer,
	logger *slog.Logger,
	opts ...Option,
) MaintenanceUseCase {
	return &maintenanceUseCase{
		controller:   newController(logger, persistence, opts...),
		maintenances: maintenances,
		machines:     machines,
		users:        users,
		machineCase:  machineUseCase,
	}
}

func (m *maintenanceUseCase) Create(ctx context.Context, input *MaintenanceInput) (*domain.Maintenance, error) {
	maintenance, err := m.create(ctx, input)
	if err != nil {
		return nil, err
	}
	m.NotifyObservers(ctx, fmt.Sprintf("Maintenance planned: %d %s", maintenance.ID, maintenance.Machine.Code))
	return maintenance, nil
}

func (m *maintenanceUseCase) create(ctx context.Context, input *MaintenanceInput) (*domain.Maintenance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	maintenance, err := m.build(ctx, input)
	if err != nil {
		return nil, err
	}
	err = unitOfWork(ctx, m.maintenances, func() error {
		return m.maintenances.Insert(ctx, maintenance)
	})
	if err != nil {
		return nil, err
	}
	return maintenance, nil
}

func (m *maintenanceUseCase) Update(
	ctx context.Context,
	maintenanceID int,
	input *MaintenanceInput,
) (*domain.Maintenance, error) {
	maintenance, err := m.update(ctx, maintenanceID, input)
	if err != nil {
		return nil, err
	}
	m.NotifyObservers(ctx, fmt.Sprintf("Maintenance updated: %d %s", maintenance.ID, maintenance.Machine.Code))

	if maintenance.IsCompleted() {
		m.advanceMachine(ctx, maintenance)
	}
	return maintenance, nil
}

func (m *maintenanceUseCase) update(
	ctx context.Context,
	maintenanceID int,
	input *MaintenanceInput,
) (*domain.Maintenance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, err := mustGet(ctx, m.maintenances, maintenanceID, domain.ErrMaintenanceNotFound)
	if err != nil {
		return nil, err
	}

	maintenance, err := m.build(ctx, input)
	if err != nil {
		return nil, err
	}
	maintenance.ID = existing.ID

	err = unitOfWork(ctx, m.maintenances, func() error {
		_, err := m.maintenances.Update(ctx, maintenance)
		return err
	})
	if err != nil {
		return nil, err
	}
	return maintenance, nil
}

// advanceMachine is a separate unit of work. When it fails the maintenance stays
// committed and the machine's date is stale until its next successful write.
func (m *maintenanceUseCase) advanceMachine(ctx context.Context, maintenance *domain.Maintenance) {
	advanced, err := m.machineCase.AdvanceLastMaintenance(ctx, maintenance.Machine.ID, maintenance.ExecutionDate)
	if err != nil {
		m.logger.Error("failed to advance machine last maintenance",
			slog.Int("maintenance_id", maintenance.ID),
			slog.Int("machine_id", maintenance.Machine.ID),
			slog.Any("error", err))
		return
	}
	if advanced {
		maintenance.Machine.LastMaintenance = domain.DateOf(maintenance.ExecutionDate)
	}
}

func (m *maintenanceUseCase) build(ctx context.Context, input *MaintenanceInput) (*domain.Maintenance, error) {
	machine, err := resolve(ctx, m.machines, input.MachineID, domain.ErrMachineNotFound)
	if err != nil {
		return nil, err
	}
	technician, err := resolve(ctx, m.users, input.TechnicianID, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.MaintenancePlanned
	}

	return domain.NewMaintenanceBuilder().
		WithExecutionDate(input.ExecutionDate).
		WithStartDate(input.StartDate).
		WithEndDate(input.EndDate).
		WithTechnician(technician).
		WithMachine(machine).
		WithReason(input.Reason).
		WithComments(input.Comments).
		WithStatus(status).
		Build()
}

func (m *maintenanceUseCase) Get(ctx context.Context, maintenanceID int) (*domain.Maintenance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	maintenance, err := mustGet(ctx, m.maintenances, maintenanceID, domain.ErrMaintenanceNotFound)
	if err != nil {
		return nil, err
	}
	if err := m.hydrate(ctx, maintenance); err != nil {
		return nil, err
	}
	return maintenance, nil
}

func (m *maintenanceUseCase) List(ctx context.Context) ([]*domain.Maintenance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maintenances.FindAll(ctx)
}

func (m *maintenanceUseCase) ListByMachine(ctx context.Context, machineID int) ([]*domain.Maintenance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maintenances.FindBy(ctx, "machine_id", machineID)
}

// hydrate replaces the id-only machine and technician references.
func (m *maintenanceUseCase) hydrate(ctx context.Context, maintenance *domain.Maintenance) error {
	machine, err := resolve(ctx, m.machines, maintenance.Machine.ID, domain.ErrMachineNotFound)
	if err != nil {
		return err
	}
	technician, err := resolve(ctx, m.users, maintenance.Technician.ID, domain.ErrUserNotFound)
	if err != nil {
		return err
	}
	maintenance.Machine = machine
	maintenance.Technician = technician
	return nil
}

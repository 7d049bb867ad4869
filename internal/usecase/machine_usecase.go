package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopfloor/shopfloor/internal/domain"
	"github.com/shopfloor/shopfloor/internal/notification"
)

type machineUseCase struct {
	*controller
	machines MachineRepository
	sites    SiteRepository
	users    UserRepository
}

// NewMachineUseCase creates a MachineUseCase. The repositories must share one session.
func NewMachineUseCase(
	machines MachineRepository,
	sites SiteRepository,
	users UserRepository,
	persistence notification.Observer,
	logger *slog.Logger,
	opts ...Option,
) MachineUseCase {
	return &machineUseCase{
		controller: newController(logger, persistence, opts...),
		machines:   machines,
		sites:      sites,
		users:      users,
	}
}

func (m *machineUseCase) Create(ctx context.Context, input *MachineInput) (*domain.Machine, error) {
	machine, err := m.create(ctx, input)
	if err != nil {
		return nil, err
	}
	m.NotifyObservers(ctx, fmt.Sprintf("New machine added: %s", machine.Code))
	return machine, nil
}

func (m *machineUseCase) create(ctx context.Context, input *MachineInput) (*domain.Machine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	machine, err := m.build(ctx, input)
	if err != nil {
		return nil, err
	}
	err = unitOfWork(ctx, m.machines, func() error {
		return m.machines.Insert(ctx, machine)
	})
	if err != nil {
		return nil, err
	}
	return machine, nil
}

func (m *machineUseCase) Update(ctx context.Context, machineID int, input *MachineInput) (*domain.Machine, error) {
	machine, err := m.update(ctx, machineID, input)
	if err != nil {
		return nil, err
	}
	m.NotifyObservers(ctx, fmt.Sprintf("Machine updated: %s", machine.Code))
	return machine, nil
}

func (m *machineUseCase) update(ctx context.Context, machineID int, input *MachineInput) (*domain.Machine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, err := mustGet(ctx, m.machines, machineID, domain.ErrMachineNotFound)
	if err != nil {
		return nil, err
	}
	in := *input
	if in.LastMaintenance.IsZero() {
		in.LastMaintenance = existing.LastMaintenance
	}

	machine, err := m.build(ctx, &in)
	if err != nil {
		return nil, err
	}
	machine.ID = existing.ID

	if err := m.store(ctx, machine); err != nil {
		return nil, err
	}
	return machine, nil
}

func (m *machineUseCase) SaveMachine(ctx context.Context, machine *domain.Machine) (*domain.Machine, error) {
	m.mu.Lock()
	err := m.store(ctx, machine)
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	m.NotifyObservers(ctx, fmt.Sprintf("Machine updated: %s", machine.Code))
	return machine, nil
}

func (m *machineUseCase) AdvanceLastMaintenance(ctx context.Context, machineID int, executed time.Time) (bool, error) {
	m.mu.Lock()
	machine, err := mustGet(ctx, m.machines, machineID, domain.ErrMachineNotFound)
	if err != nil {
		m.mu.Unlock()
		return false, err
	}
	if !machine.AdvanceLastMaintenance(executed) {
		m.mu.Unlock()
		return false, nil
	}
	err = m.store(ctx, machine)
	m.mu.Unlock()
	if err != nil {
		return false, err
	}

	m.logger.Info("machine last maintenance advanced",
		slog.Int("machine_id", machine.ID),
		slog.Time("last_maintenance", machine.LastMaintenance))
	m.NotifyObservers(ctx, fmt.Sprintf("Machine updated: %s", machine.Code))
	return true, nil
}

func (m *machineUseCase) store(ctx context.Context, machine *domain.Machine) error {
	return unitOfWork(ctx, m.machines, func() error {
		_, err := m.machines.Update(ctx, machine)
		return err
	})
}

func (m *machineUseCase) build(ctx context.Context, input *MachineInput) (*domain.Machine, error) {
	site, err := resolve(ctx, m.sites, input.SiteID, domain.ErrSiteNotFound)
	if err != nil {
		return nil, err
	}
	technician, err := resolve(ctx, m.users, input.TechnicianID, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}

	return domain.NewMachineBuilder().
		WithSite(site).
		WithTechnician(technician).
		WithCode(input.Code).
		WithLocation(input.Location).
		WithProductInfo(input.ProductInfo).
		WithMachineStatus(input.MachineStatus).
		WithProductionStatus(input.ProductionStatus).
		WithLastMaintenance(input.LastMaintenance).
		WithFutureMaintenance(input.FutureMaintenance).
		Build()
}

func (m *machineUseCase) Get(ctx context.Context, machineID int) (*domain.Machine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return mustGet(ctx, m.machines, machineID, domain.ErrMachineNotFound)
}

func (m *machineUseCase) List(ctx context.Context) ([]*domain.Machine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.machines.FindAll(ctx)
}

func (m *machineUseCase) ListBySite(ctx context.Context, siteID int) ([]*domain.Machine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.machines.FindBy(ctx, "site_id", siteID)
}

package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/shopfloor/shopfloor/internal/domain"
	"github.com/shopfloor/shopfloor/internal/notification"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockRepository is a hand-written mock of Repository[T].
type mockRepository[T any] struct {
	mock.Mock
}

func (m *mockRepository[T]) FindAll(ctx context.Context) ([]*T, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*T), args.Error(1)
}

func (m *mockRepository[T]) FindBy(ctx context.Context, column string, value any) ([]*T, error) {
	args := m.Called(ctx, column, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*T), args.Error(1)
}

func (m *mockRepository[T]) Get(ctx context.Context, id int) (*T, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*T), args.Bool(1), args.Error(2)
}

func (m *mockRepository[T]) Exists(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository[T]) Insert(ctx context.Context, entity *T) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *mockRepository[T]) Update(ctx context.Context, entity *T) (*T, error) {
	args := m.Called(ctx, entity)
	return entity, args.Error(0)
}

func (m *mockRepository[T]) Delete(ctx context.Context, entity *T) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *mockRepository[T]) StartTransaction(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockRepository[T]) CommitTransaction() error {
	args := m.Called()
	return args.Error(0)
}

func (m *mockRepository[T]) RollbackTransaction() error {
	args := m.Called()
	return args.Error(0)
}

// expectCommit expects one successful unit of work.
func (m *mockRepository[T]) expectCommit(ctx context.Context) {
	m.On("StartTransaction", ctx).Return(nil).Once()
	m.On("CommitTransaction").Return(nil).Once()
}

// expectRollback expects one unit of work that is rolled back.
func (m *mockRepository[T]) expectRollback(ctx context.Context) {
	m.On("StartTransaction", ctx).Return(nil).Once()
	m.On("RollbackTransaction").Return(nil).Once()
}

// expectGet makes Get(id) return entity, or report it absent when entity is nil.
func (m *mockRepository[T]) expectGet(ctx context.Context, id int, entity *T) {
	if entity == nil {
		m.On("Get", ctx, id).Return(nil, false, nil)
		return
	}
	m.On("Get", ctx, id).Return(entity, true, nil)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) GeneratePassword() (string, string, error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockPasswordService) HashPassword(plainPassword string) (string, error) {
	args := m.Called(plainPassword)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) ComparePassword(plainPassword string, hashedPassword string) bool {
	args := m.Called(plainPassword, hashedPassword)
	return args.Bool(0)
}

type mockMachineUseCase struct {
	mock.Mock
	*notification.Publisher
}

func (m *mockMachineUseCase) Create(ctx context.Context, input *MachineInput) (*domain.Machine, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Machine), args.Error(1)
}

func (m *mockMachineUseCase) Update(ctx context.Context, machineID int, input *MachineInput) (*domain.Machine, error) {
	args := m.Called(ctx, machineID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Machine), args.Error(1)
}

func (m *mockMachineUseCase) SaveMachine(ctx context.Context, machine *domain.Machine) (*domain.Machine, error) {
	args := m.Called(ctx, machine)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Machine), args.Error(1)
}

func (m *mockMachineUseCase) AdvanceLastMaintenance(ctx context.Context, machineID int, executed time.Time) (bool, error) {
	args := m.Called(ctx, machineID, executed)
	return args.Bool(0), args.Error(1)
}

func (m *mockMachineUseCase) Get(ctx context.Context, machineID int) (*domain.Machine, error) {
	args := m.Called(ctx, machineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Machine), args.Error(1)
}

func (m *mockMachineUseCase) List(ctx context.Context) ([]*domain.Machine, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Machine), args.Error(1)
}

func (m *mockMachineUseCase) ListBySite(ctx context.Context, siteID int) ([]*domain.Machine, error) {
	args := m.Called(ctx, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Machine), args.Error(1)
}

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

// messages collects every message delivered to it.
type messages struct {
	received []string
}

func (m *messages) Update(_ context.Context, message string) error {
	m.received = append(m.received, message)
	return nil
}

func testTechnician(id int) *domain.User {
	return &domain.User{
		ID: id, FirstName: "Tom", LastName: "Claes", Email: "tom@example.com",
		Birthdate: domain.Date(1988, 3, 4), Role: domain.RoleTechnician, Status: domain.StatusActive,
	}
}

func testSite(id int) *domain.Site {
	return &domain.Site{
		ID: id, Name: "Gent", Status: domain.StatusActive,
		Responsible: domain.UserRef(2),
		Address:     &domain.Address{ID: 9, Street: "Industrieweg", Number: 1, PostalCode: 9052, City: "Zwijnaarde"},
	}
}

func testMachine(id int, site *domain.Site) *domain.Machine {
	m := &domain.Machine{
		ID: id, Code: "M-1", Location: "Hall A", ProductInfo: "Press",
		MachineStatus: domain.MachineRunning, ProductionStatus: domain.ProductionHealthy,
		Technician:        testTechnician(3),
		LastMaintenance:   domain.Date(2025, 4, 1),
		FutureMaintenance: domain.Date(2025, 10, 1),
	}
	m.SetSite(site)
	return m
}

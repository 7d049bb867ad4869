// Package mocks provides mock implementations of the use cases for testing HTTP
// handlers and CLI commands.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/shopfloor/shopfloor/internal/domain"
	"github.com/shopfloor/shopfloor/internal/notification"
	"github.com/shopfloor/shopfloor/internal/usecase"
)

// value returns the i-th return value as T, or the zero T when it was set to nil.
func value[T any](args mock.Arguments, i int) T {
	var zero T
	if args.Get(i) == nil {
		return zero
	}
	return args.Get(i).(T)
}

// MockUserUseCase is a mock implementation of usecase.UserUseCase. The embedded
// publisher provides the observer methods.
type MockUserUseCase struct {
	mock.Mock
	*notification.Publisher
}

// NewMockUserUseCase creates a MockUserUseCase with an empty publisher.
func NewMockUserUseCase() *MockUserUseCase {
	return &MockUserUseCase{Publisher: notification.NewPublisher(nil, nil)}
}

func (m *MockUserUseCase) Create(
	ctx context.Context,
	input *usecase.CreateUserInput,
) (*usecase.CreateUserOutput, error) {
	args := m.Called(ctx, input)
	return value[*usecase.CreateUserOutput](args, 0), args.Error(1)
}

func (m *MockUserUseCase) Update(
	ctx context.Context,
	userID int,
	input *usecase.UpdateUserInput,
) (*domain.User, error) {
	args := m.Called(ctx, userID, input)
	return value[*domain.User](args, 0), args.Error(1)
}

func (m *MockUserUseCase) Get(ctx context.Context, userID int) (*domain.User, error) {
	args := m.Called(ctx, userID)
	return value[*domain.User](args, 0), args.Error(1)
}

func (m *MockUserUseCase) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	return value[[]*domain.User](args, 0), args.Error(1)
}

func (m *MockUserUseCase) ListTechnicians(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	return value[[]*domain.User](args, 0), args.Error(1)
}

func (m *MockUserUseCase) ListSiteManagers(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	return value[[]*domain.User](args, 0), args.Error(1)
}

func (m *MockUserUseCase) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	return value[*domain.User](args, 0), args.Error(1)
}

// MockSiteUseCase is a mock implementation of usecase.SiteUseCase.
type MockSiteUseCase struct {
	mock.Mock
	*notification.Publisher
}

// NewMockSiteUseCase creates a MockSiteUseCase with an empty publisher.
func NewMockSiteUseCase() *MockSiteUseCase {
	return &MockSiteUseCase{Publisher: notification.NewPublisher(nil, nil)}
}

func (m *MockSiteUseCase) Create(ctx context.Context, input *usecase.SiteInput) (*domain.Site, error) {
	args := m.Called(ctx, input)
	return value[*domain.Site](args, 0), args.Error(1)
}

func (m *MockSiteUseCase) Update(ctx context.Context, siteID int, input *usecase.SiteInput) (*domain.Site, error) {
	args := m.Called(ctx, siteID, input)
	return value[*domain.Site](args, 0), args.Error(1)
}

func (m *MockSiteUseCase) Get(ctx context.Context, siteID int) (*domain.Site, error) {
	args := m.Called(ctx, siteID)
	return value[*domain.Site](args, 0), args.Error(1)
}

func (m *MockSiteUseCase) List(ctx context.Context) ([]*domain.Site, error) {
	args := m.Called(ctx)
	return value[[]*domain.Site](args, 0), args.Error(1)
}

func (m *MockSiteUseCase) ListFiltered(ctx context.Context, filter usecase.SiteFilter) ([]*domain.Site, error) {
	args := m.Called(ctx, filter)
	return value[[]*domain.Site](args, 0), args.Error(1)
}

// MockMachineUseCase is a mock implementation of usecase.MachineUseCase.
type MockMachineUseCase struct {
	mock.Mock
	*notification.Publisher
}

// NewMockMachineUseCase creates a MockMachineUseCase with an empty publisher.
func NewMockMachineUseCase() *MockMachineUseCase {
	return &MockMachineUseCase{Publisher: notification.NewPublisher(nil, nil)}
}

func (m *MockMachineUseCase) Create(ctx context.Context, input *usecase.MachineInput) (*domain.Machine, error) {
	args := m.Called(ctx, input)
	return value[*domain.Machine](args, 0), args.Error(1)
}

func (m *MockMachineUseCase) Update(
	ctx context.Context,
	machineID int,
	input *usecase.MachineInput,
) (*domain.Machine, error) {
	args := m.Called(ctx, machineID, input)
	return value[*domain.Machine](args, 0), args.Error(1)
}

func (m *MockMachineUseCase) SaveMachine(ctx context.Context, machine *domain.Machine) (*domain.Machine, error) {
	args := m.Called(ctx, machine)
	return value[*domain.Machine](args, 0), args.Error(1)
}

func (m *MockMachineUseCase) AdvanceLastMaintenance(
	ctx context.Context,
	machineID int,
	executed time.Time,
) (bool, error) {
	args := m.Called(ctx, machineID, executed)
	return args.Bool(0), args.Error(1)
}

func (m *MockMachineUseCase) Get(ctx context.Context, machineID int) (*domain.Machine, error) {
	args := m.Called(ctx, machineID)
	return value[*domain.Machine](args, 0), args.Error(1)
}

func (m *MockMachineUseCase) List(ctx context.Context) ([]*domain.Machine, error) {
	args := m.Called(ctx)
	return value[[]*domain.Machine](args, 0), args.Error(1)
}

func (m *MockMachineUseCase) ListBySite(ctx context.Context, siteID int) ([]*domain.Machine, error) {
	args := m.Called(ctx, siteID)
	return value[[]*domain.Machine](args, 0), args.Error(1)
}

// MockMaintenanceUseCase is a mock implementation of usecase.MaintenanceUseCase.
type MockMaintenanceUseCase struct {
	mock.Mock
	*notification.Publisher
}

// NewMockMaintenanceUseCase creates a MockMaintenanceUseCase with an empty publisher.
func NewMockMaintenanceUseCase() *MockMaintenanceUseCase {
	return &MockMaintenanceUseCase{Publisher: notification.NewPublisher(nil, nil)}
}

func (m *MockMaintenanceUseCase) Create(
	ctx context.Context,
	input *usecase.MaintenanceInput,
) (*domain.Maintenance, error) {
	args := m.Called(ctx, input)
	return value[*domain.Maintenance](args, 0), args.Error(1)
}

func (m *MockMaintenanceUseCase) Update(
	ctx context.Context,
	maintenanceID int,
	input *usecase.MaintenanceInput,
) (*domain.Maintenance, error) {
	args := m.Called(ctx, maintenanceID, input)
	return value[*domain.Maintenance](args, 0), args.Error(1)
}

func (m *MockMaintenanceUseCase) Get(ctx context.Context, maintenanceID int) (*domain.Maintenance, error) {
	args := m.Called(ctx, maintenanceID)
	return value[*domain.Maintenance](args, 0), args.Error(1)
}

func (m *MockMaintenanceUseCase) List(ctx context.Context) ([]*domain.Maintenance, error) {
	args := m.Called(ctx)
	return value[[]*domain.Maintenance](args, 0), args.Error(1)
}

func (m *MockMaintenanceUseCase) ListByMachine(ctx context.Context, machineID int) ([]*domain.Maintenance, error) {
	args := m.Called(ctx, machineID)
	return value[[]*domain.Maintenance](args, 0), args.Error(1)
}

// MockReportUseCase is a mock implementation of usecase.ReportUseCase.
type MockReportUseCase struct {
	mock.Mock
	*notification.Publisher
}

// NewMockReportUseCase creates a MockReportUseCase with an empty publisher.
func NewMockReportUseCase() *MockReportUseCase {
	return &MockReportUseCase{Publisher: notification.NewPublisher(nil, nil)}
}

func (m *MockReportUseCase) Create(ctx context.Context, input *usecase.ReportInput) (*domain.Report, error) {
	args := m.Called(ctx, input)
	return value[*domain.Report](args, 0), args.Error(1)
}

func (m *MockReportUseCase) Get(ctx context.Context, reportID int) (*domain.Report, error) {
	args := m.Called(ctx, reportID)
	return value[*domain.Report](args, 0), args.Error(1)
}

func (m *MockReportUseCase) List(ctx context.Context) ([]*domain.Report, error) {
	args := m.Called(ctx)
	return value[[]*domain.Report](args, 0), args.Error(1)
}

func (m *MockReportUseCase) ListByTechnician(ctx context.Context, technicianID int) ([]*domain.Report, error) {
	args := m.Called(ctx, technicianID)
	return value[[]*domain.Report](args, 0), args.Error(1)
}

func (m *MockReportUseCase) ListBySite(ctx context.Context, siteID int) ([]*domain.Report, error) {
	args := m.Called(ctx, siteID)
	return value[[]*domain.Report](args, 0), args.Error(1)
}

// MockNotificationUseCase is a mock implementation of usecase.NotificationUseCase.
type MockNotificationUseCase struct {
	mock.Mock
}

func (m *MockNotificationUseCase) ListUnread(ctx context.Context) ([]*domain.Notification, error) {
	args := m.Called(ctx)
	return value[[]*domain.Notification](args, 0), args.Error(1)
}

func (m *MockNotificationUseCase) ListRead(ctx context.Context) ([]*domain.Notification, error) {
	args := m.Called(ctx)
	return value[[]*domain.Notification](args, 0), args.Error(1)
}

func (m *MockNotificationUseCase) Get(ctx context.Context, notificationID int) (*domain.Notification, error) {
	args := m.Called(ctx, notificationID)
	return value[*domain.Notification](args, 0), args.Error(1)
}

func (m *MockNotificationUseCase) MarkAsRead(ctx context.Context, notificationID int) (*domain.Notification, error) {
	args := m.Called(ctx, notificationID)
	return value[*domain.Notification](args, 0), args.Error(1)
}

// MockKPIUseCase is a mock implementation of usecase.KPIUseCase.
type MockKPIUseCase struct {
	mock.Mock
}

func (m *MockKPIUseCase) ListDashboard(ctx context.Context) ([]*domain.KPI, error) {
	args := m.Called(ctx)
	return value[[]*domain.KPI](args, 0), args.Error(1)
}

func (m *MockKPIUseCase) ListValues(ctx context.Context, kpiID int) ([]*domain.KPIValue, error) {
	args := m.Called(ctx, kpiID)
	return value[[]*domain.KPIValue](args, 0), args.Error(1)
}

var (
	_ usecase.UserUseCase         = (*MockUserUseCase)(nil)
	_ usecase.SiteUseCase         = (*MockSiteUseCase)(nil)
	_ usecase.MachineUseCase      = (*MockMachineUseCase)(nil)
	_ usecase.MaintenanceUseCase  = (*MockMaintenanceUseCase)(nil)
	_ usecase.ReportUseCase       = (*MockReportUseCase)(nil)
	_ usecase.NotificationUseCase = (*MockNotificationUseCase)(nil)
	_ usecase.KPIUseCase          = (*MockKPIUseCase)(nil)
)

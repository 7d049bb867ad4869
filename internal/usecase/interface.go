// Package usecase defines the controllers that glue builders, repositories and change
// notification together. Every controller publishes a message after each successful
// write.
package usecase

import (
	"context"
	"time"

	"github.com/shopfloor/shopfloor/internal/domain"
	"github.com/shopfloor/shopfloor/internal/notification"
)

// Repository is the generic persistence gateway the controllers depend on.
// Writes must happen between StartTransaction and CommitTransaction.
type Repository[T any] interface {
	FindAll(ctx context.Context) ([]*T, error)
	FindBy(ctx context.Context, column string, value any) ([]*T, error)
	// Get returns found=false and a nil error when no row matches.
	Get(ctx context.Context, id int) (*T, bool, error)
	Exists(ctx context.Context, id int) (bool, error)
	Insert(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) (*T, error)
	Delete(ctx context.Context, entity *T) error

	StartTransaction(ctx context.Context) error
	CommitTransaction() error
	RollbackTransaction() error
}

type (
	UserRepository         = Repository[domain.User]
	SiteRepository         = Repository[domain.Site]
	MachineRepository      = Repository[domain.Machine]
	MaintenanceRepository  = Repository[domain.Maintenance]
	ReportRepository       = Repository[domain.Report]
	NotificationRepository = Repository[domain.Notification]
	KPIRepository          = Repository[domain.KPI]
	KPIValueRepository     = Repository[domain.KPIValue]
)

// UserUseCase manages employees.
type UserUseCase interface {
	notification.Subject

	// Create builds a user with a generated password and status ACTIVE. The plain
	// password is returned once and never stored.
	// Returns ErrUserAlreadyExists when the email is taken.
	Create(ctx context.Context, input *CreateUserInput) (*CreateUserOutput, error)

	// Update replaces the user's fields, keeping its password hash and address id.
	Update(ctx context.Context, userID int, input *UpdateUserInput) (*domain.User, error)

	Get(ctx context.Context, userID int) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	ListTechnicians(ctx context.Context) ([]*domain.User, error)
	ListSiteManagers(ctx context.Context) ([]*domain.User, error)

	// Authenticate returns the active user owning email and password, or
	// ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

// SiteUseCase manages production sites.
type SiteUseCase interface {
	notification.Subject

	Create(ctx context.Context, input *SiteInput) (*domain.Site, error)
	Update(ctx context.Context, siteID int, input *SiteInput) (*domain.Site, error)

	// Get returns the site with its responsible user and machines resolved.
	Get(ctx context.Context, siteID int) (*domain.Site, error)
	List(ctx context.Context) ([]*domain.Site, error)
	ListFiltered(ctx context.Context, filter SiteFilter) ([]*domain.Site, error)
}

// MachineUseCase manages machines.
type MachineUseCase interface {
	notification.Subject

	Create(ctx context.Context, input *MachineInput) (*domain.Machine, error)
	Update(ctx context.Context, machineID int, input *MachineInput) (*domain.Machine, error)

	// SaveMachine stores an already valid machine and announces the change.
	SaveMachine(ctx context.Context, machine *domain.Machine) (*domain.Machine, error)

	// AdvanceLastMaintenance moves the machine's last maintenance date forward to
	// executed when it is later. It reports whether the machine was written.
	AdvanceLastMaintenance(ctx context.Context, machineID int, executed time.Time) (bool, error)

	Get(ctx context.Context, machineID int) (*domain.Machine, error)
	List(ctx context.Context) ([]*domain.Machine, error)
	ListBySite(ctx context.Context, siteID int) ([]*domain.Machine, error)
}

// MaintenanceUseCase plans and tracks maintenances.
type MaintenanceUseCase interface {
	notification.Subject

	Create(ctx context.Context, input *MaintenanceInput) (*domain.Maintenance, error)

	// Update replaces the maintenance's fields. A COMPLETED maintenance whose execution
	// date is later than the machine's last maintenance advances that date in a
	// separate unit of work after this one commits.
	Update(ctx context.Context, maintenanceID int, input *MaintenanceInput) (*domain.Maintenance, error)

	Get(ctx context.Context, maintenanceID int) (*domain.Maintenance, error)
	List(ctx context.Context) ([]*domain.Maintenance, error)
	ListByMachine(ctx context.Context, machineID int) ([]*domain.Maintenance, error)
}

// ReportUseCase records maintenance reports.
type ReportUseCase interface {
	notification.Subject

	Create(ctx context.Context, input *ReportInput) (*domain.Report, error)
	Get(ctx context.Context, reportID int) (*domain.Report, error)
	List(ctx context.Context) ([]*domain.Report, error)
	ListByTechnician(ctx context.Context, technicianID int) ([]*domain.Report, error)
	ListBySite(ctx context.Context, siteID int) ([]*domain.Report, error)
}

// NotificationUseCase reads and acknowledges stored notifications.
type NotificationUseCase interface {
	ListUnread(ctx context.Context) ([]*domain.Notification, error)
	ListRead(ctx context.Context) ([]*domain.Notification, error)
	Get(ctx context.Context, notificationID int) (*domain.Notification, error)

	// MarkAsRead flags the notification as read; marking twice is not an error.
	MarkAsRead(ctx context.Context, notificationID int) (*domain.Notification, error)
}

// KPIUseCase serves dashboard indicators.
type KPIUseCase interface {
	// ListDashboard returns the dashboard KPIs in display order.
	ListDashboard(ctx context.Context) ([]*domain.KPI, error)

	// ListValues returns the measurements of one KPI.
	ListValues(ctx context.Context, kpiID int) ([]*domain.KPIValue, error)
}

package usecase

import (
	"time"

	"github.com/shopfloor/shopfloor/internal/domain"
)

// AddressInput carries the fields of an owned address. A zero value means
// "no address".
type AddressInput struct {
	Street     string
	Number     int
	PostalCode int
	City       string
}

// IsZero reports whether no address field was supplied.
func (a AddressInput) IsZero() bool {
	return a == AddressInput{}
}

// CreateUserInput contains the fields of a new user.
type CreateUserInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Birthdate   time.Time
	Role        domain.Role
	Address     AddressInput
}

// CreateUserOutput returns the stored user and its one-time plain password.
type CreateUserOutput struct {
	User          *domain.User
	PlainPassword string
}

// UpdateUserInput contains the editable fields of a user.
type UpdateUserInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Birthdate   time.Time
	Role        domain.Role
	Status      domain.Status
	Address     AddressInput
}

// SiteInput contains the editable fields of a site. Status is ignored on create.
type SiteInput struct {
	Name          string
	ResponsibleID int
	Status        domain.Status
	Address       AddressInput
}

// SiteFilter narrows ListFiltered. Zero fields do not filter.
type SiteFilter struct {
	// Search matches the name, city or responsible's full name, case-insensitively.
	Search        string
	Name          string
	Status        domain.Status
	ResponsibleID int
	MinMachines   int
	// MaxMachines of zero means unbounded.
	MaxMachines int
}

// MachineInput contains the editable fields of a machine.
type MachineInput struct {
	SiteID            int
	TechnicianID      int
	Code              string
	Location          string
	ProductInfo       string
	MachineStatus     domain.MachineStatus
	ProductionStatus  domain.ProductionStatus
	LastMaintenance   time.Time
	FutureMaintenance time.Time
}

// MaintenanceInput contains the editable fields of a maintenance. An empty Status
// means PLANNED.
type MaintenanceInput struct {
	MachineID     int
	TechnicianID  int
	ExecutionDate time.Time
	StartDate     time.Time
	EndDate       time.Time
	Reason        string
	Comments      string
	Status        domain.MaintenanceStatus
}

// ReportInput contains the fields of a new report. Nil times are reported as missing.
type ReportInput struct {
	SiteID        int
	MaintenanceID int
	TechnicianID  int
	StartDate     time.Time
	StartTime     *domain.TimeOfDay
	EndDate       time.Time
	EndTime       *domain.TimeOfDay
	Reason        string
	Remarks       string
}

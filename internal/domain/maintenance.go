package domain

import (
	"time"

	"github.com/shopfloor/shopfloor/internal/validation"
)

// Maintenance is one planned or executed intervention on a machine.
type Maintenance struct {
	ID            int
	ExecutionDate time.Time
	StartDate     time.Time
	EndDate       time.Time
	Technician    *User
	Machine       *Machine
	Reason        string
	Comments      string
	Status        MaintenanceStatus
}

// MaintenanceRef returns an id-only maintenance used for references that are resolved later.
func MaintenanceRef(id int) *Maintenance {
	return &Maintenance{ID: id}
}

// IsCompleted reports whether the maintenance reached its final status.
func (m *Maintenance) IsCompleted() bool {
	return m.Status == MaintenanceCompleted
}

// Duration returns the time between start and end.
func (m *Maintenance) Duration() time.Duration {
	return m.EndDate.Sub(m.StartDate)
}

// MaintenanceBuilder accumulates maintenance fields; only Build validates.
type MaintenanceBuilder struct {
	executionDate time.Time
	startDate     time.Time
	endDate       time.Time
	technician    *User
	machine       *Machine
	reason        string
	comments      string
	status        MaintenanceStatus
}

// NewMaintenanceBuilder returns an empty builder.
func NewMaintenanceBuilder() *MaintenanceBuilder {
	return &MaintenanceBuilder{}
}

func (b *MaintenanceBuilder) WithExecutionDate(day time.Time) *MaintenanceBuilder {
	b.executionDate = day
	return b
}

func (b *MaintenanceBuilder) WithStartDate(start time.Time) *MaintenanceBuilder {
	b.startDate = start
	return b
}

func (b *MaintenanceBuilder) WithEndDate(end time.Time) *MaintenanceBuilder {
	b.endDate = end
	return b
}

func (b *MaintenanceBuilder) WithTechnician(technician *User) *MaintenanceBuilder {
	b.technician = technician
	return b
}

func (b *MaintenanceBuilder) WithMachine(machine *Machine) *MaintenanceBuilder {
	b.machine = machine
	return b
}

func (b *MaintenanceBuilder) WithReason(reason string) *MaintenanceBuilder {
	b.reason = reason
	return b
}

func (b *MaintenanceBuilder) WithComments(comments string) *MaintenanceBuilder {
	b.comments = comments
	return b
}

func (b *MaintenanceBuilder) WithStatus(status MaintenanceStatus) *MaintenanceBuilder {
	b.status = status
	return b
}

// Build returns the maintenance, or an *validation.InformationRequiredError.
// An end before the start is reported on "endDate".
func (b *MaintenanceBuilder) Build() (*Maintenance, error) {
	v := validation.NewViolations()

	v.Require("executionDate", b.executionDate, MaintenanceExecutionDateRequired)
	startSet := v.Require("startDate", b.startDate, MaintenanceStartDateRequired)
	endSet := v.Require("endDate", b.endDate, MaintenanceEndDateRequired)
	v.Require("technician", b.technician, MaintenanceTechnicianRequired)
	v.Require("reason", b.reason, MaintenanceReasonRequired, validation.NotBlank)
	v.Require("status", b.status, MaintenanceStatusRequired, validation.OneOf(maintenanceStatus...))
	v.Require("machine", b.machine, MaintenanceMachineRequired)

	if startSet && endSet && b.endDate.Before(b.startDate) {
		v.Add("endDate", MaintenanceEndDateBeforeStart)
	}

	if !v.Empty() {
		return nil, validation.NewInformationRequiredError("maintenance", v)
	}

	return &Maintenance{
		ExecutionDate: DateOf(b.executionDate),
		StartDate:     b.startDate,
		EndDate:       b.endDate,
		Technician:    b.technician,
		Machine:       b.machine,
		Reason:        b.reason,
		Comments:      b.comments,
		Status:        b.status,
	}, nil
}

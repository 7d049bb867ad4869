package domain

import (
	"time"

	"github.com/shopfloor/shopfloor/internal/validation"
)

// Machine is a production asset placed on one site and looked after by one technician.
type Machine struct {
	ID                int
	Code              string
	Location          string
	ProductInfo       string
	MachineStatus     MachineStatus
	ProductionStatus  ProductionStatus
	Technician        *User
	LastMaintenance   time.Time
	FutureMaintenance time.Time

	site *Site
}

// MachineRef returns an id-only machine used for references that are resolved later.
func MachineRef(id int) *Machine {
	return &Machine{ID: id}
}

// Site returns the site the machine is placed on.
func (m *Machine) Site() *Site {
	return m.site
}

// SetSite moves the machine: it leaves the previous site's membership and joins
// the new one. A nil site detaches the machine.
func (m *Machine) SetSite(site *Site) {
	if m.site == site {
		if site != nil {
			site.addMachine(m)
		}
		return
	}
	if m.site != nil {
		m.site.removeMachine(m)
	}
	m.site = site
	if site != nil {
		site.addMachine(m)
	}
}

// DaysSinceLastMaintenance counts whole days between the last maintenance and now.
func (m *Machine) DaysSinceLastMaintenance(now time.Time) int {
	if m.LastMaintenance.IsZero() {
		return 0
	}
	return int(DateOf(now).Sub(DateOf(m.LastMaintenance)).Hours() / 24)
}

// UpTimeInHours counts whole hours since the start of the last maintenance day.
func (m *Machine) UpTimeInHours(now time.Time) float64 {
	if m.LastMaintenance.IsZero() {
		return 0
	}
	return float64(int(now.Sub(DateOf(m.LastMaintenance)).Hours()))
}

// AdvanceLastMaintenance moves LastMaintenance to the day of executed when that day
// is later than the recorded one. It reports whether the date changed.
func (m *Machine) AdvanceLastMaintenance(executed time.Time) bool {
	day := DateOf(executed)
	if day.IsZero() {
		return false
	}
	if m.LastMaintenance.IsZero() || day.After(DateOf(m.LastMaintenance)) {
		m.LastMaintenance = day
		return true
	}
	return false
}

// MachineBuilder accumulates machine fields; only Build validates.
type MachineBuilder struct {
	site              *Site
	technician        *User
	code              string
	location          string
	productInfo       string
	machineStatus     MachineStatus
	productionStatus  ProductionStatus
	lastMaintenance   time.Time
	futureMaintenance time.Time
}

// NewMachineBuilder returns an empty builder.
func NewMachineBuilder() *MachineBuilder {
	return &MachineBuilder{}
}

func (b *MachineBuilder) WithSite(site *Site) *MachineBuilder {
	b.site = site
	return b
}

func (b *MachineBuilder) WithTechnician(technician *User) *MachineBuilder {
	b.technician = technician
	return b
}

func (b *MachineBuilder) WithCode(code string) *MachineBuilder {
	b.code = code
	return b
}

func (b *MachineBuilder) WithLocation(location string) *MachineBuilder {
	b.location = location
	return b
}

func (b *MachineBuilder) WithProductInfo(productInfo string) *MachineBuilder {
	b.productInfo = productInfo
	return b
}

func (b *MachineBuilder) WithMachineStatus(status MachineStatus) *MachineBuilder {
	b.machineStatus = status
	return b
}

func (b *MachineBuilder) WithProductionStatus(status ProductionStatus) *MachineBuilder {
	b.productionStatus = status
	return b
}

// WithLastMaintenance keeps a recorded date; without it Build uses today.
func (b *MachineBuilder) WithLastMaintenance(day time.Time) *MachineBuilder {
	b.lastMaintenance = day
	return b
}

func (b *MachineBuilder) WithFutureMaintenance(day time.Time) *MachineBuilder {
	b.futureMaintenance = day
	return b
}

// Build returns the machine placed on its site, or an *validation.InformationRequiredError.
func (b *MachineBuilder) Build() (*Machine, error) {
	v := validation.NewViolations()

	v.Require("site", b.site, MachineSiteRequired)
	v.Require("technician", b.technician, MachineTechnicianRequired)
	v.Require("code", b.code, MachineCodeRequired, validation.NotBlank)
	v.Require("machineStatus", b.machineStatus, MachineStatusRequired, validation.OneOf(machineStatuses...))
	v.Require("productionStatus", b.productionStatus, MachineProductionStatusRequired,
		validation.OneOf(productionStatuses...))
	v.Require("location", b.location, MachineLocationRequired, validation.NotBlank)
	v.Require("productInfo", b.productInfo, MachineProductInfoRequired, validation.NotBlank)
	v.Require("futureMaintenance", b.futureMaintenance, MachineFutureMaintenanceRequired)

	if !v.Empty() {
		return nil, validation.NewInformationRequiredError("machine", v)
	}

	lastMaintenance := DateOf(b.lastMaintenance)
	if lastMaintenance.IsZero() {
		lastMaintenance = Today()
	}

	m := &Machine{
		Code:              b.code,
		Location:          b.location,
		ProductInfo:       b.productInfo,
		MachineStatus:     b.machineStatus,
		ProductionStatus:  b.productionStatus,
		Technician:        b.technician,
		LastMaintenance:   lastMaintenance,
		FutureMaintenance: DateOf(b.futureMaintenance),
	}
	m.SetSite(b.site)
	return m, nil
}

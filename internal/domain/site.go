package domain

import (
	"slices"

	"github.com/shopfloor/shopfloor/internal/validation"
)

// Site is a production location. It owns its address and is the authoritative
// holder of machine membership; Machine.SetSite is the only way to change it.
type Site struct {
	ID          int
	Name        string
	Status      Status
	Responsible *User
	Address     *Address

	machines []*Machine
}

// SiteRef returns an id-only site used for references that are resolved later.
func SiteRef(id int) *Site {
	return &Site{ID: id}
}

// Machines returns a snapshot of the machines placed on the site.
func (s *Site) Machines() []*Machine {
	return slices.Clone(s.machines)
}

// HasMachine reports whether m is placed on the site.
func (s *Site) HasMachine(m *Machine) bool {
	return slices.Contains(s.machines, m)
}

// MachineCount returns the number of machines placed on the site.
func (s *Site) MachineCount() int {
	return len(s.machines)
}

// AttachMachines places every machine on the site through Machine.SetSite.
func (s *Site) AttachMachines(machines ...*Machine) {
	for _, m := range machines {
		m.SetSite(s)
	}
}

func (s *Site) addMachine(m *Machine) {
	if !s.HasMachine(m) {
		s.machines = append(s.machines, m)
	}
}

func (s *Site) removeMachine(m *Machine) {
	s.machines = slices.DeleteFunc(s.machines, func(candidate *Machine) bool {
		return candidate == m
	})
}

// SiteBuilder accumulates site fields; only Build validates.
type SiteBuilder struct {
	name        string
	status      Status
	responsible *User

	address           *Address
	addressSet        bool
	addressViolations validation.Violations
}

// NewSiteBuilder returns an empty builder.
func NewSiteBuilder() *SiteBuilder {
	return &SiteBuilder{}
}

func (b *SiteBuilder) WithName(name string) *SiteBuilder {
	b.name = name
	return b
}

func (b *SiteBuilder) WithStatus(status Status) *SiteBuilder {
	b.status = status
	return b
}

func (b *SiteBuilder) WithResponsible(responsible *User) *SiteBuilder {
	b.responsible = responsible
	return b
}

// WithAddress builds the owned address right away; its violations surface in Build
// under the address's own keys.
func (b *SiteBuilder) WithAddress(street string, number, postalCode int, city string) *SiteBuilder {
	b.addressSet = true
	b.address, b.addressViolations = buildNested(street, number, postalCode, city)
	return b
}

// Build returns the site, or an *validation.InformationRequiredError. A site whose
// address was never supplied reports "address"; a partial address reports its
// missing fields instead.
func (b *SiteBuilder) Build() (*Site, error) {
	v := validation.NewViolations()

	v.Require("siteName", b.name, SiteNameRequired, validation.NotBlank)
	v.Require("responsible", b.responsible, SiteResponsibleRequired)
	v.Require("status", b.status, SiteStatusRequired, validation.OneOf(statuses...))
	if !b.addressSet {
		v.Add("address", SiteAddressRequired)
	}
	v.Merge(b.addressViolations)

	if !v.Empty() {
		return nil, validation.NewInformationRequiredError("site", v)
	}

	return &Site{
		Name:        b.name,
		Status:      b.status,
		Responsible: b.responsible,
		Address:     b.address,
	}, nil
}

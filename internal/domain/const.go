// Package domain defines the shopfloor entities (addresses, users, sites, machines,
// maintenances, reports, notifications and KPIs) together with the builders that are
// the only way to construct them in a valid state.
package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Role is the responsibility a user holds on the shopfloor.
type Role string

const (
	// RoleAdministrator manages users and sites.
	RoleAdministrator Role = "ADMINISTRATOR"
	// RoleSiteManager is responsible for one or more sites.
	RoleSiteManager Role = "SITE_MANAGER"
	// RoleTechnician performs maintenances and writes reports.
	RoleTechnician Role = "TECHNICIAN"
	// RoleManager reads dashboards.
	RoleManager Role = "MANAGER"
)

// Status is the activity state of users and sites.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// MachineStatus is the operating state of a machine.
type MachineStatus string

const (
	MachineRunning              MachineStatus = "RUNNING"
	MachineInMaintenance        MachineStatus = "IN_MAINTENANCE"
	MachineManuallyStopped      MachineStatus = "MANUALLY_STOPPED"
	MachineAutomaticallyStopped MachineStatus = "AUTOMATICALLY_STOPPED"
	MachineStartable            MachineStatus = "STARTABLE"
)

// ProductionStatus is the health of a machine's production.
type ProductionStatus string

const (
	ProductionHealthy          ProductionStatus = "HEALTHY"
	ProductionFailing          ProductionStatus = "FAILING"
	ProductionNeedsMaintenance ProductionStatus = "NEEDS_MAINTENANCE"
)

// MaintenanceStatus is the lifecycle state of a maintenance.
// Any status may be updated to any other; reaching COMPLETED may advance the
// machine's last maintenance date.
type MaintenanceStatus string

const (
	MaintenancePlanned    MaintenanceStatus = "PLANNED"
	MaintenanceInProgress MaintenanceStatus = "IN_PROGRESS"
	MaintenanceCompleted  MaintenanceStatus = "COMPLETED"
)

var (
	roles              = []Role{RoleAdministrator, RoleSiteManager, RoleTechnician, RoleManager}
	statuses           = []Status{StatusActive, StatusInactive}
	machineStatuses    = []MachineStatus{MachineRunning, MachineInMaintenance, MachineManuallyStopped, MachineAutomaticallyStopped, MachineStartable}
	productionStatuses = []ProductionStatus{ProductionHealthy, ProductionFailing, ProductionNeedsMaintenance}
	maintenanceStatus  = []MaintenanceStatus{MaintenancePlanned, MaintenanceInProgress, MaintenanceCompleted}
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool { return slices.Contains(roles, r) }

// Valid reports whether s is a known status.
func (s Status) Valid() bool { return slices.Contains(statuses, s) }

// Valid reports whether s is a known machine status.
func (s MachineStatus) Valid() bool { return slices.Contains(machineStatuses, s) }

// Valid reports whether s is a known production status.
func (s ProductionStatus) Valid() bool { return slices.Contains(productionStatuses, s) }

// Valid reports whether s is a known maintenance status.
func (s MaintenanceStatus) Valid() bool { return slices.Contains(maintenanceStatus, s) }

// ParseRole converts user input ("technician", "SITE_MANAGER") to a Role.
func ParseRole(s string) (Role, error) { return parseEnum(s, roles, "role") }

// ParseStatus converts user input to a Status.
func ParseStatus(s string) (Status, error) { return parseEnum(s, statuses, "status") }

// ParseMachineStatus converts user input to a MachineStatus.
func ParseMachineStatus(s string) (MachineStatus, error) {
	return parseEnum(s, machineStatuses, "machine status")
}

// ParseProductionStatus converts user input to a ProductionStatus.
func ParseProductionStatus(s string) (ProductionStatus, error) {
	return parseEnum(s, productionStatuses, "production status")
}

// ParseMaintenanceStatus converts user input to a MaintenanceStatus.
func ParseMaintenanceStatus(s string) (MaintenanceStatus, error) {
	return parseEnum(s, maintenanceStatus, "maintenance status")
}

func parseEnum[T ~string](s string, values []T, kind string) (T, error) {
	normalized := T(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	if slices.Contains(values, normalized) {
		return normalized, nil
	}
	return "", fmt.Errorf("invalid %s: %q", kind, s)
}

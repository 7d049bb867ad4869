package dto

import (
	"encoding/json"
	"time"

	"github.com/shopfloor/shopfloor/internal/domain"
)

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// AddressResponse represents an owned address in API responses.
type AddressResponse struct {
	Street     string `json:"street"`
	Number     int    `json:"number"`
	PostalCode int    `json:"postal_code"`
	City       string `json:"city"`
}

func mapAddress(address *domain.Address) *AddressResponse {
	if address == nil {
		return nil
	}
	return &AddressResponse{
		Street:     address.Street,
		Number:     address.Number,
		PostalCode: address.PostalCode,
		City:       address.City,
	}
}

// UserSummary identifies a referenced user.
type UserSummary struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name,omitempty"`
}

func mapUserSummary(user *domain.User) *UserSummary {
	if user == nil {
		return nil
	}
	summary := &UserSummary{ID: user.ID}
	if user.FirstName != "" || user.LastName != "" {
		summary.FullName = user.FullName()
	}
	return summary
}

// SiteResponse represents a site in API responses.
type SiteResponse struct {
	ID           int              `json:"id"`
	Name         string           `json:"name"`
	Status       domain.Status    `json:"status"`
	Responsible  *UserSummary     `json:"responsible,omitempty"`
	Address      *AddressResponse `json:"address,omitempty"`
	MachineCount int              `json:"machine_count"`
	MachineIDs   []int            `json:"machine_ids"`
}

// MapSiteToResponse converts a domain site to an API response.
func MapSiteToResponse(site *domain.Site) SiteResponse {
	machines := site.Machines()
	ids := make([]int, 0, len(machines))
	for _, machine := range machines {
		ids = append(ids, machine.ID)
	}
	return SiteResponse{
		ID:           site.ID,
		Name:         site.Name,
		Status:       site.Status,
		Responsible:  mapUserSummary(site.Responsible),
		Address:      mapAddress(site.Address),
		MachineCount: len(machines),
		MachineIDs:   ids,
	}
}

// ListSitesResponse represents a paginated list of sites.
type ListSitesResponse struct {
	Data []SiteResponse `json:"data"`
}

// MapSitesToListResponse converts domain sites to a list API response.
func MapSitesToListResponse(sites []*domain.Site) ListSitesResponse {
	return ListSitesResponse{Data: mapAll(sites, MapSiteToResponse)}
}

// MachineResponse represents a machine in API responses.
type MachineResponse struct {
	ID                int                     `json:"id"`
	Code              string                  `json:"code"`
	Location          string                  `json:"location"`
	ProductInfo       string                  `json:"product_info"`
	MachineStatus     domain.MachineStatus    `json:"machine_status"`
	ProductionStatus  domain.ProductionStatus `json:"production_status"`
	SiteID            int                     `json:"site_id,omitempty"`
	Technician        *UserSummary            `json:"technician,omitempty"`
	LastMaintenance   string                  `json:"last_maintenance,omitempty"`
	FutureMaintenance string                  `json:"future_maintenance,omitempty"`
}

// MapMachineToResponse converts a domain machine to an API response.
func MapMachineToResponse(machine *domain.Machine) MachineResponse {
	response := MachineResponse{
		ID:                machine.ID,
		Code:              machine.Code,
		Location:          machine.Location,
		ProductInfo:       machine.ProductInfo,
		MachineStatus:     machine.MachineStatus,
		ProductionStatus:  machine.ProductionStatus,
		Technician:        mapUserSummary(machine.Technician),
		LastMaintenance:   formatDate(machine.LastMaintenance),
		FutureMaintenance: formatDate(machine.FutureMaintenance),
	}
	if site := machine.Site(); site != nil {
		response.SiteID = site.ID
	}
	return response
}

// ListMachinesResponse represents a paginated list of machines.
type ListMachinesResponse struct {
	Data []MachineResponse `json:"data"`
}

// MapMachinesToListResponse converts domain machines to a list API response.
func MapMachinesToListResponse(machines []*domain.Machine) ListMachinesResponse {
	return ListMachinesResponse{Data: mapAll(machines, MapMachineToResponse)}
}

// MaintenanceResponse represents a maintenance in API responses.
type MaintenanceResponse struct {
	ID            int                      `json:"id"`
	MachineID     int                      `json:"machine_id"`
	MachineCode   string                   `json:"machine_code,omitempty"`
	Technician    *UserSummary             `json:"technician,omitempty"`
	ExecutionDate string                   `json:"execution_date"`
	StartDate     time.Time                `json:"start_date"`
	EndDate       time.Time                `json:"end_date"`
	Reason        string                   `json:"reason"`
	Comments      string                   `json:"comments,omitempty"`
	Status        domain.MaintenanceStatus `json:"status"`
}

// MapMaintenanceToResponse converts a domain maintenance to an API response.
func MapMaintenanceToResponse(maintenance *domain.Maintenance) MaintenanceResponse {
	response := MaintenanceResponse{
		ID:            maintenance.ID,
		Technician:    mapUserSummary(maintenance.Technician),
		ExecutionDate: formatDate(maintenance.ExecutionDate),
		StartDate:     maintenance.StartDate,
		EndDate:       maintenance.EndDate,
		Reason:        maintenance.Reason,
		Comments:      maintenance.Comments,
		Status:        maintenance.Status,
	}
	if maintenance.Machine != nil {
		response.MachineID = maintenance.Machine.ID
		response.MachineCode = maintenance.Machine.Code
	}
	return response
}

// ListMaintenancesResponse represents a paginated list of maintenances.
type ListMaintenancesResponse struct {
	Data []MaintenanceResponse `json:"data"`
}

// MapMaintenancesToListResponse converts domain maintenances to a list API response.
func MapMaintenancesToListResponse(maintenances []*domain.Maintenance) ListMaintenancesResponse {
	return ListMaintenancesResponse{Data: mapAll(maintenances, MapMaintenanceToResponse)}
}

// NotificationResponse represents a stored notification in API responses.
type NotificationResponse struct {
	ID      int       `json:"id"`
	IsRead  bool      `json:"is_read"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// MapNotificationToResponse converts a domain notification to an API response.
func MapNotificationToResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{ID: n.ID, IsRead: n.IsRead, Message: n.Message, Time: n.Time}
}

// ListNotificationsResponse represents a paginated list of notifications.
type ListNotificationsResponse struct {
	Data []NotificationResponse `json:"data"`
}

// MapNotificationsToListResponse converts domain notifications to a list API response.
func MapNotificationsToListResponse(notifications []*domain.Notification) ListNotificationsResponse {
	return ListNotificationsResponse{Data: mapAll(notifications, MapNotificationToResponse)}
}

// KPIResponse represents a dashboard indicator.
type KPIResponse struct {
	ID      int           `json:"id"`
	Subject string        `json:"subject"`
	Roles   []domain.Role `json:"roles"`
	Chart   domain.Chart  `json:"chart"`
}

// MapKPIToResponse converts a domain KPI to an API response.
func MapKPIToResponse(kpi *domain.KPI) KPIResponse {
	roles := kpi.Roles
	if roles == nil {
		roles = []domain.Role{}
	}
	return KPIResponse{ID: kpi.ID, Subject: kpi.Subject, Roles: roles, Chart: kpi.Chart}
}

// ListKPIsResponse represents the dashboard KPIs in display order.
type ListKPIsResponse struct {
	Data []KPIResponse `json:"data"`
}

// MapKPIsToListResponse converts domain KPIs to a list API response.
func MapKPIsToListResponse(kpis []*domain.KPI) ListKPIsResponse {
	return ListKPIsResponse{Data: mapAll(kpis, MapKPIToResponse)}
}

// KPIValueResponse represents one KPI measurement. Value is passed through as
// stored.
type KPIValueResponse struct {
	ID     int             `json:"id"`
	KPIID  int             `json:"kpi_id"`
	Date   string          `json:"date"`
	Value  json.RawMessage `json:"value"`
	SiteID string          `json:"site_id,omitempty"`
}

// MapKPIValueToResponse converts a domain KPI value to an API response.
func MapKPIValueToResponse(v *domain.KPIValue) KPIValueResponse {
	value := v.Value
	if len(value) == 0 {
		value = json.RawMessage("null")
	}
	return KPIValueResponse{ID: v.ID, KPIID: v.KPIID, Date: formatDate(v.Date), Value: value, SiteID: v.SiteID}
}

// ListKPIValuesResponse represents the measurements of one KPI.
type ListKPIValuesResponse struct {
	Data []KPIValueResponse `json:"data"`
}

// MapKPIValuesToListResponse converts domain KPI values to a list API response.
func MapKPIValuesToListResponse(values []*domain.KPIValue) ListKPIValuesResponse {
	return ListKPIValuesResponse{Data: mapAll(values, MapKPIValueToResponse)}
}

func mapAll[T any, R any](items []*T, fn func(*T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

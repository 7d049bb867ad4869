// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	"github.com/shopfloor/shopfloor/internal/domain"
	"github.com/shopfloor/shopfloor/internal/usecase"
	customValidation "github.com/shopfloor/shopfloor/internal/validation"
)

// DateLayout is the wire format of calendar days.
const DateLayout = "2006-01-02"

// MaintenanceRequest contains the parameters for planning or updating a maintenance.
// An empty status means PLANNED.
type MaintenanceRequest struct {
	MachineID     int       `json:"machine_id"`
	TechnicianID  int       `json:"technician_id"`
	ExecutionDate string    `json:"execution_date"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Reason        string    `json:"reason"`
	Comments      string    `json:"comments"`
	Status        string    `json:"status"`
}

// Validate checks the shape of the request. Cross-field rules such as the end
// following the start are left to the maintenance builder.
func (r *MaintenanceRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.MachineID, validation.Required, validation.Min(1)),
		validation.Field(&r.TechnicianID, validation.Required, validation.Min(1)),
		validation.Field(&r.ExecutionDate, validation.Required, validation.Date(DateLayout)),
		validation.Field(&r.StartDate, validation.Required),
		validation.Field(&r.EndDate, validation.Required),
		validation.Field(&r.Reason,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Comments, validation.Length(0, 1000)),
		validation.Field(&r.Status, validation.By(validateMaintenanceStatus)),
	)
}

func validateMaintenanceStatus(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := domain.ParseMaintenanceStatus(s); err != nil {
		return validation.NewError("validation_maintenance_status", "must be PLANNED, IN_PROGRESS or COMPLETED")
	}
	return nil
}

// ToInput converts a validated request into the use case input.
func (r *MaintenanceRequest) ToInput() *usecase.MaintenanceInput {
	executionDate, _ := time.Parse(DateLayout, r.ExecutionDate)

	var status domain.MaintenanceStatus
	if r.Status != "" {
		status, _ = domain.ParseMaintenanceStatus(r.Status)
	}

	return &usecase.MaintenanceInput{
		MachineID:     r.MachineID,
		TechnicianID:  r.TechnicianID,
		ExecutionDate: domain.DateOf(executionDate),
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		Reason:        r.Reason,
		Comments:      r.Comments,
		Status:        status,
	}
}

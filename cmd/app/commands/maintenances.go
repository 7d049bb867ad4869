package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shopfloor/shopfloor/internal/domain"
	"github.com/shopfloor/shopfloor/internal/usecase"
)

// MaintenanceParams are the raw flags of create-maintenance and update-maintenance.
type MaintenanceParams struct {
	MachineID     int
	TechnicianID  int
	ExecutionDate string
	StartDate     string
	EndDate       string
	Reason        string
	Comments      string
	Status        string
}

func (p MaintenanceParams) toInput() (*usecase.MaintenanceInput, error) {
	executionDate, err := parseDate("execution date", p.ExecutionDate)
	if err != nil {
		return nil, err
	}
	startDate, err := parseDateTime("start date", p.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDateTime("end date", p.EndDate)
	if err != nil {
		return nil, err
	}
	status, err := parseOptional(p.Status, domain.ParseMaintenanceStatus)
	if err != nil {
		return nil, err
	}

	return &usecase.MaintenanceInput{
		MachineID:     p.MachineID,
		TechnicianID:  p.TechnicianID,
		ExecutionDate: executionDate,
		StartDate:     startDate,
		EndDate:       endDate,
		Reason:        p.Reason,
		Comments:      p.Comments,
		Status:        status,
	}, nil
}

type maintenanceOutput struct {
	ID            int                      `json:"id"`
	MachineID     int                      `json:"machine_id"`
	ExecutionDate string                   `json:"execution_date"`
	StartDate     time.Time                `json:"start_date"`
	EndDate       time.Time                `json:"end_date"`
	Reason        string                   `json:"reason"`
	Status        domain.MaintenanceStatus `json:"status"`

	verb string
}

func newMaintenanceOutput(maintenance *domain.Maintenance, verb string) maintenanceOutput {
	out := maintenanceOutput{
		ID:            maintenance.ID,
		ExecutionDate: maintenance.ExecutionDate.Format(dateLayout),
		StartDate:     maintenance.StartDate,
		EndDate:       maintenance.EndDate,
		Reason:        maintenance.Reason,
		Status:        maintenance.Status,
		verb:          verb,
	}
	if maintenance.Machine != nil {
		out.MachineID = maintenance.Machine.ID
	}
	return out
}

func (o maintenanceOutput) printText(w io.Writer) {
	_, _ = fmt.Fprintf(w, "Maintenance %s successfully!\n", o.verb)
	_, _ = fmt.Fprintf(w, "ID: %d\n", o.ID)
	_, _ = fmt.Fprintf(w, "Machine: %d\n", o.MachineID)
	_, _ = fmt.Fprintf(w, "Execution date: %s\n", o.ExecutionDate)
	_, _ = fmt.Fprintf(w, "Window: %s - %s\n", o.StartDate.Format(time.RFC3339), o.EndDate.Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "Reason: %s\n", o.Reason)
	_, _ = fmt.Fprintf(w, "Status: %s\n", o.Status)
}

// RunCreateMaintenance plans a maintenance on a machine.
func RunCreateMaintenance(
	ctx context.Context,
	maintenanceUseCase usecase.MaintenanceUseCase,
	logger *slog.Logger,
	params MaintenanceParams,
	format string,
	io IOTuple,
) error {
	input, err := params.toInput()
	if err != nil {
		return err
	}

	logger.Info("creating maintenance", slog.Int("machine_id", params.MachineID))

	maintenance, err := maintenanceUseCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create maintenance: %w", err)
	}

	logger.Info("maintenance created", slog.Int("id", maintenance.ID))
	return writeOutput(io.Writer, format, newMaintenanceOutput(maintenance, "created"))
}

// RunUpdateMaintenance replaces the fields of an existing maintenance. Moving it to
// COMPLETED also advances the machine's last maintenance date.
func RunUpdateMaintenance(
	ctx context.Context,
	maintenanceUseCase usecase.MaintenanceUseCase,
	logger *slog.Logger,
	maintenanceID int,
	params MaintenanceParams,
	format string,
	io IOTuple,
) error {
	input, err := params.toInput()
	if err != nil {
		return err
	}

	logger.Info("updating maintenance", slog.Int("id", maintenanceID))

	maintenance, err := maintenanceUseCase.Update(ctx, maintenanceID, input)
	if err != nil {
		return fmt.Errorf("failed to update maintenance: %w", err)
	}

	logger.Info("maintenance updated", slog.Int("id", maintenance.ID), slog.String("status", string(maintenance.Status)))
	return writeOutput(io.Writer, format, newMaintenanceOutput(maintenance, "updated"))
}

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shopfloor/shopfloor/internal/domain"
	"github.com/shopfloor/shopfloor/internal/usecase"
)

// MachineParams are the raw flags of create-machine.
type MachineParams struct {
	SiteID            int
	TechnicianID      int
	Code              string
	Location          string
	ProductInfo       string
	MachineStatus     string
	ProductionStatus  string
	LastMaintenance   string
	FutureMaintenance string
}

type machineOutput struct {
	ID                int                     `json:"id"`
	Code              string                  `json:"code"`
	SiteID            int                     `json:"site_id"`
	MachineStatus     domain.MachineStatus    `json:"machine_status"`
	ProductionStatus  domain.ProductionStatus `json:"production_status"`
	FutureMaintenance string                  `json:"future_maintenance,omitempty"`
}

// RunCreateMachine registers a machine on an existing site.
func RunCreateMachine(
	ctx context.Context,
	machineUseCase usecase.MachineUseCase,
	logger *slog.Logger,
	params MachineParams,
	format string,
	io IOTuple,
) error {
	machineStatus, err := parseOptional(params.MachineStatus, domain.ParseMachineStatus)
	if err != nil {
		return err
	}
	productionStatus, err := parseOptional(params.ProductionStatus, domain.ParseProductionStatus)
	if err != nil {
		return err
	}
	lastMaintenance, err := parseDate("last maintenance", params.LastMaintenance)
	if err != nil {
		return err
	}
	futureMaintenance, err := parseDate("future maintenance", params.FutureMaintenance)
	if err != nil {
		return err
	}

	logger.Info("creating machine", slog.String("code", params.Code), slog.Int("site_id", params.SiteID))

	machine, err := machineUseCase.Create(ctx, &usecase.MachineInput{
		SiteID:            params.SiteID,
		TechnicianID:      params.TechnicianID,
		Code:              params.Code,
		Location:          params.Location,
		ProductInfo:       params.ProductInfo,
		MachineStatus:     machineStatus,
		ProductionStatus:  productionStatus,
		LastMaintenance:   lastMaintenance,
		FutureMaintenance: futureMaintenance,
	})
	if err != nil {
		return fmt.Errorf("failed to create machine: %w", err)
	}

	logger.Info("machine created", slog.Int("id", machine.ID))

	result := machineOutput{
		ID:               machine.ID,
		Code:             machine.Code,
		MachineStatus:    machine.MachineStatus,
		ProductionStatus: machine.ProductionStatus,
	}
	if site := machine.Site(); site != nil {
		result.SiteID = site.ID
	}
	if !machine.FutureMaintenance.IsZero() {
		result.FutureMaintenance = machine.FutureMaintenance.Format(dateLayout)
	}
	return writeOutput(io.Writer, format, result)
}

func (o machineOutput) printText(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Machine created successfully!")
	_, _ = fmt.Fprintf(w, "ID: %d\n", o.ID)
	_, _ = fmt.Fprintf(w, "Code: %s\n", o.Code)
	_, _ = fmt.Fprintf(w, "Site: %d\n", o.SiteID)
	_, _ = fmt.Fprintf(w, "Status: %s / %s\n", o.MachineStatus, o.ProductionStatus)
	if o.FutureMaintenance != "" {
		_, _ = fmt.Fprintf(w, "Next maintenance: %s\n", o.FutureMaintenance)
	}
}

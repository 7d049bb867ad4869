package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shopfloor/shopfloor/internal/usecase"
)

// ReportParams are the raw flags of create-report.
type ReportParams struct {
	SiteID        int
	MaintenanceID int
	TechnicianID  int
	StartDate     string
	StartTime     string
	EndDate       string
	EndTime       string
	Reason        string
	Remarks       string
}

type reportOutput struct {
	ID            int    `json:"id"`
	SiteID        int    `json:"site_id"`
	MaintenanceID int    `json:"maintenance_id"`
	Start         string `json:"start"`
	End           string `json:"end"`
	Reason        string `json:"reason"`
}

// RunCreateReport files a technician report for a maintenance.
func RunCreateReport(
	ctx context.Context,
	reportUseCase usecase.ReportUseCase,
	logger *slog.Logger,
	params ReportParams,
	format string,
	io IOTuple,
) error {
	startDate, err := parseDate("start date", params.StartDate)
	if err != nil {
		return err
	}
	startTime, err := parseTimeOfDay("start time", params.StartTime)
	if err != nil {
		return err
	}
	endDate, err := parseDate("end date", params.EndDate)
	if err != nil {
		return err
	}
	endTime, err := parseTimeOfDay("end time", params.EndTime)
	if err != nil {
		return err
	}

	logger.Info("creating report",
		slog.Int("site_id", params.SiteID),
		slog.Int("maintenance_id", params.MaintenanceID),
	)

	report, err := reportUseCase.Create(ctx, &usecase.ReportInput{
		SiteID:        params.SiteID,
		MaintenanceID: params.MaintenanceID,
		TechnicianID:  params.TechnicianID,
		StartDate:     startDate,
		StartTime:     startTime,
		EndDate:       endDate,
		EndTime:       endTime,
		Reason:        params.Reason,
		Remarks:       params.Remarks,
	})
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	logger.Info("report created", slog.Int("id", report.ID))

	result := reportOutput{
		ID:     report.ID,
		Start:  fmt.Sprintf("%s %s", report.StartDate.Format(dateLayout), report.StartTime),
		End:    fmt.Sprintf("%s %s", report.EndDate.Format(dateLayout), report.EndTime),
		Reason: report.Reason,
	}
	if report.Site != nil {
		result.SiteID = report.Site.ID
	}
	if report.Maintenance != nil {
		result.MaintenanceID = report.Maintenance.ID
	}
	return writeOutput(io.Writer, format, result)
}

func (o reportOutput) printText(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Report created successfully!")
	_, _ = fmt.Fprintf(w, "ID: %d\n", o.ID)
	_, _ = fmt.Fprintf(w, "Site: %d\n", o.SiteID)
	_, _ = fmt.Fprintf(w, "Maintenance: %d\n", o.MaintenanceID)
	_, _ = fmt.Fprintf(w, "From: %s\n", o.Start)
	_, _ = fmt.Fprintf(w, "To: %s\n", o.End)
	_, _ = fmt.Fprintf(w, "Reason: %s\n", o.Reason)
}

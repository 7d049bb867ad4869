package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shopfloor/shopfloor/internal/domain"
	"github.com/shopfloor/shopfloor/internal/usecase"
)

// SiteParams are the raw flags of create-site.
type SiteParams struct {
	Name          string
	ResponsibleID int
	Address       AddressParams
}

type siteOutput struct {
	ID            int           `json:"id"`
	Name          string        `json:"name"`
	Status        domain.Status `json:"status"`
	ResponsibleID int           `json:"responsible_id"`
	Address       string        `json:"address"`
}

// RunCreateSite creates an active site.
func RunCreateSite(
	ctx context.Context,
	siteUseCase usecase.SiteUseCase,
	logger *slog.Logger,
	params SiteParams,
	format string,
	io IOTuple,
) error {
	logger.Info("creating site", slog.String("name", params.Name))

	site, err := siteUseCase.Create(ctx, &usecase.SiteInput{
		Name:          params.Name,
		ResponsibleID: params.ResponsibleID,
		Address:       params.Address.toInput(),
	})
	if err != nil {
		return fmt.Errorf("failed to create site: %w", err)
	}

	logger.Info("site created", slog.Int("id", site.ID))

	result := siteOutput{ID: site.ID, Name: site.Name, Status: site.Status}
	if site.Responsible != nil {
		result.ResponsibleID = site.Responsible.ID
	}
	if site.Address != nil {
		result.Address = site.Address.String()
	}
	return writeOutput(io.Writer, format, result)
}

func (o siteOutput) printText(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Site created successfully!")
	_, _ = fmt.Fprintf(w, "ID: %d\n", o.ID)
	_, _ = fmt.Fprintf(w, "Name: %s\n", o.Name)
	_, _ = fmt.Fprintf(w, "Status: %s\n", o.Status)
	_, _ = fmt.Fprintf(w, "Responsible: %d\n", o.ResponsibleID)
	_, _ = fmt.Fprintf(w, "Address: %s\n", o.Address)
}

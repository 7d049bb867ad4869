package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopfloor/shopfloor/internal/domain"
	"github.com/shopfloor/shopfloor/internal/http/dto"
	"github.com/shopfloor/shopfloor/internal/httputil"
	"github.com/shopfloor/shopfloor/internal/usecase"
)

// MachineHandler serves the read side of machines.
type MachineHandler struct {
	machineUseCase usecase.MachineUseCase
	logger         *slog.Logger
}

// NewMachineHandler creates a new machine handler.
func NewMachineHandler(machineUseCase usecase.MachineUseCase, logger *slog.Logger) *MachineHandler {
	return &MachineHandler{machineUseCase: machineUseCase, logger: logger}
}

// ListHandler lists machines, optionally only those of one site.
// GET /v1/machines?site_id=&offset=&limit=
func (h *MachineHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	siteID, err := queryInt(c, "site_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var machines []*domain.Machine
	if siteID > 0 {
		machines, err = h.machineUseCase.ListBySite(c.Request.Context(), siteID)
	} else {
		machines, err = h.machineUseCase.List(c.Request.Context())
	}
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapMachinesToListResponse(httputil.Page(machines, offset, limit)))
}

// GetHandler returns one machine.
// GET /v1/machines/:id
func (h *MachineHandler) GetHandler(c *gin.Context) {
	machineID, err := httputil.ParseID(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	machine, err := h.machineUseCase.Get(c.Request.Context(), machineID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapMachineToResponse(machine))
}

package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopfloor/shopfloor/internal/domain"
	"github.com/shopfloor/shopfloor/internal/http/dto"
	"github.com/shopfloor/shopfloor/internal/httputil"
	"github.com/shopfloor/shopfloor/internal/usecase"
	customValidation "github.com/shopfloor/shopfloor/internal/validation"
)

// MaintenanceHandler plans, updates and reads maintenances.
type MaintenanceHandler struct {
	maintenanceUseCase usecase.MaintenanceUseCase
	logger             *slog.Logger
}

// NewMaintenanceHandler creates a new maintenance handler.
func NewMaintenanceHandler(maintenanceUseCase usecase.MaintenanceUseCase, logger *slog.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceUseCase: maintenanceUseCase, logger: logger}
}

// CreateHandler plans a new maintenance.
// POST /v1/maintenances - Returns 201 Created.
func (h *MaintenanceHandler) CreateHandler(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	maintenance, err := h.maintenanceUseCase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapMaintenanceToResponse(maintenance))
}

// UpdateHandler replaces a maintenance. Completing it may advance the machine's
// last maintenance date.
// PUT /v1/maintenances/:id
func (h *MaintenanceHandler) UpdateHandler(c *gin.Context) {
	maintenanceID, err := httputil.ParseID(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	maintenance, err := h.maintenanceUseCase.Update(c.Request.Context(), maintenanceID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapMaintenanceToResponse(maintenance))
}

// GetHandler returns one maintenance with its machine and technician.
// GET /v1/maintenances/:id
func (h *MaintenanceHandler) GetHandler(c *gin.Context) {
	maintenanceID, err := httputil.ParseID(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	maintenance, err := h.maintenanceUseCase.Get(c.Request.Context(), maintenanceID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapMaintenanceToResponse(maintenance))
}

// ListHandler lists maintenances, optionally only those of one machine.
// GET /v1/maintenances?machine_id=&offset=&limit=
func (h *MaintenanceHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	machineID, err := queryInt(c, "machine_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var maintenances []*domain.Maintenance
	if machineID > 0 {
		maintenances, err = h.maintenanceUseCase.ListByMachine(c.Request.Context(), machineID)
	} else {
		maintenances, err = h.maintenanceUseCase.List(c.Request.Context())
	}
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapMaintenancesToListResponse(httputil.Page(maintenances, offset, limit)))
}

func (h *MaintenanceHandler) bindRequest(c *gin.Context) (*dto.MaintenanceRequest, bool) {
	var req dto.MaintenanceRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return nil, false
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return nil, false
	}

	return &req, true
}

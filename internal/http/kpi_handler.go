package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopfloor/shopfloor/internal/http/dto"
	"github.com/shopfloor/shopfloor/internal/httputil"
	"github.com/shopfloor/shopfloor/internal/usecase"
)

// KPIHandler serves the dashboard indicators.
type KPIHandler struct {
	kpiUseCase usecase.KPIUseCase
	logger     *slog.Logger
}

// NewKPIHandler creates a new KPI handler.
func NewKPIHandler(kpiUseCase usecase.KPIUseCase, logger *slog.Logger) *KPIHandler {
	return &KPIHandler{kpiUseCase: kpiUseCase, logger: logger}
}

// ListHandler returns the dashboard KPIs in display order.
// GET /v1/kpis
func (h *KPIHandler) ListHandler(c *gin.Context) {
	kpis, err := h.kpiUseCase.ListDashboard(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapKPIsToListResponse(kpis))
}

// ListValuesHandler returns the measurements of one KPI.
// GET /v1/kpis/:id/values
func (h *KPIHandler) ListValuesHandler(c *gin.Context) {
	kpiID, err := httputil.ParseID(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	values, err := h.kpiUseCase.ListValues(c.Request.Context(), kpiID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapKPIValuesToListResponse(values))
}

package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shopfloor/shopfloor/internal/domain"
	"github.com/shopfloor/shopfloor/internal/http/dto"
	"github.com/shopfloor/shopfloor/internal/httputil"
	"github.com/shopfloor/shopfloor/internal/usecase"
)

// SiteHandler serves the read side of production sites.
type SiteHandler struct {
	siteUseCase usecase.SiteUseCase
	logger      *slog.Logger
}

// NewSiteHandler creates a new site handler.
func NewSiteHandler(siteUseCase usecase.SiteUseCase, logger *slog.Logger) *SiteHandler {
	return &SiteHandler{siteUseCase: siteUseCase, logger: logger}
}

// ListHandler lists sites matching the query filters.
// GET /v1/sites?search=&name=&status=&responsible_id=&min_machines=&max_machines=&offset=&limit=
func (h *SiteHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	filter, err := parseSiteFilter(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	sites, err := h.siteUseCase.ListFiltered(c.Request.Context(), filter)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSitesToListResponse(httputil.Page(sites, offset, limit)))
}

// GetHandler returns one site with its responsible and machines.
// GET /v1/sites/:id
func (h *SiteHandler) GetHandler(c *gin.Context) {
	siteID, err := httputil.ParseID(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	site, err := h.siteUseCase.Get(c.Request.Context(), siteID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSiteToResponse(site))
}

func parseSiteFilter(c *gin.Context) (usecase.SiteFilter, error) {
	filter := usecase.SiteFilter{
		Search: c.Query("search"),
		Name:   c.Query("name"),
	}

	if s := c.Query("status"); s != "" {
		status, err := domain.ParseStatus(s)
		if err != nil {
			return filter, err
		}
		filter.Status = status
	}

	var err error
	if filter.ResponsibleID, err = queryInt(c, "responsible_id"); err != nil {
		return filter, err
	}
	if filter.MinMachines, err = queryInt(c, "min_machines"); err != nil {
		return filter, err
	}
	if filter.MaxMachines, err = queryInt(c, "max_machines"); err != nil {
		return filter, err
	}
	return filter, nil
}

// queryInt reads an optional non-negative integer query parameter; absent means 0.
func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s parameter: must be a non-negative integer", name)
	}
	return n, nil
}

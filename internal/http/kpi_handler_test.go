package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shopfloor/shopfloor/internal/domain"
	"github.com/shopfloor/shopfloor/internal/http/dto"
)

func TestKPIHandler_ListHandler(t *testing.T) {
	r := newTestRouter(t, testConfig())
	r.kpis.On("ListDashboard", anyCtx).Return([]*domain.KPI{
		{ID: 3, Subject: "Machines in maintenance", Chart: domain.ChartSingle},
		{ID: 1, Subject: "Uptime", Roles: []domain.Role{domain.RoleManager}, Chart: domain.ChartHealth},
	}, nil).Once()

	w := r.do(http.MethodGet, "/v1/kpis", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decode[dto.ListKPIsResponse](t, w)
	if assert.Len(t, response.Data, 2) {
		assert.Equal(t, 3, response.Data[0].ID)
		assert.Empty(t, response.Data[0].Roles)
		assert.Equal(t, []domain.Role{domain.RoleManager}, response.Data[1].Roles)
	}
}

func TestKPIHandler_ListValuesHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r := newTestRouter(t, testConfig())
		r.kpis.On("ListValues", anyCtx, 10).Return([]*domain.KPIValue{
			{ID: 1, KPIID: 10, Date: domain.Date(2025, 5, 1), Value: json.RawMessage(`{"running":4}`), SiteID: "5"},
		}, nil).Once()

		w := r.do(http.MethodGet, "/v1/kpis/10/values", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t,
			`{"data":[{"id":1,"kpi_id":10,"date":"2025-05-01","value":{"running":4},"site_id":"5"}]}`,
			w.Body.String())
	})

	t.Run("Error_UnknownKPI", func(t *testing.T) {
		r := newTestRouter(t, testConfig())
		r.kpis.On("ListValues", anyCtx, 99).Return(nil, domain.ErrKPINotFound).Once()

		w := r.do(http.MethodGet, "/v1/kpis/99/values", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderForDashboard(t *testing.T) {
	var kpis []*KPI
	for id := 1; id <= 14; id++ {
		kpis = append(kpis, &KPI{ID: id})
	}

	ordered := OrderForDashboard(kpis, DashboardKPIs)

	ids := make([]int, 0, len(ordered))
	for _, kpi := range ordered {
		ids = append(ids, kpi.ID)
	}
	assert.Equal(t, []int{3, 1, 4, 10, 12, 13}, ids)
}

func TestOrderForDashboard_MissingKPIsSkipped(t *testing.T) {
	ordered := OrderForDashboard([]*KPI{{ID: 13}, {ID: 2}, {ID: 3}}, DashboardKPIs)

	require.Len(t, ordered, 2)
	assert.Equal(t, 3, ordered[0].ID)
	assert.Equal(t, 13, ordered[1].ID)
}

func TestKPI_VisibleTo(t *testing.T) {
	restricted := &KPI{Roles: []Role{RoleManager}}
	assert.True(t, restricted.VisibleTo(RoleManager))
	assert.False(t, restricted.VisibleTo(RoleTechnician))
	assert.True(t, (&KPI{}).VisibleTo(RoleTechnician))
}

func TestNotification_MarkAsRead(t *testing.T) {
	n := NewNotification("Machine updated: M-1", Today())

	assert.False(t, n.IsRead)
	assert.True(t, n.MarkAsRead())
	assert.False(t, n.MarkAsRead())
	assert.True(t, n.IsRead)
}

func TestParseEnums(t *testing.T) {
	role, err := ParseRole("site-manager")
	require.NoError(t, err)
	assert.Equal(t, RoleSiteManager, role)

	status, err := ParseMaintenanceStatus(" in_progress ")
	require.NoError(t, err)
	assert.Equal(t, MaintenanceInProgress, status)

	_, err = ParseMachineStatus("exploded")
	assert.Error(t, err)

	assert.True(t, ProductionFailing.Valid())
	assert.False(t, Status("ARCHIVED").Valid())
}

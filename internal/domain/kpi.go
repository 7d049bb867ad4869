package domain

import (
	"encoding/json"
	"slices"
	"time"
)

// Chart is the visualisation a dashboard uses for a KPI.
type Chart string

const (
	ChartBarHighLow Chart = "BAR_HIGH_LOW"
	ChartBarLowHigh Chart = "BAR_LOW_HIGH"
	ChartSingle     Chart = "SINGLE"
	ChartHealth     Chart = "HEALTH"
)

// DashboardKPIs lists the KPI ids shown on the dashboard, in display order.
var DashboardKPIs = []int{3, 1, 4, 10, 12, 13}

// KPI is reference data describing one dashboard indicator.
type KPI struct {
	ID      int
	Subject string
	Roles   []Role
	Chart   Chart
}

// VisibleTo reports whether users with role may see the KPI. A KPI without roles is public.
func (k *KPI) VisibleTo(role Role) bool {
	return len(k.Roles) == 0 || slices.Contains(k.Roles, role)
}

// KPIValue is one measurement of a KPI, optionally scoped to a site.
// (KPIID, Date, SiteID) is unique.
type KPIValue struct {
	ID     int
	KPIID  int
	Date   time.Time
	Value  json.RawMessage
	SiteID string
}

// OrderForDashboard keeps the KPIs listed in order, sorted by their position in it.
func OrderForDashboard(kpis []*KPI, order []int) []*KPI {
	out := make([]*KPI, 0, len(order))
	for _, kpi := range kpis {
		if slices.Contains(order, kpi.ID) {
			out = append(out, kpi)
		}
	}
	slices.SortStableFunc(out, func(a, b *KPI) int {
		return slices.Index(order, a.ID) - slices.Index(order, b.ID)
	})
	return out
}

package usecase

import (
	"context"

	"github.com/shopfloor/shopfloor/internal/domain"
)

type kpiUseCase struct {
	kpis   KPIRepository
	values KPIValueRepository
}

// NewKPIUseCase creates a KPIUseCase.
func NewKPIUseCase(kpis KPIRepository, values KPIValueRepository) KPIUseCase {
	return &kpiUseCase{kpis: kpis, values: values}
}

func (k *kpiUseCase) ListDashboard(ctx context.Context) ([]*domain.KPI, error) {
	kpis, err := k.kpis.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.OrderForDashboard(kpis, domain.DashboardKPIs), nil
}

func (k *kpiUseCase) ListValues(ctx context.Context, kpiID int) ([]*domain.KPIValue, error) {
	exists, err := k.kpis.Exists(ctx, kpiID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrKPINotFound
	}
	return k.values.FindBy(ctx, "kpi_id", kpiID)
}

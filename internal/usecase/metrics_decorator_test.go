package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shopfloor/shopfloor/internal/domain"
	"github.com/shopfloor/shopfloor/internal/notification"
)

func TestMachineUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RecordsSuccess", func(t *testing.T) {
		next := &mockMachineUseCase{Publisher: notification.NewPublisher(nil, nil)}
		m := &mockBusinessMetrics{}
		uc := NewMachineUseCaseWithMetrics(next, m)
		machine := &domain.Machine{ID: 1}

		next.On("Get", ctx, 1).Return(machine, nil).Once()
		m.On("RecordOperation", ctx, "machine", "machine_get", "success").Once()
		m.On("RecordDuration", ctx, "machine", "machine_get", mock.AnythingOfType("time.Duration"), "success").Once()

		got, err := uc.Get(ctx, 1)

		require.NoError(t, err)
		assert.Same(t, machine, got)
		m.AssertExpectations(t)
	})

	t.Run("Error_RecordsError", func(t *testing.T) {
		next := &mockMachineUseCase{Publisher: notification.NewPublisher(nil, nil)}
		m := &mockBusinessMetrics{}
		uc := NewMachineUseCaseWithMetrics(next, m)
		executed := domain.Date(2025, 5, 1)
		failure := errors.New("failed")

		next.On("AdvanceLastMaintenance", ctx, 1, executed).Return(false, failure).Once()
		m.On("RecordOperation", ctx, "machine", "machine_advance_last_maintenance", "error").Once()
		m.On("RecordDuration", ctx, "machine", "machine_advance_last_maintenance",
			mock.AnythingOfType("time.Duration"), "error").Once()

		_, err := uc.AdvanceLastMaintenance(ctx, 1, executed)

		assert.ErrorIs(t, err, failure)
		m.AssertExpectations(t)
	})

	t.Run("Success_ObserversForwarded", func(t *testing.T) {
		next := &mockMachineUseCase{Publisher: notification.NewPublisher(nil, nil)}
		uc := NewMachineUseCaseWithMetrics(next, &mockBusinessMetrics{})

		handle := uc.AddObserver(&messages{})

		assert.Equal(t, 1, next.Len())
		assert.True(t, uc.RemoveObserver(handle))
		assert.Zero(t, next.Len())
	})
}

func TestMaintenanceUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	f := newMaintenanceFixture()
	m := &mockBusinessMetrics{}
	uc := NewMaintenanceUseCaseWithMetrics(f.uc, m)

	f.maintenances.On("FindBy", ctx, "machine_id", 12).Return([]*domain.Maintenance{}, nil).Once()
	m.On("RecordOperation", ctx, "maintenance", "maintenance_list_by_machine", "success").Once()
	m.On("RecordDuration", ctx, "maintenance", "maintenance_list_by_machine",
		mock.MatchedBy(func(d time.Duration) bool { return d >= 0 }), "success").Once()

	maintenances, err := uc.ListByMachine(ctx, 12)

	require.NoError(t, err)
	assert.Empty(t, maintenances)
	m.AssertExpectations(t)
}

func TestWithDeliveryMetrics(t *testing.T) {
	ctx := context.Background()
	m := &mockBusinessMetrics{}
	c := newController(nil, &messages{}, WithDeliveryMetrics(m))

	m.On("RecordOperation", ctx, "notification", "observer_update", "success").Once()
	m.On("RecordDuration", ctx, "notification", "observer_update",
		mock.AnythingOfType("time.Duration"), "success").Once()

	c.NotifyObservers(ctx, "Site created: 1 Gent Noord")

	m.AssertExpectations(t)
}

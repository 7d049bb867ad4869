package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shopfloor/shopfloor/internal/domain"
)

func TestNotificationUseCase_MarkAsRead(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_UnreadIsWritten", func(t *testing.T) {
		repo := &mockRepository[domain.Notification]{}
		uc := NewNotificationUseCase(repo)
		unread := &domain.Notification{ID: 1, Message: "Report created: 2"}

		repo.expectGet(ctx, 1, unread)
		repo.expectCommit(ctx)
		repo.On("Update", ctx, unread).Return(nil).Once()

		n, err := uc.MarkAsRead(ctx, 1)

		require.NoError(t, err)
		assert.True(t, n.IsRead)
		repo.AssertExpectations(t)
	})

	t.Run("Success_AlreadyReadIsNoop", func(t *testing.T) {
		repo := &mockRepository[domain.Notification]{}
		uc := NewNotificationUseCase(repo)

		repo.expectGet(ctx, 1, &domain.Notification{ID: 1, IsRead: true})

		n, err := uc.MarkAsRead(ctx, 1)

		require.NoError(t, err)
		assert.True(t, n.IsRead)
		repo.AssertNotCalled(t, "StartTransaction", mock.Anything)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo := &mockRepository[domain.Notification]{}
		uc := NewNotificationUseCase(repo)

		repo.expectGet(ctx, 7, nil)

		_, err := uc.MarkAsRead(ctx, 7)

		assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
	})
}

func TestNotificationUseCase_Lists(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository[domain.Notification]{}
	uc := NewNotificationUseCase(repo)

	repo.On("FindBy", ctx, "is_read", false).Return([]*domain.Notification{{ID: 1}}, nil).Once()
	repo.On("FindBy", ctx, "is_read", true).Return([]*domain.Notification{}, nil).Once()

	unread, err := uc.ListUnread(ctx)
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	read, err := uc.ListRead(ctx)
	require.NoError(t, err)
	assert.Empty(t, read)
	repo.AssertExpectations(t)
}

func TestKPIUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_DashboardOrder", func(t *testing.T) {
		kpis := &mockRepository[domain.KPI]{}
		uc := NewKPIUseCase(kpis, &mockRepository[domain.KPIValue]{})

		var all []*domain.KPI
		for id := 1; id <= 13; id++ {
			all = append(all, &domain.KPI{ID: id})
		}
		kpis.On("FindAll", ctx).Return(all, nil).Once()

		dashboard, err := uc.ListDashboard(ctx)

		require.NoError(t, err)
		ids := make([]int, 0, len(dashboard))
		for _, kpi := range dashboard {
			ids = append(ids, kpi.ID)
		}
		assert.Equal(t, []int{3, 1, 4, 10, 12, 13}, ids)
	})

	t.Run("Success_Values", func(t *testing.T) {
		kpis := &mockRepository[domain.KPI]{}
		values := &mockRepository[domain.KPIValue]{}
		uc := NewKPIUseCase(kpis, values)

		kpis.On("Exists", ctx, 3).Return(true, nil).Once()
		values.On("FindBy", ctx, "kpi_id", 3).Return([]*domain.KPIValue{{ID: 1, KPIID: 3}}, nil).Once()

		found, err := uc.ListValues(ctx, 3)

		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("Error_UnknownKPI", func(t *testing.T) {
		kpis := &mockRepository[domain.KPI]{}
		uc := NewKPIUseCase(kpis, &mockRepository[domain.KPIValue]{})

		kpis.On("Exists", ctx, 99).Return(false, nil).Once()

		_, err := uc.ListValues(ctx, 99)

		assert.ErrorIs(t, err, domain.ErrKPINotFound)
	})
}

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

type maintenanceFixture struct {
	maintenances *mockRepository[domain.Maintenance]
	machines     *mockRepository[domain.Machine]
	users        *mockRepository[domain.User]
	machineCase  *mockMachineUseCase
	persistence  *messages
	uc           MaintenanceUseCase
}

func newMaintenanceFixture() *maintenanceFixture {
	f := &maintenanceFixture{
		maintenances: &mockRepository[domain.Maintenance]{},
		machines:     &mockRepository[domain.Machine]{},
		users:        &mockRepository[domain.User]{},
		machineCase:  &mockMachineUseCase{Publisher: notification.NewPublisher(nil, nil)},
		persistence:  &messages{},
	}
	f.uc = NewMaintenanceUseCase(f.maintenances, f.machines, f.users, f.machineCase, f.persistence, discardLogger())
	return f
}

func maintenanceInput(status domain.MaintenanceStatus) *MaintenanceInput {
	return &MaintenanceInput{
		MachineID:     12,
		TechnicianID:  3,
		ExecutionDate: domain.Date(2025, 5, 1),
		StartDate:     time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
		Reason:        "Yearly inspection",
		Status:        status,
	}
}

func TestMaintenanceUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_DefaultsToPlanned", func(t *testing.T) {
		f := newMaintenanceFixture()
		f.machines.expectGet(ctx, 12, testMachine(12, nil))
		f.users.expectGet(ctx, 3, testTechnician(3))
		f.maintenances.expectCommit(ctx)
		f.maintenances.On("Insert", ctx, mock.MatchedBy(func(m *domain.Maintenance) bool {
			return m.Status == domain.MaintenancePlanned
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Maintenance).ID = 4
		}).Return(nil).Once()

		maintenance, err := f.uc.Create(ctx, maintenanceInput(""))

		require.NoError(t, err)
		assert.Equal(t, 4, maintenance.ID)
		assert.Equal(t, []string{"Maintenance planned: 4 M-1"}, f.persistence.received)
		f.maintenances.AssertExpectations(t)
	})

	t.Run("Error_EndBeforeStart", func(t *testing.T) {
		f := newMaintenanceFixture()
		f.machines.expectGet(ctx, 12, testMachine(12, nil))
		f.users.expectGet(ctx, 3, testTechnician(3))

		input := maintenanceInput(domain.MaintenancePlanned)
		input.EndDate = input.StartDate.Add(-time.Hour)

		_, err := f.uc.Create(ctx, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "endDate")
		f.maintenances.AssertNotCalled(t, "StartTransaction", mock.Anything)
	})
}

func TestMaintenanceUseCase_Update(t *testing.T) {
	ctx := context.Background()

	expectUpdate := func(f *maintenanceFixture) {
		f.maintenances.expectGet(ctx, 4, &domain.Maintenance{ID: 4})
		f.machines.expectGet(ctx, 12, testMachine(12, nil))
		f.users.expectGet(ctx, 3, testTechnician(3))
		f.maintenances.expectCommit(ctx)
		f.maintenances.On("Update", ctx, mock.AnythingOfType("*domain.Maintenance")).Return(nil).Once()
	}

	t.Run("Success_CompletedAdvancesMachine", func(t *testing.T) {
		f := newMaintenanceFixture()
		expectUpdate(f)
		f.machineCase.On("AdvanceLastMaintenance", ctx, 12, domain.Date(2025, 5, 1)).Return(true, nil).Once()

		maintenance, err := f.uc.Update(ctx, 4, maintenanceInput(domain.MaintenanceCompleted))

		require.NoError(t, err)
		assert.Equal(t, domain.Date(2025, 5, 1), maintenance.Machine.LastMaintenance)
		assert.Equal(t, []string{"Maintenance updated: 4 M-1"}, f.persistence.received)
		f.machineCase.AssertExpectations(t)
	})

	t.Run("Success_InProgressLeavesMachine", func(t *testing.T) {
		f := newMaintenanceFixture()
		expectUpdate(f)

		_, err := f.uc.Update(ctx, 4, maintenanceInput(domain.MaintenanceInProgress))

		require.NoError(t, err)
		f.machineCase.AssertNotCalled(t, "AdvanceLastMaintenance", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success_DerivedWriteFailureKeepsMaintenance", func(t *testing.T) {
		f := newMaintenanceFixture()
		expectUpdate(f)
		f.machineCase.On("AdvanceLastMaintenance", ctx, 12, mock.Anything).
			Return(false, errors.New("db down")).Once()

		maintenance, err := f.uc.Update(ctx, 4, maintenanceInput(domain.MaintenanceCompleted))

		require.NoError(t, err)
		assert.Equal(t, domain.MaintenanceCompleted, maintenance.Status)
		assert.Equal(t, domain.Date(2025, 4, 1), maintenance.Machine.LastMaintenance)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		f := newMaintenanceFixture()
		f.maintenances.expectGet(ctx, 99, nil)

		_, err := f.uc.Update(ctx, 99, maintenanceInput(domain.MaintenanceCompleted))

		assert.ErrorIs(t, err, domain.ErrMaintenanceNotFound)
		assert.Empty(t, f.persistence.received)
	})
}

func TestMaintenanceUseCase_Get(t *testing.T) {
	ctx := context.Background()
	f := newMaintenanceFixture()
	machine := testMachine(12, nil)
	technician := testTechnician(3)

	f.maintenances.expectGet(ctx, 4, &domain.Maintenance{
		ID: 4, Machine: domain.MachineRef(12), Technician: domain.UserRef(3),
	})
	f.machines.expectGet(ctx, 12, machine)
	f.users.expectGet(ctx, 3, technician)

	maintenance, err := f.uc.Get(ctx, 4)

	require.NoError(t, err)
	assert.Same(t, machine, maintenance.Machine)
	assert.Same(t, technician, maintenance.Technician)
}

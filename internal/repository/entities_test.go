package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfloor/shopfloor/internal/database"
	"github.com/shopfloor/shopfloor/internal/domain"

	apperrors "github.com/shopfloor/shopfloor/internal/errors"
)

const (
	selectUsers = `SELECT "id", "first_name", "last_name", "email", "phone_number", "password_hash", ` +
		`"birthdate", "role", "status", "address_id" FROM "users"`
	insertUser = `INSERT INTO "users" ("first_name", "last_name", "email", "phone_number", "password_hash", ` +
		`"birthdate", "role", "status", "address_id") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING "id"`
)

var userColumns = []string{
	"id", "first_name", "last_name", "email", "phone_number", "password_hash",
	"birthdate", "role", "status", "address_id",
}

func TestUserRepository_AddressCascade(t *testing.T) {
	ctx := context.Background()
	birthdate := domain.Date(1990, 6, 15)

	t.Run("Success_InsertWritesAddressFirst", func(t *testing.T) {
		session, mock := newTestSession(t, database.Postgres)
		repo := NewUserRepository(session)
		user := &domain.User{
			FirstName: "Jan", LastName: "Peeters", Email: "jan@example.com",
			Birthdate: birthdate, Role: domain.RoleTechnician, Status: domain.StatusActive,
			Address: testAddress(),
		}

		mock.ExpectBegin()
		mock.ExpectQuery(insertAddress).
			WithArgs("Kerkstraat", 7, 2000, "Antwerpen").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
		mock.ExpectQuery(insertUser).
			WithArgs("Jan", "Peeters", "jan@example.com", "", "", birthdate, "TECHNICIAN", "ACTIVE", 11).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
		mock.ExpectCommit()

		require.NoError(t, repo.StartTransaction(ctx))
		require.NoError(t, repo.Insert(ctx, user))
		require.NoError(t, repo.CommitTransaction())

		assert.Equal(t, 3, user.ID)
		assert.Equal(t, 11, user.Address.ID)
	})

	t.Run("Success_InsertWithoutAddress", func(t *testing.T) {
		session, mock := newTestSession(t, database.Postgres)
		repo := NewUserRepository(session)
		user := &domain.User{
			FirstName: "An", LastName: "Maes", Email: "an@example.com",
			Birthdate: birthdate, Role: domain.RoleManager, Status: domain.StatusActive,
		}

		mock.ExpectBegin()
		mock.ExpectQuery(insertUser).
			WithArgs("An", "Maes", "an@example.com", "", "", birthdate, "MANAGER", "ACTIVE", nil).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
		mock.ExpectCommit()

		require.NoError(t, repo.StartTransaction(ctx))
		require.NoError(t, repo.Insert(ctx, user))
		require.NoError(t, repo.CommitTransaction())
	})

	t.Run("Success_GetLoadsAddress", func(t *testing.T) {
		session, mock := newTestSession(t, database.Postgres)
		repo := NewUserRepository(session)

		mock.ExpectQuery(selectUsers+` WHERE "id" = $1`).WithArgs(3).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(3, "Jan", "Peeters", "jan@example.com", "", "hash", birthdate, "TECHNICIAN", "ACTIVE", 11))
		mock.ExpectQuery(selectAddresses+` WHERE "id" = $1`).WithArgs(11).
			WillReturnRows(sqlmock.NewRows(addressColumns).AddRow(11, "Kerkstraat", 7, 2000, "Antwerpen"))

		user, found, err := repo.Get(ctx, 3)

		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, domain.RoleTechnician, user.Role)
		require.NotNil(t, user.Address)
		assert.Equal(t, "Antwerpen", user.Address.City)
	})

	t.Run("Success_FindByEmailLoadsAddressAfterRowsClosed", func(t *testing.T) {
		session, mock := newTestSession(t, database.Postgres)
		repo := NewUserRepository(session)

		mock.ExpectQuery(selectUsers+` WHERE "email" = $1 ORDER BY "id"`).WithArgs("jan@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(3, "Jan", "Peeters", "jan@example.com", "", "hash", birthdate, "TECHNICIAN", "ACTIVE", 11))
		mock.ExpectQuery(selectAddresses+` WHERE "id" = $1`).WithArgs(11).
			WillReturnRows(sqlmock.NewRows(addressColumns).AddRow(11, "Kerkstraat", 7, 2000, "Antwerpen"))

		users, err := repo.FindBy(ctx, "email", "jan@example.com")

		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, 11, users[0].Address.ID)
	})

	t.Run("Success_DeleteRemovesAddress", func(t *testing.T) {
		session, mock := newTestSession(t, database.Postgres)
		repo := NewUserRepository(session)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "users" WHERE "id" = $1`).WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(deleteAddress).WithArgs(11).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.StartTransaction(ctx))
		require.NoError(t, repo.Delete(ctx, &domain.User{ID: 3, Address: &domain.Address{ID: 11}}))
		require.NoError(t, repo.CommitTransaction())
	})

	t.Run("Error_UserNotFoundOnDelete", func(t *testing.T) {
		session, mock := newTestSession(t, database.Postgres)
		repo := NewUserRepository(session)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "users" WHERE "id" = $1`).WithArgs(404).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		require.NoError(t, repo.StartTransaction(ctx))
		err := repo.Delete(ctx, &domain.User{ID: 404})
		require.NoError(t, repo.RollbackTransaction())

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestMachineRepository_ReferencesLoadedAsStubs(t *testing.T) {
	ctx := context.Background()
	session, mock := newTestSession(t, database.Postgres)
	repo := NewMachineRepository(session)
	last := domain.Date(2025, 4, 1)
	future := domain.Date(2025, 10, 1)

	mock.ExpectQuery(`SELECT "id", "code", "location", "product_info", "machine_status", "production_status", `+
		`"site_id", "technician_id", "last_maintenance", "future_maintenance" FROM "machines" WHERE "site_id" = $1 ORDER BY "id"`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "code", "location", "product_info", "machine_status", "production_status",
			"site_id", "technician_id", "last_maintenance", "future_maintenance",
		}).AddRow(8, "M-8", "Hall A", "Press", "RUNNING", "HEALTHY", 2, 5, last, future))

	machines, err := repo.FindBy(ctx, "site_id", 2)

	require.NoError(t, err)
	require.Len(t, machines, 1)
	machine := machines[0]
	assert.Equal(t, 2, machine.Site().ID)
	assert.True(t, machine.Site().HasMachine(machine))
	assert.Equal(t, 5, machine.Technician.ID)
	assert.Equal(t, domain.MachineRunning, machine.MachineStatus)
	assert.Equal(t, last, machine.LastMaintenance)
}

func TestReportRepository_Insert(t *testing.T) {
	ctx := context.Background()
	session, mock := newTestSession(t, database.Postgres)
	repo := NewReportRepository(session)
	day := domain.Date(2025, 5, 1)
	report := &domain.Report{
		Site: domain.SiteRef(1), Maintenance: domain.MaintenanceRef(2), Technician: domain.UserRef(3),
		StartDate: day, StartTime: domain.TimeOfDay{Hour: 8},
		EndDate: day, EndTime: domain.TimeOfDay{Hour: 11, Minute: 30},
		Reason: "Bearing",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "reports" ("site_id", "maintenance_id", "technician_id", "start_date", "start_time", `+
		`"end_date", "end_time", "reason", "remarks") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING "id"`).
		WithArgs(1, 2, 3, day, "08:00:00", day, "11:30:00", "Bearing", "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
	mock.ExpectCommit()

	require.NoError(t, repo.StartTransaction(ctx))
	require.NoError(t, repo.Insert(ctx, report))
	require.NoError(t, repo.CommitTransaction())

	assert.Equal(t, 21, report.ID)
}

func TestNotificationRepository_FindUnread(t *testing.T) {
	ctx := context.Background()
	session, mock := newTestSession(t, database.Postgres)
	repo := NewNotificationRepository(session)
	at := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT "id", "is_read", "message", "created_at" FROM "notifications" WHERE "is_read" = $1 ORDER BY "id"`).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_read", "message", "created_at"}).
			AddRow(1, false, "New machine added: M-1", at))

	notifications, err := repo.FindBy(ctx, "is_read", false)

	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "New machine added: M-1", notifications[0].Message)
	assert.Equal(t, at, notifications[0].Time)
}

func TestKPIRepositories(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_KPIRolesSplit", func(t *testing.T) {
		session, mock := newTestSession(t, database.Postgres)
		repo := NewKPIRepository(session)

		mock.ExpectQuery(`SELECT "id", "subject", "roles", "chart" FROM "kpis" ORDER BY "id"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "subject", "roles", "chart"}).
				AddRow(1, "Machines per status", "MANAGER, SITE_MANAGER", "BAR_HIGH_LOW").
				AddRow(2, "Health", "", "HEALTH"))

		kpis, err := repo.FindAll(ctx)

		require.NoError(t, err)
		require.Len(t, kpis, 2)
		assert.Equal(t, []domain.Role{domain.RoleManager, domain.RoleSiteManager}, kpis[0].Roles)
		assert.Empty(t, kpis[1].Roles)
		assert.Equal(t, domain.ChartHealth, kpis[1].Chart)
	})

	t.Run("Success_KPIValuesByKPI", func(t *testing.T) {
		session, mock := newTestSession(t, database.Postgres)
		repo := NewKPIValueRepository(session)
		at := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT "id", "kpi_id", "measured_at", "value", "site_id" FROM "kpi_values" WHERE "kpi_id" = $1 ORDER BY "id"`).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"id", "kpi_id", "measured_at", "value", "site_id"}).
				AddRow(1, 3, at, []byte(`{"running":4}`), "2"))

		values, err := repo.FindBy(ctx, "kpi_id", 3)

		require.NoError(t, err)
		require.Len(t, values, 1)
		assert.JSONEq(t, `{"running":4}`, string(values[0].Value))
		assert.True(t, json.Valid(values[0].Value))
	})
}

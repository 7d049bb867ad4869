package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shopfloor/shopfloor/internal/validation"
)

func newTestUser(t *testing.T, role Role) *User {
	t.Helper()
	user, err := NewUserBuilder().
		WithFirstName("Jan").
		WithLastName("Peeters").
		WithEmail("jan.peeters@example.com").
		WithBirthdate(Date(1990, 6, 15)).
		WithRole(role).
		WithStatus(StatusActive).
		WithAddress("Stationsstraat", 12, 9000, "Gent").
		Build()
	require.NoError(t, err)
	return user
}

func newTestSite(t *testing.T, name string) *Site {
	t.Helper()
	site, err := NewSiteBuilder().
		WithName(name).
		WithStatus(StatusActive).
		WithResponsible(newTestUser(t, RoleSiteManager)).
		WithAddress("Industrieweg", 1, 9052, "Zwijnaarde").
		Build()
	require.NoError(t, err)
	return site
}

func newTestMachine(t *testing.T, site *Site, code string) *Machine {
	t.Helper()
	machine, err := NewMachineBuilder().
		WithSite(site).
		WithTechnician(newTestUser(t, RoleTechnician)).
		WithCode(code).
		WithLocation("Hall A").
		WithProductInfo("Bottling line").
		WithMachineStatus(MachineRunning).
		WithProductionStatus(ProductionHealthy).
		WithLastMaintenance(Date(2025, 4, 1)).
		WithFutureMaintenance(Date(2025, 10, 1)).
		Build()
	require.NoError(t, err)
	return machine
}

// requireViolations asserts err is an information-required error with exactly keys.
func requireViolations(t *testing.T, err error, entity string, keys ...string) validation.Violations {
	t.Helper()
	require.Error(t, err)
	infoErr, ok := validation.AsInformationRequired(err)
	require.True(t, ok, "expected information required error, got %v", err)
	require.Equal(t, entity, infoErr.Entity)
	require.ElementsMatch(t, keys, infoErr.Violations.Keys())
	return infoErr.Violations
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteBuilder_Build(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		site := newTestSite(t, "Gent Noord")

		assert.Equal(t, "Gent Noord", site.Name)
		assert.Equal(t, StatusActive, site.Status)
		require.NotNil(t, site.Responsible)
		assert.Equal(t, RoleSiteManager, site.Responsible.Role)
		require.NotNil(t, site.Address)
		assert.Zero(t, site.MachineCount())
	})

	t.Run("Error_NothingSet", func(t *testing.T) {
		site, err := NewSiteBuilder().Build()

		assert.Nil(t, site)
		v := requireViolations(t, err, "site", "siteName", "responsible", "status", "address")
		assert.Equal(t, "EMPLOYEE_REQUIRED", v["responsible"].Code)
	})

	t.Run("Error_PartialAddress", func(t *testing.T) {
		_, err := NewSiteBuilder().
			WithName("Aalst").
			WithStatus(StatusActive).
			WithResponsible(UserRef(4)).
			WithAddress("Molenstraat", 0, 9300, "").
			Build()

		requireViolations(t, err, "site", "number", "city")
	})
}

func TestMachine_SetSite(t *testing.T) {
	first := newTestSite(t, "First")
	second := newTestSite(t, "Second")
	machine := newTestMachine(t, first, "M-001")

	t.Run("Success_BuildJoinsSite", func(t *testing.T) {
		assert.Same(t, first, machine.Site())
		assert.True(t, first.HasMachine(machine))
		assert.Equal(t, 1, first.MachineCount())
	})

	t.Run("Success_SameSiteIsIdempotent", func(t *testing.T) {
		machine.SetSite(first)
		assert.Equal(t, 1, first.MachineCount())
	})

	t.Run("Success_MoveLeavesPreviousSite", func(t *testing.T) {
		machine.SetSite(second)

		assert.Same(t, second, machine.Site())
		assert.False(t, first.HasMachine(machine))
		assert.True(t, second.HasMachine(machine))
	})

	t.Run("Success_NilDetaches", func(t *testing.T) {
		machine.SetSite(nil)

		assert.Nil(t, machine.Site())
		assert.Zero(t, second.MachineCount())
	})

	t.Run("Success_AttachMachines", func(t *testing.T) {
		other := newTestMachine(t, second, "M-002")
		first.AttachMachines(machine, other)

		assert.Equal(t, 2, first.MachineCount())
		assert.Zero(t, second.MachineCount())
		assert.Same(t, first, other.Site())
	})

	t.Run("Success_MachinesReturnsSnapshot", func(t *testing.T) {
		snapshot := first.Machines()
		snapshot[0] = nil
		assert.NotNil(t, first.Machines()[0])
	})
}

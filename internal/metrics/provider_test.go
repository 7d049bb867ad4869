package metrics

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	t.Run("Success_WithNamespace", func(t *testing.T) {
		provider, err := NewProvider("shopfloor")

		require.NoError(t, err)
		assert.NotNil(t, provider.MeterProvider())
		assert.NotNil(t, provider.exporter)
		assert.NotNil(t, provider.Handler())
	})

	t.Run("Success_RuntimeCollectors", func(t *testing.T) {
		provider, err := NewProvider("shopfloor")
		require.NoError(t, err)

		output := scrape(t, provider)

		assert.Contains(t, output, "go_goroutines")
	})
}

func TestProvider_RegisterDatabase(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	provider, err := NewProvider("shopfloor")
	require.NoError(t, err)

	require.NoError(t, provider.RegisterDatabase(db, "main"))
	assert.Contains(t, scrape(t, provider), `go_sql_open_connections{db_name="main"}`)

	err = provider.RegisterDatabase(db, "main")
	assert.ErrorContains(t, err, `failed to register database collector "main"`)
}

func TestProvider_Shutdown(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		provider, err := NewProvider("shopfloor")
		require.NoError(t, err)

		assert.NoError(t, provider.Shutdown(context.Background()))
	})

	t.Run("Success_NilMeterProvider", func(t *testing.T) {
		provider := &Provider{}

		assert.NoError(t, provider.Shutdown(context.Background()))
	})
}

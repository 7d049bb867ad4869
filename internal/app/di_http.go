package app

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"

	"github.com/shopfloor/shopfloor/internal/http"
)

// HTTPServer returns the API server with its router configured.
func (c *Container) HTTPServer() (*http.Server, error) {
	return lazy(c, &c.httpServerInit, "httpServer", &c.httpServer, c.initHTTPServer)
}

// MetricsServer returns the Prometheus scrape server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	return lazy(c, &c.metricsServerInit, "metricsServer", &c.metricsServer, c.initMetricsServer)
}

func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	handlers, err := c.handlers()
	if err != nil {
		return nil, err
	}

	// A typed nil provider must not reach the router as a non-nil interface.
	var meterProvider metric.MeterProvider
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}
	if provider != nil {
		meterProvider = provider.MeterProvider()
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(c.config, handlers, meterProvider)
	return server, nil
}

func (c *Container) handlers() (http.Handlers, error) {
	logger := c.Logger()

	sites, err := c.SiteUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get site use case for http server: %w", err)
	}
	machines, err := c.MachineUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get machine use case for http server: %w", err)
	}
	maintenances, err := c.MaintenanceUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get maintenance use case for http server: %w", err)
	}
	notifications, err := c.NotificationUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get notification use case for http server: %w", err)
	}
	kpis, err := c.KPIUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get kpi use case for http server: %w", err)
	}

	return http.Handlers{
		Sites:         http.NewSiteHandler(sites, logger),
		Machines:      http.NewMachineHandler(machines, logger),
		Maintenances:  http.NewMaintenanceHandler(maintenances, logger),
		Notifications: http.NewNotificationHandler(notifications, logger),
		KPIs:          http.NewKPIHandler(kpis, logger),
	}, nil
}

func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, nil
	}
	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}

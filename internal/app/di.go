// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/shopfloor/shopfloor/internal/config"
	"github.com/shopfloor/shopfloor/internal/database"
	"github.com/shopfloor/shopfloor/internal/http"
	"github.com/shopfloor/shopfloor/internal/metrics"
	"github.com/shopfloor/shopfloor/internal/notification"
	"github.com/shopfloor/shopfloor/internal/service"
	"github.com/shopfloor/shopfloor/internal/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
//
// Every use case gets a database session of its own, and so does the persistence
// observer, so a notification is committed independently of the write that caused it.
type Container struct {
	config *config.Config

	// Infrastructure
	logger  *slog.Logger
	db      *sql.DB
	dialect database.Dialect

	// Observability
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Services
	passwordService service.PasswordService

	// Observers
	persistenceObserver *notification.PersistenceObserver
	brokerObserver      *notification.BrokerObserver

	// Use Cases
	userUseCase         usecase.UserUseCase
	siteUseCase         usecase.SiteUseCase
	machineUseCase      usecase.MachineUseCase
	maintenanceUseCase  usecase.MaintenanceUseCase
	reportUseCase       usecase.ReportUseCase
	notificationUseCase usecase.NotificationUseCase
	kpiUseCase          usecase.KPIUseCase

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                      sync.Mutex
	loggerInit              sync.Once
	dbInit                  sync.Once
	metricsProviderInit     sync.Once
	businessMetricsInit     sync.Once
	passwordServiceInit     sync.Once
	persistenceObserverInit sync.Once
	brokerObserverInit      sync.Once
	userUseCaseInit         sync.Once
	siteUseCaseInit         sync.Once
	machineUseCaseInit      sync.Once
	maintenanceUseCaseInit  sync.Once
	reportUseCaseInit       sync.Once
	notificationUseCaseInit sync.Once
	kpiUseCaseInit          sync.Once
	httpServerInit          sync.Once
	metricsServerInit       sync.Once
	errMu                   sync.Mutex
	initErrors              map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// lazy runs init once, caching its value or its error under key.
func lazy[T any](c *Container, once *sync.Once, key string, value *T, init func() (T, error)) (T, error) {
	once.Do(func() {
		v, err := init()
		if err != nil {
			c.errMu.Lock()
			c.initErrors[key] = err
			c.errMu.Unlock()
			return
		}
		*value = v
	})

	c.errMu.Lock()
	storedErr, exists := c.initErrors[key]
	c.errMu.Unlock()
	if exists {
		var zero T
		return zero, storedErr
	}
	return *value, nil
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	return lazy(c, &c.dbInit, "db", &c.db, c.initDB)
}

// NewSession opens a session on the shared connection pool. Sessions are never
// shared between use cases.
func (c *Container) NewSession() (*database.Session, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}
	return database.NewSession(db, c.dialect), nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	return lazy(c, &c.metricsProviderInit, "metricsProvider", &c.metricsProvider, c.initMetricsProvider)
}

// BusinessMetrics returns the business metrics recorder. It is a no-op
// implementation when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	return lazy(c, &c.businessMetricsInit, "businessMetrics", &c.businessMetrics, c.initBusinessMetrics)
}

// PasswordService returns the password hashing service.
func (c *Container) PasswordService() service.PasswordService {
	c.passwordServiceInit.Do(func() {
		c.passwordService = service.NewPasswordService()
	})
	return c.passwordService
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.brokerObserver != nil {
		if err := c.brokerObserver.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("broker close: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %w", errors.Join(shutdownErrors...))
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB connects to the database and, when metrics are enabled, exports the pool
// statistics.
func (c *Container) initDB() (*sql.DB, error) {
	dialect, err := database.DialectFor(c.config.DBDriver)
	if err != nil {
		return nil, err
	}

	db, err := database.Connect(c.config.Database())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.dialect = dialect

	provider, err := c.MetricsProvider()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if provider != nil {
		if err := provider.RegisterDatabase(db, c.config.DBDriver); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return db, nil
}

func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}

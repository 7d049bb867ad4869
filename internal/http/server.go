// Package http provides the HTTP server, its middleware and the request handlers of
// the shopfloor API.
package http

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	"github.com/shopfloor/shopfloor/internal/config"
	"github.com/shopfloor/shopfloor/internal/metrics"
)

// Handlers groups the resource handlers mounted under /v1.
type Handlers struct {
	Sites         *SiteHandler
	Machines      *MachineHandler
	Maintenances  *MaintenanceHandler
	Notifications *NotificationHandler
	KPIs          *KPIHandler
}

// Server represents the API HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	logger *slog.Logger
	router *gin.Engine

	// background bounds goroutines owned by the middleware; Shutdown cancels it.
	background context.Context
	cancel     context.CancelFunc
}

// NewServer creates a new HTTP server. db is only used by the readiness probe.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	background, cancel := context.WithCancel(context.Background())
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		background: background,
		cancel:     cancel,
	}
}

// SetupRouter builds the gin engine with the middleware chain and every route.
// meterProvider may be nil when metrics are disabled.
func (s *Server) SetupRouter(cfg *config.Config, handlers Handlers, meterProvider metric.MeterProvider) {
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(meterProvider, cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	if cfg.RateLimitEnabled {
		v1.Use(RateLimitMiddleware(s.background, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	sites := v1.Group("/sites")
	{
		sites.GET("", handlers.Sites.ListHandler)
		sites.GET("/:id", handlers.Sites.GetHandler)
	}

	machines := v1.Group("/machines")
	{
		machines.GET("", handlers.Machines.ListHandler)
		machines.GET("/:id", handlers.Machines.GetHandler)
	}

	maintenances := v1.Group("/maintenances")
	{
		maintenances.GET("", handlers.Maintenances.ListHandler)
		maintenances.POST("", handlers.Maintenances.CreateHandler)
		maintenances.GET("/:id", handlers.Maintenances.GetHandler)
		maintenances.PUT("/:id", handlers.Maintenances.UpdateHandler)
	}

	notifications := v1.Group("/notifications")
	{
		notifications.GET("", handlers.Notifications.ListHandler)
		notifications.POST("/:id/read", handlers.Notifications.MarkAsReadHandler)
	}

	kpis := v1.Group("/kpis")
	{
		kpis.GET("", handlers.KPIs.ListHandler)
		kpis.GET("/:id/values", handlers.KPIs.ListValuesHandler)
	}

	s.router = router
	s.server.Handler = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start serves until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.server.Handler == nil {
		return errors.New("router not configured: call SetupRouter before Start")
	}

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server and stops middleware goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	s.cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only when the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.db == nil || s.db.PingContext(ctx) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}

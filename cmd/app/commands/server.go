package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/shopfloor/shopfloor/internal/app"
	"github.com/shopfloor/shopfloor/internal/config"
)

const shutdownTimeout = 30 * time.Second

// lifecycle is a server that blocks in Start until Shutdown is called.
type lifecycle interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

type namedServer struct {
	name   string
	server lifecycle
}

// RunServer starts the API server, and the metrics server when enabled, and blocks
// until SIGINT/SIGTERM or a fatal server error. Both servers are then shut down
// within shutdownTimeout.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()
	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)
	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))
	defer closeContainer(container, logger)

	server, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	servers := []namedServer{{name: "api server", server: server}}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}
	if metricsServer != nil {
		servers = append(servers, namedServer{name: "metrics server", server: metricsServer})
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return serve(ctx, logger, shutdownTimeout, servers...)
}

// serve runs every server until ctx is done or one of them fails, then shuts all
// of them down.
func serve(ctx context.Context, logger *slog.Logger, timeout time.Duration, servers ...namedServer) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, s := range servers {
		g.Go(func() error {
			if err := s.server.Start(gctx); err != nil {
				return fmt.Errorf("%s error: %w", s.name, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			logger.Info("shutdown signal received")
		} else {
			logger.Error("server error, initiating shutdown")
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		var shutdownErrors []error
		for _, s := range servers {
			if err := s.server.Shutdown(shutdownCtx); err != nil {
				shutdownErrors = append(shutdownErrors, fmt.Errorf("%s shutdown: %w", s.name, err))
			}
		}
		return errors.Join(shutdownErrors...)
	})

	return g.Wait()
}

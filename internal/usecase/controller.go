package usecase

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shopfloor/shopfloor/internal/metrics"
	"github.com/shopfloor/shopfloor/internal/notification"

	apperrors "github.com/shopfloor/shopfloor/internal/errors"
)

// controller is embedded by every use case. The publisher belongs to the instance;
// persistence, when given, is subscribed on construction. mu serializes the
// operations of one controller since its repositories share one session.
type controller struct {
	*notification.Publisher

	logger *slog.Logger
	mu     sync.Mutex
}

// Option configures the controller of a use case.
type Option func(*controllerOptions)

type controllerOptions struct {
	metrics metrics.BusinessMetrics
}

// WithDeliveryMetrics records every observer delivery of the use case's publisher.
func WithDeliveryMetrics(m metrics.BusinessMetrics) Option {
	return func(o *controllerOptions) {
		o.metrics = m
	}
}

func newController(logger *slog.Logger, persistence notification.Observer, opts ...Option) *controller {
	var o controllerOptions
	for _, opt := range opts {
		opt(&o)
	}

	c := &controller{
		Publisher: notification.NewPublisher(logger, o.metrics),
		logger:    logger,
	}
	if persistence != nil {
		c.AddObserver(persistence)
	}
	return c
}

type transactional interface {
	StartTransaction(ctx context.Context) error
	CommitTransaction() error
	RollbackTransaction() error
}

// unitOfWork runs fn between StartTransaction and CommitTransaction on tx, rolling
// back when fn or the commit fails.
func unitOfWork(ctx context.Context, tx transactional, fn func() error) error {
	if err := tx.StartTransaction(ctx); err != nil {
		return err
	}
	if err := fn(); err != nil {
		if rbErr := tx.RollbackTransaction(); rbErr != nil {
			return apperrors.Join(err, rbErr)
		}
		return err
	}
	if err := tx.CommitTransaction(); err != nil {
		_ = tx.RollbackTransaction()
		return err
	}
	return nil
}

type getter[T any] interface {
	Get(ctx context.Context, id int) (*T, bool, error)
}

// resolve loads a referenced entity. A zero id means "not supplied" and yields nil so
// the builder reports the missing field.
func resolve[T any](ctx context.Context, repo getter[T], id int, notFound error) (*T, error) {
	if id == 0 {
		return nil, nil
	}
	return mustGet(ctx, repo, id, notFound)
}

// mustGet loads an entity or returns notFound.
func mustGet[T any](ctx context.Context, repo getter[T], id int, notFound error) (*T, error) {
	entity, found, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, notFound
	}
	return entity, nil
}

package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shopfloor/shopfloor/internal/domain"

	apperrors "github.com/shopfloor/shopfloor/internal/errors"
)

// NotificationStore is the part of the notification repository the persistence
// observer needs. It must be bound to a session of its own.
type NotificationStore interface {
	StartTransaction(ctx context.Context) error
	CommitTransaction() error
	RollbackTransaction() error
	Insert(ctx context.Context, notification *domain.Notification) error
}

// PersistenceObserver stores every message as an unread notification, each in its
// own unit of work independent of the write that triggered it.
type PersistenceObserver struct {
	store  NotificationStore
	logger *slog.Logger
	now    func() time.Time

	mu sync.Mutex
}

// NewPersistenceObserver returns an observer writing through store.
func NewPersistenceObserver(store NotificationStore, logger *slog.Logger) *PersistenceObserver {
	return &PersistenceObserver{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Update inserts Notification{IsRead: false, Message: message, Time: now}.
func (o *PersistenceObserver) Update(ctx context.Context, message string) error {
	// Several controllers share this observer and its session.
	o.mu.Lock()
	defer o.mu.Unlock()

	notification := domain.NewNotification(message, o.now().UTC())

	if err := o.store.StartTransaction(ctx); err != nil {
		return apperrors.Wrap(err, "failed to start notification transaction")
	}
	if err := o.store.Insert(ctx, notification); err != nil {
		if rbErr := o.store.RollbackTransaction(); rbErr != nil {
			o.logger.Error("failed to rollback notification", slog.Any("error", rbErr))
		}
		return apperrors.Wrap(err, "failed to store notification")
	}
	if err := o.store.CommitTransaction(); err != nil {
		return apperrors.Wrap(err, "failed to commit notification")
	}

	o.logger.Debug("notification stored",
		slog.Int("notification_id", notification.ID),
		slog.String("message", message))
	return nil
}

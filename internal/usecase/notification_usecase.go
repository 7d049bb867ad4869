package usecase

import (
	"context"
	"sync"

	"github.com/shopfloor/shopfloor/internal/domain"
)

type notificationUseCase struct {
	notifications NotificationRepository
	mu            sync.Mutex
}

// NewNotificationUseCase creates a NotificationUseCase. notifications must not share
// its session with the persistence observer.
func NewNotificationUseCase(notifications NotificationRepository) NotificationUseCase {
	return &notificationUseCase{notifications: notifications}
}

func (n *notificationUseCase) ListUnread(ctx context.Context) ([]*domain.Notification, error) {
	return n.listByRead(ctx, false)
}

func (n *notificationUseCase) ListRead(ctx context.Context) ([]*domain.Notification, error) {
	return n.listByRead(ctx, true)
}

func (n *notificationUseCase) listByRead(ctx context.Context, read bool) ([]*domain.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.notifications.FindBy(ctx, "is_read", read)
}

func (n *notificationUseCase) Get(ctx context.Context, notificationID int) (*domain.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return mustGet(ctx, n.notifications, notificationID, domain.ErrNotificationNotFound)
}

func (n *notificationUseCase) MarkAsRead(ctx context.Context, notificationID int) (*domain.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	notification, err := mustGet(ctx, n.notifications, notificationID, domain.ErrNotificationNotFound)
	if err != nil {
		return nil, err
	}
	if !notification.MarkAsRead() {
		return notification, nil
	}

	err = unitOfWork(ctx, n.notifications, func() error {
		_, err := n.notifications.Update(ctx, notification)
		return err
	})
	if err != nil {
		return nil, err
	}
	return notification, nil
}

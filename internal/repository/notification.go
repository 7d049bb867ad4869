package repository

import (
	"github.com/shopfloor/shopfloor/internal/database"
	"github.com/shopfloor/shopfloor/internal/domain"
)

// NotificationRepository persists notifications.
type NotificationRepository = Repository[domain.Notification, int]

var notificationMapper = Mapper[domain.Notification, int]{
	Table:   "notifications",
	Key:     "id",
	Columns: []string{"is_read", "message", "created_at"},
	Values: func(n *domain.Notification) []any {
		return []any{n.IsRead, n.Message, n.Time}
	},
	Scan: func(row Scanner) (*domain.Notification, error) {
		var n domain.Notification
		if err := row.Scan(&n.ID, &n.IsRead, &n.Message, &n.Time); err != nil {
			return nil, err
		}
		return &n, nil
	},
	ID:       func(n *domain.Notification) int { return n.ID },
	SetID:    func(n *domain.Notification, id int64) { n.ID = int(id) },
	NotFound: domain.ErrNotificationNotFound,
}

// NewNotificationRepository binds the notification table to session.
func NewNotificationRepository(session *database.Session) *NotificationRepository {
	return New(session, notificationMapper)
}

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shopfloor/shopfloor/internal/domain"
	"github.com/shopfloor/shopfloor/internal/usecase"
)

type notificationItem struct {
	ID      int       `json:"id"`
	IsRead  bool      `json:"is_read"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

func newNotificationItem(n *domain.Notification) notificationItem {
	return notificationItem{ID: n.ID, IsRead: n.IsRead, Message: n.Message, Time: n.Time}
}

type notificationList struct {
	Data []notificationItem `json:"data"`
}

func (o notificationList) printText(w io.Writer) {
	if len(o.Data) == 0 {
		_, _ = fmt.Fprintln(w, "No notifications.")
		return
	}
	for _, n := range o.Data {
		_, _ = fmt.Fprintf(w, "[%d] %s  %s\n", n.ID, n.Time.Format(time.DateTime), n.Message)
	}
}

func (o notificationItem) printText(w io.Writer) {
	_, _ = fmt.Fprintf(w, "Notification %d marked as read.\n", o.ID)
}

// RunListNotifications prints the unread notifications, or the read ones when read
// is set, newest first.
func RunListNotifications(
	ctx context.Context,
	notificationUseCase usecase.NotificationUseCase,
	logger *slog.Logger,
	read bool,
	format string,
	io IOTuple,
) error {
	list := notificationUseCase.ListUnread
	if read {
		list = notificationUseCase.ListRead
	}

	notifications, err := list(ctx)
	if err != nil {
		return fmt.Errorf("failed to list notifications: %w", err)
	}

	logger.Debug("listed notifications", slog.Bool("read", read), slog.Int("count", len(notifications)))

	result := notificationList{Data: make([]notificationItem, 0, len(notifications))}
	for _, n := range notifications {
		result.Data = append(result.Data, newNotificationItem(n))
	}
	return writeOutput(io.Writer, format, result)
}

// RunMarkNotificationRead flags one notification as read.
func RunMarkNotificationRead(
	ctx context.Context,
	notificationUseCase usecase.NotificationUseCase,
	logger *slog.Logger,
	notificationID int,
	format string,
	io IOTuple,
) error {
	notification, err := notificationUseCase.MarkAsRead(ctx, notificationID)
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}

	logger.Info("notification marked as read", slog.Int("id", notification.ID))
	return writeOutput(io.Writer, format, newNotificationItem(notification))
}

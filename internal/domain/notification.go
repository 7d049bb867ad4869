package domain

import "time"

// Notification is the durable trace of one change announcement. Only the
// persistence observer creates them.
type Notification struct {
	ID      int
	IsRead  bool
	Message string
	Time    time.Time
}

// NewNotification returns an unread notification stamped with at.
func NewNotification(message string, at time.Time) *Notification {
	return &Notification{Message: message, Time: at}
}

// MarkAsRead flags the notification as read. It reports whether the flag changed.
func (n *Notification) MarkAsRead() bool {
	if n.IsRead {
		return false
	}
	n.IsRead = true
	return true
}

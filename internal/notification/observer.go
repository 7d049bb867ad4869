// Package notification implements change propagation: controllers publish a
// human-readable message after every successful write and each subscriber decides
// what to do with it (persist it, forward it to a broker, reload a view).
package notification

import (
	"context"

	"github.com/google/uuid"
)

// Observer reacts to one change message. Messages may be empty, meaning
// "something changed" without a summary.
type Observer interface {
	Update(ctx context.Context, message string) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, message string) error

// Update calls f.
func (f ObserverFunc) Update(ctx context.Context, message string) error {
	return f(ctx, message)
}

// Handle identifies one subscription. It is the only way to remove it.
type Handle struct {
	id uuid.UUID
}

// String returns the subscription id.
func (h Handle) String() string {
	return h.id.String()
}

// IsZero reports whether h was never returned by AddObserver.
func (h Handle) IsZero() bool {
	return h.id == uuid.Nil
}

// Subject is implemented by every publisher of change messages.
type Subject interface {
	AddObserver(observer Observer) Handle
	RemoveObserver(handle Handle) bool
	NotifyObservers(ctx context.Context, message string)
}

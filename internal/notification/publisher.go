package notification

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shopfloor/shopfloor/internal/metrics"
)

type subscription struct {
	handle   Handle
	observer Observer
}

// Publisher holds an ordered list of observers and delivers every message to each of
// them synchronously, in subscription order. A failing or panicking observer is
// logged and skipped; the remaining observers still receive the message.
type Publisher struct {
	logger  *slog.Logger
	metrics metrics.BusinessMetrics

	mu            sync.Mutex
	subscriptions []subscription
}

// NewPublisher returns a publisher without observers. A nil businessMetrics disables
// delivery metrics.
func NewPublisher(logger *slog.Logger, businessMetrics metrics.BusinessMetrics) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	if businessMetrics == nil {
		businessMetrics = metrics.NewNoOpBusinessMetrics()
	}
	return &Publisher{logger: logger, metrics: businessMetrics}
}

// AddObserver appends observer and returns its subscription handle.
func (p *Publisher) AddObserver(observer Observer) Handle {
	handle := Handle{id: uuid.Must(uuid.NewV7())}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscriptions = append(p.subscriptions, subscription{handle: handle, observer: observer})
	return handle
}

// RemoveObserver drops the subscription. It reports whether the handle was subscribed.
func (p *Publisher) RemoveObserver(handle Handle) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	before := len(p.subscriptions)
	p.subscriptions = slices.DeleteFunc(p.subscriptions, func(s subscription) bool {
		return s.handle == handle
	})
	return len(p.subscriptions) != before
}

// Len returns the number of current subscriptions.
func (p *Publisher) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.subscriptions)
}

// NotifyObservers delivers message to every observer subscribed when the call starts.
// Observers added or removed during delivery take effect on the next call.
func (p *Publisher) NotifyObservers(ctx context.Context, message string) {
	p.mu.Lock()
	subscriptions := slices.Clone(p.subscriptions)
	p.mu.Unlock()

	for _, s := range subscriptions {
		start := time.Now()
		err := p.deliver(ctx, s, message)
		if err != nil {
			p.logger.Error("observer failed",
				slog.String("subscription", s.handle.String()),
				slog.String("message", message),
				slog.Any("error", err))
		}
		metrics.Observe(ctx, p.metrics, "notification", "observer_update", start, err)
	}
}

func (p *Publisher) deliver(ctx context.Context, s subscription, message string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("observer panic: %v", r)
		}
	}()
	return s.observer.Update(ctx, message)
}

package app

import (
	"fmt"

	"github.com/shopfloor/shopfloor/internal/notification"
	"github.com/shopfloor/shopfloor/internal/repository"
)

// PersistenceObserver returns the observer that stores every change message as a
// notification, on a session of its own.
func (c *Container) PersistenceObserver() (*notification.PersistenceObserver, error) {
	return lazy(c, &c.persistenceObserverInit, "persistenceObserver", &c.persistenceObserver,
		func() (*notification.PersistenceObserver, error) {
			session, err := c.NewSession()
			if err != nil {
				return nil, fmt.Errorf("failed to get session for persistence observer: %w", err)
			}
			return notification.NewPersistenceObserver(repository.NewNotificationRepository(session), c.Logger()), nil
		})
}

// BrokerObserver returns the RabbitMQ observer, or nil when no broker is configured.
func (c *Container) BrokerObserver() (*notification.BrokerObserver, error) {
	return lazy(c, &c.brokerObserverInit, "brokerObserver", &c.brokerObserver,
		func() (*notification.BrokerObserver, error) {
			if c.config.BrokerURL == "" {
				return nil, nil
			}
			observer, err := notification.NewBrokerObserver(c.config.BrokerURL, c.config.BrokerQueue)
			if err != nil {
				return nil, fmt.Errorf("failed to connect to broker: %w", err)
			}
			return observer, nil
		})
}

// subscribe adds the process-wide observers beyond persistence to subject.
func (c *Container) subscribe(subject notification.Subject) error {
	broker, err := c.BrokerObserver()
	if err != nil {
		return err
	}
	if broker != nil {
		subject.AddObserver(broker)
	}
	return nil
}

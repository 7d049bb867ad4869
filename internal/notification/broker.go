package notification

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Event is the JSON body published to the broker.
type Event struct {
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

type amqpChannel interface {
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp.Publishing,
	) error
	Close() error
}

// BrokerObserver forwards every message to a durable RabbitMQ queue so views running
// in other processes can refresh.
type BrokerObserver struct {
	conn  *amqp.Connection
	ch    amqpChannel
	queue string
	now   func() time.Time
}

// NewBrokerObserver dials url and declares the durable queue.
func NewBrokerObserver(url, queue string) (*BrokerObserver, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &BrokerObserver{conn: conn, ch: ch, queue: queue, now: time.Now}, nil
}

// Update publishes message as an Event on the default exchange.
func (o *BrokerObserver) Update(ctx context.Context, message string) error {
	body, err := json.Marshal(Event{Message: message, Time: o.now().UTC()})
	if err != nil {
		return err
	}
	return o.ch.PublishWithContext(ctx,
		"",      // default exchange
		o.queue, // routing key = queue
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    o.now().UTC(),
			Body:         body,
		},
	)
}

// Close releases the channel and the connection.
func (o *BrokerObserver) Close() error {
	if o == nil {
		return nil
	}
	var errs []error
	if o.ch != nil {
		errs = append(errs, o.ch.Close())
	}
	if o.conn != nil {
		errs = append(errs, o.conn.Close())
	}
	return errors.Join(errs...)
}

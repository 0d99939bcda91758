// Package queue_publisher publishes booking events to RabbitMQ.  Failures are
// logged and returned so callers can ignore them without interrupting the
// request that produced the event.
package queue_publisher

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	q "github.com/iliyamo/bali-villa-booking/internal/queue"
)

// Publisher keeps one broker connection and redials lazily when it drops.
type Publisher struct {
	url string
	log logrus.FieldLogger

	mu   sync.Mutex
	conn *amqp.Connection
}

// New returns a Publisher for url.  No connection is made until the first
// publish.
func New(url string, log logrus.FieldLogger) *Publisher {
	return &Publisher{url: url, log: log}
}

// BookingCreated publishes ev to the booking.created queue as a persistent
// JSON message.  It satisfies booking.Notifier.
func (p *Publisher) BookingCreated(ctx context.Context, ev q.BookingCreatedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		p.log.WithError(err).Error("rabbitmq: marshal event failed")
		return err
	}
	ch, err := p.channel()
	if err != nil {
		p.log.WithError(err).Warn("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// idempotent; durable so messages survive broker restarts
	if _, err := ch.QueueDeclare(q.BookingCreatedQueue, true, false, false, false, nil); err != nil {
		p.log.WithError(err).Warn("rabbitmq: queue declare failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.BookingID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := ch.PublishWithContext(ctx, "", q.BookingCreatedQueue, false, false, pub); err != nil {
		p.log.WithError(err).WithField("booking_id", ev.BookingID).Warn("rabbitmq: publish failed")
		return err
	}
	return nil
}

func (p *Publisher) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.url == "" {
		return nil, errors.New("rabbitmq url not configured")
	}
	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return nil, err
		}
		p.conn = conn
	}
	return p.conn.Channel()
}

// Close releases the broker connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	return err
}

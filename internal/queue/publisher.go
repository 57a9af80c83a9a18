package queue

import (
	"context"
	"encoding/json"
	"net"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Publisher delivers catalog events.  Implementations must never panic;
// errors are returned so the caller can log and move on, since a failed
// publish never fails the request that caused it.
type Publisher interface {
	PublishCatalogChanged(ctx context.Context, ev CatalogChangedEvent) error
}

// NopPublisher drops every event.  It is used when EVENTS_ENABLED is off.
type NopPublisher struct{}

func (NopPublisher) PublishCatalogChanged(context.Context, CatalogChangedEvent) error { return nil }

// AMQPPublisher opens a connection per publish.  Mutations are rare enough
// that holding a long lived channel is not worth the reconnect handling.
type AMQPPublisher struct {
	URL         string
	DialTimeout time.Duration
}

// NewAMQPPublisher returns a publisher for url with a 2s dial timeout.
func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{URL: url, DialTimeout: 2 * time.Second}
}

// PublishCatalogChanged sends ev to the catalog.changed queue as a
// persistent JSON message.
func (p *AMQPPublisher) PublishCatalogChanged(ctx context.Context, ev CatalogChangedEvent) error {
	log := logrus.WithFields(logrus.Fields{"queue": CatalogChangedQueue, "event_id": ev.ID})

	conn, err := amqp.DialConfig(p.URL, amqp.Config{
		Dial: func(network, addr string) (net.Conn, error) {
			return net.DialTimeout(network, addr, p.DialTimeout)
		},
	})
	if err != nil {
		log.WithError(err).Warn("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.WithError(err).Warn("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// durable, not auto-deleted, not exclusive
	if _, err := ch.QueueDeclare(CatalogChangedQueue, true, false, false, false, nil); err != nil {
		log.WithError(err).Warn("rabbitmq: queue declare failed")
		return err
	}

	msg, err := encodeEvent(ev)
	if err != nil {
		return err
	}
	if err := ch.PublishWithContext(ctx, "", CatalogChangedQueue, false, false, msg); err != nil {
		log.WithError(err).Warn("rabbitmq: publish failed")
		return err
	}
	return nil
}

func encodeEvent(ev CatalogChangedEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Timestamp:    time.Now().UTC(),
		Type:         CatalogChangedQueue,
		Body:         body,
	}, nil
}

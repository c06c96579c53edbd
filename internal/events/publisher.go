// Package events публикует события заказов в RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const (
	OrdersExchange = "orders_topic"

	publishTimeout = 5 * time.Second
	dialAttempts   = 5
)

// channel часть amqp091.Channel, которой пользуется Publisher.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp091.Publishing,
	) error
	Close() error
}

// Publisher отправляет domain.OrderEvent в topic exchange orders_topic. В качестве routing key
// используется тип события, например order.paid.
type Publisher struct {
	mu   sync.Mutex
	conn *amqp091.Connection
	ch   channel
	l    logrus.FieldLogger
}

// Dial подключается к RabbitMQ, повторяя попытки с нарастающей паузой, и объявляет exchange.
func Dial(ctx context.Context, url string, l logrus.FieldLogger) (*Publisher, error) {
	var lastErr error
	for i := 0; i < dialAttempts; i++ {
		conn, err := amqp091.Dial(url)
		if err == nil {
			ch, chErr := conn.Channel()
			if chErr == nil {
				p, setupErr := newPublisher(ch, l)
				if setupErr == nil {
					p.conn = conn
					return p, nil
				}
				chErr = setupErr
			}
			_ = conn.Close()
			err = chErr
		}
		lastErr = err

		wait := time.Duration(i+1) * time.Second
		l.WithError(err).Warnf("rabbitmq connection failed, retrying in %s", wait)
		select {
		case <-ctx.Done():
			return nil, ctx.Err() //nolint:wrapcheck
		case <-time.After(wait):
		}
	}
	return nil, fmt.Errorf("connect to rabbitmq after %d attempts: %w", dialAttempts, lastErr)
}

func newPublisher(ch channel, l logrus.FieldLogger) (*Publisher, error) {
	if err := ch.ExchangeDeclare(OrdersExchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare %s exchange: %w", OrdersExchange, err)
	}
	return &Publisher{ch: ch, l: l}, nil
}

func (p *Publisher) Publish(ctx context.Context, event domain.OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	// amqp091.Channel не потокобезопасен для публикации
	p.mu.Lock()
	defer p.mu.Unlock()

	if err = p.ch.PublishWithContext(ctx, OrdersExchange, string(event.Type), false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    event.PaymentID.String(),
		Timestamp:    event.OccurredAt,
		Body:         body,
	}); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	p.l.WithFields(logrus.Fields{
		"routing_key": event.Type,
		"payment_id":  event.PaymentID,
	}).Debug("order event published")
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.ch.Close()
	if p.conn != nil {
		return p.conn.Close() //nolint:wrapcheck
	}
	return nil
}

// NoopPublisher используется когда RabbitMQ не настроен.
type NoopPublisher struct {
	l logrus.FieldLogger
}

func NewNoopPublisher(l logrus.FieldLogger) *NoopPublisher {
	return &NoopPublisher{l: l}
}

func (n *NoopPublisher) Publish(_ context.Context, event domain.OrderEvent) error {
	n.l.WithField("payment_id", event.PaymentID).Debugf("event %s skipped, publisher disabled", event.Type)
	return nil
}

func (n *NoopPublisher) Close() error {
	return nil
}

// Package amqp publica notificaciones en un exchange topic de RabbitMQ.
// Las consume el worker (cmd/api notifier).
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"pet-adoption/internal/ports/notify"

	amqp091 "github.com/rabbitmq/amqp091-go"
)

// channel es lo que se usa de *amqp091.Channel (tests: fake).
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

type Publisher struct {
	conn     *amqp091.Connection
	ch       channel
	exchange string

	// un Channel no admite publish concurrente
	mu sync.Mutex
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *Publisher) PublishJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         b,
	})
}

// PasswordReset implementa notify.Notifier.
func (p *Publisher) PasswordReset(ctx context.Context, msg notify.PasswordResetMessage) error {
	if err := p.PublishJSON(ctx, notify.RKPasswordReset, msg); err != nil {
		return fmt.Errorf("publish %s: %w", notify.RKPasswordReset, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Package worker consume la cola de notificaciones y entrega cada mensaje
// con un notify.Notifier (SMTP en producción).
package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/notify"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Config struct {
	RabbitURL   string
	Exchange    string
	Queue       string
	Bindings    []string
	Prefetch    int
	ServiceName string
}

type Consumer struct {
	cfg      Config
	notifier notify.Notifier
	log      logger.Logger

	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewConsumer(cfg Config, n notify.Notifier, log logger.Logger) *Consumer {
	if len(cfg.Bindings) == 0 {
		cfg.Bindings = []string{notify.RKPasswordReset}
	}
	if cfg.Prefetch <= 0 {
		cfg.Prefetch = 8
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Consumer{cfg: cfg, notifier: n, log: log}
}

func (c *Consumer) Connect() error {
	conn, err := amqp.Dial(c.cfg.RabbitURL)
	if err != nil {
		return fmt.Errorf("rabbit dial failed: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel failed: %w", err)
	}

	fail := func(format string, err error) error {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf(format, err)
	}

	if err := ch.ExchangeDeclare(c.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		return fail("declare exchange failed: %w", err)
	}
	q, err := ch.QueueDeclare(c.cfg.Queue, true, false, false, false, nil)
	if err != nil {
		return fail("declare queue failed: %w", err)
	}
	for _, key := range c.cfg.Bindings {
		if err := ch.QueueBind(q.Name, key, c.cfg.Exchange, false, nil); err != nil {
			return fail("bind queue failed: %w", err)
		}
	}
	if err := ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
		return fail("set qos failed: %w", err)
	}

	c.conn = conn
	c.ch = ch
	return nil
}

func (c *Consumer) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// Run requiere Connect previo. Vuelve cuando ctx termina o el canal se cierra.
func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.ch.ConsumeWithContext(ctx, c.cfg.Queue, c.cfg.ServiceName, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume failed: %w", err)
	}
	c.log.Info("notifier consuming", map[string]any{"queue": c.cfg.Queue, "bindings": c.cfg.Bindings})
	return c.Consume(ctx, msgs)
}

// Consume procesa entregas: error del notifier => Nack con requeue; ok, cuerpo
// ilegible o key desconocida => Ack.
func (c *Consumer) Consume(ctx context.Context, msgs <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := c.handleDelivery(ctx, d); err != nil {
				c.log.Error("handle delivery failed, requeue", map[string]any{"routing_key": d.RoutingKey, "error": err})
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handleDelivery(ctx context.Context, d amqp.Delivery) error {
	switch d.RoutingKey {
	case notify.RKPasswordReset:
		var msg notify.PasswordResetMessage
		if err := json.Unmarshal(d.Body, &msg); err != nil {
			// reintentar no lo arregla: se descarta con Ack
			c.log.Error("drop undecodable message", map[string]any{"routing_key": d.RoutingKey, "error": err})
			return nil
		}
		if err := c.notifier.PasswordReset(ctx, msg); err != nil {
			return err
		}
		c.log.Info("password reset mail sent", map[string]any{"to": msg.Email})
	default:
		c.log.Warn("skip unknown routing key", map[string]any{"routing_key": d.RoutingKey})
	}
	return nil
}

package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/felixgeelhaar/nudge/internal/engagement/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// ExchangeName is the topic exchange delivery workers consume from.
	ExchangeName = "nudge.notifications"

	routingKeySchedule = "notifications.schedule"
	routingKeyCancel   = "notifications.cancel"
)

// scheduleMessage is the wire form of a schedule instruction.
type scheduleMessage struct {
	Identifier string                     `json:"identifier"`
	Content    domain.NotificationContent `json:"content"`
	Trigger    domain.Trigger             `json:"trigger"`
	EmittedAt  time.Time                  `json:"emitted_at"`
}

// cancelMessage is the wire form of a cancel instruction.
type cancelMessage struct {
	Identifier string    `json:"identifier"`
	EmittedAt  time.Time `json:"emitted_at"`
}

// RabbitMQChannel implements domain.DeliveryChannel by publishing schedule
// and cancel instructions to a topic exchange. The consumer on the other
// side owns the actual platform notification APIs.
type RabbitMQChannel struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger
	mu      sync.Mutex
}

// NewRabbitMQChannel connects and declares the notifications exchange.
func NewRabbitMQChannel(url string, logger *slog.Logger) (*RabbitMQChannel, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close() // Best-effort cleanup
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		ExchangeName, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		_ = ch.Close()   // Best-effort cleanup
		_ = conn.Close() // Best-effort cleanup
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	logger.Info("RabbitMQ delivery channel connected",
		"exchange", ExchangeName,
	)

	return &RabbitMQChannel{
		conn:    conn,
		channel: ch,
		logger:  logger,
	}, nil
}

// Schedule publishes a schedule instruction.
func (c *RabbitMQChannel) Schedule(ctx context.Context, identifier string, content domain.NotificationContent, trigger domain.Trigger) error {
	payload, err := json.Marshal(scheduleMessage{
		Identifier: identifier,
		Content:    content,
		Trigger:    trigger,
		EmittedAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal schedule message: %w", err)
	}
	return c.publish(ctx, routingKeySchedule, payload)
}

// Cancel publishes a cancel instruction.
func (c *RabbitMQChannel) Cancel(ctx context.Context, identifier string) error {
	payload, err := json.Marshal(cancelMessage{
		Identifier: identifier,
		EmittedAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal cancel message: %w", err)
	}
	return c.publish(ctx, routingKeyCancel, payload)
}

func (c *RabbitMQChannel) publish(ctx context.Context, routingKey string, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.channel.PublishWithContext(ctx,
		ExchangeName, // exchange
		routingKey,   // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         payload,
		},
	)
	if err != nil {
		c.logger.Error("failed to publish delivery instruction",
			"routing_key", routingKey,
			"error", err,
		)
		return err
	}

	c.logger.Debug("delivery instruction published",
		"routing_key", routingKey,
		"size", len(payload),
	)
	return nil
}

// Close closes the channel connection.
func (c *RabbitMQChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Warn("error closing channel", "error", err)
		}
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

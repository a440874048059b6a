package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/BiblioGo/LibraryApp/internal/config"
	"github.com/BiblioGo/LibraryApp/internal/messaging/payloads"
)

// Client is the RabbitMQ connection carrying loan lifecycle events. It
// implements both ports.LoanEventPublisher and ports.LoanEventConsumer.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	logger  *slog.Logger
}

// NewClient connects to RabbitMQ and declares the loan events queue.
// QueueDeclare is idempotent, so server and worker can start in any order.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.RabbitMQ.RabbitMQURL)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		cfg.RabbitMQ.RabbitMQQueueName, // name
		true,                           // durable
		false,                          // delete when unused
		false,                          // exclusive
		false,                          // no-wait
		nil,                            // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	logger.Info("RabbitMQ queue declared", "queue", q.Name, "pending_messages", q.Messages)

	return &Client{conn: conn, channel: ch, queue: q, logger: logger}, nil
}

// Close shuts down the channel and the connection.
func (c *Client) Close() error {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Error("failed to close RabbitMQ channel", "error", err)
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			return fmt.Errorf("close RabbitMQ connection: %w", err)
		}
	}
	c.logger.Info("RabbitMQ connection closed")
	return nil
}

// PublishLoanEvent publishes one loan lifecycle event as JSON.
func (c *Client) PublishLoanEvent(ctx context.Context, payload payloads.LoanEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal loan event: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish loan event: %w", err)
	}

	c.logger.Info("loan event published",
		"queue", c.queue.Name,
		"loan_id", payload.LoanID,
		"action", payload.Action,
	)
	return nil
}

// StartConsumingLoanEvents consumes loan events with manual acks: a
// failed handler nacks with requeue, a malformed message is dropped.
func (c *Client) StartConsumingLoanEvents(ctx context.Context, handler func(context.Context, payloads.LoanEventPayload) error) error {
	msgs, err := c.channel.Consume(
		c.queue.Name, // queue
		"",           // consumer
		false,        // auto-ack
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // args
	)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	c.logger.Info("consumer registered, waiting for loan events", "queue", c.queue.Name)

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					c.logger.Info("RabbitMQ channel closed, stopping consumer")
					return
				}

				var payload payloads.LoanEventPayload
				if err := json.Unmarshal(msg.Body, &payload); err != nil {
					c.logger.Error("failed to unmarshal loan event, dropping", "error", err)
					// Bad format: do not requeue, it would loop forever.
					if err := msg.Nack(false, false); err != nil {
						c.logger.Error("failed to nack malformed message", "error", err)
					}
					continue
				}

				if err := handler(ctx, payload); err != nil {
					c.logger.Error("failed to process loan event, requeueing",
						"loan_id", payload.LoanID,
						"error", err,
					)
					if err := msg.Nack(false, true); err != nil {
						c.logger.Error("failed to nack message", "error", err)
					}
					continue
				}

				if err := msg.Ack(false); err != nil {
					c.logger.Error("failed to ack message", "error", err)
				}

			case <-ctx.Done():
				c.logger.Info("context canceled, stopping consumer")
				return
			}
		}
	}()

	return nil
}

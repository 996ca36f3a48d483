package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Checker-Finance/catalog-api/internal/catalog"
	"github.com/Checker-Finance/catalog-api/pkg/model"
)

// CreateProductCommand is the message shape consumed from the ingestion queue.
type CreateProductCommand struct {
	CommandID   string          `json:"commandId,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Source      string          `json:"source,omitempty"`
}

// ProductCreator defines the catalog operation the consumer needs.
type ProductCreator interface {
	Create(ctx context.Context, params catalog.CreateParams) (*model.Product, error)
}

// Consumer consumes create-product commands from RabbitMQ. It is the bulk
// ingestion path used by upstream feeds; the HTTP API remains the primary
// write path.
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	service ProductCreator
	logger  *zap.Logger
}

// NewConsumer creates a new RabbitMQ consumer.
func NewConsumer(url string, service ProductCreator, logger *zap.Logger) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	return &Consumer{
		conn:    conn,
		channel: channel,
		service: service,
		logger:  logger,
	}, nil
}

// Start declares the ingestion queue and starts consuming.
func (c *Consumer) Start(ctx context.Context) error {
	const queue = "inbound.products.create.v1"

	if _, err := c.channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	msgs, err := c.channel.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume from %s: %w", queue, err)
	}

	c.logger.Info("started consuming create-product commands",
		zap.String("queue", queue))

	go c.consume(ctx, msgs)
	return nil
}

func (c *Consumer) consume(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			c.handle(ctx, msg)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, msg amqp.Delivery) {
	var cmd CreateProductCommand
	if err := json.Unmarshal(msg.Body, &cmd); err != nil {
		c.logger.Error("failed to decode create-product command", zap.Error(err))
		msg.Nack(false, false) //nolint:errcheck
		return
	}

	// Queued commands pass the same schema bounds as the HTTP boundary.
	if err := catalog.ValidateSchema(cmd.Name, cmd.Description, cmd.Price); err != nil {
		c.logger.Error("create-product command rejected",
			zap.String("command_id", cmd.CommandID),
			zap.Error(err))
		msg.Nack(false, false) //nolint:errcheck
		return
	}

	product, err := c.service.Create(ctx, catalog.CreateParams{
		Name:        cmd.Name,
		Description: cmd.Description,
		Price:       cmd.Price,
	})
	if err != nil {
		c.logger.Error("create-product command failed",
			zap.String("command_id", cmd.CommandID),
			zap.Error(err))
		msg.Nack(false, false) //nolint:errcheck
		return
	}

	c.logger.Info("create-product command applied",
		zap.String("command_id", cmd.CommandID),
		zap.String("product_id", product.ID.String()))
	msg.Ack(false) //nolint:errcheck
}

// Close shuts down the channel and connection.
func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close() //nolint:errcheck
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

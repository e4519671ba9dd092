package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Handler — функция обработки сообщения.
// Ошибка приводит к nack без возврата в очередь: повторов нет.
type Handler func(ctx context.Context, msg *Message) error

// Consumer потребляет сообщения из очереди RabbitMQ.
type Consumer struct {
	conn     *Connection
	logger   *slog.Logger
	queue    Queue
	handler  Handler
	prefetch int
}

// ConsumerConfig — конфигурация consumer.
type ConsumerConfig struct {
	// Queue — имя очереди.
	Queue Queue

	// Handler — обработчик сообщений.
	Handler Handler

	// Prefetch — количество сообщений для предварительной загрузки (default: 1).
	Prefetch int
}

// NewConsumer создаёт новый Consumer.
func NewConsumer(conn *Connection, logger *slog.Logger, cfg ConsumerConfig) *Consumer {
	prefetch := cfg.Prefetch
	if prefetch <= 0 {
		prefetch = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Consumer{
		conn:     conn,
		logger:   logger,
		queue:    cfg.Queue,
		handler:  cfg.Handler,
		prefetch: prefetch,
	}
}

// Run потребляет сообщения, пока не отменён ctx или брокер не закрыл канал.
func (c *Consumer) Run(ctx context.Context) error {
	ch := c.conn.Channel()
	if ch == nil {
		return ErrNoChannel
	}

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	deliveries, err := ch.ConsumeWithContext(
		ctx,
		string(c.queue), // queue
		"",              // consumer tag (auto-generated)
		false,           // auto-ack (ack вручную)
		false,           // exclusive
		false,           // no-local
		false,           // no-wait
		nil,             // args
	)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}

	c.logger.Info("consumer started", "queue", c.queue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case raw, ok := <-deliveries:
			if !ok {
				return ErrDeliveriesClosed
			}
			c.handleDelivery(ctx, raw)
		}
	}
}

// handleDelivery обрабатывает одно сообщение.
func (c *Consumer) handleDelivery(ctx context.Context, raw amqp.Delivery) {
	var msg Message
	if err := json.Unmarshal(raw.Body, &msg); err != nil {
		c.logger.Error("failed to unmarshal message",
			"queue", c.queue,
			"error", err,
		)
		_ = raw.Nack(false, false)
		return
	}

	if err := c.Handle(ctx, &msg); err != nil {
		_ = raw.Nack(false, false)
		return
	}

	_ = raw.Ack(false)
}

// Handle вызывает обработчик и логирует ошибку.
func (c *Consumer) Handle(ctx context.Context, msg *Message) error {
	c.logger.Debug("received message",
		"queue", c.queue,
		"message_id", msg.ID,
		"type", msg.Type,
	)

	if err := c.handler(ctx, msg); err != nil {
		c.logger.Error("handler failed",
			"queue", c.queue,
			"message_id", msg.ID,
			"type", msg.Type,
			"error", err,
		)
		return err
	}
	return nil
}

// ParsePayload парсит payload сообщения в указанный тип.
func ParsePayload[T any](msg *Message) (T, error) {
	var result T
	if err := json.Unmarshal(msg.Payload, &result); err != nil {
		return result, fmt.Errorf("unmarshal payload: %w", err)
	}
	return result, nil
}

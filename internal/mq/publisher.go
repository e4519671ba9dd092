package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageType — тип сообщения в очереди.
type MessageType string

// MessageTypeScoreCreated — пользователь оценил trace.
const MessageTypeScoreCreated MessageType = "score.created"

// Message — конверт сообщения.
type Message struct {
	// ID — уникальный идентификатор сообщения.
	ID string `json:"id"`

	// Type — тип сообщения.
	Type MessageType `json:"type"`

	// Payload — полезная нагрузка.
	Payload json.RawMessage `json:"payload"`

	// Timestamp — время создания.
	Timestamp time.Time `json:"timestamp"`
}

// Publisher публикует сообщения в RabbitMQ.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
}

// NewPublisher создаёт новый Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		conn:   conn,
		logger: logger,
	}
}

// NewMessage упаковывает payload в Message.
func NewMessage(msgType MessageType, payload any) (*Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return &Message{
		ID:        uuid.New().String(),
		Type:      msgType,
		Payload:   raw,
		Timestamp: time.Now().UTC(),
	}, nil
}

// Publish публикует сообщение в exchange с routing key.
func (p *Publisher) Publish(ctx context.Context, exchange Exchange, routingKey RoutingKey, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	return p.conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.PublishWithContext(
			ctx,
			string(exchange),   // exchange
			string(routingKey), // routing key
			false,              // mandatory
			false,              // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Transient,
				MessageId:    msg.ID,
				Timestamp:    msg.Timestamp,
				Type:         string(msg.Type),
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish to %s/%s: %w", exchange, routingKey, err)
		}

		p.logger.Debug("published message",
			"exchange", exchange,
			"routing_key", routingKey,
			"message_id", msg.ID,
			"type", msg.Type,
		)
		return nil
	})
}

// PublishScore публикует score.created.
// Потребитель: relay.
func (p *Publisher) PublishScore(ctx context.Context, payload any) error {
	msg, err := NewMessage(MessageTypeScoreCreated, payload)
	if err != nil {
		return err
	}
	return p.Publish(ctx, ExchangeScores, RoutingKeyScoreCreated, msg)
}

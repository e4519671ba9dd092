package scoring

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shaiso/feedback/internal/mq"
)

// ScorePublisher — часть mq.Publisher, нужная AMQPClient.
type ScorePublisher interface {
	PublishScore(ctx context.Context, payload any) error
}

// AMQPClient — транспорт через RabbitMQ.
//
// Score публикуется в exchange feedback.scores; в backend его переносит relay.
type AMQPClient struct {
	publisher ScorePublisher
	conn      *mq.Connection
}

// NewAMQPClient подключается к брокеру и объявляет топологию.
// Ошибка подключения означает, что клиент построить нельзя.
func NewAMQPClient(ctx context.Context, url string, logger *slog.Logger) (*AMQPClient, error) {
	conn, err := mq.NewConnection(url, logger)
	if err != nil {
		return nil, err
	}

	if err := mq.SetupTopology(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setup topology: %w", err)
	}

	return &AMQPClient{
		publisher: mq.NewPublisher(conn, logger),
		conn:      conn,
	}, nil
}

// NewAMQPClientWithPublisher создаёт клиент поверх готового publisher.
func NewAMQPClientWithPublisher(publisher ScorePublisher) *AMQPClient {
	return &AMQPClient{publisher: publisher}
}

// Score публикует запись.
func (c *AMQPClient) Score(ctx context.Context, rec Record) error {
	if err := c.publisher.PublishScore(ctx, rec); err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailure, err)
	}
	return nil
}

// Close закрывает соединение с брокером, если клиент им владеет.
func (c *AMQPClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

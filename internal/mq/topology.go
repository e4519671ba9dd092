package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange — тип для имени обменника.
type Exchange string

// Queue — тип для имени очереди.
type Queue string

// RoutingKey — тип для ключа маршрутизации.
type RoutingKey string

const (
	// ExchangeScores — обменник событий score.
	ExchangeScores Exchange = "feedback.scores"

	// QueueScoresRelay — очередь, которую читает relay.
	QueueScoresRelay Queue = "scores.relay"

	// RoutingKeyScoreCreated — ключ для новых score.
	RoutingKeyScoreCreated RoutingKey = "score.created"
)

// SetupTopology объявляет exchange, очередь и binding.
//
// Очередь не durable: сохранность отзывов на стороне сервера не требуется.
func SetupTopology(ctx context.Context, conn *Connection) error {
	return conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.ExchangeDeclare(
			string(ExchangeScores), // name
			"direct",               // type
			true,                   // durable
			false,                  // auto-deleted
			false,                  // internal
			false,                  // no-wait
			nil,                    // arguments
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", ExchangeScores, err)
		}

		_, err = ch.QueueDeclare(
			string(QueueScoresRelay), // name
			false,                    // durable
			false,                    // delete when unused
			false,                    // exclusive
			false,                    // no-wait
			nil,                      // arguments
		)
		if err != nil {
			return fmt.Errorf("declare queue %s: %w", QueueScoresRelay, err)
		}

		err = ch.QueueBind(
			string(QueueScoresRelay),       // queue name
			string(RoutingKeyScoreCreated), // routing key
			string(ExchangeScores),         // exchange
			false,                          // no-wait
			nil,                            // arguments
		)
		if err != nil {
			return fmt.Errorf("bind queue %s to %s: %w", QueueScoresRelay, ExchangeScores, err)
		}

		return nil
	})
}

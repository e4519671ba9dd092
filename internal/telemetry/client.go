package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shaiso/feedback/internal/scoring"
)

// ClientFactory строит транспорт по конфигурации.
type ClientFactory func(ctx context.Context, cfg Config) (scoring.Client, error)

// NewClientFactory возвращает фабрику, выбирающую транспорт по cfg.Transport.
func NewClientFactory(logger *slog.Logger) ClientFactory {
	return func(ctx context.Context, cfg Config) (scoring.Client, error) {
		switch cfg.Transport {
		case "", TransportHTTP:
			return scoring.NewHTTPClient(scoring.HTTPConfig{
				PublicKey: cfg.PublicKey,
				BaseURL:   cfg.BaseURL,
				Timeout:   cfg.RequestTimeout,
			})
		case TransportAMQP:
			return scoring.NewAMQPClient(ctx, cfg.AMQPURL, logger)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownTransport, cfg.Transport)
		}
	}
}

package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/shaiso/feedback/internal/domain"
	"github.com/shaiso/feedback/internal/mq"
	"github.com/shaiso/feedback/internal/scoring"
)

const (
	defaultPrefetch    = 10
	defaultSendTimeout = 15 * time.Second
)

// Исходы пересылки.
const (
	OutcomeForwarded = "forwarded"
	OutcomeFailed    = "failed"
	OutcomeRejected  = "rejected"
)

// Relay пересылает score из очереди в backend.
type Relay struct {
	conn     *mq.Connection
	client   scoring.Client
	prefetch int
	timeout  time.Duration
	messages *prometheus.CounterVec

	logger     *slog.Logger
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// Config — конфигурация Relay.
type Config struct {
	// Conn — соединение с RabbitMQ.
	Conn *mq.Connection

	// Client — транспорт до backend (обычно *scoring.HTTPClient).
	Client scoring.Client

	// Prefetch (default: 10).
	Prefetch int

	// SendTimeout — таймаут одной пересылки (default: 15s).
	SendTimeout time.Duration

	// Registerer (опционально) — куда регистрировать метрики.
	Registerer prometheus.Registerer

	// Logger
	Logger *slog.Logger
}

// New создаёт Relay.
func New(cfg Config) *Relay {
	prefetch := cfg.Prefetch
	if prefetch <= 0 {
		prefetch = defaultPrefetch
	}

	timeout := cfg.SendTimeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	reg := cfg.Registerer
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Relay{
		conn:     cfg.Conn,
		client:   cfg.Client,
		prefetch: prefetch,
		timeout:  timeout,
		messages: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "feedback_relay_messages_total",
			Help: "Score messages consumed by feedback-relay, by outcome",
		}, []string{"outcome"}),
		logger: logger,
	}
}

// Start запускает consumer очереди scores.relay.
func (r *Relay) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	r.cancelFunc = cancel

	consumer := mq.NewConsumer(r.conn, r.logger, mq.ConsumerConfig{
		Queue:    mq.QueueScoresRelay,
		Handler:  r.HandleScore,
		Prefetch: r.prefetch,
	})

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			r.logger.Error("score consumer stopped", "error", err)
		}
	}()

	r.logger.Info("relay started", "queue", mq.QueueScoresRelay, "prefetch", r.prefetch)
}

// Stop останавливает consumer и ждёт его завершения.
func (r *Relay) Stop() {
	r.logger.Info("stopping relay...")

	if r.cancelFunc != nil {
		r.cancelFunc()
	}
	r.wg.Wait()

	r.logger.Info("relay stopped")
}

// HandleScore пересылает одну запись. Ошибка означает nack без повтора.
func (r *Relay) HandleScore(ctx context.Context, msg *mq.Message) error {
	if msg.Type != mq.MessageTypeScoreCreated {
		r.messages.WithLabelValues(OutcomeRejected).Inc()
		return fmt.Errorf("%w: %s", ErrUnexpectedMessage, msg.Type)
	}

	rec, err := mq.ParsePayload[scoring.Record](msg)
	if err != nil {
		r.messages.WithLabelValues(OutcomeRejected).Inc()
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	if err := validateRecord(rec); err != nil {
		r.messages.WithLabelValues(OutcomeRejected).Inc()
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.client.Score(ctx, rec); err != nil {
		r.messages.WithLabelValues(OutcomeFailed).Inc()
		return fmt.Errorf("forward score %s: %w", rec.ID, err)
	}

	r.messages.WithLabelValues(OutcomeForwarded).Inc()
	r.logger.Debug("score forwarded",
		"trace_id", rec.TraceID,
		"score_id", rec.ID,
	)
	return nil
}

// validateRecord проверяет запись так же, как при создании ScoreEvent.
func validateRecord(rec scoring.Record) error {
	if rec.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidRecord)
	}
	if rec.TraceID == "" {
		return fmt.Errorf("%w: missing trace id", ErrInvalidRecord)
	}
	if rec.Name != domain.ScoreName {
		return fmt.Errorf("%w: unexpected name %q", ErrInvalidRecord, rec.Name)
	}
	if err := domain.ValidateScore(rec.Value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return nil
}

package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shaiso/feedback/internal/domain"
	"github.com/shaiso/feedback/internal/scoring"
)

const defaultSendTimeout = 15 * time.Second

// State — результат инициализации клиента.
//
//	UNINITIALIZED → READY
//	              ↘ DISABLED (навсегда, без повторов)
type State int

const (
	// StateUninitialized — инициализация ещё не выполнялась.
	StateUninitialized State = iota

	// StateDisabled — ключа нет или клиент не построен.
	StateDisabled

	// StateReady — клиент создан.
	StateReady
)

// String возвращает строковое представление State.
func (s State) String() string {
	switch s {
	case StateDisabled:
		return "DISABLED"
	case StateReady:
		return "READY"
	default:
		return "UNINITIALIZED"
	}
}

// Registry лениво создаёт единственный клиент телеметрии и доставляет score.
//
// Инициализация выполняется не более одного раза: при одновременных первых
// вызовах клиент строит ровно один победитель, остальные ждут его результата.
// Ошибки телеметрии никогда не возвращаются вызывающему.
type Registry struct {
	env        Environment
	loadConfig func() (Config, error)
	newClient  ClientFactory
	logger     *slog.Logger
	metrics    *Metrics
	timeout    time.Duration

	once   sync.Once
	mu     sync.RWMutex
	state  State
	client scoring.Client

	// inflight — отправки, запущенные Submit и ещё не завершённые.
	inflight sync.WaitGroup
}

// RegistryConfig — конфигурация Registry.
type RegistryConfig struct {
	// Environment (опционально; если nil — ClientContext).
	Environment Environment

	// LoadConfig (опционально; если nil — LoadConfig из env).
	LoadConfig func() (Config, error)

	// NewClient (опционально; если nil — NewClientFactory(Logger)).
	NewClient ClientFactory

	// Metrics (опционально).
	Metrics *Metrics

	// SendTimeout — таймаут одной фоновой отправки (default: 15s).
	SendTimeout time.Duration

	// Logger
	Logger *slog.Logger
}

// NewRegistry создаёт Registry. Клиент не создаётся до первого обращения.
func NewRegistry(cfg RegistryConfig) *Registry {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	env := cfg.Environment
	if env == nil {
		env = ClientContext
	}

	loadConfig := cfg.LoadConfig
	if loadConfig == nil {
		loadConfig = LoadConfig
	}

	newClient := cfg.NewClient
	if newClient == nil {
		newClient = NewClientFactory(logger)
	}

	timeout := cfg.SendTimeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	r := &Registry{
		env:        env,
		loadConfig: loadConfig,
		newClient:  newClient,
		logger:     logger,
		metrics:    cfg.Metrics,
		timeout:    timeout,
	}
	r.metrics.observeState(StateUninitialized)
	return r
}

// Client возвращает клиент телеметрии или nil.
//
// Вне клиентского контекста возвращает nil, не пытаясь инициализироваться.
// Иначе возвращает результат единственной попытки инициализации.
func (r *Registry) Client() scoring.Client {
	if !r.env.IsClientContext() {
		return nil
	}

	r.once.Do(r.initialize)

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.client
}

// initialize выполняется ровно один раз.
func (r *Registry) initialize() {
	client, err := r.build()
	if err != nil {
		r.setState(StateDisabled, nil)
		return
	}
	r.setState(StateReady, client)
	r.logger.Info("telemetry client initialized")
}

// build читает конфигурацию и строит клиент.
// Отсутствие ключа — предупреждение, ошибка построения — error.
func (r *Registry) build() (scoring.Client, error) {
	cfg, err := r.loadConfig()
	if err != nil {
		r.logger.Error("failed to load telemetry config, user feedback disabled", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrTelemetryUnavailable, err)
	}

	if !cfg.Enabled() {
		r.logger.Warn("telemetry public key not found, user feedback disabled")
		return nil, ErrTelemetryUnavailable
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	client, err := r.newClient(ctx, cfg)
	if err != nil {
		r.logger.Error("failed to initialize telemetry client",
			"transport", cfg.Transport,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %v", ErrTelemetryUnavailable, err)
	}
	if client == nil {
		r.logger.Error("telemetry client factory returned nil", "transport", cfg.Transport)
		return nil, ErrTelemetryUnavailable
	}

	return client, nil
}

func (r *Registry) setState(s State, client scoring.Client) {
	r.mu.Lock()
	r.state = s
	r.client = client
	r.mu.Unlock()

	r.metrics.observeState(s)
}

// State возвращает состояние инициализации.
func (r *Registry) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Submit отправляет событие в фоне и сразу возвращается.
//
// Результат отправки только логируется: вызывающий не ждёт сеть
// и не узнаёт об ошибках.
func (r *Registry) Submit(event domain.ScoreEvent) {
	r.inflight.Add(1)
	go func() {
		defer r.inflight.Done()
		r.deliver(event)
	}()
}

// deliver отправляет событие синхронно.
// Возвращает true, только если backend принял score.
func (r *Registry) deliver(event domain.ScoreEvent) (delivered bool) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("panic while sending feedback",
				"trace_id", event.TraceID(),
				"panic", p,
			)
			r.metrics.observeOutcome(OutcomeFailed)
			delivered = false
		}
	}()

	client := r.Client()
	if client == nil {
		r.metrics.observeOutcome(OutcomeDroppedDisabled)
		return false
	}

	if event.TraceID() == "" {
		r.logger.Warn("no trace id provided for feedback")
		r.metrics.observeOutcome(OutcomeDroppedInvalid)
		return false
	}

	logger := WithTraceID(r.logger, event.TraceID())
	logger.Debug("sending feedback", "value", event.Value())

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	start := time.Now()
	err := client.Score(ctx, scoring.NewRecord(event))
	r.metrics.observeDuration(time.Since(start))

	if err != nil {
		logger.Error("failed to send feedback", "error", err)
		r.metrics.observeOutcome(OutcomeFailed)
		return false
	}

	r.metrics.observeOutcome(OutcomeDelivered)
	return true
}

// Wait ждёт завершения всех фоновых отправок.
func (r *Registry) Wait() {
	r.inflight.Wait()
}

// Close дожидается фоновых отправок и закрывает клиент.
func (r *Registry) Close() error {
	r.Wait()

	r.mu.RLock()
	client := r.client
	r.mu.RUnlock()

	if client == nil {
		return nil
	}
	return client.Close()
}

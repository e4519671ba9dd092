package api

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shaiso/feedback/internal/feedback"
)

// Handler — главный обработчик API с зависимостями.
type Handler struct {
	controls  *ControlStore
	submitter feedback.Submitter
	status    func() string
	metrics   *Metrics
	logger    *slog.Logger
}

// Config — конфигурация для создания Handler.
type Config struct {
	// Controls — хранилище контролов.
	Controls *ControlStore

	// Submitter — получатель score (telemetry.Registry).
	Submitter feedback.Submitter

	// TelemetryStatus (опционально) — состояние телеметрии для /api/v1/status.
	TelemetryStatus func() string

	// Registerer (опционально) — куда регистрировать метрики API.
	Registerer prometheus.Registerer

	Logger *slog.Logger
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	status := cfg.TelemetryStatus
	if status == nil {
		status = func() string { return "UNKNOWN" }
	}

	var metrics *Metrics
	if cfg.Registerer != nil {
		metrics = NewMetrics(cfg.Registerer)
	}

	return &Handler{
		controls:  cfg.Controls,
		submitter: cfg.Submitter,
		status:    status,
		metrics:   metrics,
		logger:    logger,
	}
}

package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исходы отправки score.
const (
	OutcomeDelivered       = "delivered"
	OutcomeFailed          = "failed"
	OutcomeDroppedDisabled = "dropped_disabled"
	OutcomeDroppedInvalid  = "dropped_invalid"
)

// Metrics — Prometheus метрики доставки отзывов.
// Nil *Metrics допустим: методы ничего не делают.
type Metrics struct {
	scores   *prometheus.CounterVec
	state    prometheus.Gauge
	duration prometheus.Histogram
}

// NewMetrics регистрирует метрики в reg.
// Для бинарников — prometheus.DefaultRegisterer, для тестов — prometheus.NewRegistry().
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		scores: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "feedback_scores_total",
			Help: "Feedback scores handed to telemetry, by outcome",
		}, []string{"outcome"}),
		state: factory.NewGauge(prometheus.GaugeOpts{
			Name: "feedback_telemetry_state",
			Help: "Telemetry client state: 0 uninitialized, 1 disabled, 2 ready",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "feedback_score_delivery_seconds",
			Help:    "Time spent delivering one score to the backend",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) observeOutcome(outcome string) {
	if m == nil {
		return
	}
	m.scores.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeState(s State) {
	if m == nil {
		return
	}
	m.state.Set(float64(s))
}

func (m *Metrics) observeDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.duration.Observe(d.Seconds())
}

package feedback

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/shaiso/feedback/internal/domain"
)

// Submitter принимает готовое событие и доставляет его в фоне.
//
// Submit не должен блокироваться на сети и не возвращает ошибок:
// отправка отзыва не может сломать вызывающее приложение.
type Submitter interface {
	Submit(event domain.ScoreEvent)
}

// SubmitterFunc позволяет использовать функцию как Submitter.
type SubmitterFunc func(event domain.ScoreEvent)

// Submit вызывает f(event).
func (f SubmitterFunc) Submit(event domain.ScoreEvent) {
	f(event)
}

// Controller — конечный автомат одного контрола отзыва.
//
// Один Controller обслуживает ровно один trace и переиспользуется
// бесконечно: терминального состояния нет.
type Controller struct {
	traceID   string
	submitter Submitter
	logger    *slog.Logger

	// mu защищает selection и validationMsg. Переходы строго упорядочены.
	mu            sync.Mutex
	selection     Selection
	validationMsg string
}

// Config — конфигурация Controller.
type Config struct {
	// TraceID — trace, к которому относится контрол.
	TraceID string

	// Submitter — получатель готовых событий (обычно telemetry.Registry).
	Submitter Submitter

	// Logger (опционально; если nil — slog.Default()).
	Logger *slog.Logger
}

// New создаёт Controller в состоянии покоя.
func New(cfg Config) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	submitter := cfg.Submitter
	if submitter == nil {
		submitter = SubmitterFunc(func(domain.ScoreEvent) {})
	}

	return &Controller{
		traceID:   cfg.TraceID,
		submitter: submitter,
		logger:    logger.With("trace_id", cfg.TraceID),
	}
}

// TraceID возвращает trace контрола.
func (c *Controller) TraceID() string {
	return c.traceID
}

// SelectPolarity обрабатывает клик по кнопке.
//
//   - IDLE → REFINING(p)
//   - REFINING(p) + p → IDLE, черновики очищаются
//   - REFINING(p1) + p2 → REFINING(p2), черновики сохраняются
func (c *Controller) SelectPolarity(p domain.Polarity) error {
	if !p.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownPolarity, string(p))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selection.Polarity == p {
		c.selection.reset()
		c.validationMsg = ""
		c.logger.Debug("feedback toggled off", "polarity", p)
		return nil
	}

	c.selection.Polarity = p
	c.selection.RefinementOpen = true
	c.logger.Debug("feedback polarity selected", "polarity", p)
	return nil
}

// UpdateDraftScore записывает сырой текст score. Валидация — только при Submit.
func (c *Controller) UpdateDraftScore(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selection.DraftScore = text
	c.validationMsg = ""
}

// UpdateDraftComment записывает черновик комментария.
func (c *Controller) UpdateDraftComment(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selection.DraftComment = text
}

// Submit валидирует черновик и отправляет событие.
//
// Из IDLE — no-op: возвращает nil, nil. Это же защищает от двойного клика,
// потому что первый успешный вызов сразу переводит контрол в IDLE.
//
// При ErrInvalidScoreFormat или ErrScoreOutOfRange состояние и черновики
// не меняются, ValidationMessage возвращает текст для пользователя.
func (c *Controller) Submit() (*domain.ScoreEvent, error) {
	c.mu.Lock()

	if c.selection.State() != StateRefining {
		c.mu.Unlock()
		return nil, nil
	}

	value, err := ResolveScore(c.selection.Polarity, c.selection.DraftScore)
	if err != nil {
		c.validationMsg = validationMessage(err)
		c.mu.Unlock()
		c.logger.Debug("feedback rejected", "error", err)
		return nil, err
	}

	event, err := domain.NewScoreEvent(c.traceID, value, c.selection.DraftComment)
	if err != nil {
		c.validationMsg = validationMessage(err)
		c.mu.Unlock()
		return nil, err
	}

	polarity := c.selection.Polarity
	c.selection.reset()
	c.validationMsg = ""
	c.mu.Unlock()

	// Переход в IDLE уже выполнен; доставка идёт в фоне и не ожидается.
	c.submitter.Submit(event)

	c.logger.Info("feedback submitted",
		"polarity", polarity,
		"value", event.Value(),
	)

	return &event, nil
}

// Cancel сбрасывает контрол в IDLE из любого состояния.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selection.State() != StateIdle {
		c.logger.Debug("feedback cancelled", "polarity", c.selection.Polarity)
	}

	c.selection.reset()
	c.validationMsg = ""
}

// State возвращает текущее состояние.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.State()
}

// Snapshot возвращает копию Selection для отрисовки.
func (c *Controller) Snapshot() Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection
}

// ValidationMessage возвращает последнее сообщение валидации или "".
func (c *Controller) ValidationMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validationMsg
}

// Placeholder возвращает подсказку для поля score.
func (c *Controller) Placeholder() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selection.Polarity == domain.PolarityNone {
		return ""
	}
	return fmt.Sprintf("Default: %.1f (range: %.1f - %.1f)",
		c.selection.Polarity.DefaultValue(), domain.MinScore, domain.MaxScore)
}

package domain

import (
	"fmt"
	"math"
	"strings"
)

// ScoreName — фиксированное имя score в telemetry backend.
const ScoreName = "user-feedback"

// Границы допустимого значения score.
const (
	MinScore = 0.0
	MaxScore = 1.0
)

// ScoreEvent — единица телеметрии, отправляемая в backend.
//
// Поля закрыты: корректный ScoreEvent можно получить только через NewScoreEvent,
// который проверяет диапазон значения. Нулевое значение ScoreEvent{} имеет пустой
// traceID и отбрасывается реестром телеметрии.
type ScoreEvent struct {
	traceID    string
	value      float64
	comment    string
	hasComment bool
}

// NewScoreEvent создаёт ScoreEvent.
//
// value должен лежать в [0.0, 1.0]; comment обрезается, пустая строка означает
// отсутствие комментария. traceID не проверяется здесь: пустой traceID —
// ошибка вызывающего, её обрабатывает получатель события.
func NewScoreEvent(traceID string, value float64, comment string) (ScoreEvent, error) {
	if err := ValidateScore(value); err != nil {
		return ScoreEvent{}, err
	}

	comment = strings.TrimSpace(comment)
	return ScoreEvent{
		traceID:    traceID,
		value:      value,
		comment:    comment,
		hasComment: comment != "",
	}, nil
}

// ValidateScore проверяет, что value лежит в [0.0, 1.0].
func ValidateScore(value float64) error {
	if math.IsNaN(value) || value < MinScore || value > MaxScore {
		return fmt.Errorf("%w: %v", ErrScoreOutOfRange, value)
	}
	return nil
}

// TraceID возвращает идентификатор оцениваемого trace.
func (e ScoreEvent) TraceID() string {
	return e.traceID
}

// Value возвращает значение score.
func (e ScoreEvent) Value() float64 {
	return e.value
}

// Comment возвращает комментарий и флаг его наличия.
func (e ScoreEvent) Comment() (string, bool) {
	return e.comment, e.hasComment
}

// String нужен для логов.
func (e ScoreEvent) String() string {
	if e.hasComment {
		return fmt.Sprintf("score{trace=%s value=%g comment=%q}", e.traceID, e.value, e.comment)
	}
	return fmt.Sprintf("score{trace=%s value=%g}", e.traceID, e.value)
}

package domain

import (
	"fmt"
	"strings"
)

// Polarity — грубое направление отзыва, выбранное кнопкой.
//
// Жизненный цикл в контроле:
//
//	NONE → POSITIVE | NEGATIVE → NONE (submit, cancel, повторный клик)
type Polarity string

const (
	// PolarityNone — ничего не выбрано (состояние покоя).
	PolarityNone Polarity = ""

	// PolarityPositive — "thumbs up".
	PolarityPositive Polarity = "positive"

	// PolarityNegative — "thumbs down".
	PolarityNegative Polarity = "negative"
)

// IsValid возвращает true для POSITIVE и NEGATIVE.
func (p Polarity) IsValid() bool {
	return p == PolarityPositive || p == PolarityNegative
}

// DefaultValue возвращает score, который отправляется, если пользователь не ввёл число.
func (p Polarity) DefaultValue() float64 {
	if p == PolarityPositive {
		return 1.0
	}
	return 0.0
}

// String возвращает строковое представление Polarity.
func (p Polarity) String() string {
	if p == PolarityNone {
		return "none"
	}
	return string(p)
}

// ParsePolarity парсит строку в Polarity.
// Принимает positive/up/+ и negative/down/- без учёта регистра.
func ParsePolarity(s string) (Polarity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive", "up", "+":
		return PolarityPositive, nil
	case "negative", "down", "-":
		return PolarityNegative, nil
	default:
		return PolarityNone, fmt.Errorf("%w: %q", ErrUnknownPolarity, s)
	}
}

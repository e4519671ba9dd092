package feedback

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shaiso/feedback/internal/domain"
)

// Сообщения валидации для пользователя.
const (
	MessageInvalidScore    = "Please enter a valid number for the score"
	MessageScoreOutOfRange = "Score must be between 0 and 1"
)

// ResolveScore вычисляет итоговое значение score.
//
// Явно введённое число всегда важнее значения по умолчанию для polarity:
// пользователь с "thumbs up" может отправить 0.8 вместо 1.0.
func ResolveScore(polarity domain.Polarity, draft string) (float64, error) {
	draft = strings.TrimSpace(draft)
	if draft == "" {
		return polarity.DefaultValue(), nil
	}

	value, err := strconv.ParseFloat(draft, 64)
	if err != nil || math.IsNaN(value) {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidScoreFormat, draft)
	}

	if err := domain.ValidateScore(value); err != nil {
		return 0, err
	}

	return value, nil
}

// validationMessage переводит ошибку валидации в текст для пользователя.
func validationMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrScoreOutOfRange):
		return MessageScoreOutOfRange
	default:
		return MessageInvalidScore
	}
}

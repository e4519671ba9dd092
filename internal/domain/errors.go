package domain

import "errors"

// Ошибки валидации отзыва.
var (
	// ErrInvalidScoreFormat — введённый score не является числом.
	ErrInvalidScoreFormat = errors.New("invalid score format")

	// ErrScoreOutOfRange — score вне диапазона [0.0, 1.0].
	ErrScoreOutOfRange = errors.New("score out of range")

	// ErrUnknownPolarity — неизвестное направление отзыва.
	ErrUnknownPolarity = errors.New("unknown polarity")
)

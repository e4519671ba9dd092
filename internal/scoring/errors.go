package scoring

import "errors"

// Ошибки транспортов.
var (
	// ErrDeliveryFailure — backend не принял score.
	ErrDeliveryFailure = errors.New("score delivery failed")

	// ErrInvalidBaseURL — некорректный адрес backend.
	ErrInvalidBaseURL = errors.New("invalid base url")

	// ErrMissingPublicKey — не задан публичный ключ.
	ErrMissingPublicKey = errors.New("public key is required")

	// ErrClientClosed — клиент уже закрыт.
	ErrClientClosed = errors.New("client closed")
)

package feedback

import "errors"

// Ошибки контрола. Ошибки валидации score определены в domain.
var (
	// ErrUnknownKey — неизвестное клавиатурное сокращение.
	ErrUnknownKey = errors.New("unknown key")
)

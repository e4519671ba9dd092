package telemetry

import "errors"

// Ошибки телеметрии. Наружу из Registry не выходят, только в логи и метрики.
var (
	// ErrTelemetryUnavailable — не задан ключ или клиент не построен.
	ErrTelemetryUnavailable = errors.New("telemetry unavailable")

	// ErrUnknownTransport — неизвестное значение FEEDBACK_TRANSPORT.
	ErrUnknownTransport = errors.New("unknown transport")
)

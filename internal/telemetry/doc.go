// Package telemetry обеспечивает наблюдаемость и доставку отзывов.
//
// Включает:
//   - logging.go     — structured logging через slog
//   - metrics.go     — Prometheus метрики
//   - config.go      — конфигурация backend из переменных окружения
//   - environment.go — проверка, что процесс работает в клиентском контексте
//   - client.go      — выбор транспорта (http, amqp) по конфигурации
//   - registry.go    — Registry: ленивый единственный клиент и Submit
//
// Registry — единственное место, где решается, доступна ли телеметрия.
// Остальные компоненты вызывают Submit безусловно.
package telemetry

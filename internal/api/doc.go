// Package api содержит HTTP API контролов отзыва.
//
// Структура:
//   - handler.go         — Handler с DI (хранилище контролов, submitter, logger)
//   - routes.go          — регистрация маршрутов
//   - middleware.go      — middleware (recovery, logging, метрики)
//   - response.go        — унифицированные JSON-ответы и обработка ошибок
//   - dto.go             — Data Transfer Objects (request/response)
//   - store.go           — ControlStore: ограниченный LRU контролов
//   - control_handler.go — обработчики для /controls
//   - config.go          — конфигурация сервера из env
//
// Каждый контрол — отдельный feedback.Controller для одного trace.
// Виджет на странице создаёт контрол и пересылает в API жесты пользователя.
package api

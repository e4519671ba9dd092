// Package feedback содержит конечный автомат контрола отзыва.
//
// Структура:
//   - selection.go  — Selection (черновик и выбор) и вычисляемое состояние
//   - controller.go — Controller: выбор polarity, черновики, submit/cancel
//   - resolve.go    — разбор введённого score
//   - keys.go       — клавиатурные сокращения контрола
//   - errors.go     — ошибки контрола
//
// Controller не знает, настроена ли телеметрия: он лишь передаёт готовый
// domain.ScoreEvent в Submitter и сразу возвращается в состояние покоя.
package feedback

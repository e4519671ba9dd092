// Package cli реализует инструмент командной строки feedback.
//
// # Обзор
//
// CLI — клиентская утилита для feedback-api. Работает через HTTP,
// не импортирует внутренние пакеты системы. Позволяет оставить отзыв
// о trace одной командой или пройти тот же сценарий, что и в виджете,
// построчно в терминале.
//
// # Ключевые компоненты
//
// ## Client
//
// HTTP-клиент для feedback-api. Инкапсулирует HTTP-запросы,
// парсинг ответов (DataResponse, ErrorResponse) и обработку ошибок.
// Ошибки API возвращаются как *APIError с кодом и сообщением.
//
//	client := cli.NewClient("http://localhost:8080")
//	ctrl, err := client.MountControl("trace-1")
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON (json.MarshalIndent) — с флагом --json
//
// Данные выводятся в stdout, сообщения (Success/Error) — в stderr.
//
// ## Commands
//
//   - send TRACE_ID --polarity P [--score S] [--comment C] — отзыв одной командой
//   - prompt TRACE_ID — интерактивный контрол (+, -, score, comment, submit, cancel)
//   - show CONTROL_ID — состояние смонтированного контрола
//
// Команды создаются фабричными функциями, принимающими clientFn и outputFn —
// замыкания для ленивого создания Client и Output после парсинга PersistentFlags.
package cli

// Package scoring содержит транспорты, доставляющие score в telemetry backend.
//
// Структура:
//   - client.go — интерфейс Client и Record (формат score для backend)
//   - http.go   — HTTPClient: Langfuse public ingestion API
//   - amqp.go   — AMQPClient: публикация score в RabbitMQ для relay
//
// Транспорты не повторяют неудачные отправки: ошибка возвращается один раз
// и дальше только логируется вызывающей стороной.
package scoring

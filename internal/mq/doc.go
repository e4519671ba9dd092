// Package mq предоставляет инфраструктуру RabbitMQ для доставки score.
//
// Структура:
//   - connection.go — соединение и канал (без автоматического reconnect)
//   - topology.go   — exchange, очередь и binding для score
//   - publisher.go  — публикация score.created
//   - consumer.go   — потребление очереди scores.relay
//
// Сообщения публикуются с DeliveryMode Transient и не переживают рестарт
// брокера: отзывы доставляются по принципу best-effort.
//
// Exchanges:
//   - feedback.scores — события score (direct)
package mq

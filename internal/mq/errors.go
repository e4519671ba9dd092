package mq

import "errors"

// Ошибки MQ.
var (
	// ErrNoChannel — канал недоступен (соединение закрыто или потеряно).
	ErrNoChannel = errors.New("no channel available")

	// ErrDeliveriesClosed — брокер закрыл канал доставки.
	ErrDeliveriesClosed = errors.New("deliveries channel closed")
)

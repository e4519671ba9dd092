package mq

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Connection — обёртка над AMQP соединением.
//
// Переподключения нет: разрыв соединения логируется, после чего
// публикации возвращают ошибку. Отзывы не повторяются, поэтому
// восстанавливать канал ради них не нужно.
type Connection struct {
	logger *slog.Logger

	mu      sync.RWMutex
	conn    *amqp.Connection
	channel *amqp.Channel
	closed  bool
}

// NewConnection устанавливает соединение и открывает канал.
func NewConnection(url string, logger *slog.Logger) (*Connection, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	c := &Connection{
		logger:  logger,
		conn:    conn,
		channel: ch,
	}

	go c.watchClose(conn.NotifyClose(make(chan *amqp.Error, 1)))

	logger.Info("connected to RabbitMQ")
	return c, nil
}

// watchClose логирует неожиданный разрыв соединения.
func (c *Connection) watchClose(notify <-chan *amqp.Error) {
	err, ok := <-notify
	if !ok || err == nil {
		return
	}

	c.mu.Lock()
	c.channel = nil
	c.mu.Unlock()

	c.logger.Warn("RabbitMQ connection lost", "error", err)
}

// Channel возвращает текущий AMQP канал или nil.
func (c *Connection) Channel() *amqp.Channel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.channel
}

// WithChannel выполняет функцию с текущим каналом.
func (c *Connection) WithChannel(ctx context.Context, fn func(ch *amqp.Channel) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.RLock()
	ch := c.channel
	closed := c.closed
	c.mu.RUnlock()

	if closed || ch == nil {
		return ErrNoChannel
	}

	return fn(ch)
}

// IsConnected проверяет, установлено ли соединение.
func (c *Connection) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed || c.conn == nil {
		return false
	}
	return !c.conn.IsClosed()
}

// Close закрывает канал и соединение.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if c.channel != nil {
		// Канал может быть уже закрыт брокером
		_ = c.channel.Close()
		c.channel = nil
	}

	if c.conn != nil && !c.conn.IsClosed() {
		if err := c.conn.Close(); err != nil {
			return fmt.Errorf("close connection: %w", err)
		}
	}

	c.logger.Info("RabbitMQ connection closed")
	return nil
}

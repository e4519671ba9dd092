package api

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/shaiso/feedback/internal/feedback"
)

// Control — смонтированный контрол отзыва.
type Control struct {
	ID         uuid.UUID
	Controller *feedback.Controller
	CreatedAt  time.Time
}

// ControlStore хранит контролы в ограниченном LRU.
//
// Вытеснение равносильно размонтированию: черновики теряются,
// уже отправленные score не затрагиваются.
type ControlStore struct {
	cache *lru.Cache[uuid.UUID, *Control]
}

// NewControlStore создаёт хранилище на size контролов.
func NewControlStore(size int, logger *slog.Logger) (*ControlStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cache, err := lru.NewWithEvict(size, func(id uuid.UUID, c *Control) {
		logger.Debug("control unmounted",
			"control_id", id,
			"trace_id", c.Controller.TraceID(),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("create control cache: %w", err)
	}

	return &ControlStore{cache: cache}, nil
}

// Mount создаёт контрол для trace.
func (s *ControlStore) Mount(traceID string, submitter feedback.Submitter, logger *slog.Logger) *Control {
	c := &Control{
		ID: uuid.New(),
		Controller: feedback.New(feedback.Config{
			TraceID:   traceID,
			Submitter: submitter,
			Logger:    logger,
		}),
		CreatedAt: time.Now().UTC(),
	}
	s.cache.Add(c.ID, c)
	return c
}

// Get возвращает контрол по ID.
func (s *ControlStore) Get(id uuid.UUID) (*Control, bool) {
	return s.cache.Get(id)
}

// Unmount удаляет контрол. Возвращает false, если его не было.
func (s *ControlStore) Unmount(id uuid.UUID) bool {
	return s.cache.Remove(id)
}

// Len возвращает количество смонтированных контролов.
func (s *ControlStore) Len() int {
	return s.cache.Len()
}

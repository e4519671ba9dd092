package feedback

import (
	"fmt"
	"strings"

	"github.com/shaiso/feedback/internal/domain"
)

// Key — клавиатурное сокращение внутри панели уточнения.
type Key string

const (
	// KeySubmit — Ctrl+Enter (Cmd+Enter на macOS).
	KeySubmit Key = "submit"

	// KeyCancel — Escape.
	KeyCancel Key = "cancel"
)

// ParseKey принимает имя действия или комбинацию клавиш.
func ParseKey(s string) (Key, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "submit", "ctrl+enter", "cmd+enter", "meta+enter":
		return KeySubmit, nil
	case "cancel", "esc", "escape":
		return KeyCancel, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, s)
	}
}

// HandleKey выполняет действие сокращения.
// Сокращения работают только пока открыта панель уточнения.
func (c *Controller) HandleKey(key Key) (*domain.ScoreEvent, error) {
	if c.State() != StateRefining {
		return nil, nil
	}

	switch key {
	case KeySubmit:
		return c.Submit()
	case KeyCancel:
		c.Cancel()
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, string(key))
	}
}

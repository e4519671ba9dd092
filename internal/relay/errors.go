package relay

import "errors"

var (
	// ErrUnexpectedMessage — сообщение не является score.created.
	ErrUnexpectedMessage = errors.New("unexpected message type")

	// ErrInvalidRecord — запись не прошла проверку.
	ErrInvalidRecord = errors.New("invalid score record")
)

package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/feedback/internal/domain"
	"github.com/shaiso/feedback/internal/feedback"
)

// Control DTOs

// MountControlRequest — запрос на монтирование контрола.
type MountControlRequest struct {
	TraceID string `json:"trace_id"`
}

// ControlResponse — ответ с состоянием контрола.
type ControlResponse struct {
	ID                uuid.UUID          `json:"id"`
	TraceID           string             `json:"trace_id"`
	State             feedback.State     `json:"state"`
	Selection         feedback.Selection `json:"selection"`
	ValidationMessage string             `json:"validation_message,omitempty"`
	Placeholder       string             `json:"placeholder,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
}

// ControlFromDomain конвертирует Control в ControlResponse.
func ControlFromDomain(c *Control) ControlResponse {
	return ControlResponse{
		ID:                c.ID,
		TraceID:           c.Controller.TraceID(),
		State:             c.Controller.State(),
		Selection:         c.Controller.Snapshot(),
		ValidationMessage: c.Controller.ValidationMessage(),
		Placeholder:       c.Controller.Placeholder(),
		CreatedAt:         c.CreatedAt,
	}
}

// Gesture DTOs

// SelectPolarityRequest — нажатие кнопки полярности.
type SelectPolarityRequest struct {
	Polarity string `json:"polarity"`
}

// UpdateDraftRequest — ввод в поля уточнения.
// Отсутствующее поле не меняется.
type UpdateDraftRequest struct {
	Score   *string `json:"score,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

// KeyRequest — сочетание клавиш.
type KeyRequest struct {
	Key string `json:"key"`
}

// ScoreEventResponse — отправленный score.
type ScoreEventResponse struct {
	TraceID string  `json:"trace_id"`
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Comment *string `json:"comment,omitempty"`
}

// ScoreEventFromDomain конвертирует domain.ScoreEvent в ScoreEventResponse.
func ScoreEventFromDomain(e domain.ScoreEvent) ScoreEventResponse {
	resp := ScoreEventResponse{
		TraceID: e.TraceID(),
		Name:    domain.ScoreName,
		Value:   e.Value(),
	}
	if comment, ok := e.Comment(); ok {
		resp.Comment = &comment
	}
	return resp
}

// SubmitResponse — результат submit.
// Submitted=false означает, что контрол не был в режиме уточнения.
type SubmitResponse struct {
	Submitted bool                `json:"submitted"`
	Event     *ScoreEventResponse `json:"event,omitempty"`
	Control   ControlResponse     `json:"control"`
}

// StatusResponse — состояние сервиса.
type StatusResponse struct {
	Telemetry string `json:"telemetry"`
	Controls  int    `json:"controls"`
}

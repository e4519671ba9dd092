package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shaiso/feedback/internal/domain"
	"github.com/shaiso/feedback/internal/feedback"
	"github.com/shaiso/feedback/internal/telemetry"
)

// Status возвращает состояние телеметрии и число контролов.
// GET /api/v1/status
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	Success(w, StatusResponse{
		Telemetry: h.status(),
		Controls:  h.controls.Len(),
	})
}

// MountControl монтирует контрол для trace.
// POST /api/v1/controls
func (h *Handler) MountControl(w http.ResponseWriter, r *http.Request) {
	var req MountControlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	// Пустой trace_id допустим: submit пройдёт, score будет отброшен при доставке.
	logger := telemetry.WithTraceID(h.logger, req.TraceID)
	c := h.controls.Mount(req.TraceID, h.submitter, logger)

	telemetry.WithControlID(logger, c.ID.String()).Debug("control mounted")

	Created(w, ControlFromDomain(c))
}

// GetControl возвращает состояние контрола.
// GET /api/v1/controls/{id}
func (h *Handler) GetControl(w http.ResponseWriter, r *http.Request) {
	c, ok := h.control(w, r)
	if !ok {
		return
	}

	Success(w, ControlFromDomain(c))
}

// UnmountControl удаляет контрол. Неотправленный черновик теряется.
// DELETE /api/v1/controls/{id}
func (h *Handler) UnmountControl(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid control id")
		return
	}

	if !h.controls.Unmount(id) {
		NotFound(w, "control not found")
		return
	}

	NoContent(w)
}

// SelectPolarity обрабатывает нажатие кнопки полярности.
// POST /api/v1/controls/{id}/polarity
func (h *Handler) SelectPolarity(w http.ResponseWriter, r *http.Request) {
	c, ok := h.control(w, r)
	if !ok {
		return
	}

	var req SelectPolarityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	p, err := domain.ParsePolarity(req.Polarity)
	if err != nil {
		BadRequest(w, err.Error())
		return
	}

	if HandleValidationError(w, h.logger, c.Controller.SelectPolarity(p), c.Controller) {
		return
	}

	Success(w, ControlFromDomain(c))
}

// UpdateDraft обновляет черновые поля.
// PUT /api/v1/controls/{id}/draft
func (h *Handler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	c, ok := h.control(w, r)
	if !ok {
		return
	}

	var req UpdateDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if req.Score != nil {
		c.Controller.UpdateDraftScore(*req.Score)
	}
	if req.Comment != nil {
		c.Controller.UpdateDraftComment(*req.Comment)
	}

	Success(w, ControlFromDomain(c))
}

// Submit подтверждает уточнение.
// POST /api/v1/controls/{id}/submit
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	c, ok := h.control(w, r)
	if !ok {
		return
	}

	event, err := c.Controller.Submit()
	h.respondSubmit(w, c, event, err)
}

// Cancel отменяет выбор.
// POST /api/v1/controls/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	c, ok := h.control(w, r)
	if !ok {
		return
	}

	c.Controller.Cancel()
	Success(w, ControlFromDomain(c))
}

// PressKey обрабатывает сочетание клавиш в режиме уточнения.
// POST /api/v1/controls/{id}/keys
func (h *Handler) PressKey(w http.ResponseWriter, r *http.Request) {
	c, ok := h.control(w, r)
	if !ok {
		return
	}

	var req KeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	key, err := feedback.ParseKey(req.Key)
	if err != nil {
		BadRequest(w, err.Error())
		return
	}

	event, err := c.Controller.HandleKey(key)
	h.respondSubmit(w, c, event, err)
}

func (h *Handler) respondSubmit(w http.ResponseWriter, c *Control, event *domain.ScoreEvent, err error) {
	if HandleValidationError(w, h.logger, err, c.Controller) {
		return
	}

	resp := SubmitResponse{
		Submitted: event != nil,
		Control:   ControlFromDomain(c),
	}
	if event != nil {
		e := ScoreEventFromDomain(*event)
		resp.Event = &e
	}

	Success(w, resp)
}

// control достаёт контрол по {id} или пишет ошибку.
func (h *Handler) control(w http.ResponseWriter, r *http.Request) (*Control, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid control id")
		return nil, false
	}

	c, ok := h.controls.Get(id)
	if !ok {
		NotFound(w, "control not found")
		return nil, false
	}

	return c, true
}

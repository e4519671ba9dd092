package api

import (
	"net/http"
)

// RegisterRoutes регистрирует все маршруты API.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	chain := Chain(
		Recovery(h.logger),
		Logging(h.logger, h.metrics),
	)

	// Status
	mux.Handle("GET /api/v1/status", chain(http.HandlerFunc(h.Status)))

	// Controls
	mux.Handle("POST /api/v1/controls", chain(http.HandlerFunc(h.MountControl)))
	mux.Handle("GET /api/v1/controls/{id}", chain(http.HandlerFunc(h.GetControl)))
	mux.Handle("DELETE /api/v1/controls/{id}", chain(http.HandlerFunc(h.UnmountControl)))

	// Gestures
	mux.Handle("POST /api/v1/controls/{id}/polarity", chain(http.HandlerFunc(h.SelectPolarity)))
	mux.Handle("PUT /api/v1/controls/{id}/draft", chain(http.HandlerFunc(h.UpdateDraft)))
	mux.Handle("POST /api/v1/controls/{id}/submit", chain(http.HandlerFunc(h.Submit)))
	mux.Handle("POST /api/v1/controls/{id}/cancel", chain(http.HandlerFunc(h.Cancel)))
	mux.Handle("POST /api/v1/controls/{id}/keys", chain(http.HandlerFunc(h.PressKey)))
}

package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shaiso/feedback/internal/domain"
	"github.com/shaiso/feedback/internal/feedback"
)

// ErrorCode — код ошибки API.
type ErrorCode string

const (
	ErrCodeBadRequest         ErrorCode = "BAD_REQUEST"
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeInvalidScoreFormat ErrorCode = "INVALID_SCORE_FORMAT"
	ErrCodeScoreOutOfRange    ErrorCode = "SCORE_OUT_OF_RANGE"
	ErrCodeInternalError      ErrorCode = "INTERNAL_ERROR"
)

// ErrorResponse — структура ответа с ошибкой.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail — детали ошибки.
type ErrorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// DataResponse — структура успешного ответа.
type DataResponse struct {
	Data any `json:"data"`
}

// JSON отправляет JSON ответ.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Success отправляет успешный ответ с данными.
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, DataResponse{Data: data})
}

// Created отправляет ответ о создании ресурса.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, DataResponse{Data: data})
}

// NoContent отправляет ответ без тела (204).
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error отправляет ответ с ошибкой.
func Error(w http.ResponseWriter, status int, code ErrorCode, message string) {
	JSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// BadRequest отправляет ошибку 400.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// NotFound отправляет ошибку 404.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, ErrCodeNotFound, message)
}

// InternalError отправляет ошибку 500.
func InternalError(w http.ResponseWriter, logger *slog.Logger, err error) {
	logger.Error("internal error", "error", err)
	Error(w, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
}

// HandleValidationError преобразует ошибку валидации score в ответ 422.
// Сообщение берётся у контрола — то же, что увидит пользователь в виджете.
func HandleValidationError(w http.ResponseWriter, logger *slog.Logger, err error, c *feedback.Controller) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, domain.ErrInvalidScoreFormat):
		Error(w, http.StatusUnprocessableEntity, ErrCodeInvalidScoreFormat, c.ValidationMessage())
	case errors.Is(err, domain.ErrScoreOutOfRange):
		Error(w, http.StatusUnprocessableEntity, ErrCodeScoreOutOfRange, c.ValidationMessage())
	case errors.Is(err, domain.ErrUnknownPolarity), errors.Is(err, feedback.ErrUnknownKey):
		BadRequest(w, err.Error())
	default:
		InternalError(w, logger, err)
	}
	return true
}

package errors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// ErrorHandler provides centralized error handling for the HTTP layer.
// It maps AppError types to HTTP statuses and renders the standard
// ErrorResponse envelope.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger.With(slog.String("component", "error_handler")),
	}
}

// HandleError converts any error to an API error response and writes it.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	apiErr := h.toAPIError(err)
	if renderErr := render.Render(w, r, NewErrorResponse(apiErr)); renderErr != nil {
		WriteError(w, apiErr)
	}
}

// toAPIError maps application errors onto the HTTP error vocabulary.
func (h *ErrorHandler) toAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrTypeSourceNotFound, ErrTypeNotFound:
			return NewWithDetails(http.StatusNotFound, string(appErr.Type), appErr.Message, appErr.Context)
		case ErrTypeValidation:
			return NewWithDetails(http.StatusBadRequest, string(appErr.Type), appErr.Message, appErr.Context)
		case ErrTypeConfig:
			return NewWithDetails(http.StatusInternalServerError, string(appErr.Type), appErr.Message, appErr.Context)
		default:
			return NewWithDetails(http.StatusInternalServerError, string(appErr.Type), appErr.Message, appErr.Context)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return New(http.StatusGatewayTimeout, "TIMEOUT", "Request timed out")
	}
	if errors.Is(err, context.Canceled) {
		return New(499, "CLIENT_CLOSED_REQUEST", "Client closed request")
	}

	return ErrInternalServer
}

package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	apierrors "steamlens/internal/errors"
	"steamlens/internal/services"
)

// RegressionRequest is the POST body of a regression run. An empty body
// means the whole catalog.
type RegressionRequest struct {
	Filter services.GameFilter `json:"filter" validate:"omitempty"`
}

// RegressionHandler runs the OLS analysis over the loaded catalog.
type RegressionHandler struct {
	service      DatasetServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewRegressionHandler creates a new regression handler.
func NewRegressionHandler(service DatasetServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *RegressionHandler {
	return &RegressionHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "regression_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the regression routes.
func (h *RegressionHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.RunRegression)
	return r
}

// RunRegression handles POST /api/regression. The response is the plain-text
// summary report; guardrail outcomes (insufficient schema, sample too small,
// computation error) are still 200 since they are analysis results. The
// outcome kind travels in the X-Regression-Outcome header.
func (h *RegressionHandler) RunRegression(w http.ResponseWriter, r *http.Request) {
	var req RegressionRequest

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
			return
		}
	}

	if err := h.validate.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, validationAPIError(err))
		return
	}

	result, err := h.service.Regression(r.Context(), req.Filter)
	if err != nil {
		if errors.Is(err, services.ErrDatasetNotLoaded) {
			h.errorHandler.HandleError(w, r, apierrors.ErrDatasetNotLoaded)
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "regression served",
		slog.String("kind", result.Kind.String()))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Regression-Outcome", result.Kind.String())
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, result.Text)
}

// validationAPIError flattens validator violations into field errors.
func validationAPIError(err error) *apierrors.APIError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apierrors.InvalidRequestWithError(err)
	}

	fields := make([]apierrors.FieldError, 0, len(verrs))
	for _, ve := range verrs {
		fields = append(fields, apierrors.FieldError{
			Field:   ve.Field(),
			Message: "failed validation rule " + ve.Tag(),
		})
	}
	return apierrors.NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", fields)
}

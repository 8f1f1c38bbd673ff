package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "steamlens/internal/errors"
	"steamlens/internal/services"
)

const defaultGamesLimit = 100

// CatalogHandler serves read access to the loaded catalog.
type CatalogHandler struct {
	service      DatasetServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service DatasetServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *CatalogHandler {
	return &CatalogHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "catalog_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the catalog routes.
func (h *CatalogHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/summary", h.GetSummary)
	r.Get("/games", h.GetGames)

	return r
}

// GetSummary handles GET /api/catalog/summary.
func (h *CatalogHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}

// GetGames handles GET /api/catalog/games with optional query filters:
// year_from, year_to, price_min, price_max, genre, tag, limit.
func (h *CatalogHandler) GetGames(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if filter.Limit == 0 {
		filter.Limit = defaultGamesLimit
	}

	games, err := h.service.Games(r.Context(), filter)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   games,
		"count":  len(games),
	})
}

func (h *CatalogHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "catalog request failed",
		slog.String("error", err.Error()))

	if errors.Is(err, services.ErrDatasetNotLoaded) {
		h.errorHandler.HandleError(w, r, apierrors.ErrDatasetNotLoaded)
		return
	}
	h.errorHandler.HandleError(w, r, err)
}

// filterFromQuery parses the query string into a GameFilter.
func filterFromQuery(r *http.Request) (services.GameFilter, error) {
	var filter services.GameFilter
	q := r.URL.Query()

	for _, p := range []struct {
		name string
		dest **int
	}{
		{"year_from", &filter.YearFrom},
		{"year_to", &filter.YearTo},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return filter, apierrors.ErrValidation(p.name, fmt.Sprintf("not an integer: %q", raw))
		}
		*p.dest = &v
	}

	for _, p := range []struct {
		name string
		dest **float64
	}{
		{"price_min", &filter.PriceMin},
		{"price_max", &filter.PriceMax},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, apierrors.ErrValidation(p.name, fmt.Sprintf("not a number: %q", raw))
		}
		*p.dest = &v
	}

	filter.Genre = q.Get("genre")
	filter.Tag = q.Get("tag")

	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return filter, apierrors.ErrValidation("limit", fmt.Sprintf("not a positive integer: %q", raw))
		}
		filter.Limit = v
	}

	return filter, nil
}

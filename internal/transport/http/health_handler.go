package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	service   DatasetServiceInterface
	startedAt time.Time
	version   string
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(service DatasetServiceInterface, version string) *HealthHandler {
	return &HealthHandler{
		service:   service,
		startedAt: time.Now(),
		version:   version,
	}
}

// Routes returns the health routes.
func (h *HealthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetHealth)
	r.Get("/ready", h.GetReadiness)
	return r
}

// GetVersion handles GET /api/version.
func (h *HealthHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{"version": h.version})
}

// GetHealth handles GET /api/health. The process is healthy as soon as it
// serves; dataset state is reported but does not fail the probe.
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	loaded := false
	rows := 0
	if summary, err := h.service.Summary(r.Context()); err == nil {
		loaded = true
		rows = summary.Rows
	}

	render.JSON(w, r, map[string]interface{}{
		"status":         "healthy",
		"version":        h.version,
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
		"dataset_loaded": loaded,
		"dataset_rows":   rows,
	})
}

// GetReadiness handles GET /api/health/ready: 503 until a dataset is loaded.
func (h *HealthHandler) GetReadiness(w http.ResponseWriter, r *http.Request) {
	if _, err := h.service.Summary(r.Context()); err != nil {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]interface{}{"status": "not_ready"})
		return
	}
	render.JSON(w, r, map[string]interface{}{"status": "ready"})
}

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// Pinger зависимость, доступность которой проверяет /health
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler проверка живости сервиса и его зависимостей
type HealthHandler struct {
	version string
	checks  map[string]Pinger
}

func NewHealthHandler(version string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{version: version, checks: checks}
}

type healthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// Health GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok", Version: h.version}
	status := http.StatusOK

	if len(h.checks) > 0 {
		resp.Checks = make(map[string]string, len(h.checks))
		for name, check := range h.checks {
			if err := check.Ping(ctx); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
	}

	render.Status(r, status)
	render.JSON(w, r, resp)
}

// Head HEAD /health
func (h *HealthHandler) Head(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

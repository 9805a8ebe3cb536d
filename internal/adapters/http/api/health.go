package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/fairway/pkg/metrics"
)

// HealthHandler doubles as the liveness probe and the metrics endpoint:
// scraping it both confirms the process is serving and returns the
// Prometheus exposition.
type HealthHandler struct {
	prom http.Handler
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		prom: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleHealth serves the Prometheus metrics exposition.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	h.prom.ServeHTTP(w, r)
}

package api

import (
	"net/http"
)

// StatsProvider defines the interface for retrieving service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves internal service statistics for quick inspection.
type StatsHandler struct {
	provider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider}
}

// HandleStats returns current service statistics as JSON.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.provider.GetStats())
}

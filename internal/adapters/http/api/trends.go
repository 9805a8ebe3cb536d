package api

import (
	"context"
	"net/http"

	"github.com/okian/fairway/internal/domain/types"
)

// TrendDependencies defines the interface for trend operations.
type TrendDependencies interface {
	Trends(ctx context.Context) []types.ClubTrend
}

// TrendsHandler serves per-club smash trends across sessions.
type TrendsHandler struct {
	deps TrendDependencies
}

// NewTrendsHandler creates a new trends handler.
func NewTrendsHandler(deps TrendDependencies) *TrendsHandler {
	return &TrendsHandler{deps: deps}
}

// HandleGetTrends returns the trend table.
func (h *TrendsHandler) HandleGetTrends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Trends(r.Context()))
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/fairway/internal/domain/model"
	"github.com/okian/fairway/internal/domain/types"
)

// AggregateDependencies defines the interface for aggregate operations.
type AggregateDependencies interface {
	Aggregates(ctx context.Context, basisOverride string) []types.ClubAggregate
}

// AggregatesHandler serves the per-session, per-club aggregation table.
type AggregatesHandler struct {
	deps AggregateDependencies
}

// NewAggregatesHandler creates a new aggregates handler.
func NewAggregatesHandler(deps AggregateDependencies) *AggregatesHandler {
	return &AggregatesHandler{deps: deps}
}

// HandleGetAggregates returns the aggregation table. An optional ?metric=
// query parameter overrides the consistency basis metric.
func (h *AggregatesHandler) HandleGetAggregates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	basis := strings.TrimSpace(r.URL.Query().Get("metric"))
	if basis != "" && !model.IsMetric(basis) {
		writeError(w, http.StatusBadRequest, "bad_request",
			fmt.Errorf("%w: %q", ErrUnknownMetric, basis))
		return
	}

	writeJSON(w, http.StatusOK, h.deps.Aggregates(r.Context(), basis))
}

package api

import (
	"context"
	"net/http"

	"github.com/okian/fairway/internal/domain/types"
)

// RoundDependencies defines the interface for round operations.
type RoundDependencies interface {
	Rounds(ctx context.Context) []types.RoundSummary
	SyncRounds(ctx context.Context) bool
}

// RoundsHandler serves round summaries and schedules tracker syncs.
type RoundsHandler struct {
	deps RoundDependencies
}

// NewRoundsHandler creates a new rounds handler.
func NewRoundsHandler(deps RoundDependencies) *RoundsHandler {
	return &RoundsHandler{deps: deps}
}

// HandleGetRounds returns one summary row per stored round.
func (h *RoundsHandler) HandleGetRounds(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Rounds(r.Context()))
}

// HandlePostSync enqueues a tracker sync job. Responds 202 when the job is
// accepted and 429 when the job queue is full.
func (h *RoundsHandler) HandlePostSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	if !h.deps.SyncRounds(r.Context()) {
		writeError(w, http.StatusTooManyRequests, "backpressure", ErrBackpressure)
		return
	}
	writeJSON(w, http.StatusAccepted, syncResponse{Status: "scheduled"})
}

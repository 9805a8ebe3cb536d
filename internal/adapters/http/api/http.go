// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/fairway/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Read operations recompute tables from the current stores.
	Sessions(ctx context.Context) []types.SessionInfo
	Aggregates(ctx context.Context, basisOverride string) []types.ClubAggregate
	Trends(ctx context.Context) []types.ClubTrend
	Rounds(ctx context.Context) []types.RoundSummary

	// UploadSession persists a session export and reloads.
	UploadSession(ctx context.Context, filename string, data []byte) (string, error)

	// SyncRounds schedules a tracker sync. Returns false on backpressure.
	SyncRounds(ctx context.Context) bool
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	sessionsHandler   *SessionsHandler
	aggregatesHandler *AggregatesHandler
	trendsHandler     *TrendsHandler
	roundsHandler     *RoundsHandler
	dashboardHandler  *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxUploadBytes int64) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		sessionsHandler:   NewSessionsHandler(deps, maxUploadBytes),
		aggregatesHandler: NewAggregatesHandler(deps),
		trendsHandler:     NewTrendsHandler(deps),
		roundsHandler:     NewRoundsHandler(deps),
		dashboardHandler:  newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/sessions", MetricsMiddleware(s.sessionsHandler.HandleSessions, "sessions"))
	mux.HandleFunc("/aggregates", MetricsMiddleware(s.aggregatesHandler.HandleGetAggregates, "aggregates"))
	mux.HandleFunc("/trends", MetricsMiddleware(s.trendsHandler.HandleGetTrends, "trends"))
	mux.HandleFunc("/rounds", MetricsMiddleware(s.roundsHandler.HandleGetRounds, "rounds"))
	mux.HandleFunc("/rounds/sync", MetricsMiddleware(s.roundsHandler.HandlePostSync, "rounds_sync"))
	mux.HandleFunc("/", handleRoot)
}

// handleRoot redirects the bare root to the dashboard.
func handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

type uploadResponse struct {
	Status string `json:"status"`
	File   string `json:"file"`
}

type syncResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

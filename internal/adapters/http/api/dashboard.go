package api

import (
	"net/http"
)

// dashboardHandler serves the embedded practice dashboard page.
type dashboardHandler struct{}

// newDashboardHandler creates a new dashboard handler.
func newDashboardHandler() *dashboardHandler {
	return &dashboardHandler{}
}

// HandleDashboard serves the embedded single-page dashboard. The page pulls
// its data from the JSON endpoints client side.
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, dashboardFS, "dashboard.html")
}

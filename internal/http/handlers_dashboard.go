package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aromabase/aromabase/internal/service"
)

// DashboardServiceInterface is the slice of the dashboard service handlers consume.
type DashboardServiceInterface interface {
	Stats(ctx context.Context) (*service.DashboardStats, error)
	StatsFor(ctx context.Context, userID string) (*service.ContributorStats, error)
}

// DashboardHandlerOptions groups dependencies for DashboardHandler.
type DashboardHandlerOptions struct {
	Dashboard DashboardServiceInterface
	Users     UserDirectory
	Logger    *slog.Logger
}

// DashboardHandler serves the landing-page stat endpoints.
type DashboardHandler struct {
	dashboard DashboardServiceInterface
	users     UserDirectory
	logger    *slog.Logger
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(opts DashboardHandlerOptions) *DashboardHandler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{dashboard: opts.Dashboard, users: opts.Users, logger: logger}
}

// AdminStats handles GET /api/dashboard/admin.
func (h *DashboardHandler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

// ContributorStats handles GET /api/dashboard/contributor. The counts are
// scoped to the caller's own submissions.
func (h *DashboardHandler) ContributorStats(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r.Context(), h.users)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	stats, err := h.dashboard.StatsFor(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

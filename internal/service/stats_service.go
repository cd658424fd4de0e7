package service

import (
	"log/slog"
	"net/http"

	"github.com/estatehub/estatehub/internal/httputil"
	"github.com/estatehub/estatehub/internal/storage"
)

// StatsService serves the administrative analytics endpoints. Both are
// read-only and admin-gated by middleware.
type StatsService struct {
	store storage.Store
}

// NewStatsService creates a new StatsService with the given storage backend.
func NewStatsService(store storage.Store) *StatsService {
	return &StatsService{store: store}
}

// AdminStats returns the account/catalog/order counts and total revenue.
func (s *StatsService) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.AdminStats(r.Context())
	if err != nil {
		slog.Error("Failed to compute admin stats", "error", err)
		httputil.InternalError(w, "failed to compute stats")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}

// OrderStats returns the per-category order quantity and revenue breakdown.
func (s *StatsService) OrderStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.OrderStats(r.Context())
	if err != nil {
		slog.Error("Failed to compute order stats", "error", err)
		httputil.InternalError(w, "failed to compute stats")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}

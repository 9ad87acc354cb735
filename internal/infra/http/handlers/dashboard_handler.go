package handlers

import (
	"net/http"

	"github.com/restroiq/crm-api/internal/infra/logger"
	"github.com/restroiq/crm-api/internal/usecase"
)

type DashboardHandler struct {
	Stats *usecase.DashboardStatsUseCase
}

func NewDashboardHandler(stats *usecase.DashboardStatsUseCase) *DashboardHandler {
	return &DashboardHandler{Stats: stats}
}

// HandleStats serves the dashboard counters. A storage failure degrades to
// all-zero stats instead of blocking the dashboard.
func (h *DashboardHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Stats.Execute(r.Context())
	if err != nil {
		logger.Log.WithError(err).Error("dashboard stats failed, returning zeros")
		writeJSON(w, http.StatusOK, &usecase.DashboardStats{})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

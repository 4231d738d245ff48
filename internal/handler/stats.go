package handler

import (
	"net/http"

	"github.com/aidar/invento-api/internal/service"
)

// StatsHandler обрабатывает эндпоинты статистики
type StatsHandler struct {
	statsService *service.StatsService
	errs         *ErrorResponder
}

// NewStatsHandler создает новый StatsHandler
func NewStatsHandler(statsService *service.StatsService, errs *ErrorResponder) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		errs:         errs,
	}
}

// GetStats обрабатывает GET /api/teams/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.GetStats(r.Context())
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, "", stats)
}

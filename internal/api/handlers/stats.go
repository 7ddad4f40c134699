package handlers

import (
	"net/http"

	"github.com/smartsplit-app/smartsplit-backend/internal/api/dto"
	"github.com/smartsplit-app/smartsplit-backend/internal/domain/money"
	"github.com/smartsplit-app/smartsplit-backend/internal/infrastructure/storage"
)

// StatsHandler handles stats-related HTTP requests.
type StatsHandler struct {
	*Base
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(repo storage.Repository) *StatsHandler {
	return &StatsHandler{
		Base: NewBase(repo),
	}
}

// Get handles GET /api/stats - returns aggregate statistics across all bills.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.GetStats()
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	response := dto.StatsResponse{
		BillCount:             stats.BillCount,
		ItemCount:             stats.ItemCount,
		DinerCount:            stats.DinerCount,
		GrandTotal:            money.Format(stats.GrandTotal),
		GrandTotalWithService: money.Format(stats.GrandTotalWithService),
	}

	h.WriteJSON(w, http.StatusOK, response)
}

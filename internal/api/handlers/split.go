package handlers

import (
	"net/http"

	"github.com/smartsplit-app/smartsplit-backend/internal/api/dto"
	"github.com/smartsplit-app/smartsplit-backend/internal/domain/allocator"
	"github.com/smartsplit-app/smartsplit-backend/internal/domain/money"
	"github.com/smartsplit-app/smartsplit-backend/internal/domain/validator"
	"github.com/smartsplit-app/smartsplit-backend/internal/infrastructure/storage"
)

// SplitHandler serves the computed per-diner breakdown of a bill. Splits
// are never stored; every request recomputes from the current snapshot.
type SplitHandler struct {
	*BillsHandler
}

// NewSplitHandler creates a new split handler.
func NewSplitHandler(repo storage.Repository) *SplitHandler {
	return &SplitHandler{
		BillsHandler: NewBillsHandler(repo, ""),
	}
}

// Get handles GET /api/bills/{id}/split.
func (h *SplitHandler) Get(w http.ResponseWriter, r *http.Request) {
	bill, ok := h.loadBill(w, r)
	if !ok {
		return
	}

	rcpt := bill.Receipt()
	totals := allocator.Split(rcpt, bill.Diners, bill.Assignments)
	validation := validator.ValidateSplit(rcpt, bill.Assignments, totals)

	response := dto.SplitResponse{
		Totals:         make([]dto.DinerTotalResponse, 0, len(totals)),
		ServicePortion: money.Format(rcpt.TotalWithService().Sub(rcpt.Total())),
		Reconciled:     validation.Valid,
		Warning:        validation.Reason,
	}

	for _, dt := range totals {
		response.Totals = append(response.Totals, dto.DinerTotalResponse{
			DinerID:  dt.Diner.ID.String(),
			Name:     dt.Diner.Name,
			Subtotal: money.Format(dt.Subtotal),
			Service:  money.Format(dt.Service),
			Total:    money.Format(dt.Total),
		})
	}

	for _, item := range validation.Unassigned {
		response.UnassignedIDs = append(response.UnassignedIDs, item.ID.String())
	}

	h.WriteJSON(w, http.StatusOK, response)
}

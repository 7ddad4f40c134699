package handlers

import (
	"net/http"

	"github.com/smartsplit-app/smartsplit-backend/internal/api/dto"
	"github.com/smartsplit-app/smartsplit-backend/internal/domain/receipt"
)

// RatesHandler serves the fixed service-charge menu.
type RatesHandler struct {
	*Base
}

// NewRatesHandler creates a new rates handler.
func NewRatesHandler() *RatesHandler {
	return &RatesHandler{Base: &Base{}}
}

// Get handles GET /api/service-rates.
func (h *RatesHandler) Get(w http.ResponseWriter, r *http.Request) {
	rates := receipt.ServiceRates()

	response := dto.ServiceRatesResponse{
		Rates: make([]string, 0, len(rates)),
	}
	for _, rate := range rates {
		response.Rates = append(response.Rates, rate.String())
	}

	h.WriteJSON(w, http.StatusOK, response)
}

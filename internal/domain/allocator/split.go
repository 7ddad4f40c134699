// Package allocator turns a receipt, a diner list, and an item→diner
// assignment into per-diner totals that reconcile with the bill total to
// the last cent.
//
// Two rules keep the sums exact:
//
//   - per item, every assigned diner gets the plain-rounded even share and
//     the last diner in the item's assignment order absorbs the residue
//   - the service charge is distributed proportionally to subtotals, with
//     the last diner in the list adjusted so the shares sum to the exact
//     service portion
package allocator

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartsplit-app/smartsplit-backend/internal/domain/money"
	"github.com/smartsplit-app/smartsplit-backend/internal/domain/receipt"
)

// DinerTotal is one diner's computed share of the bill.
type DinerTotal struct {
	Diner    receipt.Diner
	Subtotal decimal.Decimal
	Service  decimal.Decimal
	Total    decimal.Decimal
}

// Split computes one DinerTotal per diner, preserving diner list order.
//
// It is a pure function of its inputs and total over its domain: items
// without a price or without assignees contribute nothing to any diner
// (their value stays in the bill total), assignment entries for unknown
// item ids are ignored, and shares accumulated for diner ids missing from
// the diner list are simply never emitted.
func Split(r receipt.Receipt, diners []receipt.Diner, assignments receipt.Assignments) []DinerTotal {
	subtotals := make(map[uuid.UUID]decimal.Decimal)

	for _, item := range r.Items {
		if item.Price == nil || !item.Price.IsPositive() {
			continue
		}
		dinerIDs := assignments.DinersFor(item.ID)
		if len(dinerIDs) == 0 {
			continue
		}

		price := *item.Price
		n := decimal.NewFromInt(int64(len(dinerIDs)))
		baseShare := money.RoundPlain(price.Div(n))
		roundedTotal := baseShare.Mul(n)
		residue := money.RoundPlain(price).Sub(roundedTotal)

		for i, dinerID := range dinerIDs {
			share := baseShare
			if i == len(dinerIDs)-1 {
				share = share.Add(residue)
			}
			subtotals[dinerID] = subtotals[dinerID].Add(share)
		}
	}

	subtotalSum := decimal.Zero
	for _, sub := range subtotals {
		subtotalSum = subtotalSum.Add(sub)
	}

	servicePortion := r.TotalWithService().Sub(r.Total())
	hasShares := subtotalSum.IsPositive()

	totals := make([]DinerTotal, 0, len(diners))
	accumulatedService := decimal.Zero
	for i, diner := range diners {
		subtotal := money.RoundBank(subtotals[diner.ID])

		service := decimal.Zero
		if hasShares {
			service = money.RoundPlain(subtotal.Div(subtotalSum).Mul(servicePortion))
			if i == len(diners)-1 {
				// The last diner absorbs the service rounding residue so
				// that the shares sum to the exact service portion.
				residue := money.RoundBank(servicePortion).Sub(accumulatedService.Add(service))
				service = service.Add(residue)
			}
		}
		accumulatedService = accumulatedService.Add(service)

		totals = append(totals, DinerTotal{
			Diner:    diner,
			Subtotal: subtotal,
			Service:  service,
			Total:    subtotal.Add(service),
		})
	}

	return totals
}

// Package validator checks that a computed split reconciles with its
// receipt. It backs the unassigned-items warning clients show before a
// bill is finalized, and guards against allocation drift: once every
// positive-priced item is assigned, the diner totals must sum to the bill
// total with service to the exact cent.
package validator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/smartsplit-app/smartsplit-backend/internal/domain/allocator"
	"github.com/smartsplit-app/smartsplit-backend/internal/domain/money"
	"github.com/smartsplit-app/smartsplit-backend/internal/domain/receipt"
)

// SplitValidation is the result of reconciling a split against its receipt.
type SplitValidation struct {
	// Valid is true when every positive-priced item is assigned and the
	// diner totals sum to the bill total with service exactly.
	Valid bool

	// Expected is the bill total with service charge.
	Expected decimal.Decimal

	// Allocated is the sum of all diner totals.
	Allocated decimal.Decimal

	// Difference is Expected - Allocated.
	Difference decimal.Decimal

	// Unassigned lists positive-priced items no diner is assigned to.
	Unassigned []receipt.LineItem

	// Reason explains why validation failed (empty if valid).
	Reason string
}

// ValidateSplit reconciles the diner totals produced by allocator.Split
// with the receipt they were computed from.
func ValidateSplit(r receipt.Receipt, assignments receipt.Assignments, totals []allocator.DinerTotal) *SplitValidation {
	var unassigned []receipt.LineItem
	unassignedValue := decimal.Zero
	for _, item := range r.Items {
		if item.Price == nil || !item.Price.IsPositive() {
			continue
		}
		if assignments.Unassigned(item.ID) {
			unassigned = append(unassigned, item)
			unassignedValue = unassignedValue.Add(*item.Price)
		}
	}

	allocated := decimal.Zero
	for _, dt := range totals {
		allocated = allocated.Add(dt.Total)
	}

	expected := r.TotalWithService()
	diff := expected.Sub(allocated)

	v := &SplitValidation{
		Expected:   expected,
		Allocated:  allocated,
		Difference: diff,
		Unassigned: unassigned,
	}

	if len(unassigned) > 0 {
		v.Reason = fmt.Sprintf("%d item(s) worth %s are not assigned to any diner",
			len(unassigned), money.Format(unassignedValue))
		return v
	}

	if !diff.IsZero() {
		v.Reason = fmt.Sprintf("diner totals (%s) do not reconcile with the bill total (%s), off by %s",
			money.Format(allocated), money.Format(expected), money.Format(diff))
		return v
	}

	v.Valid = true
	return v
}

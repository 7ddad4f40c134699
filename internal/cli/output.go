package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/smartsplit-app/smartsplit-backend/internal/domain/allocator"
	"github.com/smartsplit-app/smartsplit-backend/internal/domain/money"
	"github.com/smartsplit-app/smartsplit-backend/internal/domain/validator"
)

// PrintBillSummary prints the bill header: title, total and service.
func PrintBillSummary(w io.Writer, bill *Bill) {
	title := bill.Title
	if title == "" {
		title = "Untitled bill"
	}
	fmt.Fprintf(w, "%s (%s)\n", title, bill.Currency)
	fmt.Fprintf(w, "Items: %d | Diners: %d\n", len(bill.Receipt.Items), len(bill.Diners))
	fmt.Fprintf(w, "Total: %s | With service: %s\n",
		money.Format(bill.Receipt.Total()),
		money.Format(bill.Receipt.TotalWithService()))
}

// PrintSplit prints the per-diner breakdown and the reconciliation verdict.
func PrintSplit(w io.Writer, totals []allocator.DinerTotal, validation *validator.SplitValidation) {
	fmt.Fprintln(w, strings.Repeat("-", 52))
	fmt.Fprintf(w, "%-20s %10s %10s %10s\n", "Diner", "Subtotal", "Service", "Total")
	for _, dt := range totals {
		fmt.Fprintf(w, "%-20s %10s %10s %10s\n",
			dt.Diner.Name,
			money.Format(dt.Subtotal),
			money.Format(dt.Service),
			money.Format(dt.Total))
	}
	fmt.Fprintln(w, strings.Repeat("-", 52))
	fmt.Fprintf(w, "%-20s %32s\n", "Allocated", money.Format(validation.Allocated))

	if validation.Valid {
		fmt.Fprintln(w, "\nSplit reconciles with the bill total.")
		return
	}
	fmt.Fprintf(w, "\nWarning: %s\n", validation.Reason)
}

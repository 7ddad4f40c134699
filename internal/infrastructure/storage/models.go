package storage

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartsplit-app/smartsplit-backend/internal/domain/receipt"
)

// BillRecord is a persisted bill: its line items, diners, assignments and
// service-charge rate. Items, diners and assignments are stored as JSON
// blobs; the receipt totals are cached as columns for listing and stats
// but always derivable from the snapshot.
type BillRecord struct {
	ID          string
	Title       string
	Currency    string
	ServiceRate decimal.Decimal

	Items       []receipt.LineItem
	Diners      []receipt.Diner
	Assignments receipt.Assignments

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Receipt reconstructs the domain receipt from the stored snapshot.
func (b *BillRecord) Receipt() receipt.Receipt {
	r := receipt.New(b.Items)
	r.ServiceRate = b.ServiceRate
	return r
}

// Stats holds aggregate statistics across all bills
type Stats struct {
	BillCount             int
	ItemCount             int
	DinerCount            int
	GrandTotal            decimal.Decimal
	GrandTotalWithService decimal.Decimal
}

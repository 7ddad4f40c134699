// Package receipt models a shared bill: an ordered list of priced line
// items plus a service-charge rate, and the assignment of items to diners.
package receipt

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartsplit-app/smartsplit-backend/internal/domain/money"
)

// Limits enforced by the surrounding API layer. The allocation engine
// itself never consults these and behaves correctly for arbitrary counts.
const (
	MaxItems  = 50
	MaxDiners = 20
)

// LineItem is one entry on the bill. A nil Price means the price has not
// been entered yet; it contributes zero to every total.
type LineItem struct {
	ID    uuid.UUID        `json:"id"`
	Name  string           `json:"name"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

// NewLineItem creates a blank item with no price.
func NewLineItem() LineItem {
	return LineItem{ID: uuid.New()}
}

// Diner is one participant splitting the bill. Name uniqueness
// (case-insensitive) and the 20-diner ceiling are API-layer concerns.
type Diner struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// NewDiner creates a diner with the given display name.
func NewDiner(name string) Diner {
	return Diner{ID: uuid.New(), Name: name}
}

// Receipt owns the ordered line items and the service-charge rate.
type Receipt struct {
	Items       []LineItem
	ServiceRate decimal.Decimal
}

// New creates a receipt with a zero service charge.
func New(items []LineItem) Receipt {
	return Receipt{Items: items}
}

// Total is the banker's-rounded sum of all item prices. Items without a
// price count as zero.
func (r Receipt) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.Items {
		if item.Price != nil {
			total = total.Add(*item.Price)
		}
	}
	return money.RoundBank(total)
}

// TotalWithService applies the service-charge rate to the rounded total
// and rounds again. The double rounding is load-bearing: the allocation
// engine derives the service portion as TotalWithService() - Total().
func (r Receipt) TotalWithService() decimal.Decimal {
	one := decimal.NewFromInt(1)
	return money.RoundBank(r.Total().Mul(one.Add(r.ServiceRate)))
}

// ServiceRates returns the fixed menu of service-charge percentages
// offered to clients: 0%, 5%, 7.5%, 10%, 12.5%, 15%, 17.5%, 20%.
func ServiceRates() []decimal.Decimal {
	rates := make([]decimal.Decimal, 0, 8)
	for _, s := range []string{"0", "0.05", "0.075", "0.1", "0.125", "0.15", "0.175", "0.2"} {
		rates = append(rates, decimal.RequireFromString(s))
	}
	return rates
}

package dto

// Monetary values and rates travel as strings so they reach the exact
// decimal layer unchanged; JSON numbers would round-trip through float64.

// CreateBillRequest creates a bill with optional initial items and diners.
type CreateBillRequest struct {
	Title       string              `json:"title"`
	Currency    string              `json:"currency" validate:"omitempty,len=3,alpha"`
	ServiceRate string              `json:"service_rate"`
	Items       []ItemRequest       `json:"items" validate:"max=50,dive"`
	Diners      []DinerRequest      `json:"diners" validate:"max=20,dive"`
	Assignments map[string][]string `json:"assignments"`
}

// UpdateBillRequest replaces a bill's snapshot wholesale.
type UpdateBillRequest struct {
	Title       string              `json:"title"`
	Currency    string              `json:"currency" validate:"omitempty,len=3,alpha"`
	ServiceRate string              `json:"service_rate"`
	Items       []ItemRequest       `json:"items" validate:"max=50,dive"`
	Diners      []DinerRequest      `json:"diners" validate:"max=20,dive"`
	Assignments map[string][]string `json:"assignments"`
}

// ItemRequest is one line item in a create/update request. A nil price
// means not yet entered.
type ItemRequest struct {
	Name  string  `json:"name"`
	Price *string `json:"price"`
}

// DinerRequest is one diner in a create/update request.
type DinerRequest struct {
	Name string `json:"name" validate:"required"`
}

// AddItemsRequest appends items to a bill. With Count set (and no name or
// price) it appends that many blank items, mirroring the add-N gesture.
type AddItemsRequest struct {
	Name  string  `json:"name"`
	Price *string `json:"price"`
	Count int     `json:"count" validate:"omitempty,min=1,max=50"`
}

// UpdateItemRequest edits an item's name and/or price. A nil price clears
// the price back to not-entered.
type UpdateItemRequest struct {
	Name  string  `json:"name"`
	Price *string `json:"price"`
}

// AddDinerRequest adds a diner. An empty name asks the server to pick the
// next suggested "Diner N" name.
type AddDinerRequest struct {
	Name string `json:"name"`
}

// ServiceChargeRequest sets the bill's service-charge rate as a fraction,
// e.g. "0.125" for 12.5%.
type ServiceChargeRequest struct {
	Rate string `json:"rate" validate:"required"`
}

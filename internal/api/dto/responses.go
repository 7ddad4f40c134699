package dto

import "time"

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse creates a healthy response stamped with the current time.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// BillResponse is the full representation of a bill, including receipt
// totals. The computed split is served separately by the split endpoint.
type BillResponse struct {
	ID               string              `json:"id"`
	Title            string              `json:"title"`
	Currency         string              `json:"currency"`
	ServiceRate      string              `json:"service_rate"`
	Items            []ItemResponse      `json:"items"`
	Diners           []DinerResponse     `json:"diners"`
	Assignments      map[string][]string `json:"assignments"`
	Total            string              `json:"total"`
	TotalWithService string              `json:"total_with_service"`
	CreatedAt        string              `json:"created_at"`
	UpdatedAt        string              `json:"updated_at"`
}

// ItemResponse represents one line item.
type ItemResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price *string `json:"price"`
}

// DinerResponse represents one diner.
type DinerResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SplitResponse is the computed per-diner breakdown of a bill.
type SplitResponse struct {
	Totals         []DinerTotalResponse `json:"totals"`
	ServicePortion string               `json:"service_portion"`
	Reconciled     bool                 `json:"reconciled"`
	Warning        string               `json:"warning,omitempty"`
	UnassignedIDs  []string             `json:"unassigned_item_ids,omitempty"`
}

// DinerTotalResponse is one diner's share.
type DinerTotalResponse struct {
	DinerID  string `json:"diner_id"`
	Name     string `json:"name"`
	Subtotal string `json:"subtotal"`
	Service  string `json:"service"`
	Total    string `json:"total"`
}

// BillSummaryResponse is the list-view representation of a bill.
type BillSummaryResponse struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Currency         string `json:"currency"`
	Total            string `json:"total"`
	TotalWithService string `json:"total_with_service"`
	ItemCount        int    `json:"item_count"`
	DinerCount       int    `json:"diner_count"`
	CreatedAt        string `json:"created_at"`
}

// BillListResponse is returned when listing bills.
type BillListResponse struct {
	Bills      []BillSummaryResponse `json:"bills"`
	TotalCount int                   `json:"total_count"`
	Limit      int                   `json:"limit"`
	Offset     int                   `json:"offset"`
}

// ServiceRatesResponse lists the service-charge menu offered to clients.
type ServiceRatesResponse struct {
	Rates []string `json:"rates"`
}

// StatsResponse is returned by the stats endpoint.
type StatsResponse struct {
	BillCount             int    `json:"bill_count"`
	ItemCount             int    `json:"item_count"`
	DinerCount            int    `json:"diner_count"`
	GrandTotal            string `json:"grand_total"`
	GrandTotalWithService string `json:"grand_total_with_service"`
}

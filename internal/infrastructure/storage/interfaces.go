package storage

import "errors"

// ErrBillNotFound is returned when a bill id does not exist.
var ErrBillNotFound = errors.New("bill not found")

// Repository defines the complete storage interface.
// This interface allows swapping implementations (SQLite, PostgreSQL, etc.)
// and makes testing with mocks straightforward.
type Repository interface {
	BillRepository
	Close() error
}

// BillRepository handles bill persistence. Computed per-diner splits are
// never stored; they are recomputed from the bill snapshot on every read.
type BillRepository interface {
	// SaveBill inserts or updates a bill
	SaveBill(bill *BillRecord) error

	// GetBill retrieves a bill by id
	GetBill(id string) (*BillRecord, error)

	// ListBills returns bills ordered by creation time, newest first
	ListBills(limit, offset int) (*BillListResult, error)

	// DeleteBill removes a bill
	DeleteBill(id string) error

	// GetStats returns aggregate statistics across all bills
	GetStats() (*Stats, error)
}

// BillListResult contains paginated bill results
type BillListResult struct {
	Bills      []*BillRecord
	TotalCount int
	Limit      int
	Offset     int
}

package storage

import (
	"sort"

	"github.com/shopspring/decimal"
)

// MockRepository is an in-memory implementation of Repository for testing.
type MockRepository struct {
	bills map[string]*BillRecord
	order []string // insertion order, newest listed first

	// Hooks for test assertions
	SaveBillCalled bool
	LastSavedBill  *BillRecord
	GetBillCalled  bool
	DeleteCalled   bool

	// Error injection for testing error paths
	SaveBillErr  error
	GetBillErr   error
	ListBillsErr error
	DeleteErr    error
	GetStatsErr  error
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates a new mock repository for testing
func NewMockRepository() *MockRepository {
	return &MockRepository{
		bills: make(map[string]*BillRecord),
	}
}

// Close does nothing for mock
func (m *MockRepository) Close() error {
	return nil
}

// SaveBill saves a bill to the in-memory map
func (m *MockRepository) SaveBill(bill *BillRecord) error {
	m.SaveBillCalled = true
	m.LastSavedBill = bill
	if m.SaveBillErr != nil {
		return m.SaveBillErr
	}
	if _, exists := m.bills[bill.ID]; !exists {
		m.order = append(m.order, bill.ID)
	}
	m.bills[bill.ID] = bill
	return nil
}

// GetBill retrieves a bill from the in-memory map
func (m *MockRepository) GetBill(id string) (*BillRecord, error) {
	m.GetBillCalled = true
	if m.GetBillErr != nil {
		return nil, m.GetBillErr
	}
	bill, ok := m.bills[id]
	if !ok {
		return nil, ErrBillNotFound
	}
	return bill, nil
}

// ListBills lists bills newest first
func (m *MockRepository) ListBills(limit, offset int) (*BillListResult, error) {
	if m.ListBillsErr != nil {
		return nil, m.ListBillsErr
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	ids := make([]string, len(m.order))
	copy(ids, m.order)
	sort.SliceStable(ids, func(i, j int) bool {
		return m.bills[ids[i]].CreatedAt.After(m.bills[ids[j]].CreatedAt)
	})

	bills := make([]*BillRecord, 0, limit)
	for i := offset; i < len(ids) && len(bills) < limit; i++ {
		bills = append(bills, m.bills[ids[i]])
	}

	return &BillListResult{
		Bills:      bills,
		TotalCount: len(m.order),
		Limit:      limit,
		Offset:     offset,
	}, nil
}

// DeleteBill removes a bill from the in-memory map
func (m *MockRepository) DeleteBill(id string) error {
	m.DeleteCalled = true
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	if _, ok := m.bills[id]; !ok {
		return ErrBillNotFound
	}
	delete(m.bills, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// GetStats aggregates stats over the in-memory bills
func (m *MockRepository) GetStats() (*Stats, error) {
	if m.GetStatsErr != nil {
		return nil, m.GetStatsErr
	}
	stats := &Stats{
		GrandTotal:            decimal.Zero,
		GrandTotalWithService: decimal.Zero,
	}
	for _, bill := range m.bills {
		r := bill.Receipt()
		stats.BillCount++
		stats.ItemCount += len(bill.Items)
		stats.DinerCount += len(bill.Diners)
		stats.GrandTotal = stats.GrandTotal.Add(r.Total())
		stats.GrandTotalWithService = stats.GrandTotalWithService.Add(r.TotalWithService())
	}
	return stats, nil
}

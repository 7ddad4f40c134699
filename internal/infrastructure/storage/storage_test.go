package storage

import (
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartsplit-app/smartsplit-backend/internal/domain/receipt"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "smartsplit_test_*.db")
	require.NoError(t, err)
	tmpFile.Close()

	store, err := NewStorage(tmpFile.Name())
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
		os.Remove(tmpFile.Name())
	})

	return store
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func testBill() *BillRecord {
	pasta := receipt.LineItem{ID: uuid.New(), Name: "Pasta", Price: price("10.00")}
	water := receipt.LineItem{ID: uuid.New(), Name: "Water"}
	alex := receipt.NewDiner("Alex")
	sam := receipt.NewDiner("Sam")

	return &BillRecord{
		ID:          uuid.NewString(),
		Title:       "Friday dinner",
		Currency:    "GBP",
		ServiceRate: decimal.RequireFromString("0.125"),
		Items:       []receipt.LineItem{pasta, water},
		Diners:      []receipt.Diner{alex, sam},
		Assignments: receipt.Assignments{pasta.ID: {alex.ID, sam.ID}},
	}
}

func TestSaveAndGetBill(t *testing.T) {
	store := newTestStorage(t)
	bill := testBill()

	require.NoError(t, store.SaveBill(bill))
	assert.False(t, bill.CreatedAt.IsZero(), "SaveBill sets CreatedAt")

	got, err := store.GetBill(bill.ID)
	require.NoError(t, err)

	assert.Equal(t, bill.ID, got.ID)
	assert.Equal(t, "Friday dinner", got.Title)
	assert.Equal(t, "GBP", got.Currency)
	assert.True(t, got.ServiceRate.Equal(decimal.RequireFromString("0.125")))
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Pasta", got.Items[0].Name)
	assert.True(t, got.Items[0].Price.Equal(decimal.RequireFromString("10.00")))
	assert.Nil(t, got.Items[1].Price, "nil price survives the round trip")
	require.Len(t, got.Diners, 2)

	// Assignment order survives the round trip; the allocator depends on it.
	assert.Equal(t, bill.Assignments[bill.Items[0].ID], got.Assignments[bill.Items[0].ID])
}

func TestGetBillNotFound(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.GetBill("nope")
	assert.ErrorIs(t, err, ErrBillNotFound)
}

func TestSaveBillUpdatesExisting(t *testing.T) {
	store := newTestStorage(t)
	bill := testBill()
	require.NoError(t, store.SaveBill(bill))

	bill.Title = "Renamed"
	bill.ServiceRate = decimal.Zero
	require.NoError(t, store.SaveBill(bill))

	got, err := store.GetBill(bill.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.True(t, got.ServiceRate.IsZero())

	list, err := store.ListBills(10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, list.TotalCount, "update must not create a second row")
}

func TestDeleteBill(t *testing.T) {
	store := newTestStorage(t)
	bill := testBill()
	require.NoError(t, store.SaveBill(bill))

	require.NoError(t, store.DeleteBill(bill.ID))

	_, err := store.GetBill(bill.ID)
	assert.ErrorIs(t, err, ErrBillNotFound)

	assert.ErrorIs(t, store.DeleteBill(bill.ID), ErrBillNotFound)
}

func TestListBillsPagination(t *testing.T) {
	store := newTestStorage(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.SaveBill(testBill()))
	}

	list, err := store.ListBills(2, 0)
	require.NoError(t, err)
	assert.Len(t, list.Bills, 2)
	assert.Equal(t, 5, list.TotalCount)
	assert.Equal(t, 2, list.Limit)

	rest, err := store.ListBills(10, 4)
	require.NoError(t, err)
	assert.Len(t, rest.Bills, 1)
}

func TestGetStats(t *testing.T) {
	store := newTestStorage(t)

	stats, err := store.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.BillCount)
	assert.True(t, stats.GrandTotal.IsZero())

	require.NoError(t, store.SaveBill(testBill()))
	require.NoError(t, store.SaveBill(testBill()))

	stats, err = store.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.BillCount)
	assert.Equal(t, 4, stats.ItemCount)
	assert.Equal(t, 4, stats.DinerCount)
	// Each bill: total 10.00, with 12.5% service 11.25.
	assert.True(t, stats.GrandTotal.Equal(decimal.RequireFromString("20.00")))
	assert.True(t, stats.GrandTotalWithService.Equal(decimal.RequireFromString("22.50")))
}

func TestMigrationsAreIdempotent(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "smartsplit_migrate_*.db")
	require.NoError(t, err)
	tmpFile.Close()
	defer os.Remove(tmpFile.Name())

	store, err := NewStorage(tmpFile.Name())
	require.NoError(t, err)
	require.NoError(t, store.SaveBill(testBill()))
	require.NoError(t, store.Close())

	// Reopening runs migrations again; already-applied versions are skipped.
	store, err = NewStorage(tmpFile.Name())
	require.NoError(t, err)
	defer store.Close()

	stats, err := store.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.BillCount)
}

package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartsplit-app/smartsplit-backend/internal/api/dto"
	"github.com/smartsplit-app/smartsplit-backend/internal/api/handlers"
	"github.com/smartsplit-app/smartsplit-backend/internal/domain/receipt"
	"github.com/smartsplit-app/smartsplit-backend/internal/infrastructure/storage"
)

func TestSplitHandler_Get(t *testing.T) {
	t.Run("returns 404 for unknown bill", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := handlers.NewSplitHandler(repo)

		req := httptest.NewRequest(http.MethodGet, "/api/bills/missing/split", nil)
		req = withURLParams(req, map[string]string{"id": "missing"})
		rec := httptest.NewRecorder()

		handler.Get(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("computes a reconciled split for a fully assigned bill", func(t *testing.T) {
		repo := storage.NewMockRepository()

		item := receipt.NewLineItem()
		item.Name = "Tasting menu"
		price := decimal.RequireFromString("10.00")
		item.Price = &price

		alice := receipt.NewDiner("Alice")
		bob := receipt.NewDiner("Bob")
		carol := receipt.NewDiner("Carol")

		bill := &storage.BillRecord{
			ID:          "bill-split",
			Title:       "Tasting",
			Currency:    "GBP",
			ServiceRate: decimal.RequireFromString("0.1"),
			Items:       []receipt.LineItem{item},
			Diners:      []receipt.Diner{alice, bob, carol},
			Assignments: receipt.Assignments{
				item.ID: {alice.ID, bob.ID, carol.ID},
			},
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		}
		require.NoError(t, repo.SaveBill(bill))

		handler := handlers.NewSplitHandler(repo)

		req := httptest.NewRequest(http.MethodGet, "/api/bills/bill-split/split", nil)
		req = withURLParams(req, map[string]string{"id": "bill-split"})
		rec := httptest.NewRecorder()

		handler.Get(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var response dto.SplitResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))

		assert.True(t, response.Reconciled)
		assert.Empty(t, response.Warning)
		assert.Empty(t, response.UnassignedIDs)
		assert.Equal(t, "1.00", response.ServicePortion)

		require.Len(t, response.Totals, 3)
		assert.Equal(t, "Alice", response.Totals[0].Name)
		assert.Equal(t, "3.33", response.Totals[0].Subtotal)
		assert.Equal(t, "0.33", response.Totals[0].Service)
		assert.Equal(t, "3.66", response.Totals[0].Total)
		assert.Equal(t, "3.33", response.Totals[1].Subtotal)
		assert.Equal(t, "0.33", response.Totals[1].Service)
		// last diner absorbs both residues
		assert.Equal(t, "3.34", response.Totals[2].Subtotal)
		assert.Equal(t, "0.34", response.Totals[2].Service)
		assert.Equal(t, "3.68", response.Totals[2].Total)
	})

	t.Run("reports unassigned items instead of reconciling", func(t *testing.T) {
		repo := storage.NewMockRepository()
		bill := seedBill(t, repo)
		handler := handlers.NewSplitHandler(repo)

		req := httptest.NewRequest(http.MethodGet, "/api/bills/"+bill.ID+"/split", nil)
		req = withURLParams(req, map[string]string{"id": bill.ID})
		rec := httptest.NewRecorder()

		handler.Get(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var response dto.SplitResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))

		assert.False(t, response.Reconciled)
		assert.NotEmpty(t, response.Warning)
		// the two priced items are unassigned; the blank one is not counted
		require.Len(t, response.UnassignedIDs, 2)
		assert.Contains(t, response.UnassignedIDs, bill.Items[0].ID.String())
		assert.Contains(t, response.UnassignedIDs, bill.Items[1].ID.String())

		for _, total := range response.Totals {
			assert.Equal(t, "0.00", total.Subtotal)
		}
	})
}

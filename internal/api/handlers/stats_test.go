package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartsplit-app/smartsplit-backend/internal/api/dto"
	"github.com/smartsplit-app/smartsplit-backend/internal/api/handlers"
	"github.com/smartsplit-app/smartsplit-backend/internal/infrastructure/storage"
)

func TestStatsHandler_Get(t *testing.T) {
	t.Run("returns aggregate totals", func(t *testing.T) {
		repo := storage.NewMockRepository()
		seedBill(t, repo)
		handler := handlers.NewStatsHandler(repo)

		req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
		rec := httptest.NewRecorder()

		handler.Get(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var response dto.StatsResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, 1, response.BillCount)
		assert.Equal(t, 3, response.ItemCount)
		assert.Equal(t, 2, response.DinerCount)
		assert.Equal(t, "18.50", response.GrandTotal)
		assert.Equal(t, "20.35", response.GrandTotalWithService)
	})

	t.Run("maps repository failure to 500", func(t *testing.T) {
		repo := storage.NewMockRepository()
		repo.GetStatsErr = errors.New("db gone")
		handler := handlers.NewStatsHandler(repo)

		req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
		rec := httptest.NewRecorder()

		handler.Get(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartsplit-app/smartsplit-backend/internal/api/dto"
	"github.com/smartsplit-app/smartsplit-backend/internal/api/handlers"
)

func TestRatesHandler_Get(t *testing.T) {
	handler := handlers.NewRatesHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/service-rates", nil)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.ServiceRatesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, []string{"0", "0.05", "0.075", "0.1", "0.125", "0.15", "0.175", "0.2"}, response.Rates)
}

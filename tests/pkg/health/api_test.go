package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgaultier/taxiresa/pkg/health"
)

func TestHealthGet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	rr := httptest.NewRecorder()

	health.HealthGet()(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var got health.HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "healthy", got.Status)
	assert.NotEmpty(t, got.Timestamp)
	assert.NotEmpty(t, got.Uptime)
	assert.NotEmpty(t, got.GoVersion)
}

func TestHealthGetMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/health", nil)
	rr := httptest.NewRecorder()

	health.HealthGet()(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/health")

	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[HealthResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.True(t, envelope.Success)
	assert.Equal(t, "healthy", envelope.Data.Status)

	db, ok := envelope.Data.Components["database"]
	require.True(t, ok, "health response must include the database component")
	assert.Equal(t, "healthy", db.Status)
	assert.NotEmpty(t, db.Latency)

	catalog, ok := envelope.Data.Components["catalog"]
	require.True(t, ok, "health response must include the catalog component")
	assert.Equal(t, "healthy", catalog.Status)
}

func TestHealthCheck_NoAuthRequired(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	// No Authorization header at all.
	resp := ts.api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)
}

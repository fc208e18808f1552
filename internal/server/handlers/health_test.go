package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newHealthRouter(t *testing.T, checks ...ReadinessCheck) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewHealthHandler(zaptest.NewLogger(t), checks...)
	r := gin.New()
	r.GET("/health", h.Health)
	r.GET("/health/live", h.Liveness)
	r.GET("/health/ready", h.Readiness)
	return r
}

func decodeHealth(t *testing.T, body []byte) HealthResponse {
	t.Helper()
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestHealth_AllChecksPass(t *testing.T) {
	r := newHealthRouter(t, func() string { return "" })

	live := get(r, "/health/live", nil)
	assert.Equal(t, http.StatusOK, live.Code)
	assert.Equal(t, "alive", decodeHealth(t, live.Body.Bytes()).Status)

	ready := get(r, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, ready.Code)
	assert.Equal(t, "ready", decodeHealth(t, ready.Body.Bytes()).Status)

	health := get(r, "/health", nil)
	assert.Equal(t, http.StatusOK, health.Code)
	resp := decodeHealth(t, health.Body.Bytes())
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Timestamp)
	assert.Empty(t, resp.Reason)
}

func TestHealth_FailingCheck(t *testing.T) {
	r := newHealthRouter(t,
		func() string { return "" },
		func() string { return "forecast service key is not configured" },
	)

	ready := get(r, "/health/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, ready.Code)
	resp := decodeHealth(t, ready.Body.Bytes())
	assert.Equal(t, "unavailable", resp.Status)
	assert.Equal(t, "forecast service key is not configured", resp.Reason)

	health := get(r, "/health", nil)
	assert.Equal(t, http.StatusOK, health.Code)
	assert.Equal(t, "degraded", decodeHealth(t, health.Body.Bytes()).Status)

	// liveness ignores readiness checks
	assert.Equal(t, http.StatusOK, get(r, "/health/live", nil).Code)
}

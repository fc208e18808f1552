package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReadinessCheck reports why the service cannot serve forecasts yet, or
// the empty string when it can.
type ReadinessCheck func() string

type HealthHandler struct {
	logger    *zap.Logger
	startTime time.Time
	checks    []ReadinessCheck
}

func NewHealthHandler(logger *zap.Logger, checks ...ReadinessCheck) *HealthHandler {
	return &HealthHandler{
		logger:    logger,
		startTime: time.Now(),
		checks:    checks,
	}
}

func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "alive",
		Uptime: time.Since(h.startTime).String(),
	})
}

func (h *HealthHandler) Readiness(c *gin.Context) {
	if reason := h.notReadyReason(); reason != "" {
		h.logger.Warn("Readiness check failed", zap.String("reason", reason))
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status: "unavailable",
			Uptime: time.Since(h.startTime).String(),
			Reason: reason,
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status: "ready",
		Uptime: time.Since(h.startTime).String(),
	})
}

// Health stays 200 while reporting degraded state so probes that only look
// at liveness are not tripped by a missing credential.
func (h *HealthHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "ok",
		Uptime:    time.Since(h.startTime).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if reason := h.notReadyReason(); reason != "" {
		resp.Status = "degraded"
		resp.Reason = reason
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HealthHandler) notReadyReason() string {
	for _, check := range h.checks {
		if reason := check(); reason != "" {
			return reason
		}
	}
	return ""
}

package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type MetricsHandler struct {
	logger  *zap.Logger
	handler gin.HandlerFunc
}

// NewMetricsHandler exposes gatherer in the Prometheus text format.
func NewMetricsHandler(logger *zap.Logger, gatherer prometheus.Gatherer) *MetricsHandler {
	return &MetricsHandler{
		logger: logger,
		handler: gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
			ErrorLog:      zap.NewStdLog(logger),
			ErrorHandling: promhttp.ContinueOnError,
		})),
	}
}

func (h *MetricsHandler) ServeMetrics(c *gin.Context) {
	h.handler(c)
}

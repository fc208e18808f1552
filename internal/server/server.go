package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/kimjbstar/korea-public-village-forecast/internal/config"
	"github.com/kimjbstar/korea-public-village-forecast/internal/forecast"
	"github.com/kimjbstar/korea-public-village-forecast/internal/observability"
	"github.com/kimjbstar/korea-public-village-forecast/internal/server/handlers"
	"github.com/kimjbstar/korea-public-village-forecast/internal/server/middlewares"
	"github.com/kimjbstar/korea-public-village-forecast/pkg/telemetry"
)

type Server struct {
	cfg      *config.Config
	engine   *gin.Engine
	server   *http.Server
	client   handlers.ForecastService
	registry *prometheus.Registry
	logger   *zap.Logger
	tele     *telemetry.Telemetry
}

// NewServer wires a forecast client built from cfg into the HTTP front.
func NewServer(cfg *config.Config, logger *zap.Logger, tele *telemetry.Telemetry) *Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(registry)

	client := forecast.NewClientWithConfig(cfg.Forecast, logger, tele)
	client.SetMetricsRecorder(metrics)

	return newServer(cfg, client, registry, metrics, logger, tele)
}

func newServer(
	cfg *config.Config,
	client handlers.ForecastService,
	registry *prometheus.Registry,
	metrics *observability.Metrics,
	logger *zap.Logger,
	tele *telemetry.Telemetry,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middlewares.RequestIDMiddleware())
	engine.Use(middlewares.LoggingMiddleware(logger))
	engine.Use(middlewares.RecoveryMiddleware(logger, true))
	engine.Use(middlewares.MetricsMiddleware(metrics))
	engine.Use(middlewares.TelemetryMiddleware(logger, tele))

	s := &Server{
		cfg:      cfg,
		engine:   engine,
		client:   client,
		registry: registry,
		logger:   logger,
		tele:     tele,
	}
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	forecastHandler := handlers.NewForecastHandler(s.client, s.logger)

	v1 := s.engine.Group("/v1")
	v1.GET("/observation", forecastHandler.GetObservation)
	v1.GET("/forecast/ultra", forecastHandler.GetShortTermForecast)
	v1.GET("/forecast/village", forecastHandler.GetVillageForecast)
	v1.GET("/version", forecastHandler.GetVersion)
	v1.GET("/grid", forecastHandler.GetGrid)
	v1.GET("/latlng", forecastHandler.GetLatLng)

	// Health endpoints (Kubernetes friendly)
	health := handlers.NewHealthHandler(s.logger, s.credentialCheck)
	s.engine.GET("/health", health.Health)
	s.engine.GET("/health/live", health.Liveness)
	s.engine.GET("/health/ready", health.Readiness)

	s.engine.GET("/metrics", handlers.NewMetricsHandler(s.logger, s.registry).ServeMetrics)
}

func (s *Server) credentialCheck() string {
	if s.cfg.Forecast.APIKey == "" {
		return "forecast service key is not configured"
	}
	return ""
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port),
		Handler:      s.engine,
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.Server.IdleTimeout) * time.Second,
	}

	s.logger.Info("Starting server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

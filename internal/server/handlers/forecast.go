package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kimjbstar/korea-public-village-forecast/internal/forecast"
	"github.com/kimjbstar/korea-public-village-forecast/internal/grid"
	"github.com/kimjbstar/korea-public-village-forecast/internal/server/utils"
)

// ForecastService is the subset of *forecast.Client the handlers use.
type ForecastService interface {
	FetchObservation(ctx context.Context, req forecast.Request) (*forecast.ObservationResult, error)
	FetchForecastShortTerm(ctx context.Context, req forecast.Request) (*forecast.ForecastResult, error)
	FetchForecastVillage(ctx context.Context, req forecast.Request) (*forecast.ForecastResult, error)
	FetchVersion(ctx context.Context, req forecast.VersionRequest) (*forecast.VersionResult, error)
	Projection() grid.Projection
}

type ForecastHandler struct {
	client ForecastService
	logger *zap.Logger
}

func NewForecastHandler(client ForecastService, logger *zap.Logger) *ForecastHandler {
	return &ForecastHandler{
		client: client,
		logger: logger,
	}
}

func (h *ForecastHandler) GetObservation(c *gin.Context) {
	ctx, reqLogger, req, ok := h.bindForecast(c)
	if !ok {
		return
	}

	res, err := h.client.FetchObservation(ctx, req)
	if err != nil {
		h.writeError(c, reqLogger, err)
		return
	}

	reqLogger.Info("Observation request completed", zap.Int("items", len(res.Items)))
	c.JSON(http.StatusOK, res)
}

func (h *ForecastHandler) GetShortTermForecast(c *gin.Context) {
	h.getForecast(c, h.client.FetchForecastShortTerm)
}

func (h *ForecastHandler) GetVillageForecast(c *gin.Context) {
	h.getForecast(c, h.client.FetchForecastVillage)
}

type fetchForecastFunc func(ctx context.Context, req forecast.Request) (*forecast.ForecastResult, error)

func (h *ForecastHandler) getForecast(c *gin.Context, fetch fetchForecastFunc) {
	ctx, reqLogger, req, ok := h.bindForecast(c)
	if !ok {
		return
	}

	res, err := fetch(ctx, req)
	if err != nil {
		h.writeError(c, reqLogger, err)
		return
	}

	reqLogger.Info("Forecast request completed", zap.Int("buckets", len(res.Forecasts)))
	c.JSON(http.StatusOK, res)
}

func (h *ForecastHandler) GetVersion(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)
	reqLogger := h.logger.With(zap.String("request_id", utils.GetRequestIDFromGinContext(c)))

	var req VersionRequest
	if !bindQuery(c, reqLogger, &req) {
		return
	}
	at, err := forecast.ParseTime(req.Time)
	if err != nil {
		badRequest(c, reqLogger, err)
		return
	}

	res, err := h.client.FetchVersion(ctx, forecast.VersionRequest{
		Type: forecast.FileType(req.Type),
		Time: at,
	})
	if err != nil {
		h.writeError(c, reqLogger, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// GetGrid converts lat/lng to a grid cell.
func (h *ForecastHandler) GetGrid(c *gin.Context) {
	reqLogger := h.logger.With(zap.String("request_id", utils.GetRequestIDFromGinContext(c)))

	var req GridRequest
	if !bindQuery(c, reqLogger, &req) {
		return
	}

	c.JSON(http.StatusOK, h.client.Projection().ToGrid(*req.Lat, *req.Lng))
}

// GetLatLng converts a grid cell to lat/lng.
func (h *ForecastHandler) GetLatLng(c *gin.Context) {
	reqLogger := h.logger.With(zap.String("request_id", utils.GetRequestIDFromGinContext(c)))

	var req CellRequest
	if !bindQuery(c, reqLogger, &req) {
		return
	}

	c.JSON(http.StatusOK, h.client.Projection().ToLatLng(*req.NX, *req.NY))
}

func (h *ForecastHandler) bindForecast(c *gin.Context) (context.Context, *zap.Logger, forecast.Request, bool) {
	ctx := utils.GetContextFromGinContext(c)
	reqLogger := h.logger.With(zap.String("request_id", utils.GetRequestIDFromGinContext(c)))

	var req ForecastRequest
	if !bindQuery(c, reqLogger, &req) {
		return ctx, reqLogger, forecast.Request{}, false
	}

	at, err := forecast.ParseTime(req.Time)
	if err != nil {
		badRequest(c, reqLogger, err)
		return ctx, reqLogger, forecast.Request{}, false
	}

	reqLogger.Info("Processing forecast request",
		zap.String("path", c.FullPath()),
		zap.Float64("lat", *req.Lat),
		zap.Float64("lng", *req.Lng))

	return ctx, reqLogger, forecast.Request{
		Lat:       *req.Lat,
		Lng:       *req.Lng,
		Time:      at,
		NumOfRows: req.Rows,
		PageNo:    req.Page,
	}, true
}

func bindQuery(c *gin.Context, reqLogger *zap.Logger, dst interface{}) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		badRequest(c, reqLogger, err)
		return false
	}
	if fields := utils.ValidateStruct(dst); len(fields) > 0 {
		reqLogger.Warn("Invalid request parameters", zap.Int("invalid_fields", len(fields)))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:  "Invalid request parameters",
			Code:   "INVALID_PARAMS",
			Fields: fields,
		})
		return false
	}
	return true
}

func badRequest(c *gin.Context, reqLogger *zap.Logger, err error) {
	reqLogger.Warn("Invalid request parameters", zap.Error(err))
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "Invalid request parameters",
		Code:    "INVALID_PARAMS",
		Details: err.Error(),
	})
}

// writeError maps client errors onto HTTP statuses.
func (h *ForecastHandler) writeError(c *gin.Context, reqLogger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	resp := ErrorResponse{Error: "Failed to fetch forecast", Code: "INTERNAL_ERROR", Details: err.Error()}

	var providerErr *forecast.ProviderError
	var transportErr *forecast.TransportError

	switch {
	case errors.Is(err, forecast.ErrMissingCredential):
		status = http.StatusServiceUnavailable
		resp.Code = "MISSING_CREDENTIAL"
		resp.Details = "forecast service key is not configured"
	case errors.Is(err, forecast.ErrMalformedEnvelope):
		status = http.StatusBadGateway
		resp.Code = "MALFORMED_RESPONSE"
	case errors.Is(err, forecast.ErrEmptyResult):
		status = http.StatusNotFound
		resp.Code = "NO_DATA"
	case errors.As(err, &providerErr):
		status = http.StatusBadGateway
		resp.Code = "PROVIDER_" + providerErr.Code
		resp.Details = providerErr.Message
	case errors.As(err, &transportErr):
		status = http.StatusBadGateway
		resp.Code = "TRANSPORT_ERROR"
		if transportErr.Timeout() {
			status = http.StatusGatewayTimeout
			resp.Code = "TIMEOUT"
		}
	}

	reqLogger.Error("Failed to fetch forecast",
		zap.Int("status", status),
		zap.String("code", resp.Code),
		zap.Error(err))
	c.JSON(status, resp)
}

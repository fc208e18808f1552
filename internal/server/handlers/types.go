package handlers

import "github.com/kimjbstar/korea-public-village-forecast/internal/server/utils"

// ForecastRequest selects a location and release for the observation and forecast endpoints.
// Coordinates are pointers so that an explicit 0 counts as present.
type ForecastRequest struct {
	Lat  *float64 `form:"lat" json:"lat" validate:"required,latitude"`
	Lng  *float64 `form:"lng" json:"lng" validate:"required,longitude"`
	Time string   `form:"time" json:"time" validate:"omitempty,max=32"`
	Rows int      `form:"rows" json:"rows" validate:"omitempty,min=1,max=10000"`
	Page int      `form:"page" json:"page" validate:"omitempty,min=1"`
}

type VersionRequest struct {
	Type string `form:"type" json:"type" validate:"required,oneof=ODAM VSRT SHRT"`
	Time string `form:"time" json:"time" validate:"omitempty,max=32"`
}

type GridRequest struct {
	Lat *float64 `form:"lat" json:"lat" validate:"required,latitude"`
	Lng *float64 `form:"lng" json:"lng" validate:"required,longitude"`
}

// CellRequest accepts any integer cell; configured projections may place
// points at zero or negative indices.
type CellRequest struct {
	NX *int `form:"nx" json:"nx" validate:"required"`
	NY *int `form:"ny" json:"ny" validate:"required"`
}

type ErrorResponse struct {
	Error   string                  `json:"error"`
	Code    string                  `json:"code,omitempty"`
	Details string                  `json:"details,omitempty"`
	Fields  []utils.ValidationError `json:"fields,omitempty"`
}

// HealthResponse.Status is one of ok, degraded, unavailable, alive or ready.
type HealthResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

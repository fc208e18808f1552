package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pointQuery struct {
	Lat  *float64 `form:"lat" validate:"required,latitude"`
	Lng  *float64 `form:"lng" validate:"required,longitude"`
	Kind string   `form:"kind" validate:"omitempty,oneof=ultra village"`
	Rows int      `form:"rows" validate:"omitempty,min=1"`
}

func f64(v float64) *float64 { return &v }

func TestValidateStruct_Valid(t *testing.T) {
	assert.Nil(t, ValidateStruct(pointQuery{Lat: f64(37.5), Lng: f64(127)}))
	assert.Nil(t, ValidateStruct(pointQuery{Lat: f64(0), Lng: f64(0)}), "zero is a coordinate, not a missing value")
	assert.Nil(t, ValidateStruct(pointQuery{Lat: f64(-90), Lng: f64(180), Kind: "village", Rows: 5}))
}

func TestValidateStruct_Errors(t *testing.T) {
	tests := []struct {
		name    string
		query   pointQuery
		field   string
		tag     string
		message string
	}{
		{"missing lat", pointQuery{Lng: f64(127)}, "lat", "required", "lat is required"},
		{"lat out of range", pointQuery{Lat: f64(91), Lng: f64(127)}, "lat", "latitude", "lat must be a latitude between -90 and 90 degrees"},
		{"lng out of range", pointQuery{Lat: f64(37), Lng: f64(-181)}, "lng", "longitude", "lng must be a longitude between -180 and 180 degrees"},
		{"unknown kind", pointQuery{Lat: f64(37), Lng: f64(127), Kind: "monthly"}, "kind", "oneof", "kind must be one of: ultra village"},
		{"rows below one", pointQuery{Lat: f64(37), Lng: f64(127), Rows: -2}, "rows", "min", "rows must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStruct(tt.query)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
			assert.Equal(t, tt.tag, errs[0].Tag)
			assert.Equal(t, tt.message, errs[0].Message)
		})
	}
}

package grid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatLngToGrid_Origin(t *testing.T) {
	assert.Equal(t, Point{NX: 43, NY: 136}, LatLngToGrid(38.0, 126.0))
}

func TestLatLngToGrid_KnownCells(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng float64
		want     Point
	}{
		{"seoul city hall", 37.5665, 126.978, Point{NX: 60, NY: 127}},
		{"busan", 35.1796, 129.0756, Point{NX: 98, NY: 76}},
		{"jeju", 33.4996, 126.5312, Point{NX: 53, NY: 38}},
		{"bupyeong", 37.4871167, 126.7274377, Point{NX: 56, NY: 125}},
		{"daejeon", 36.3504, 127.3845, Point{NX: 67, NY: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LatLngToGrid(tt.lat, tt.lng))
		})
	}
}

func TestGridToLatLng_Origin(t *testing.T) {
	c := GridToLatLng(43, 136)
	assert.InDelta(t, 38.0, c.Lat, 1e-9)
	assert.InDelta(t, 126.0, c.Lng, 1e-9)
}

func TestRoundTrip_WithinHalfCell(t *testing.T) {
	// Half of a 5 km cell is roughly 0.022 degrees of latitude; longitude
	// degrees are shorter at these latitudes, so allow a little more slack.
	const tolerance = 0.03

	points := []Coordinate{
		{Lat: 37.5665, Lng: 126.978},
		{Lat: 35.1796, Lng: 129.0756},
		{Lat: 33.4996, Lng: 126.5312},
		{Lat: 35.8714, Lng: 128.6014},
		{Lat: 36.3504, Lng: 127.3845},
		{Lat: 38.2, Lng: 128.59},
		{Lat: 35.1595, Lng: 126.8526},
	}

	for _, p := range points {
		cell := LatLngToGrid(p.Lat, p.Lng)
		back := GridToLatLng(cell.NX, cell.NY)
		assert.InDelta(t, p.Lat, back.Lat, tolerance, "lat for %+v via %+v", p, cell)
		assert.InDelta(t, p.Lng, back.Lng, tolerance, "lng for %+v via %+v", p, cell)
	}
}

func TestToLatLng_BearingSymmetry(t *testing.T) {
	p := KMA()

	// On the origin column the bearing is zero, so longitude is the origin's.
	c := p.ToLatLng(p.OriginX, 100)
	assert.InDelta(t, p.OriginLng, c.Lng, 1e-9)

	east := p.ToLatLng(p.OriginX+10, 100)
	west := p.ToLatLng(p.OriginX-10, 100)
	assert.InDelta(t, east.Lat, west.Lat, 1e-9)
	assert.InDelta(t, p.OriginLng-west.Lng, east.Lng-p.OriginLng, 1e-9)
	assert.Less(t, west.Lng, p.OriginLng)
}

// southern mirrors the KMA cone below the equator, giving a negative cone constant.
func southern() Projection {
	p := KMA()
	p.StdParallel1, p.StdParallel2 = -30.0, -60.0
	p.OriginLat = -38.0
	return p
}

func TestSouthernCone_RoundTrip(t *testing.T) {
	p := southern()
	require.NoError(t, p.Validate())
	require.Less(t, p.cone().sn, 0.0)

	tests := []struct {
		name     string
		lat, lng float64
		want     Point
	}{
		{"origin", -38.0, 126.0, Point{NX: 43, NY: 136}},
		{"melbourne", -37.8, 145.0, Point{NX: 365, NY: 102}},
		{"west of origin", -40.0, 120.0, Point{NX: -56, NY: 89}},
		{"sydney", -33.9, 151.2, Point{NX: 494, NY: 154}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := p.ToGrid(tt.lat, tt.lng)
			assert.Equal(t, tt.want, cell)

			back := p.ToLatLng(cell.NX, cell.NY)
			assert.InDelta(t, tt.lat, back.Lat, 0.03)
			assert.InDelta(t, tt.lng, back.Lng, 0.03)
		})
	}
}

func TestBearing(t *testing.T) {
	tests := []struct {
		name       string
		xn, yn, sn float64
		want       float64
	}{
		{"on the central meridian", 0, 5, 0.7, 0},
		{"east on the apex row", 3, 0, 0.7, math.Pi / 2},
		{"west on the apex row", -3, 0, 0.7, -math.Pi / 2},
		{"general", 1, 1, 0.7, math.Pi / 4},
		{"southern cone flips the offset", 1, 1, -0.7, -3 * math.Pi / 4},
		{"southern cone east on the apex row", 3, 0, -0.7, -math.Pi / 2},
		{"southern cone west on the apex row", -3, 0, -0.7, math.Pi / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, bearing(tt.xn, tt.yn, tt.sn), 1e-12)
		})
	}
}

func TestLongitudeWrap(t *testing.T) {
	p := KMA()
	// 126 - 360 wraps back to the origin meridian.
	assert.Equal(t, p.ToGrid(37.0, 126.0), p.ToGrid(37.0, 126.0-360.0))
}

func TestProjection_Validate(t *testing.T) {
	require.NoError(t, KMA().Validate())

	p := KMA()
	p.GridSpacing = 0
	assert.Error(t, p.Validate())

	p = KMA()
	p.EarthRadius = -1
	assert.Error(t, p.Validate())

	p = KMA()
	p.StdParallel2 = p.StdParallel1
	assert.Error(t, p.Validate())
}

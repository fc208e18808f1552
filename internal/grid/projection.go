// Package grid converts between latitude/longitude and the KMA forecast grid,
// a Lambert Conformal Conic projection with 5 km cells ("LCC DFS").
package grid

import (
	"errors"
	"fmt"
	"math"
)

const (
	degToRad = math.Pi / 180.0
	radToDeg = 180.0 / math.Pi
)

// Point addresses one forecast cell.
type Point struct {
	NX int `json:"nx"`
	NY int `json:"ny"`
}

// Coordinate is a geographic position in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Projection holds the parameters of a secant LCC grid. It is a value type;
// copies are independent and safe to share across goroutines.
type Projection struct {
	EarthRadius  float64 `mapstructure:"earth_radius"`  // km
	GridSpacing  float64 `mapstructure:"grid_spacing"`  // km
	StdParallel1 float64 `mapstructure:"std_parallel1"` // degrees
	StdParallel2 float64 `mapstructure:"std_parallel2"` // degrees
	OriginLng    float64 `mapstructure:"origin_lng"`    // degrees
	OriginLat    float64 `mapstructure:"origin_lat"`    // degrees
	OriginX      int     `mapstructure:"origin_x"`
	OriginY      int     `mapstructure:"origin_y"`
}

// KMA returns the parameterization used by the village forecast service.
func KMA() Projection {
	return Projection{
		EarthRadius:  6371.00877,
		GridSpacing:  5.0,
		StdParallel1: 30.0,
		StdParallel2: 60.0,
		OriginLng:    126.0,
		OriginLat:    38.0,
		OriginX:      43,
		OriginY:      136,
	}
}

// Validate reports parameter sets the projection math cannot handle.
func (p Projection) Validate() error {
	if p.EarthRadius <= 0 {
		return fmt.Errorf("earth radius must be positive, got %v", p.EarthRadius)
	}
	if p.GridSpacing <= 0 {
		return fmt.Errorf("grid spacing must be positive, got %v", p.GridSpacing)
	}
	if p.StdParallel1 == p.StdParallel2 {
		return errors.New("standard parallels must differ")
	}
	return nil
}

// cone holds the derived constants shared by both directions.
type cone struct {
	re, sn, sf, ro, olon float64
}

func (p Projection) cone() cone {
	re := p.EarthRadius / p.GridSpacing
	slat1 := p.StdParallel1 * degToRad
	slat2 := p.StdParallel2 * degToRad
	olat := p.OriginLat * degToRad

	sn := math.Tan(math.Pi*0.25+slat2*0.5) / math.Tan(math.Pi*0.25+slat1*0.5)
	sn = math.Log(math.Cos(slat1)/math.Cos(slat2)) / math.Log(sn)
	sf := math.Tan(math.Pi*0.25 + slat1*0.5)
	sf = math.Pow(sf, sn) * math.Cos(slat1) / sn
	ro := math.Tan(math.Pi*0.25 + olat*0.5)
	ro = re * sf / math.Pow(ro, sn)

	return cone{re: re, sn: sn, sf: sf, ro: ro, olon: p.OriginLng * degToRad}
}

// ToGrid projects a geographic coordinate onto the grid.
func (p Projection) ToGrid(lat, lng float64) Point {
	c := p.cone()

	ra := math.Tan(math.Pi*0.25 + lat*degToRad*0.5)
	ra = c.re * c.sf / math.Pow(ra, c.sn)

	theta := lng*degToRad - c.olon
	if theta > math.Pi {
		theta -= 2.0 * math.Pi
	}
	if theta < -math.Pi {
		theta += 2.0 * math.Pi
	}
	theta *= c.sn

	return Point{
		NX: int(math.Floor(ra*math.Sin(theta) + float64(p.OriginX) + 0.5)),
		NY: int(math.Floor(c.ro - ra*math.Cos(theta) + float64(p.OriginY) + 0.5)),
	}
}

// ToLatLng returns the geographic position of a grid cell.
func (p Projection) ToLatLng(nx, ny int) Coordinate {
	c := p.cone()

	xn := float64(nx - p.OriginX)
	yn := c.ro - float64(ny) + float64(p.OriginY)
	ra := math.Sqrt(xn*xn + yn*yn)
	if c.sn < 0.0 {
		ra = -ra
	}
	alat := math.Pow(c.re*c.sf/ra, 1.0/c.sn)
	alat = 2.0*math.Atan(alat) - math.Pi*0.5

	theta := bearing(xn, yn, c.sn)
	alon := theta/c.sn + c.olon

	return Coordinate{
		Lat: alat * radToDeg,
		Lng: alon * radToDeg,
	}
}

// bearing recovers the cone angle of the grid offset (xn, yn) from the apex.
// On a southern cone (sn < 0) the radius is negative, so the offset points
// away from the angle and is flipped before atan2.
func bearing(xn, yn, sn float64) float64 {
	if sn < 0.0 {
		xn, yn = -xn, -yn
	}
	switch {
	case xn == 0.0:
		return 0.0
	case yn == 0.0:
		if xn < 0.0 {
			return -math.Pi * 0.5
		}
		return math.Pi * 0.5
	default:
		return math.Atan2(xn, yn)
	}
}

// LatLngToGrid projects with the KMA parameterization.
func LatLngToGrid(lat, lng float64) Point {
	return KMA().ToGrid(lat, lng)
}

// GridToLatLng inverts LatLngToGrid.
func GridToLatLng(nx, ny int) Coordinate {
	return KMA().ToLatLng(nx, ny)
}

package geo

import (
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// MaxTravelSpeedKmh is the fastest speed any road segment can plausibly be
// traversed at. Dividing a straight-line distance by this speed yields a
// lower bound on travel time between two points.
const MaxTravelSpeedKmh = 120.0

// A Point is a geographic position in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func MakePoint(lat, lon float64) Point {
	return Point{Lat: lat, Lon: lon}
}

// Orb converts the point into orb's lon/lat representation.
func (p Point) Orb() orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// Haversine returns the great-circle distance to other in kilometres.
func (p Point) Haversine(other Point) float64 {
	return orbgeo.DistanceHaversine(p.Orb(), other.Orb()) / 1000.0
}

// MinTravelMinutes returns a lower bound on the travel time to other in
// minutes, assuming the segment could be driven at MaxTravelSpeedKmh.
func (p Point) MinTravelMinutes(other Point) float64 {
	return p.Haversine(other) / MaxTravelSpeedKmh * 60.0
}

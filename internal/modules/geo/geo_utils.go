// Package geo contains pure geographic computation helpers.
package geo

import (
	"fmt"
	"math"

	"github.com/mmcloughlin/geohash"
)

const earthRadiusKm = 6371.0

// CellPrecision is the geohash length stored with bookings (~150m cells).
const CellPrecision = 7

// Point is a latitude/longitude pair in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p Point) String() string {
	return fmt.Sprintf("%.4f, %.4f", p.Lat, p.Lng)
}

// Valid reports whether p lies in the ±90/±180 degree ranges.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// DistanceKm returns the great-circle distance in kilometres between a and b.
// NaN inputs yield NaN.
func DistanceKm(a, b Point) float64 {
	return haversineKm(a.Lat, a.Lng, b.Lat, b.Lng)
}

// haversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	// rounding can push a past 1 near antipodes; NaN still passes through
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Cell encodes p as a geohash of CellPrecision characters.
func Cell(p Point) string {
	return geohash.EncodeWithPrecision(p.Lat, p.Lng, CellPrecision)
}

// CellCenter decodes a geohash cell back to its centre point.
func CellCenter(cell string) Point {
	lat, lng := geohash.Decode(cell)
	return Point{Lat: lat, Lng: lng}
}

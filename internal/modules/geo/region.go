package geo

import "errors"

var ErrInvalidRegion = errors.New("invalid region bounds")

// Region is a rectangular service area. Edges are inclusive.
type Region struct {
	Name   string  `json:"name"`
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLng float64 `json:"max_lng"`
}

// BengaluruRegion covers the city and its immediate outskirts.
var BengaluruRegion = Region{
	Name:   "Bengaluru",
	MinLat: 12.70,
	MaxLat: 13.25,
	MinLng: 77.35,
	MaxLng: 77.85,
}

// BengaluruCenter is the default map centre.
var BengaluruCenter = Point{Lat: 12.9716, Lng: 77.5946}

// Contains reports whether p lies inside r. NaN coordinates are never inside.
func (r Region) Contains(p Point) bool {
	return p.Lat >= r.MinLat && p.Lat <= r.MaxLat &&
		p.Lng >= r.MinLng && p.Lng <= r.MaxLng
}

// Center returns the midpoint of the box.
func (r Region) Center() Point {
	return Point{Lat: (r.MinLat + r.MaxLat) / 2, Lng: (r.MinLng + r.MaxLng) / 2}
}

func (r Region) Validate() error {
	if !(r.MinLat < r.MaxLat) || !(r.MinLng < r.MaxLng) {
		return ErrInvalidRegion
	}
	if !(Point{Lat: r.MinLat, Lng: r.MinLng}).Valid() || !(Point{Lat: r.MaxLat, Lng: r.MaxLng}).Valid() {
		return ErrInvalidRegion
	}
	return nil
}

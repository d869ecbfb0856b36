package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"skycab/internal/modules/geo"
)

// reverseGeocoder is the slice of *maps.Client used here.
type reverseGeocoder interface {
	ReverseGeocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// GeocodeService labels booking points with a human-readable address.
type GeocodeService struct {
	client   reverseGeocoder
	language string
}

// NewGeocodeService creates a new GeocodeService with the given API Key.
func NewGeocodeService(apiKey string) (*GeocodeService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodeService{client: client, language: "en-IN"}, nil
}

// Label returns the formatted address of the closest match.
func (s *GeocodeService) Label(ctx context.Context, p geo.Point) (string, error) {
	results, err := s.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng:   &maps.LatLng{Lat: p.Lat, Lng: p.Lng},
		Language: s.language,
	})
	if err != nil {
		return "", fmt.Errorf("maps api error: %w", err)
	}
	if len(results) == 0 || results[0].FormattedAddress == "" {
		return "", fmt.Errorf("no address found for %s", p)
	}
	return results[0].FormattedAddress, nil
}

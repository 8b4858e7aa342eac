package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fakhrymubarak/weather-cli/internal/config"
	"github.com/fakhrymubarak/weather-cli/internal/model"
)

// LocationRepository turns a location selector into coordinates
type LocationRepository interface {
	Resolve(ctx context.Context, loc model.Location) (model.Coordinates, error)
}

// locationRepository implements LocationRepository against ip-api.com and the
// OpenWeatherMap geocoding API
type locationRepository struct {
	httpClient   *http.Client
	ipAPIURL     string
	geocodingURL string
}

// NewLocationRepository creates a new location repository instance
func NewLocationRepository(httpClient ...*http.Client) LocationRepository {
	return &locationRepository{
		httpClient:   pickClient(httpClient),
		ipAPIURL:     config.GetIPGeolocationUrl(),
		geocodingURL: config.GetGeocodingApiUrl(),
	}
}

// Resolve dispatches on the location variant. Explicit coordinates never touch the network.
func (r *locationRepository) Resolve(ctx context.Context, loc model.Location) (model.Coordinates, error) {
	switch l := loc.(type) {
	case model.CurrentLocation:
		return r.fromIP(ctx)
	case model.ExplicitLocation:
		return l.Coordinates, nil
	case model.NamedLocation:
		return r.geocode(ctx, l)
	default:
		return model.Coordinates{}, fmt.Errorf("unsupported location type %T", loc)
	}
}

// fromIP asks ip-api.com where the caller is
func (r *locationRepository) fromIP(ctx context.Context) (model.Coordinates, error) {
	var data model.IPLocationResponse
	if err := getJSON(ctx, r.httpClient, r.ipAPIURL, nil, &data); err != nil {
		return model.Coordinates{}, fmt.Errorf("ip geolocation: %w", err)
	}
	if data.Status != "success" {
		return model.Coordinates{}, fmt.Errorf("ip geolocation: %w: status %q %s", ErrServiceRejected, data.Status, data.Message)
	}
	if err := data.Validate(); err != nil {
		return model.Coordinates{}, fmt.Errorf("ip geolocation: %w: %w", ErrMalformedResponse, err)
	}
	coords := data.Coordinates()
	config.GetLogger().Debugw("Resolved location from IP", "coordinates", coords.String())
	return coords, nil
}

// geocode looks the city up and keeps the first candidate only
func (r *locationRepository) geocode(ctx context.Context, loc model.NamedLocation) (model.Coordinates, error) {
	if loc.City == "" {
		return model.Coordinates{}, fmt.Errorf("geocoding: %w: empty city name", ErrNotFound)
	}
	apiKey := config.GetOpenWeatherMapAPIKey()
	if apiKey == "" {
		return model.Coordinates{}, fmt.Errorf("geocoding: %w", ErrAPIKeyMissing)
	}

	params := url.Values{}
	params.Set("q", loc.Query())
	params.Set("limit", "1")
	params.Set("appid", apiKey)

	var results []model.GeocodingResult
	if err := getJSON(ctx, r.httpClient, r.geocodingURL, params, &results); err != nil {
		return model.Coordinates{}, fmt.Errorf("geocoding %q: %w", loc.Query(), err)
	}
	if len(results) == 0 {
		return model.Coordinates{}, fmt.Errorf("geocoding %q: %w", loc.Query(), ErrNotFound)
	}

	first := results[0]
	if err := first.Validate(); err != nil {
		return model.Coordinates{}, fmt.Errorf("geocoding %q: %w: %w", loc.Query(), ErrMalformedResponse, err)
	}
	config.GetLogger().Debugw("Geocoded city", "query", loc.Query(), "name", first.Name, "country", first.Country, "state", first.State)
	return first.Coordinates(), nil
}

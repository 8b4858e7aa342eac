package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fakhrymubarak/weather-cli/internal/config"
	"github.com/fakhrymubarak/weather-cli/internal/model"
)

// WeatherRepository defines the interface for weather data access
type WeatherRepository interface {
	GetWeather(ctx context.Context, coords model.Coordinates) (*model.WeatherReport, error)
}

// weatherRepository implements WeatherRepository
type weatherRepository struct {
	httpClient *http.Client
	apiURL     string
}

// NewWeatherRepository creates a new weather repository instance
func NewWeatherRepository(httpClient ...*http.Client) WeatherRepository {
	return &weatherRepository{
		httpClient: pickClient(httpClient),
		apiURL:     config.GetOpenWeatherApiUrl(),
	}
}

// GetWeather fetches the current weather at coords from OpenWeatherMap in metric units
func (r *weatherRepository) GetWeather(ctx context.Context, coords model.Coordinates) (*model.WeatherReport, error) {
	apiKey := config.GetOpenWeatherMapAPIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("weather: %w", ErrAPIKeyMissing)
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	params.Set("appid", apiKey)
	params.Set("units", "metric")

	var data model.OpenWeatherMapResponse
	if err := getJSON(ctx, r.httpClient, r.apiURL, params, &data); err != nil {
		return nil, fmt.Errorf("weather at %s: %w", coords, err)
	}
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("weather at %s: %w: %w", coords, ErrMalformedResponse, err)
	}

	return model.NewWeatherReport(coords, &data), nil
}

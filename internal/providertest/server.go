// Package providertest runs a fake of ip-api.com and the OpenWeatherMap
// geocoding and current weather endpoints for tests.
package providertest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/viper"

	"github.com/fakhrymubarak/weather-cli/internal/config"
)

const (
	IPPath        = "/json"
	GeocodingPath = "/geo/1.0/direct"
	WeatherPath   = "/data/2.5/weather"
)

// Canned bodies. LondonWeather is moderate rain with a southerly wind.
const (
	IPSuccess = `{"status": "success", "country": "United Kingdom", "city": "London", "lat": 51.5, "lon": -0.12}`
	IPFail    = `{"status": "fail", "message": "private range"}`

	LondonGeocoding = `[{"name": "London", "lat": 51.5073219, "lon": -0.1276474, "country": "GB", "state": "England"}]`
	EmptyGeocoding  = `[]`

	LondonWeather = `{
		"weather": [{"id": 501, "main": "Rain", "description": "moderate rain", "icon": "10d"}],
		"main": {"temp": 15.2, "feels_like": 14.0, "temp_min": 12.0, "temp_max": 18.0, "pressure": 1012, "humidity": 70},
		"visibility": 10000,
		"wind": {"speed": 10.0, "deg": 180},
		"name": "London"
	}`
	NoConditionsWeather = `{
		"weather": [],
		"main": {"temp": 15.2, "feels_like": 14.0, "temp_min": 12.0, "temp_max": 18.0, "pressure": 1012, "humidity": 70},
		"visibility": 10000,
		"wind": {"speed": 10.0, "deg": 180},
		"name": "London"
	}`
	UnknownIconWeather = `{
		"weather": [{"id": 781, "main": "Tornado", "description": "tornado", "icon": "99x"}],
		"main": {"temp": 15.2, "feels_like": 14.0, "temp_min": 12.0, "temp_max": 18.0, "pressure": 1012, "humidity": 70},
		"visibility": 10000,
		"wind": {"speed": 10.0, "deg": 180},
		"name": "London"
	}`
	InvalidKey = `{"cod": 401, "message": "Invalid API key. Please see https://openweathermap.org/faq#error401 for more info."}`
)

type response struct {
	status int
	body   string
}

// Provider serves canned responses per endpoint and records every query it receives.
type Provider struct {
	Server *httptest.Server

	mu        sync.Mutex
	responses map[string]response
	queries   map[string][]url.Values
}

// New starts a provider answering every endpoint with a London success response.
// It is closed when the test ends.
func New(t testing.TB) *Provider {
	p := &Provider{
		responses: map[string]response{
			IPPath:        {http.StatusOK, IPSuccess},
			GeocodingPath: {http.StatusOK, LondonGeocoding},
			WeatherPath:   {http.StatusOK, LondonWeather},
		},
		queries: make(map[string][]url.Values),
	}

	r := chi.NewRouter()
	r.Get(IPPath, p.serve(IPPath))
	r.Get(GeocodingPath, p.serve(GeocodingPath))
	r.Get(WeatherPath, p.serve(WeatherPath))

	p.Server = httptest.NewServer(r)
	t.Cleanup(p.Server.Close)
	return p
}

// Respond replaces the canned response for path.
func (p *Provider) Respond(path string, status int, body string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.responses[path] = response{status, body}
}

// Queries returns the query parameters of each request made to path, in order.
func (p *Provider) Queries(path string) []url.Values {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]url.Values(nil), p.queries[path]...)
}

func (p *Provider) URL(path string) string {
	return p.Server.URL + path
}

// UseInConfig points the configured endpoints at this provider.
func (p *Provider) UseInConfig() {
	viper.Set("geolocation.ip_api_url", p.URL(IPPath))
	viper.Set("geolocation.geocoding_api_url", p.URL(GeocodingPath))
	viper.Set("openweathermap.api_url", p.URL(WeatherPath))
	config.ReloadConfigForTest()
}

func (p *Provider) serve(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		p.queries[path] = append(p.queries[path], r.URL.Query())
		resp := p.responses[path]
		p.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.status)
		_, _ = w.Write([]byte(resp.body))
	}
}

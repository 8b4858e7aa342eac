package repository

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakhrymubarak/weather-cli/internal/model"
	"github.com/fakhrymubarak/weather-cli/internal/providertest"
)

func newTestLocationRepository(p *providertest.Provider) *locationRepository {
	return &locationRepository{
		httpClient:   p.Server.Client(),
		ipAPIURL:     p.URL(providertest.IPPath),
		geocodingURL: p.URL(providertest.GeocodingPath),
	}
}

func TestNewLocationRepository(t *testing.T) {
	repo := NewLocationRepository()
	if repo == nil {
		t.Error("Expected repository to be created")
	}
}

func TestResolve_Explicit(t *testing.T) {
	// no network: every request would fail
	repo := &locationRepository{httpClient: failingClient()}
	want := model.Coordinates{Lat: 51.5, Lon: -0.12}

	got, err := repo.Resolve(context.Background(), model.ExplicitLocation{Coordinates: want})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolve_Current(t *testing.T) {
	p := providertest.New(t)
	repo := newTestLocationRepository(p)

	got, err := repo.Resolve(context.Background(), model.CurrentLocation{})
	require.NoError(t, err)
	assert.Equal(t, model.Coordinates{Lat: 51.5, Lon: -0.12}, got)
	assert.Len(t, p.Queries(providertest.IPPath), 1)
}

func TestResolve_CurrentErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "Status fail", status: http.StatusOK, body: providertest.IPFail, wantErr: ErrServiceRejected},
		{name: "Rate limited", status: http.StatusTooManyRequests, body: "", wantErr: ErrServiceRejected},
		{name: "Not JSON", status: http.StatusOK, body: "<html>", wantErr: ErrMalformedResponse},
		{name: "Wrong type", status: http.StatusOK, body: `{"status": "success", "lat": "north"}`, wantErr: ErrMalformedResponse},
		{name: "Missing lat and lon", status: http.StatusOK, body: `{"status": "success"}`, wantErr: ErrMalformedResponse},
		{name: "Missing lon", status: http.StatusOK, body: `{"status": "success", "lat": 51.5}`, wantErr: ErrMalformedResponse},
		{name: "Null lat", status: http.StatusOK, body: `{"status": "success", "lat": null, "lon": -0.12}`, wantErr: ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := providertest.New(t)
			p.Respond(providertest.IPPath, tt.status, tt.body)

			_, err := newTestLocationRepository(p).Resolve(context.Background(), model.CurrentLocation{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestResolve_CurrentFailMessage(t *testing.T) {
	p := providertest.New(t)
	p.Respond(providertest.IPPath, http.StatusOK, providertest.IPFail)

	_, err := newTestLocationRepository(p).Resolve(context.Background(), model.CurrentLocation{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "private range")
}

func TestResolve_CurrentTransportFailure(t *testing.T) {
	repo := &locationRepository{httpClient: failingClient(), ipAPIURL: "http://ip-api.test/json"}

	_, err := repo.Resolve(context.Background(), model.CurrentLocation{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrServiceUnavailable))
	assert.True(t, errors.Is(err, errConnRefused))
}

func TestResolve_Named(t *testing.T) {
	os.Setenv("OPENWEATHERMAP_API_KEY", "testkey")
	defer os.Unsetenv("OPENWEATHERMAP_API_KEY")

	p := providertest.New(t)
	repo := newTestLocationRepository(p)

	got, err := repo.Resolve(context.Background(), model.NamedLocation{City: "London", CountryCode: "GB"})
	require.NoError(t, err)
	assert.Equal(t, model.Coordinates{Lat: 51.5073219, Lon: -0.1276474}, got)

	queries := p.Queries(providertest.GeocodingPath)
	require.Len(t, queries, 1)
	assert.Equal(t, "London,GB", queries[0].Get("q"))
	assert.Equal(t, "1", queries[0].Get("limit"))
	assert.Equal(t, "testkey", queries[0].Get("appid"))
}

func TestResolve_NamedFirstCandidateOnly(t *testing.T) {
	os.Setenv("OPENWEATHERMAP_API_KEY", "testkey")
	defer os.Unsetenv("OPENWEATHERMAP_API_KEY")

	p := providertest.New(t)
	p.Respond(providertest.GeocodingPath, http.StatusOK,
		`[{"name": "Portland", "lat": 45.52, "lon": -122.67, "country": "US", "state": "Oregon"},
		  {"name": "Portland", "lat": 43.66, "lon": -70.25, "country": "US", "state": "Maine"}]`)

	got, err := newTestLocationRepository(p).Resolve(context.Background(), model.NamedLocation{City: "Portland"})
	require.NoError(t, err)
	assert.Equal(t, model.Coordinates{Lat: 45.52, Lon: -122.67}, got)
}

func TestResolve_NamedErrors(t *testing.T) {
	os.Setenv("OPENWEATHERMAP_API_KEY", "testkey")
	defer os.Unsetenv("OPENWEATHERMAP_API_KEY")

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "Empty result", status: http.StatusOK, body: providertest.EmptyGeocoding, wantErr: ErrNotFound},
		{name: "Invalid key", status: http.StatusUnauthorized, body: providertest.InvalidKey, wantErr: ErrServiceRejected},
		{name: "Object instead of array", status: http.StatusOK, body: `{"lat": 1}`, wantErr: ErrMalformedResponse},
		{name: "Empty candidate", status: http.StatusOK, body: `[{}]`, wantErr: ErrMalformedResponse},
		{name: "Missing lon", status: http.StatusOK, body: `[{"name": "Atlantis", "lat": 1.5}]`, wantErr: ErrMalformedResponse},
		{name: "Missing lat", status: http.StatusOK, body: `[{"name": "Atlantis", "lon": 1.5}]`, wantErr: ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := providertest.New(t)
			p.Respond(providertest.GeocodingPath, tt.status, tt.body)

			_, err := newTestLocationRepository(p).Resolve(context.Background(), model.NamedLocation{City: "Atlantis"})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestResolve_NamedMissingAPIKey(t *testing.T) {
	os.Unsetenv("OPENWEATHERMAP_API_KEY")
	mockHTTP := &http.Client{Transport: RoundTripperFunc(func(req *http.Request) *http.Response {
		t.Errorf("unexpected request to %s", req.URL)
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader("[]")), Header: make(http.Header)}
	})}
	repo := &locationRepository{httpClient: mockHTTP, geocodingURL: "http://geo.test/direct"}

	_, err := repo.Resolve(context.Background(), model.NamedLocation{City: "London"})
	assert.True(t, errors.Is(err, ErrAPIKeyMissing))
}

func TestResolve_NamedEmptyCity(t *testing.T) {
	repo := &locationRepository{httpClient: failingClient()}

	_, err := repo.Resolve(context.Background(), model.NamedLocation{})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestResolve_NilLocation(t *testing.T) {
	repo := &locationRepository{httpClient: failingClient()}

	_, err := repo.Resolve(context.Background(), nil)
	assert.Error(t, err)
}

package handler

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakhrymubarak/weather-cli/internal/display"
	"github.com/fakhrymubarak/weather-cli/internal/model"
	"github.com/fakhrymubarak/weather-cli/internal/repository"
	"github.com/fakhrymubarak/weather-cli/internal/service"
)

// Mock service for testing
type mockWeatherService struct {
	err      error
	report   *model.WeatherReport
	history  []model.HistoryEntry
	lookedUp []model.Location
	recorded []model.Location
}

func (m *mockWeatherService) GetWeather(ctx context.Context, loc model.Location) (*model.WeatherReport, error) {
	m.lookedUp = append(m.lookedUp, loc)
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

func (m *mockWeatherService) RecordLookup(ctx context.Context, loc model.Location, report *model.WeatherReport) {
	m.recorded = append(m.recorded, loc)
}

func (m *mockWeatherService) History(ctx context.Context, n int) ([]model.HistoryEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.history, nil
}

// Ensure mockWeatherService implements WeatherServiceInterface
var _ service.WeatherServiceInterface = (*mockWeatherService)(nil)

func rainReport() *model.WeatherReport {
	return &model.WeatherReport{
		Conditions:   []model.Condition{{ID: 501, Summary: "Rain", Description: "moderate rain", Icon: "10d"}},
		Temperature:  model.Temperature{Current: 15.2, FeelsLike: 14.0, Min: 12.0, Max: 18.0},
		HumidityPct:  70,
		Visibility:   10000,
		Wind:         model.Wind{SpeedKph: 10.0, DirectionDeg: 180},
		LocationName: "London",
	}
}

func TestNewWeatherHandler(t *testing.T) {
	handler := NewWeatherHandler(nil)
	if handler == nil {
		t.Fatal("Expected handler to be created")
	}
	if handler.WeatherService == nil {
		t.Error("Expected weather service to be initialized")
	}
	if handler.Out == nil {
		t.Error("Expected output writer to default to stdout")
	}
}

func TestLocationFromFlags(t *testing.T) {
	tests := []struct {
		name                         string
		city, state, country, coords string
		want                         model.Location
		wantErr                      error
	}{
		{name: "No flags", want: model.CurrentLocation{}},
		{name: "City", city: "London", want: model.NamedLocation{City: "London"}},
		{
			name: "City with state and country", city: "Portland", state: "OR", country: "US",
			want: model.NamedLocation{City: "Portland", StateCode: "OR", CountryCode: "US"},
		},
		{
			name: "Coordinates", coords: "51.5,-0.12",
			want: model.ExplicitLocation{Coordinates: model.Coordinates{Lat: 51.5, Lon: -0.12}},
		},
		{name: "City and coordinates", city: "London", coords: "51.5,-0.12", wantErr: ErrConflictingLocation},
		{name: "Country without city", country: "GB", wantErr: ErrStateWithoutCity},
		{name: "State with coordinates", state: "OR", coords: "1,2", wantErr: ErrStateWithoutCity},
		{name: "Bad coordinates", coords: "north", wantErr: model.ErrInvalidCoordinates},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LocationFromFlags(tt.city, tt.state, tt.country, tt.coords)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeatherHandler_HandleLookup(t *testing.T) {
	noConditions := rainReport()
	noConditions.Conditions = nil
	unknownIcon := rainReport()
	unknownIcon.Conditions[0].Icon = "99x"

	tests := []struct {
		name     string
		err      error
		report   *model.WeatherReport
		debug    bool
		wantErr  error
		contains []string
	}{
		{
			name:     "Panel",
			report:   rainReport(),
			contains: []string{"London", "moderate rain", "↑ 10.0 km/h", "10000.0 km", "70.0%"},
		},
		{
			name:     "Debug printout",
			report:   rainReport(),
			debug:    true,
			contains: []string{"coordinates:", `"London"`, "Icon:10d"},
		},
		{
			name:    "Service error",
			err:     repository.ErrNotFound,
			wantErr: repository.ErrNotFound,
		},
		{
			name:    "No conditions",
			report:  noConditions,
			wantErr: ErrNoConditions,
		},
		{
			name:    "Unknown icon",
			report:  unknownIcon,
			wantErr: display.ErrNoIconForCondition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			svc := &mockWeatherService{err: tt.err, report: tt.report}
			handler := &WeatherHandler{
				WeatherService: svc,
				Out:            &out,
			}

			err := handler.HandleLookup(context.Background(), model.CurrentLocation{}, tt.debug)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				// no partial output and no history entry on failure
				assert.Empty(t, out.String())
				assert.Empty(t, svc.recorded)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []model.Location{model.CurrentLocation{}}, svc.recorded)
			for _, want := range tt.contains {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestWeatherHandler_HandleHistory(t *testing.T) {
	var out bytes.Buffer
	handler := &WeatherHandler{
		WeatherService: &mockWeatherService{history: []model.HistoryEntry{
			{Query: "Paris,FR", LocationName: "Paris", TempC: 21.5, Description: "clear sky", LookedUpAt: time.Now()},
			{Query: "current location", LocationName: "London", TempC: 15.2, Description: "moderate rain", LookedUpAt: time.Now()},
		}},
		Out: &out,
	}

	require.NoError(t, handler.HandleHistory(context.Background(), 10))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "QUERY")
	assert.Contains(t, lines[1], "Paris,FR")
	assert.Contains(t, lines[1], "21.5°C")
	assert.Contains(t, lines[2], "moderate rain")
}

func TestWeatherHandler_HandleHistory_Empty(t *testing.T) {
	var out bytes.Buffer
	handler := &WeatherHandler{WeatherService: &mockWeatherService{}, Out: &out}

	require.NoError(t, handler.HandleHistory(context.Background(), 10))
	assert.Contains(t, out.String(), "No lookups recorded yet.")
}

func TestWeatherHandler_HandleHistory_Disabled(t *testing.T) {
	var out bytes.Buffer
	handler := &WeatherHandler{WeatherService: &mockWeatherService{err: service.ErrHistoryDisabled}, Out: &out}

	err := handler.HandleHistory(context.Background(), 10)
	assert.True(t, errors.Is(err, service.ErrHistoryDisabled))
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("broken pipe") }

func TestWeatherHandler_HandleLookupWriteFailureNotRecorded(t *testing.T) {
	svc := &mockWeatherService{report: rainReport()}
	handler := &WeatherHandler{WeatherService: svc, Out: failingWriter{}}

	err := handler.HandleLookup(context.Background(), model.CurrentLocation{}, false)
	require.Error(t, err)
	assert.Empty(t, svc.recorded)
}

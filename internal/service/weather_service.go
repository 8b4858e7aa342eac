package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/fakhrymubarak/weather-cli/internal/config"
	"github.com/fakhrymubarak/weather-cli/internal/model"
	"github.com/fakhrymubarak/weather-cli/internal/repository"
	"github.com/fakhrymubarak/weather-cli/internal/tracing"
)

var ErrHistoryDisabled = errors.New("lookup history is disabled")

// WeatherServiceInterface is what the CLI handler needs from the service
type WeatherServiceInterface interface {
	GetWeather(ctx context.Context, loc model.Location) (*model.WeatherReport, error)
	RecordLookup(ctx context.Context, loc model.Location, report *model.WeatherReport)
	History(ctx context.Context, n int) ([]model.HistoryEntry, error)
}

// WeatherService resolves a location and fetches its weather, strictly in sequence
type WeatherService struct {
	LocationRepo repository.LocationRepository
	WeatherRepo  repository.WeatherRepository
	// HistoryRepo is optional; nil disables the lookup history.
	HistoryRepo repository.HistoryRepository

	now func() time.Time
}

// NewWeatherService creates a service. Nil location or weather repositories
// are replaced by the default HTTP-backed ones.
func NewWeatherService(locationRepo repository.LocationRepository, weatherRepo repository.WeatherRepository, historyRepo repository.HistoryRepository) *WeatherService {
	if locationRepo == nil {
		locationRepo = repository.NewLocationRepository()
	}
	if weatherRepo == nil {
		weatherRepo = repository.NewWeatherRepository()
	}
	return &WeatherService{
		LocationRepo: locationRepo,
		WeatherRepo:  weatherRepo,
		HistoryRepo:  historyRepo,
		now:          time.Now,
	}
}

// GetWeather runs resolve then fetch. Errors from either stage are returned unchanged.
func (s *WeatherService) GetWeather(ctx context.Context, loc model.Location) (*model.WeatherReport, error) {
	ctx, span := tracing.Tracer().Start(ctx, "weather-lookup")
	defer span.End()

	coords, err := s.resolve(ctx, loc)
	if err != nil {
		fail(span, err)
		return nil, err
	}

	report, err := s.fetch(ctx, coords)
	if err != nil {
		fail(span, err)
		return nil, err
	}

	return report, nil
}

func (s *WeatherService) resolve(ctx context.Context, loc model.Location) (model.Coordinates, error) {
	ctx, span := tracing.Tracer().Start(ctx, "resolve-location")
	defer span.End()
	if loc != nil {
		span.SetAttributes(attribute.String("weather.location", loc.String()))
	}

	coords, err := s.LocationRepo.Resolve(ctx, loc)
	if err != nil {
		fail(span, err)
		return model.Coordinates{}, err
	}
	span.SetAttributes(
		attribute.Float64("weather.lat", coords.Lat),
		attribute.Float64("weather.lon", coords.Lon),
	)
	return coords, nil
}

func (s *WeatherService) fetch(ctx context.Context, coords model.Coordinates) (*model.WeatherReport, error) {
	ctx, span := tracing.Tracer().Start(ctx, "fetch-weather")
	defer span.End()

	report, err := s.WeatherRepo.GetWeather(ctx, coords)
	if err != nil {
		fail(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.String("weather.location_name", report.LocationName))
	return report, nil
}

// RecordLookup stores a displayed lookup in the history. A failure is only logged.
func (s *WeatherService) RecordLookup(ctx context.Context, loc model.Location, report *model.WeatherReport) {
	if s.HistoryRepo == nil || report == nil {
		return
	}
	ctx, span := tracing.Tracer().Start(ctx, "record-lookup")
	defer span.End()

	now := time.Now
	if s.now != nil {
		now = s.now
	}
	entry := model.NewHistoryEntry(loc, report, now())
	span.SetAttributes(attribute.String("weather.lookup_id", entry.ID))
	if err := s.HistoryRepo.Record(ctx, entry); err != nil {
		fail(span, err)
		config.GetLogger().Warnw("Could not record lookup history", "error", err)
	}
}

// History returns up to n recent lookups, newest first.
func (s *WeatherService) History(ctx context.Context, n int) ([]model.HistoryEntry, error) {
	if s.HistoryRepo == nil {
		return nil, ErrHistoryDisabled
	}
	return s.HistoryRepo.Recent(ctx, n)
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

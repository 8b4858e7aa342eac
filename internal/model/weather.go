package model

import (
	"time"

	"github.com/google/uuid"
)

// Condition is one weather condition reported by the provider.
type Condition struct {
	ID          int    `json:"id"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Temperature values are in °C.
type Temperature struct {
	Current   float64 `json:"current"`
	FeelsLike float64 `json:"feels_like"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
}

type Wind struct {
	SpeedKph     float64 `json:"speed_kph"`
	DirectionDeg float64 `json:"direction_deg"`
}

// WeatherReport is the current weather at one point, built once per fetch.
type WeatherReport struct {
	Conditions   []Condition `json:"conditions"`
	Temperature  Temperature `json:"temperature"`
	HumidityPct  float64     `json:"humidity_pct"`
	Pressure     float64     `json:"pressure"`
	// Visibility is reported in metres, as the provider sends it.
	Visibility   float64     `json:"visibility"`
	Wind         Wind        `json:"wind"`
	LocationName string      `json:"location_name"`
	Coordinates  Coordinates `json:"coordinates"`
}

// MsToKph converts the provider's metric wind speed to km/h.
func MsToKph(ms float64) float64 {
	return ms * 3.6
}

// NewWeatherReport maps a validated provider response onto a WeatherReport.
func NewWeatherReport(coords Coordinates, data *OpenWeatherMapResponse) *WeatherReport {
	report := &WeatherReport{
		Conditions:  make([]Condition, 0, len(data.Weather)),
		HumidityPct: *data.Main.Humidity,
		Pressure:    *data.Main.Pressure,
		Temperature: Temperature{
			Current:   *data.Main.Temp,
			FeelsLike: *data.Main.FeelsLike,
			Min:       *data.Main.TempMin,
			Max:       *data.Main.TempMax,
		},
		Visibility: *data.Visibility,
		Wind:       Wind{
			SpeedKph:     MsToKph(*data.Wind.Speed),
			DirectionDeg: *data.Wind.Deg,
		},
		LocationName: data.Name,
		Coordinates:  coords,
	}
	for _, w := range data.Weather {
		report.Conditions = append(report.Conditions, Condition{
			ID:          *w.ID,
			Summary:     *w.Main,
			Description: *w.Description,
			Icon:        *w.Icon,
		})
	}
	return report
}

// HistoryEntry records one successful lookup.
type HistoryEntry struct {
	ID           string      `json:"id"`
	Query        string      `json:"query"`
	Coordinates  Coordinates `json:"coordinates"`
	LocationName string      `json:"location_name"`
	Description  string      `json:"description"`
	TempC        float64     `json:"temp_c"`
	LookedUpAt   time.Time   `json:"looked_up_at"`
}

// NewHistoryEntry summarises a report for the lookup history.
func NewHistoryEntry(loc Location, report *WeatherReport, at time.Time) HistoryEntry {
	entry := HistoryEntry{
		ID:           uuid.NewString(),
		Query:        loc.String(),
		Coordinates:  report.Coordinates,
		LocationName: report.LocationName,
		TempC:        report.Temperature.Current,
		LookedUpAt:   at,
	}
	if len(report.Conditions) > 0 {
		entry.Description = report.Conditions[0].Description
	}
	return entry
}

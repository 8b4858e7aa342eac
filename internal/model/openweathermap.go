package model

import (
	"errors"
	"fmt"
)

var errMissingField = errors.New("missing required field")

// Required scalars in the wire types are pointers so that an absent field can
// be told apart from a zero value.

type WeatherStatus struct {
	ID          *int    `json:"id"`
	Main        *string `json:"main"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

func (w *WeatherStatus) Validate() error {
	switch {
	case w.ID == nil:
		return fieldError("id")
	case w.Main == nil:
		return fieldError("main")
	case w.Description == nil:
		return fieldError("description")
	case w.Icon == nil:
		return fieldError("icon")
	}
	return nil
}

type MainStats struct {
	Temp      *float64 `json:"temp"`
	FeelsLike *float64 `json:"feels_like"`
	TempMin   *float64 `json:"temp_min"`
	TempMax   *float64 `json:"temp_max"`
	Pressure  *float64 `json:"pressure"`
	Humidity  *float64 `json:"humidity"`
}

func (m *MainStats) Validate() error {
	switch {
	case m.Temp == nil:
		return fieldError("temp")
	case m.FeelsLike == nil:
		return fieldError("feels_like")
	case m.TempMin == nil:
		return fieldError("temp_min")
	case m.TempMax == nil:
		return fieldError("temp_max")
	case m.Pressure == nil:
		return fieldError("pressure")
	case m.Humidity == nil:
		return fieldError("humidity")
	}
	return nil
}

type WindStats struct {
	Speed *float64 `json:"speed"`
	Deg   *float64 `json:"deg"`
}

func (w *WindStats) Validate() error {
	switch {
	case w.Speed == nil:
		return fieldError("speed")
	case w.Deg == nil:
		return fieldError("deg")
	}
	return nil
}

// OpenWeatherMapResponse is the body of the current weather endpoint.
type OpenWeatherMapResponse struct {
	Name       string          `json:"name"`
	Weather    []WeatherStatus `json:"weather"`
	Main       *MainStats      `json:"main"`
	Visibility *float64        `json:"visibility"`
	Wind       *WindStats      `json:"wind"`
}

// Validate reports the first required block, then the first required field,
// missing from the response.
func (r *OpenWeatherMapResponse) Validate() error {
	switch {
	case r.Weather == nil:
		return fieldError("weather")
	case r.Main == nil:
		return fieldError("main")
	case r.Visibility == nil:
		return fieldError("visibility")
	case r.Wind == nil:
		return fieldError("wind")
	}
	for i := range r.Weather {
		if err := r.Weather[i].Validate(); err != nil {
			return fmt.Errorf("weather[%d]: %w", i, err)
		}
	}
	if err := r.Main.Validate(); err != nil {
		return fmt.Errorf("main: %w", err)
	}
	if err := r.Wind.Validate(); err != nil {
		return fmt.Errorf("wind: %w", err)
	}
	return nil
}

// GeocodingResult is one element of the geocoding endpoint's array.
type GeocodingResult struct {
	Name    string   `json:"name"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
	Country string   `json:"country"`
	State   string   `json:"state,omitempty"`
}

func (g *GeocodingResult) Validate() error {
	return requireLatLon(g.Lat, g.Lon)
}

// Coordinates must only be called after Validate succeeded.
func (g *GeocodingResult) Coordinates() Coordinates {
	return Coordinates{Lat: *g.Lat, Lon: *g.Lon}
}

// IPLocationResponse is the body returned by ip-api.com. Lat and Lon are only
// present when Status is "success".
type IPLocationResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message,omitempty"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

func (r *IPLocationResponse) Validate() error {
	return requireLatLon(r.Lat, r.Lon)
}

// Coordinates must only be called after Validate succeeded.
func (r *IPLocationResponse) Coordinates() Coordinates {
	return Coordinates{Lat: *r.Lat, Lon: *r.Lon}
}

// APIError is the error body OpenWeatherMap sends with non-200 responses.
type APIError struct {
	Cod     any    `json:"cod"` // int or string depending on endpoint
	Message string `json:"message"`
}

func requireLatLon(lat, lon *float64) error {
	switch {
	case lat == nil:
		return fieldError("lat")
	case lon == nil:
		return fieldError("lon")
	}
	return nil
}

type fieldError string

func (f fieldError) Error() string { return errMissingField.Error() + ": " + string(f) }

func (f fieldError) Unwrap() error { return errMissingField }

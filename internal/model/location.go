package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Coordinates is a point on Earth in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Lat, c.Lon)
}

// ParseCoordinates parses "lat,lon" as given on the command line.
func ParseCoordinates(raw string) (Coordinates, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return Coordinates{}, fmt.Errorf("%w: expected \"lat,lon\", got %q", ErrInvalidCoordinates, raw)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: latitude %q", ErrInvalidCoordinates, parts[0])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: longitude %q", ErrInvalidCoordinates, parts[1])
	}
	if !isFinite(lat) || !isFinite(lon) {
		return Coordinates{}, fmt.Errorf("%w: %q is not a finite point", ErrInvalidCoordinates, raw)
	}
	if lat < -90 || lat > 90 {
		return Coordinates{}, fmt.Errorf("%w: latitude %v out of range", ErrInvalidCoordinates, lat)
	}
	if lon < -180 || lon > 180 {
		return Coordinates{}, fmt.Errorf("%w: longitude %v out of range", ErrInvalidCoordinates, lon)
	}
	return Coordinates{Lat: lat, Lon: lon}, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Location selects how coordinates are obtained. The implementations in this
// package are the only ones: CurrentLocation, ExplicitLocation and NamedLocation.
type Location interface {
	fmt.Stringer
	isLocation()
}

// CurrentLocation is resolved from the caller's IP address.
type CurrentLocation struct{}

// ExplicitLocation carries coordinates supplied by the user.
type ExplicitLocation struct {
	Coordinates Coordinates
}

// NamedLocation is resolved through a geocoding lookup. StateCode is only
// meaningful for some countries (e.g. US).
type NamedLocation struct {
	City        string
	StateCode   string
	CountryCode string
}

func (CurrentLocation) isLocation()  {}
func (ExplicitLocation) isLocation() {}
func (NamedLocation) isLocation()    {}

func (CurrentLocation) String() string { return "current location" }

func (l ExplicitLocation) String() string { return l.Coordinates.String() }

func (l NamedLocation) String() string { return l.Query() }

// Query builds the geocoding query "<city>[,<state>][,<country>]".
func (l NamedLocation) Query() string {
	parts := []string{l.City}
	if l.StateCode != "" {
		parts = append(parts, l.StateCode)
	}
	if l.CountryCode != "" {
		parts = append(parts, l.CountryCode)
	}
	return strings.Join(parts, ",")
}

package display

import (
	"errors"
	"fmt"

	"github.com/fakhrymubarak/weather-cli/internal/model"
)

var ErrNoIconForCondition = errors.New("no icon for weather condition")

// Panel is a WeatherReport formatted for display. Values carry their units.
type Panel struct {
	Title       string
	Description string
	Temperature string
	FeelsLike   string
	Wind        string
	Visibility  string
	Humidity    string
	Icon        []string
}

// Format builds the panel for the first reported condition. A report without
// conditions yields no panel and no error. A condition whose icon is not in the
// table fails the whole panel; there is no text-only fallback.
func Format(report model.WeatherReport) (*Panel, error) {
	if len(report.Conditions) == 0 {
		return nil, nil
	}
	cond := report.Conditions[0]

	icon, ok := IconFor(cond.Icon)
	if !ok {
		return nil, fmt.Errorf("%w: icon %q (%s)", ErrNoIconForCondition, cond.Icon, cond.Description)
	}

	t := report.Temperature
	// visibility is printed unconverted: metres under a km label
	return &Panel{
		Title:       report.LocationName,
		Description: cond.Description,
		Temperature: fmt.Sprintf("%.1f°C (%.1f°C – %.1f°C)", t.Current, t.Min, t.Max),
		FeelsLike:   fmt.Sprintf("%.1f°C", t.FeelsLike),
		Wind:        fmt.Sprintf("%s %.1f km/h", DirectionGlyph(report.Wind.DirectionDeg), report.Wind.SpeedKph),
		Visibility:  fmt.Sprintf("%.1f km", report.Visibility),
		Humidity:    fmt.Sprintf("%.1f%%", report.HumidityPct),
		Icon:        icon,
	}, nil
}

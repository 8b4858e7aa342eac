package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fakhrymubarak/weather-cli/internal/model"
)

const detailsWidth = 38

var (
	borderColor = lipgloss.Color("63")

	iconStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	detailsStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1).
			Width(detailsWidth)

	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(13)
)

// Render draws the icon and the details side by side in bordered panels.
func Render(p *Panel) string {
	icon := iconStyle.Render(strings.Join(p.Icon, "\n"))

	rows := []string{
		titleStyle.Render(p.Title),
		p.Description,
		row("Temperature", p.Temperature),
		row("Feels like", p.FeelsLike),
		row("Wind", p.Wind),
		row("Visibility", p.Visibility),
		row("Humidity", p.Humidity),
	}
	details := detailsStyle.Render(strings.Join(rows, "\n"))

	return lipgloss.JoinHorizontal(lipgloss.Top, icon, details) + "\n"
}

func row(label, value string) string {
	return labelStyle.Render(label) + value
}

// Debug dumps the resolved coordinates and the raw report.
func Debug(report model.WeatherReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "coordinates: %s\n", report.Coordinates)
	fmt.Fprintf(&b, "location:    %q\n", report.LocationName)
	for i, c := range report.Conditions {
		fmt.Fprintf(&b, "condition %d: %+v\n", i, c)
	}
	fmt.Fprintf(&b, "temperature: %+v\n", report.Temperature)
	fmt.Fprintf(&b, "wind:        %+v\n", report.Wind)
	fmt.Fprintf(&b, "humidity:    %v\n", report.HumidityPct)
	fmt.Fprintf(&b, "pressure:    %v\n", report.Pressure)
	fmt.Fprintf(&b, "visibility:  %v\n", report.Visibility)
	return b.String()
}

package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fakhrymubarak/weather-cli/internal/config"
	"github.com/fakhrymubarak/weather-cli/internal/display"
	"github.com/fakhrymubarak/weather-cli/internal/model"
	"github.com/fakhrymubarak/weather-cli/internal/service"
)

var (
	ErrNoConditions        = errors.New("no weather conditions reported")
	ErrConflictingLocation = errors.New("--city and --coordinates cannot be used together")
	ErrStateWithoutCity    = errors.New("--state and --country require --city")
)

// WeatherHandler runs one CLI command and writes its output to Out
type WeatherHandler struct {
	WeatherService service.WeatherServiceInterface
	Out            io.Writer
}

// NewWeatherHandler creates a handler writing to out (stdout when nil)
func NewWeatherHandler(out io.Writer, svc ...service.WeatherServiceInterface) *WeatherHandler {
	var weatherService service.WeatherServiceInterface
	if len(svc) > 0 && svc[0] != nil {
		weatherService = svc[0]
	} else {
		weatherService = service.NewWeatherService(nil, nil, nil)
	}
	if out == nil {
		out = os.Stdout
	}
	return &WeatherHandler{
		WeatherService: weatherService,
		Out:            out,
	}
}

// LocationFromFlags picks the location variant from the command line values.
// No city and no coordinates means the current location.
func LocationFromFlags(city, state, country, coordinates string) (model.Location, error) {
	switch {
	case city != "" && coordinates != "":
		return nil, ErrConflictingLocation
	case city == "" && (state != "" || country != ""):
		return nil, ErrStateWithoutCity
	case coordinates != "":
		coords, err := model.ParseCoordinates(coordinates)
		if err != nil {
			return nil, err
		}
		return model.ExplicitLocation{Coordinates: coords}, nil
	case city != "":
		return model.NamedLocation{City: city, StateCode: state, CountryCode: country}, nil
	default:
		return model.CurrentLocation{}, nil
	}
}

// HandleLookup resolves loc, fetches its weather and writes either the panel or,
// with debug set, the raw report. Nothing is written or recorded unless every
// stage succeeds.
func (h *WeatherHandler) HandleLookup(ctx context.Context, loc model.Location, debug bool) error {
	config.GetLogger().Debugw("Looking up weather", "location", loc)

	report, err := h.WeatherService.GetWeather(ctx, loc)
	if err != nil {
		return fmt.Errorf("failed to fetch weather data: %w", err)
	}

	var out string
	if debug {
		out = display.Debug(*report)
	} else {
		panel, err := display.Format(*report)
		if err != nil {
			return err
		}
		if panel == nil {
			return fmt.Errorf("%w for %s", ErrNoConditions, loc)
		}
		out = display.Render(panel)
	}
	if _, err := io.WriteString(h.Out, out); err != nil {
		return err
	}

	// only lookups the user actually saw go into the history
	h.WeatherService.RecordLookup(ctx, loc, report)
	return nil
}

// HandleHistory prints up to n recent lookups as a table.
func (h *WeatherHandler) HandleHistory(ctx context.Context, n int) error {
	entries, err := h.WeatherService.History(ctx, n)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if len(entries) == 0 {
		_, err = fmt.Fprintln(h.Out, "No lookups recorded yet.")
		return err
	}

	tw := tabwriter.NewWriter(h.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tQUERY\tLOCATION\tTEMP\tCONDITIONS")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f°C\t%s\n",
			e.LookedUpAt.Local().Format("2006-01-02 15:04"), e.Query, e.LocationName, e.TempC, e.Description)
	}
	return tw.Flush()
}

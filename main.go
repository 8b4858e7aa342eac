package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/fakhrymubarak/weather-cli/internal/config"
	"github.com/fakhrymubarak/weather-cli/internal/handler"
	"github.com/fakhrymubarak/weather-cli/internal/middleware"
	"github.com/fakhrymubarak/weather-cli/internal/redis"
	"github.com/fakhrymubarak/weather-cli/internal/repository"
	"github.com/fakhrymubarak/weather-cli/internal/service"
	"github.com/fakhrymubarak/weather-cli/internal/tracing"
)

type options struct {
	city        string
	state       string
	country     string
	coordinates string
	debug       bool
	history     bool
	historySize int
	configFile  string
	verbose     bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := pflag.NewFlagSet("weather", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.city, "city", "c", "", "city to look up")
	fs.StringVarP(&opts.state, "state", "s", "", "state code (US only), requires --city")
	fs.StringVarP(&opts.country, "country", "r", "", "ISO 3166 country code, requires --city")
	fs.StringVarP(&opts.coordinates, "coordinates", "l", "", "latitude,longitude to look up")
	fs.BoolVarP(&opts.debug, "debug", "d", false, "print the raw report instead of the panel")
	fs.BoolVar(&opts.history, "history", false, "print the recorded lookups and exit")
	fs.IntVar(&opts.historySize, "history-size", 10, "number of lookups --history prints")
	fs.StringVar(&opts.configFile, "config", "", "path to a config file")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.historySize <= 0 {
		return nil, fmt.Errorf("--history-size must be positive, got %d", opts.historySize)
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	if opts.configFile != "" {
		config.SetConfigFile(opts.configFile)
	}
	config.Load()
	if opts.verbose {
		config.SetLogLevel("debug")
	}
	logger := config.GetLogger()
	defer func() { _ = logger.Sync() }()

	shutdown, err := tracing.Setup(config.GetZipkinUrl(), config.GetServiceName())
	if err != nil {
		logger.Warnw("Tracing disabled", "error", err)
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warnw("Failed to flush traces", "error", err)
			}
		}()
	}

	var historyRepo repository.HistoryRepository
	if config.IsHistoryEnabled() {
		if redis.Available(ctx) {
			historyRepo = repository.NewHistoryRepository()
		} else {
			logger.Warnw("Lookup history unavailable, continuing without it", "addr", config.GetRedisAddr())
		}
	}

	client := middleware.NewRateLimitedClient()
	weatherService := service.NewWeatherService(
		repository.NewLocationRepository(client),
		repository.NewWeatherRepository(client),
		historyRepo,
	)
	h := handler.NewWeatherHandler(stdout, weatherService)

	if opts.history {
		err = h.HandleHistory(ctx, opts.historySize)
	} else {
		err = lookup(ctx, h, opts)
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func lookup(ctx context.Context, h *handler.WeatherHandler, opts *options) error {
	loc, err := handler.LocationFromFlags(opts.city, opts.state, opts.country, opts.coordinates)
	if err != nil {
		return err
	}
	return h.HandleLookup(ctx, loc, opts.debug)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

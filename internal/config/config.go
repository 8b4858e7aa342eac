package config

import (
	"flag"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var once sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once
var logLevel = zap.NewAtomicLevelAt(zapcore.WarnLevel)
var configFile string

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func setDefaults() {
	viper.SetDefault("geolocation.ip_api_url", "http://ip-api.com/json")
	viper.SetDefault("geolocation.geocoding_api_url", "https://api.openweathermap.org/geo/1.0/direct")
	viper.SetDefault("openweathermap.api_url", "https://api.openweathermap.org/data/2.5/weather")
	viper.SetDefault("rate_limiter.rate", 0.75)
	viper.SetDefault("rate_limiter.burst", 3)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("history.enabled", false)
	viper.SetDefault("history.size", 20)
	viper.SetDefault("tracing.zipkin_url", "")
	viper.SetDefault("tracing.service_name", "weather-cli")
	viper.SetDefault("log.level", "warn")

	_ = viper.BindEnv("redis.addr", "REDIS_ADDR")
	_ = viper.BindEnv("tracing.zipkin_url", "ZIPKIN_URL")
}

func initConfig() {
	once.Do(func() {
		setDefaults()
		viper.SetConfigType("yaml")

		if configFile != "" {
			viper.SetConfigFile(configFile)
			if err := viper.ReadInConfig(); err != nil {
				GetLogger().Errorw("Error reading config file", "file", configFile, "error", err)
			}
			applyLogLevel()
			return
		}

		viper.SetConfigName("config")
		if root, err := getProjectRoot(); err == nil {
			viper.AddConfigPath(root)
		}
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "weather-cli"))
		}
		if err := viper.ReadInConfig(); err != nil {
			GetLogger().Debugw("No config file found, using defaults", "error", err)
		}

		if isTestRun() {
			viper.SetConfigName("config_test")
			if err := viper.MergeInConfig(); err != nil {
				GetLogger().Errorw("Error reading test config file", "error", err)
			}
		}
		applyLogLevel()
	})
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// Load reads the configuration now instead of on first use.
func Load() {
	initConfig()
}

// SetConfigFile makes the next config read use path instead of searching for config.yaml.
func SetConfigFile(path string) {
	configFile = path
	once = sync.Once{}
}

func GetIPGeolocationUrl() string {
	initConfig()
	return viper.GetString("geolocation.ip_api_url")
}

func GetGeocodingApiUrl() string {
	initConfig()
	return viper.GetString("geolocation.geocoding_api_url")
}

func GetOpenWeatherApiUrl() string {
	initConfig()
	return viper.GetString("openweathermap.api_url")
}

func GetOpenWeatherMapAPIKey() string {
	_ = godotenv.Load()
	return os.Getenv("OPENWEATHERMAP_API_KEY")
}

func GetRedisAddr() string {
	initConfig()
	return viper.GetString("redis.addr")
}

// IsHistoryEnabled reports whether successful lookups are recorded in Redis.
func IsHistoryEnabled() bool {
	initConfig()
	return viper.GetBool("history.enabled")
}

// GetHistorySize returns how many lookups the history keeps. Defaults to 20.
func GetHistorySize() int {
	initConfig()
	size := viper.GetInt("history.size")
	if size <= 0 {
		return 20
	}
	return size
}

func GetZipkinUrl() string {
	initConfig()
	return viper.GetString("tracing.zipkin_url")
}

func GetServiceName() string {
	initConfig()
	return viper.GetString("tracing.service_name")
}

// GetRateLimiterConfig returns the rate (requests per second) and burst for outbound API calls.
func GetRateLimiterConfig() (rate float64, burst int) {
	initConfig()
	rate = viper.GetFloat64("rate_limiter.rate")
	if rate <= 0 {
		rate = 0.75
	}
	burst = viper.GetInt("rate_limiter.burst")
	if burst <= 0 {
		burst = 3
	}
	return
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = logLevel
		l, err := cfg.Build()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}

// SetLogLevel changes the level of the shared logger. Unknown levels are ignored.
func SetLogLevel(level string) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		GetLogger().Warnw("Unknown log level", "level", level)
		return
	}
	logLevel.SetLevel(lvl)
}

func applyLogLevel() {
	SetLogLevel(viper.GetString("log.level"))
}

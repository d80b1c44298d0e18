package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

type AppConfig struct {
	// BOMBaseURL is the scheme and host of the observation feed.
	BOMBaseURL string `validate:"required,url"`
	// BOMRelativePath is the per-station document path; <WMO> is replaced by the station id.
	BOMRelativePath string `validate:"required,contains=<WMO>"`
	BOMUserAgent    string

	DefaultStationID int `validate:"gt=0"`

	// FilterPreviousHours is the trailing window observations are meant to be
	// limited to. It is loaded for parity with deployed configuration but not applied.
	FilterPreviousHours int `validate:"gte=0"`

	HTTPTimeout time.Duration `validate:"gt=0"`

	// CacheTTL controls how long fetched observations are reused (0 = no caching).
	CacheTTL time.Duration `validate:"gte=0"`

	// FetchInterval controls how often WarmStations are refreshed.
	FetchInterval time.Duration `validate:"gt=0"`
	WarmStations  []int         `validate:"dive,gt=0"`

	Port     string `validate:"required,numeric"`
	AppEnv   string `validate:"oneof=dev prod"`
	LogLevel slog.Level
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found or error loading it", "err", err)
	}
	cfg := &AppConfig{}

	cfg.BOMBaseURL = getenvDefault("BOM_BASE_URL", "http://www.bom.gov.au")
	cfg.BOMRelativePath = getenvDefault("BOM_RELATIVE_PATH", "fwo/IDS60901/IDS60901.<WMO>.json")
	cfg.BOMUserAgent = getenvDefault("BOM_USER_AGENT", "station-observations/1.0")

	var err error
	if cfg.DefaultStationID, err = getenvInt("DEFAULT_OBSERVATION_STATION_ID", 94672); err != nil {
		return nil, err
	}
	if cfg.FilterPreviousHours, err = getenvInt("FILTER_PREVIOUS_HOURS", 72); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getenvDuration("CACHE_TTL", "10m"); err != nil {
		return nil, err
	}
	if cfg.FetchInterval, err = getenvDuration("FETCH_INTERVAL", "15m"); err != nil {
		return nil, err
	}

	stations, err := parseStations(os.Getenv("WARM_STATIONS"))
	if err != nil {
		return nil, err
	}
	cfg.WarmStations = stations

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.AppEnv = getenvDefault("APP_ENV", "dev")

	level, err := ParseLogLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ConsoleConfig configures the interactive average-temperature client.
type ConsoleConfig struct {
	APIURL                 string `validate:"required,url"`
	AverageTemperaturePath string `validate:"required,startswith=/"`
	DefaultStationID       string `validate:"required,numeric"`
	HTTPTimeout            time.Duration
}

// LoadConsole reads the console client configuration from the environment.
func LoadConsole() (*ConsoleConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found or error loading it", "err", err)
	}

	cfg := &ConsoleConfig{
		APIURL:                 strings.TrimRight(getenvDefault("API_URL", "http://localhost:8080"), "/"),
		AverageTemperaturePath: getenvDefault("AVERAGE_TEMPERATURE_PATH", "/api/v1/observations/average-temperature"),
		DefaultStationID:       getenvDefault("DEFAULT_OBSERVATION_STATION_ID", "94672"),
	}

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid console configuration: %w", err)
	}
	return cfg, nil
}

// ParseLogLevel maps debug, info, warn and error to slog levels.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}

func parseStations(s string) ([]int, error) {
	var ids []int
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		id, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("invalid WARM_STATIONS entry %q: %w", tok, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

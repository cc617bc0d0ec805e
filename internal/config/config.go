package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/yegors/awardsearch/internal/flights"
)

// Config is the complete application configuration. Defaults apply first,
// then the optional toml file, then CLI flags on top.
type Config struct {
	Search  SearchConfig  `toml:"search"`
	Filter  FilterConfig  `toml:"filter"`
	Export  ExportConfig  `toml:"export"`
	Server  ServerConfig  `toml:"server"`
	Logging LoggingConfig `toml:"logging"`
}

// SearchConfig controls the fetch loop.
type SearchConfig struct {
	Adults                int `toml:"adults"`
	Children              int `toml:"children"`
	SettleDelaySeconds    int `toml:"settle_delay_seconds"`
	RequestTimeoutSeconds int `toml:"request_timeout_seconds"`
}

// FilterConfig holds the raw filter criteria; time windows are 24-hour
// "HH:MM" pairs [min, max].
type FilterConfig struct {
	MaxMilesMain       float64  `toml:"max_miles_main"`
	MaxDurationMinutes int      `toml:"max_duration_minutes"`
	DepartTimeRange    []string `toml:"depart_time_range"`
	ArriveTimeRange    []string `toml:"arrive_time_range"`
	MaxStops           int      `toml:"max_stops"`
}

// ExportConfig names the CSV output files.
type ExportConfig struct {
	RawPath      string `toml:"raw_path"`
	FilteredPath string `toml:"filtered_path"`
}

// ServerConfig controls the optional post-run results API.
type ServerConfig struct {
	Enabled            bool     `toml:"enabled"`
	Addr               string   `toml:"addr"`
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			Adults:                1,
			Children:              0,
			SettleDelaySeconds:    5,
			RequestTimeoutSeconds: 30,
		},
		Filter: FilterConfig{
			MaxMilesMain:       20,
			MaxDurationMinutes: 11 * 60,
			DepartTimeRange:    []string{"07:00", "16:00"},
			ArriveTimeRange:    []string{"12:00", "22:00"},
			MaxStops:           1,
		},
		Export: ExportConfig{
			RawPath:      "flights_all.csv",
			FilteredPath: "flights_filtered.csv",
		},
		Server: ServerConfig{
			Enabled: false,
			Addr:    "127.0.0.1:8080",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load returns the defaults merged with the toml file at path. An empty
// path loads defaults only.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	}
	return cfg, nil
}

// SettleDelay returns the configured settle delay.
func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.Search.SettleDelaySeconds) * time.Second
}

// RequestTimeout returns the configured per-request timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Search.RequestTimeoutSeconds) * time.Second
}

// FlightFilter converts the raw criteria into the typed filter config,
// validating the time windows.
func (c *Config) FlightFilter() (flights.FilterConfig, error) {
	departWindow, err := parseWindow("depart_time_range", c.Filter.DepartTimeRange)
	if err != nil {
		return flights.FilterConfig{}, err
	}
	arriveWindow, err := parseWindow("arrive_time_range", c.Filter.ArriveTimeRange)
	if err != nil {
		return flights.FilterConfig{}, err
	}

	return flights.FilterConfig{
		MaxMilesMain:       c.Filter.MaxMilesMain,
		MaxDurationMinutes: c.Filter.MaxDurationMinutes,
		DepartWindow:       departWindow,
		ArriveWindow:       arriveWindow,
		MaxStops:           c.Filter.MaxStops,
	}, nil
}

func parseWindow(name string, bounds []string) (flights.TimeWindow, error) {
	if len(bounds) != 2 {
		return flights.TimeWindow{}, fmt.Errorf("%s must have exactly two HH:MM values, got %d", name, len(bounds))
	}

	min, err := flights.ParseClock24(bounds[0])
	if err != nil {
		return flights.TimeWindow{}, fmt.Errorf("invalid %s minimum: %w", name, err)
	}
	max, err := flights.ParseClock24(bounds[1])
	if err != nil {
		return flights.TimeWindow{}, fmt.Errorf("invalid %s maximum: %w", name, err)
	}
	if min.Minutes() > max.Minutes() {
		return flights.TimeWindow{}, fmt.Errorf("%s minimum %s is after maximum %s", name, min, max)
	}

	return flights.TimeWindow{Min: min, Max: max}, nil
}

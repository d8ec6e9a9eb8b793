// Package config loads titlelens configuration from defaults, an optional
// YAML file and TITLELENS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/titlelens/pkg/aggregate"
	"github.com/Sumatoshi-tech/titlelens/pkg/filter"
)

// Sentinel validation errors.
var (
	ErrInvalidPort      = errors.New("invalid server port")
	ErrInvalidTopN      = errors.New("chart top_n must be positive")
	ErrInvalidBins      = errors.New("histogram bin counts must be positive")
	ErrInvalidFormat    = errors.New("unknown render format")
	ErrInvalidTheme     = errors.New("unknown render theme")
	ErrInvalidType      = errors.New("invalid default content type")
	ErrInvalidLogFormat = errors.New("unknown log format")
)

// EnvPrefix prefixes every environment override, e.g. TITLELENS_SERVER_PORT.
const EnvPrefix = "TITLELENS"

// Formats lists the accepted render formats.
var Formats = []string{"plot", "text", "json", "yaml"}

var (
	themes     = []string{"dark", "light"}
	logFormats = []string{"text", "json"}
)

// Config holds all titlelens configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Dataset   DatasetConfig   `mapstructure:"dataset"`
	Charts    ChartsConfig    `mapstructure:"charts"`
	Render    RenderConfig    `mapstructure:"render"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ServerConfig holds dashboard server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Port            int           `mapstructure:"port"`
	Metrics         bool          `mapstructure:"metrics"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatasetConfig names the dataset and the initial filter.
type DatasetConfig struct {
	Source      string `mapstructure:"source"`
	DefaultType string `mapstructure:"default_type"`
}

// ChartsConfig holds aggregation limits.
type ChartsConfig struct {
	TopN              int `mapstructure:"top_n"`
	MovieBins         int `mapstructure:"movie_bins"`
	SeasonMaxBins     int `mapstructure:"season_max_bins"`
	SeasonDefaultBins int `mapstructure:"season_default_bins"`
}

// Options converts the chart limits into aggregator options.
func (c ChartsConfig) Options() aggregate.Options {
	return aggregate.Options{
		TopN:              c.TopN,
		MovieBins:         c.MovieBins,
		SeasonMaxBins:     c.SeasonMaxBins,
		SeasonDefaultBins: c.SeasonDefaultBins,
	}
}

// RenderConfig holds output configuration.
type RenderConfig struct {
	Format string `mapstructure:"format"`
	Theme  string `mapstructure:"theme"`
	Title  string `mapstructure:"title"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TelemetryConfig holds OpenTelemetry export configuration.
type TelemetryConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPHeaders  string  `mapstructure:"otlp_headers"`
	ServiceName  string  `mapstructure:"service_name"`
	Environment  string  `mapstructure:"environment"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
}

// LoadConfig loads configuration from file and environment variables.
// An empty configPath searches for titlelens.yaml in ., ./config and
// /etc/titlelens; a missing file there is not an error.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("titlelens")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath("/etc/titlelens")
	}

	viperCfg.SetEnvPrefix(EnvPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := Validate(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	viperCfg := viper.New()
	setDefaults(viperCfg)

	var config Config

	// Defaults always decode.
	_ = viperCfg.Unmarshal(&config)

	return &config
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	// Server defaults.
	viperCfg.SetDefault("server.host", DefaultHost)
	viperCfg.SetDefault("server.port", DefaultPort)
	viperCfg.SetDefault("server.read_timeout", DefaultReadTimeout)
	viperCfg.SetDefault("server.write_timeout", DefaultWriteTimeout)
	viperCfg.SetDefault("server.idle_timeout", DefaultIdleTimeout)
	viperCfg.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)
	viperCfg.SetDefault("server.metrics", DefaultMetricsEnabled)
	viperCfg.SetDefault("server.cors_origins", []string{})

	// Dataset defaults.
	viperCfg.SetDefault("dataset.source", "")
	viperCfg.SetDefault("dataset.default_type", DefaultDatasetType)

	// Chart defaults.
	viperCfg.SetDefault("charts.top_n", DefaultTopN)
	viperCfg.SetDefault("charts.movie_bins", DefaultMovieBins)
	viperCfg.SetDefault("charts.season_max_bins", DefaultSeasonMaxBins)
	viperCfg.SetDefault("charts.season_default_bins", DefaultSeasonDefaultBins)

	// Render defaults.
	viperCfg.SetDefault("render.format", DefaultRenderFormat)
	viperCfg.SetDefault("render.theme", DefaultRenderTheme)
	viperCfg.SetDefault("render.title", DefaultRenderTitle)

	// Logging defaults.
	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)

	// Telemetry defaults.
	viperCfg.SetDefault("telemetry.otlp_endpoint", "")
	viperCfg.SetDefault("telemetry.otlp_headers", "")
	viperCfg.SetDefault("telemetry.otlp_insecure", false)
	viperCfg.SetDefault("telemetry.service_name", DefaultServiceName)
	viperCfg.SetDefault("telemetry.environment", "")
	viperCfg.SetDefault("telemetry.sample_ratio", 0.0)
}

// Validate checks config for out-of-range or unknown values.
func Validate(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > maxPort {
		return fmt.Errorf("%w: %d", ErrInvalidPort, config.Server.Port)
	}

	if config.Charts.TopN <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTopN, config.Charts.TopN)
	}

	if config.Charts.MovieBins <= 0 || config.Charts.SeasonMaxBins <= 0 || config.Charts.SeasonDefaultBins <= 0 {
		return fmt.Errorf("%w: movie_bins=%d season_max_bins=%d season_default_bins=%d", ErrInvalidBins,
			config.Charts.MovieBins, config.Charts.SeasonMaxBins, config.Charts.SeasonDefaultBins)
	}

	if !slices.Contains(Formats, config.Render.Format) {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, config.Render.Format)
	}

	if !slices.Contains(themes, config.Render.Theme) {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, config.Render.Theme)
	}

	if !slices.Contains(logFormats, config.Logging.Format) {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.Logging.Format)
	}

	if _, err := filter.ParseType(config.Dataset.DefaultType); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidType, err)
	}

	return nil
}

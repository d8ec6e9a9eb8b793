package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/titlelens/pkg/aggregate"
	"github.com/Sumatoshi-tech/titlelens/pkg/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "titlelens.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig_EmptyFile_UsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, config.DefaultHost, cfg.Server.Host)
	assert.Equal(t, config.DefaultPort, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Server.Metrics)
	assert.Empty(t, cfg.Server.CORSOrigins)

	assert.Empty(t, cfg.Dataset.Source)
	assert.Equal(t, "All", cfg.Dataset.DefaultType)

	assert.Equal(t, aggregate.DefaultOptions(), cfg.Charts.Options())

	assert.Equal(t, "plot", cfg.Render.Format)
	assert.Equal(t, "dark", cfg.Render.Theme)
	assert.Equal(t, "Netflix Titles", cfg.Render.Title)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)

	assert.Equal(t, "titlelens", cfg.Telemetry.ServiceName)
	assert.Empty(t, cfg.Telemetry.OTLPEndpoint)
	assert.Zero(t, cfg.Telemetry.SampleRatio)
}

func TestDefault_MatchesLoadedDefaults(t *testing.T) {
	t.Parallel()

	loaded, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, loaded, config.Default())
	require.NoError(t, config.Validate(config.Default()))
}

func TestLoadConfig_ValidFile_Unmarshals(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `server:
  host: 127.0.0.1
  port: 9090
  read_timeout: 5s
  cors_origins:
    - https://example.com
  metrics: false
dataset:
  source: ./netflix_titles.csv
  default_type: tv show
charts:
  top_n: 5
  movie_bins: 12
render:
  format: json
  theme: light
  title: Catalog
logging:
  level: debug
  format: json
telemetry:
  otlp_endpoint: localhost:4317
  otlp_insecure: true
  sample_ratio: 0.5
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"https://example.com"}, cfg.Server.CORSOrigins)
	assert.False(t, cfg.Server.Metrics)
	assert.Equal(t, "./netflix_titles.csv", cfg.Dataset.Source)
	assert.Equal(t, "tv show", cfg.Dataset.DefaultType)
	assert.Equal(t, 5, cfg.Charts.TopN)
	assert.Equal(t, 12, cfg.Charts.MovieBins)
	assert.Equal(t, config.DefaultSeasonMaxBins, cfg.Charts.SeasonMaxBins)
	assert.Equal(t, "json", cfg.Render.Format)
	assert.Equal(t, "light", cfg.Render.Theme)
	assert.Equal(t, "Catalog", cfg.Render.Title)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "localhost:4317", cfg.Telemetry.OTLPEndpoint)
	assert.True(t, cfg.Telemetry.OTLPInsecure)
	assert.InDelta(t, 0.5, cfg.Telemetry.SampleRatio, 0.0001)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TITLELENS_SERVER_PORT", "7070")
	t.Setenv("TITLELENS_RENDER_FORMAT", "yaml")
	t.Setenv("TITLELENS_DATASET_SOURCE", "https://example.com/titles.csv")

	cfg, err := config.LoadConfig(writeConfig(t, "server:\n  port: 9090\n"))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "yaml", cfg.Render.Format)
	assert.Equal(t, "https://example.com/titles.csv", cfg.Dataset.Source)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "server: [unclosed"))
	require.Error(t, err)
}

func TestLoadConfig_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"port zero", "server:\n  port: 0\n", config.ErrInvalidPort},
		{"port too large", "server:\n  port: 70000\n", config.ErrInvalidPort},
		{"top n", "charts:\n  top_n: 0\n", config.ErrInvalidTopN},
		{"movie bins", "charts:\n  movie_bins: -1\n", config.ErrInvalidBins},
		{"season bins", "charts:\n  season_max_bins: 0\n", config.ErrInvalidBins},
		{"format", "render:\n  format: pdf\n", config.ErrInvalidFormat},
		{"theme", "render:\n  theme: neon\n", config.ErrInvalidTheme},
		{"log format", "logging:\n  format: xml\n", config.ErrInvalidLogFormat},
		{"default type", "dataset:\n  default_type: podcast\n", config.ErrInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.LoadConfig(writeConfig(t, tt.content))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

package config

import "time"

// Server defaults.
const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 8080
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMetricsEnabled  = true
)

// Dataset defaults.
const (
	DefaultDatasetType = "All"
)

// Chart defaults.
const (
	DefaultTopN              = 10
	DefaultMovieBins         = 20
	DefaultSeasonMaxBins     = 15
	DefaultSeasonDefaultBins = 10
)

// Render defaults.
const (
	DefaultRenderFormat = "plot"
	DefaultRenderTheme  = "dark"
	DefaultRenderTitle  = "Netflix Titles"
)

// Logging defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Telemetry defaults.
const (
	DefaultServiceName = "titlelens"
)

const maxPort = 65535

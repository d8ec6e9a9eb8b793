package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Sumatoshi-tech/titlelens/pkg/catalog"
	"github.com/Sumatoshi-tech/titlelens/pkg/config"
	"github.com/Sumatoshi-tech/titlelens/pkg/dashboard"
	"github.com/Sumatoshi-tech/titlelens/pkg/filter"
	"github.com/Sumatoshi-tech/titlelens/pkg/observability"
	"github.com/Sumatoshi-tech/titlelens/pkg/version"
)

// Dataset source errors.
var (
	ErrNoSource    = errors.New("no dataset source: pass a file, URL or - as argument, or set dataset.source")
	ErrStdinSource = errors.New("the mcp command reads its protocol from stdin; pass a file or URL as the dataset")
)

// session is the configuration, telemetry and logger of one command run.
type session struct {
	cfg       *config.Config
	providers observability.Providers
	logger    *slog.Logger
}

type launchOptions struct {
	mode      observability.AppMode
	logWriter io.Writer
}

// startSession loads configuration and initializes observability.
// The caller must call close.
func startSession(opts *GlobalOptions, launch launchOptions, adjust func(*config.Config)) (*session, error) {
	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if adjust != nil {
		adjust(cfg)

		err = config.Validate(cfg)
		if err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}

	obsCfg, err := observabilityConfig(opts, cfg, launch)
	if err != nil {
		return nil, err
	}

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}

	slog.SetDefault(providers.Logger)

	return &session{cfg: cfg, providers: providers, logger: providers.Logger}, nil
}

func observabilityConfig(opts *GlobalOptions, cfg *config.Config, launch launchOptions) (observability.Config, error) {
	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceName = cfg.Telemetry.ServiceName
	obsCfg.ServiceVersion = version.Version
	obsCfg.Environment = cfg.Telemetry.Environment
	obsCfg.Mode = launch.mode
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(cfg.Telemetry.OTLPHeaders)
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.SampleRatio = cfg.Telemetry.SampleRatio
	obsCfg.Prometheus = launch.mode == observability.ModeServe && cfg.Server.Metrics
	obsCfg.LogJSON = opts.LogJSON || cfg.Logging.Format == "json"
	obsCfg.LogWriter = launch.logWriter

	levelName := cfg.Logging.Level
	if opts.LogLevel != "" {
		levelName = opts.LogLevel
	}

	level, err := observability.ParseLogLevel(levelName)
	if err != nil {
		return observability.Config{}, err
	}

	switch {
	case opts.Verbose:
		level = slog.LevelDebug
	case opts.Quiet:
		level = slog.LevelError
	}

	obsCfg.LogLevel = level

	return obsCfg, nil
}

func (s *session) close() {
	err := s.providers.Shutdown(context.Background())
	if err != nil {
		s.logger.Warn("observability shutdown failed", "error", err)
	}
}

// dashboardFor loads the dataset named by arg (or dataset.source) and wraps
// it in a Dashboard whose filter starts at dataset.default_type.
func (s *session) dashboardFor(ctx context.Context, args []string, stdin io.Reader) (*dashboard.Dashboard, error) {
	source := s.source(args)
	if source == "" {
		return nil, ErrNoSource
	}

	typ, err := filter.ParseType(s.cfg.Dataset.DefaultType)
	if err != nil {
		return nil, err
	}

	ctx, span := s.providers.Tracer.Start(ctx, "titlelens.load")
	defer span.End()

	loader := &catalog.Loader{Stdin: stdin, Logger: s.logger}

	records, err := loader.Load(ctx, source)
	if err != nil {
		span.RecordError(err)

		return nil, fmt.Errorf("load dataset: %w", err)
	}

	metrics, err := observability.NewDashboardMetrics(s.providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("register dashboard metrics: %w", err)
	}

	return dashboard.New(records, filter.State{Type: typ},
		dashboard.WithOptions(s.cfg.Charts.Options()),
		dashboard.WithMetrics(metrics),
		dashboard.WithLogger(s.logger),
	), nil
}

// source returns the dataset argument, falling back to dataset.source.
func (s *session) source(args []string) string {
	if len(args) > 0 {
		return args[0]
	}

	return s.cfg.Dataset.Source
}

// overrideType returns a config adjustment applying a --type flag, if set.
func overrideType(typ string) func(*config.Config) {
	return func(cfg *config.Config) {
		if typ != "" {
			cfg.Dataset.DefaultType = typ
		}
	}
}

// Package dashboard holds the normalized dataset for a session together with
// the shared filter control, and computes chart snapshots from them.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Sumatoshi-tech/titlelens/pkg/aggregate"
	"github.com/Sumatoshi-tech/titlelens/pkg/catalog"
	"github.com/Sumatoshi-tech/titlelens/pkg/filter"
	"github.com/Sumatoshi-tech/titlelens/pkg/observability"
)

// ErrUnknownChart is returned for chart names other than the four charts.
var ErrUnknownChart = errors.New("unknown chart")

// Chart names one of the dashboard charts.
type Chart string

// Dashboard charts.
const (
	ChartYears     Chart = "years"
	ChartGenres    Chart = "genres"
	ChartCountries Chart = "countries"
	ChartDurations Chart = "durations"
)

// Charts lists every chart in display order.
func Charts() []Chart {
	return []Chart{ChartYears, ChartGenres, ChartCountries, ChartDurations}
}

// ParseChart resolves a chart name, case-insensitively.
func ParseChart(name string) (Chart, error) {
	chart := Chart(strings.ToLower(strings.TrimSpace(name)))

	for _, known := range Charts() {
		if chart == known {
			return chart, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownChart, name)
}

// Snapshot is every chart computed for one filter state. Records is the size
// of the whole dataset and Selected the number of records passing the filter.
type Snapshot struct {
	Filter    filter.State             `json:"filter"    yaml:"filter"`
	Records   int                      `json:"records"   yaml:"records"`
	Selected  int                      `json:"selected"  yaml:"selected"`
	Counts    map[string]int           `json:"counts"    yaml:"counts"`
	Years     aggregate.YearSeries     `json:"years"     yaml:"years"`
	Genres    aggregate.Distribution   `json:"genres"    yaml:"genres"`
	Countries aggregate.Distribution   `json:"countries" yaml:"countries"`
	Durations aggregate.DurationResult `json:"durations" yaml:"durations"`
}

// Chart returns the result for one chart.
func (s Snapshot) Chart(chart Chart) (any, error) {
	switch chart {
	case ChartYears:
		return s.Years, nil
	case ChartGenres:
		return s.Genres, nil
	case ChartCountries:
		return s.Countries, nil
	case ChartDurations:
		return s.Durations, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownChart, chart)
	}
}

// Empty reports whether no record passed the filter.
func (s Snapshot) Empty() bool {
	return s.Selected == 0
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithOptions sets the aggregation limits.
func WithOptions(opts aggregate.Options) Option {
	return func(d *Dashboard) { d.opts = opts }
}

// WithMetrics records snapshot timings and dataset size on m.
func WithMetrics(m *observability.DashboardMetrics) Option {
	return func(d *Dashboard) { d.metrics = m }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dashboard) { d.logger = logger }
}

// Dashboard is the session state: an immutable record slice and the filter
// control. It is safe for concurrent use.
type Dashboard struct {
	records []catalog.Record
	counts  map[string]int
	control *filter.Control
	opts    aggregate.Options
	metrics *observability.DashboardMetrics
	logger  *slog.Logger
}

// New creates a Dashboard over records, which must not be modified afterwards.
func New(records []catalog.Record, initial filter.State, options ...Option) *Dashboard {
	d := &Dashboard{
		records: records,
		control: filter.NewControl(initial),
		opts:    aggregate.DefaultOptions(),
		logger:  slog.Default(),
	}

	for _, opt := range options {
		opt(d)
	}

	d.counts = make(map[string]int)
	for typ, n := range catalog.Counts(records) {
		d.counts[string(typ)] = n
	}

	if d.metrics != nil {
		d.metrics.RecordDataset(context.Background(), d.counts)
	}

	return d
}

// Control returns the filter control shared by every consumer of d.
func (d *Dashboard) Control() *filter.Control {
	return d.control
}

// Len returns the number of records held.
func (d *Dashboard) Len() int {
	return len(d.records)
}

// Counts returns a copy of the per-type record counts.
func (d *Dashboard) Counts() map[string]int {
	out := make(map[string]int, len(d.counts))
	for k, v := range d.counts {
		out[k] = v
	}

	return out
}

// Current computes a snapshot for the control's current state.
func (d *Dashboard) Current(ctx context.Context) Snapshot {
	return d.Snapshot(ctx, d.control.State())
}

// Snapshot runs every aggregator for st. It reads the filter state only from
// st, so the shared control is never consulted mid-pass.
func (d *Dashboard) Snapshot(ctx context.Context, st filter.State) Snapshot {
	start := time.Now()

	selected := 0

	for _, rec := range d.records {
		if filter.Passes(rec, st) {
			selected++
		}
	}

	snap := Snapshot{
		Filter:    st,
		Records:   len(d.records),
		Selected:  selected,
		Counts:    d.Counts(),
		Years:     d.opts.Years(d.records, st),
		Genres:    d.opts.Genres(d.records, st),
		Countries: d.opts.Countries(d.records, st),
		Durations: d.opts.Durations(d.records, st),
	}

	elapsed := time.Since(start)

	if d.metrics != nil {
		d.metrics.RecordSnapshot(ctx, string(st.Type), elapsed)
	}

	d.logger.DebugContext(ctx, "snapshot computed",
		"filter", st.Type,
		"selected", selected,
		"duration", elapsed)

	return snap
}

package aggregate

import (
	"github.com/Sumatoshi-tech/titlelens/pkg/alg/stats"
	"github.com/Sumatoshi-tech/titlelens/pkg/catalog"
	"github.com/Sumatoshi-tech/titlelens/pkg/filter"
)

// Measure is the unit a duration histogram is drawn in.
type Measure string

// Histogram measures.
const (
	MeasureMinutes Measure = "minutes"
	MeasureSeasons Measure = "seasons"
)

// DurationResult is the movie runtime or TV season histogram.
//
// DefaultedToMovies is set when the filter is All: minutes and seasons cannot
// share an axis, so only movies are shown.
type DurationResult struct {
	Measure           Measure       `json:"measure"           yaml:"measure"`
	DefaultedToMovies bool          `json:"defaultedToMovies" yaml:"defaultedToMovies"`
	BinBudget         int           `json:"binBudget"         yaml:"binBudget"`
	Bins              []stats.Bin   `json:"bins"              yaml:"bins"`
	Samples           int           `json:"samples"           yaml:"samples"`
	Summary           stats.Summary `json:"summary"           yaml:"summary"`
	NoData            bool          `json:"noData"            yaml:"noData"`
}

// Empty reports whether no record qualified for the histogram.
func (r DurationResult) Empty() bool {
	return r.NoData
}

// Durations builds a histogram of TV seasons when the filter is TV Show, and
// of movie runtimes otherwise. It branches on the filter type directly rather
// than through the predicate because the two measures are not comparable.
func (o Options) Durations(records []catalog.Record, st filter.State) DurationResult {
	if st.Type == filter.TVShow {
		return o.seasons(records)
	}

	result := o.minutes(records)
	result.DefaultedToMovies = st.Type == filter.All

	return result
}

func (o Options) minutes(records []catalog.Record) DurationResult {
	values := collect(records, catalog.Movie, func(rec catalog.Record) *int { return rec.DurationMinutes })

	return histogram(MeasureMinutes, values, o.MovieBins)
}

func (o Options) seasons(records []catalog.Record) DurationResult {
	values := collect(records, catalog.TVShow, func(rec catalog.Record) *int { return rec.Seasons })

	budget := o.SeasonDefaultBins
	if len(values) > 0 {
		budget = min(o.SeasonMaxBins, int(stats.Max(values)))
	}

	return histogram(MeasureSeasons, values, budget)
}

func collect(records []catalog.Record, typ catalog.ContentType, field func(catalog.Record) *int) []float64 {
	values := []float64{}

	for _, rec := range records {
		if rec.Type != typ {
			continue
		}

		if v := field(rec); v != nil && *v > 0 {
			values = append(values, float64(*v))
		}
	}

	return values
}

func histogram(measure Measure, values []float64, budget int) DurationResult {
	budget = max(budget, 1)

	return DurationResult{
		Measure:   measure,
		BinBudget: budget,
		Bins:      stats.Histogram(values, budget, 1),
		Samples:   len(values),
		Summary:   stats.Summarize(values),
		NoData:    len(values) == 0,
	}
}

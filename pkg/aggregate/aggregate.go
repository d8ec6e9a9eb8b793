// Package aggregate turns normalized records into chart-ready summaries.
//
// Every aggregator is a pure function of the records and the filter state:
// results are recomputed on each call, never cached, and empty selections
// produce well-formed empty results.
package aggregate

import (
	"github.com/Sumatoshi-tech/titlelens/pkg/catalog"
	"github.com/Sumatoshi-tech/titlelens/pkg/filter"
)

// Default chart limits.
const (
	TopN              = 10
	MovieBins         = 20
	SeasonMaxBins     = 15
	SeasonDefaultBins = 10
)

// Options tunes the aggregators. The zero value is not usable; start from
// DefaultOptions.
type Options struct {
	TopN              int
	MovieBins         int
	SeasonMaxBins     int
	SeasonDefaultBins int
}

// DefaultOptions returns the standard chart limits.
func DefaultOptions() Options {
	return Options{
		TopN:              TopN,
		MovieBins:         MovieBins,
		SeasonMaxBins:     SeasonMaxBins,
		SeasonDefaultBins: SeasonDefaultBins,
	}
}

// Years counts filtered records per release year using default options.
func Years(records []catalog.Record, st filter.State) YearSeries {
	return DefaultOptions().Years(records, st)
}

// Genres returns the top genres of the filtered records using default options.
func Genres(records []catalog.Record, st filter.State) Distribution {
	return DefaultOptions().Genres(records, st)
}

// Countries returns the top countries of the filtered records using default options.
func Countries(records []catalog.Record, st filter.State) Distribution {
	return DefaultOptions().Countries(records, st)
}

// Durations builds the movie duration or TV season histogram using default options.
func Durations(records []catalog.Record, st filter.State) DurationResult {
	return DefaultOptions().Durations(records, st)
}

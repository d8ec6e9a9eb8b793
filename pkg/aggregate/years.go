package aggregate

import (
	"slices"

	"github.com/Sumatoshi-tech/titlelens/pkg/catalog"
	"github.com/Sumatoshi-tech/titlelens/pkg/filter"
)

// YearCount is the number of titles released in Year.
type YearCount struct {
	Year  int `json:"year"  yaml:"year"`
	Count int `json:"count" yaml:"count"`
}

// YearSeries is the release year trend, ascending by year. Years without
// titles are absent.
type YearSeries struct {
	Points []YearCount `json:"points" yaml:"points"`
}

// Empty reports whether the series has no points.
func (s YearSeries) Empty() bool {
	return len(s.Points) == 0
}

// Total returns the number of records counted.
func (s YearSeries) Total() int {
	total := 0
	for _, p := range s.Points {
		total += p.Count
	}

	return total
}

// Years counts filtered records per release year. Records without a parsable
// year are skipped.
func (o Options) Years(records []catalog.Record, st filter.State) YearSeries {
	counts := make(map[int]int)

	for _, rec := range records {
		if !filter.Passes(rec, st) {
			continue
		}

		if year, ok := rec.Year(); ok {
			counts[year]++
		}
	}

	points := make([]YearCount, 0, len(counts))
	for year, count := range counts {
		points = append(points, YearCount{Year: year, Count: count})
	}

	slices.SortFunc(points, func(a, b YearCount) int {
		return a.Year - b.Year
	})

	return YearSeries{Points: points}
}

package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Sumatoshi-tech/titlelens/pkg/aggregate"
	"github.com/Sumatoshi-tech/titlelens/pkg/alg/stats"
	"github.com/Sumatoshi-tech/titlelens/pkg/filter"
)

// binLabel names a histogram bin. Unit-wide bins show their single value.
func binLabel(bin stats.Bin) string {
	if bin.End-bin.Start == 1 {
		return strconv.FormatFloat(bin.Start, 'f', -1, 64)
	}

	return fmt.Sprintf("%s-%s",
		strconv.FormatFloat(bin.Start, 'f', -1, 64),
		strconv.FormatFloat(bin.End, 'f', -1, 64))
}

func binLabels(bins []stats.Bin) ([]string, []int) {
	labels := make([]string, len(bins))
	counts := make([]int, len(bins))

	for i, bin := range bins {
		labels[i] = binLabel(bin)
		counts[i] = bin.Count
	}

	return labels, counts
}

func measureTitle(m aggregate.Measure) string {
	if m == aggregate.MeasureSeasons {
		return "TV Show Seasons"
	}

	return "Movie Durations"
}

func measureUnit(m aggregate.Measure) string {
	if m == aggregate.MeasureSeasons {
		return "Seasons"
	}

	return "Minutes"
}

func filterLabel(st filter.State) string {
	if st.Type == "" {
		return string(filter.All)
	}

	return string(st.Type)
}

func summaryLine(res aggregate.DurationResult) string {
	unit := "min"
	if res.Measure == aggregate.MeasureSeasons {
		unit = "seasons"
	}

	s := res.Summary

	return fmt.Sprintf("median %s %s, mean %.1f, p95 %s, range %s-%s",
		formatNumber(s.Median), unit, s.Mean, formatNumber(s.P95), formatNumber(s.Min), formatNumber(s.Max))
}

// formatNumber prints v with at most one decimal place.
func formatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}

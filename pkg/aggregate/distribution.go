package aggregate

import (
	"sort"

	"github.com/Sumatoshi-tech/titlelens/pkg/catalog"
	"github.com/Sumatoshi-tech/titlelens/pkg/filter"
)

// LabelCount is the number of records associated with Label.
type LabelCount struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// Distribution is a top-N list of labels, descending by count. Total is the
// number of (record, label) pairs counted and Distinct the number of distinct
// labels, both before truncation.
type Distribution struct {
	Items    []LabelCount `json:"items"    yaml:"items"`
	Total    int          `json:"total"    yaml:"total"`
	Distinct int          `json:"distinct" yaml:"distinct"`
}

// Empty reports whether the distribution has no items.
func (d Distribution) Empty() bool {
	return len(d.Items) == 0
}

// Genres returns the TopN genres of the filtered records. A record with
// several genres counts once for each.
func (o Options) Genres(records []catalog.Record, st filter.State) Distribution {
	return o.distribution(records, st, func(rec catalog.Record) []string { return rec.Genres })
}

// Countries returns the TopN countries of the filtered records. A record with
// several countries counts once for each.
func (o Options) Countries(records []catalog.Record, st filter.State) Distribution {
	return o.distribution(records, st, func(rec catalog.Record) []string { return rec.Countries })
}

func (o Options) distribution(records []catalog.Record, st filter.State, labels func(catalog.Record) []string) Distribution {
	var t tally

	for _, rec := range records {
		if !filter.Passes(rec, st) {
			continue
		}

		for _, label := range labels(rec) {
			if label != "" {
				t.add(label)
			}
		}
	}

	return Distribution{
		Items:    Top(t.items, o.TopN),
		Total:    t.total,
		Distinct: len(t.items),
	}
}

// Top sorts items descending by count and keeps the first n. Equal counts
// keep their input order. items is not modified. A non-positive n keeps all.
func Top(items []LabelCount, n int) []LabelCount {
	sorted := make([]LabelCount, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})

	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}

	return sorted
}

// tally counts labels in first-encountered order.
type tally struct {
	index map[string]int
	items []LabelCount
	total int
}

func (t *tally) add(label string) {
	if t.index == nil {
		t.index = make(map[string]int)
	}

	t.total++

	if i, ok := t.index[label]; ok {
		t.items[i].Count++

		return
	}

	t.index[label] = len(t.items)
	t.items = append(t.items, LabelCount{Label: label, Count: 1})
}

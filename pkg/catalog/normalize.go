package catalog

import (
	"math"
	"strconv"
	"strings"
)

const listSeparator = ","

// Normalize converts raw rows into records, one per row, in order.
func Normalize(raw []RawRecord) []Record {
	records := make([]Record, len(raw))
	for i, row := range raw {
		records[i] = NormalizeRow(row)
	}

	return records
}

// NormalizeRow converts a single raw row into a Record.
//
// Genres absent from the source produce an empty list while absent countries
// produce ["Unknown"].
func NormalizeRow(row RawRecord) Record {
	rec := Record{
		Type:        ContentType(row.Get(ColumnType)),
		ReleaseYear: parseYear(row.Get(ColumnReleaseYear)),
		Genres:      splitList(row.Get(ColumnListedIn)),
		Countries:   splitList(row.Get(ColumnCountry)),
		DateAdded:   ParseDateAdded(row.Get(ColumnDateAdded)),
		Director:    orUnknown(row.Get(ColumnDirector)),
		Cast:        orUnknown(row.Get(ColumnCast)),
		Rating:      orUnknown(row.Get(ColumnRating)),
		ShowID:      row.Get(ColumnShowID),
		Title:       row.Get(ColumnTitle),
		Description: row.Get(ColumnDescription),
	}

	if len(rec.Countries) == 0 {
		rec.Countries = []string{Unknown}
	}

	switch rec.Type {
	case Movie:
		rec.DurationMinutes = parseDuration(row.Get(ColumnDuration))
	case TVShow:
		rec.Seasons = parseDuration(row.Get(ColumnDuration))
	}

	return rec
}

// splitList splits a comma-separated field, trimming tokens and dropping
// empty ones. The result is never nil.
func splitList(field string) []string {
	items := []string{}
	if field == "" {
		return items
	}

	for token := range strings.SplitSeq(field, listSeparator) {
		token = strings.TrimSpace(token)
		if token != "" {
			items = append(items, token)
		}
	}

	return items
}

func orUnknown(value string) string {
	if value == "" {
		return Unknown
	}

	return value
}

// parseDuration extracts the leading integer of values like "90 min" or
// "3 Seasons". Non-positive or non-numeric values yield nil.
func parseDuration(field string) *int {
	n, ok := LeadingInt(field)
	if !ok || n <= 0 {
		return nil
	}

	return &n
}

// parseYear accepts a whole-field integer, tolerating an integral decimal
// such as "2019.0".
func parseYear(field string) *int {
	if field == "" {
		return nil
	}

	if year, err := strconv.Atoi(field); err == nil {
		return &year
	}

	f, err := strconv.ParseFloat(field, 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return nil
	}

	year := int(f)

	return &year
}

// LeadingInt parses the integer prefix of s after leading whitespace,
// accepting an optional sign. It reports false when s has no digits there.
func LeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\r\n")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}

	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	if end == digitsStart {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}

	return n, true
}

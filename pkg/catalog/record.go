// Package catalog loads a titles dataset and normalizes its rows into typed
// records. Normalization never fails: unparsable fields degrade to documented
// defaults instead of errors.
package catalog

import (
	"strings"
	"time"
)

// Source column names.
const (
	ColumnShowID      = "show_id"
	ColumnType        = "type"
	ColumnTitle       = "title"
	ColumnDirector    = "director"
	ColumnCast        = "cast"
	ColumnCountry     = "country"
	ColumnDateAdded   = "date_added"
	ColumnReleaseYear = "release_year"
	ColumnRating      = "rating"
	ColumnDuration    = "duration"
	ColumnListedIn    = "listed_in"
	ColumnDescription = "description"
)

// Unknown is the placeholder for absent people, rating and country fields.
const Unknown = "Unknown"

// ContentType is the kind of title a record describes.
type ContentType string

// Recognized content types.
const (
	Movie  ContentType = "Movie"
	TVShow ContentType = "TV Show"
)

// Known reports whether t is Movie or TVShow.
func (t ContentType) Known() bool {
	return t == Movie || t == TVShow
}

// RawRecord is one parsed CSV row keyed by column name. It is never mutated.
type RawRecord map[string]string

// Get returns the trimmed value of column, or "" when the column is absent.
func (r RawRecord) Get(column string) string {
	return strings.TrimSpace(r[column])
}

// Record is the cleaned, typed view of one dataset row.
//
// For a Movie only DurationMinutes may be set, for a TV Show only Seasons.
// Both stay nil for unrecognized types.
type Record struct {
	Type            ContentType `json:"type"`
	ReleaseYear     *int        `json:"releaseYear"`
	Genres          []string    `json:"genres"`
	Countries       []string    `json:"countries"`
	DurationMinutes *int        `json:"durationMinutes"`
	Seasons         *int        `json:"seasons"`
	DateAdded       *time.Time  `json:"dateAdded"`
	Director        string      `json:"director"`
	Cast            string      `json:"cast"`
	Rating          string      `json:"rating"`

	ShowID      string `json:"showId,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Year returns the release year and whether it was parsable.
func (r Record) Year() (int, bool) {
	if r.ReleaseYear == nil {
		return 0, false
	}

	return *r.ReleaseYear, true
}

// Counts tallies records per content type. Unrecognized types are counted
// under their own label.
func Counts(records []Record) map[ContentType]int {
	counts := make(map[ContentType]int, 2)
	for _, rec := range records {
		counts[rec.Type]++
	}

	return counts
}

package catalog

import (
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// dateAddedLayouts are the date_added spellings seen in the dataset.
var dateAddedLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"2 January 2006",
	"2006-01-02",
	time.RFC3339,
}

var dateAddedParser = &now.Config{
	TimeLocation: time.UTC,
	TimeFormats:  dateAddedLayouts,
}

// ParseDateAdded parses a free-form date_added value. It returns nil when the
// value is empty or matches none of the known layouts.
func ParseDateAdded(field string) *time.Time {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}

	parsed, err := dateAddedParser.Parse(field)
	if err != nil {
		return nil
	}

	return &parsed
}

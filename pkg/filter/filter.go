// Package filter holds the content-type filter applied before every
// aggregation and the single control through which it changes.
package filter

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Sumatoshi-tech/titlelens/pkg/catalog"
)

// ErrUnknownType is returned when a filter type string is not recognized.
var ErrUnknownType = errors.New("unknown content type")

// Type selects which records pass the filter.
type Type string

// Filter types.
const (
	All    Type = "All"
	Movie  Type = Type(catalog.Movie)
	TVShow Type = Type(catalog.TVShow)
)

// Types lists the selectable filter types in display order.
func Types() []Type {
	return []Type{All, Movie, TVShow}
}

// State is the filter applied to every aggregation.
type State struct {
	Type Type `json:"type" yaml:"type"`
}

// Passes reports whether rec is selected by st.
func Passes(rec catalog.Record, st State) bool {
	return st.Type == All || string(rec.Type) == string(st.Type)
}

// Apply returns the records selected by st, in order.
func Apply(records []catalog.Record, st State) []catalog.Record {
	selected := make([]catalog.Record, 0, len(records))

	for _, rec := range records {
		if Passes(rec, st) {
			selected = append(selected, rec)
		}
	}

	return selected
}

// ParseType parses a user-supplied filter type. Matching is case-insensitive
// and the empty string selects All.
func ParseType(value string) (Type, error) {
	key := strings.ToLower(strings.TrimSpace(value))

	switch key {
	case "", "all":
		return All, nil
	case "movie", "movies":
		return Movie, nil
	case "tv show", "tv shows", "tv", "tvshow", "tv-show", "show", "shows":
		return TVShow, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownType, value)
	}
}

// Control is the only mutation point for the shared filter state.
// It is safe for concurrent use.
type Control struct {
	mu    sync.RWMutex
	state State
}

// NewControl returns a Control initialized to initial. An empty type becomes All.
func NewControl(initial State) *Control {
	if initial.Type == "" {
		initial.Type = All
	}

	return &Control{state: initial}
}

// State returns the current filter state.
func (c *Control) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.state
}

// Set replaces the filter state.
func (c *Control) Set(st State) {
	c.mu.Lock()
	c.state = st
	c.mu.Unlock()
}

// SetType parses value and, when valid, makes it the current filter type.
func (c *Control) SetType(value string) (State, error) {
	typ, err := ParseType(value)
	if err != nil {
		return c.State(), err
	}

	st := State{Type: typ}
	c.Set(st)

	return st, nil
}

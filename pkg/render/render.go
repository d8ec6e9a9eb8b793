// Package render draws dashboard snapshots in the supported output formats.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Sumatoshi-tech/titlelens/pkg/dashboard"
	"github.com/Sumatoshi-tech/titlelens/pkg/render/plotpage"
	"github.com/Sumatoshi-tech/titlelens/pkg/render/terminal"
)

// ErrUnknownFormat is returned by For for unsupported format names.
var ErrUnknownFormat = errors.New("unknown render format")

// Output format names.
const (
	FormatPlot = "plot"
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Disclosure and empty-state texts shared by the renderers.
const (
	MoviesByDefaultNote = "Showing movies by default"
	NoDataMessage       = plotpage.DefaultEmptyMessage
	DefaultTitle        = "Netflix Titles"
)

// Renderer draws a complete snapshot. Each call redraws everything.
type Renderer interface {
	Render(w io.Writer, snap dashboard.Snapshot) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(w io.Writer, snap dashboard.Snapshot) error

// Render calls f.
func (f RendererFunc) Render(w io.Writer, snap dashboard.Snapshot) error {
	return f(w, snap)
}

// Options holds presentation settings for the renderers that use them.
type Options struct {
	Title    string
	Theme    plotpage.Theme
	Terminal terminal.Config
}

// Option configures a renderer.
type Option func(*Options)

// WithTitle sets the page or header title.
func WithTitle(title string) Option {
	return func(o *Options) { o.Title = title }
}

// WithTheme sets the HTML color theme.
func WithTheme(theme plotpage.Theme) Option {
	return func(o *Options) { o.Theme = theme }
}

// WithTerminal sets the terminal width and color handling for text output.
func WithTerminal(cfg terminal.Config) Option {
	return func(o *Options) { o.Terminal = cfg }
}

// Formats lists the supported format names.
func Formats() []string {
	return []string{FormatPlot, FormatText, FormatJSON, FormatYAML}
}

// For returns the renderer for format, matched case-insensitively.
func For(format string, options ...Option) (Renderer, error) {
	opts := Options{
		Title:    DefaultTitle,
		Theme:    plotpage.ThemeDark,
		Terminal: terminal.Config{Width: terminal.DefaultWidth, NoColor: true},
	}

	for _, opt := range options {
		opt(&opts)
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatPlot:
		return &PlotRenderer{opts: opts}, nil
	case FormatText:
		return &TextRenderer{opts: opts}, nil
	case FormatJSON:
		return RendererFunc(WriteJSON), nil
	case FormatYAML:
		return RendererFunc(WriteYAML), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ContentType returns the HTTP media type of a format's output.
func ContentType(format string) string {
	switch strings.ToLower(format) {
	case FormatPlot:
		return "text/html; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	default:
		return "text/plain; charset=utf-8"
	}
}

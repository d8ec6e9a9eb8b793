package render_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/titlelens/pkg/catalog"
	"github.com/Sumatoshi-tech/titlelens/pkg/dashboard"
	"github.com/Sumatoshi-tech/titlelens/pkg/filter"
	"github.com/Sumatoshi-tech/titlelens/pkg/render"
	"github.com/Sumatoshi-tech/titlelens/pkg/render/plotpage"
	"github.com/Sumatoshi-tech/titlelens/pkg/render/terminal"
)

func sampleDashboard() *dashboard.Dashboard {
	return dashboard.New(catalog.Normalize([]catalog.RawRecord{
		{"type": "Movie", "release_year": "2020", "listed_in": "Dramas, Comedies", "country": "India", "duration": "90 min"},
		{"type": "Movie", "release_year": "2019", "listed_in": "Dramas", "country": "United States", "duration": "95 min"},
		{"type": "Movie", "release_year": "2019", "listed_in": "Documentaries", "country": "Côte d'Ivoire", "duration": "121 min"},
		{"type": "TV Show", "release_year": "2021", "listed_in": "Kids' TV", "duration": "2 Seasons"},
	}), filter.State{})
}

func movieOnlyDashboard() *dashboard.Dashboard {
	return dashboard.New(catalog.Normalize([]catalog.RawRecord{
		{"type": "Movie", "release_year": "2020", "listed_in": "Dramas", "duration": "90 min"},
	}), filter.State{})
}

func snapshot(d *dashboard.Dashboard, typ filter.Type) dashboard.Snapshot {
	return d.Snapshot(context.Background(), filter.State{Type: typ})
}

func TestFor(t *testing.T) {
	t.Parallel()

	for _, format := range render.Formats() {
		r, err := render.For(format)
		require.NoError(t, err, format)
		require.NotNil(t, r, format)
	}

	r, err := render.For(" JSON ")
	require.NoError(t, err)
	assert.NotNil(t, r)

	_, err = render.For("csv")
	require.ErrorIs(t, err, render.ErrUnknownFormat)
}

func TestRenderers_NonEmptyOutput(t *testing.T) {
	t.Parallel()

	snap := snapshot(sampleDashboard(), filter.All)

	for _, format := range render.Formats() {
		r, err := render.For(format)
		require.NoError(t, err)

		var buf bytes.Buffer

		require.NoError(t, r.Render(&buf, snap), format)
		assert.NotEmpty(t, buf.String(), format)
	}
}

func TestContentType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "text/html; charset=utf-8", render.ContentType(render.FormatPlot))
	assert.Equal(t, "application/json", render.ContentType(render.FormatJSON))
	assert.Equal(t, "application/yaml", render.ContentType(render.FormatYAML))
	assert.Equal(t, "text/plain; charset=utf-8", render.ContentType(render.FormatText))
}

func TestPlotRenderer_DefaultedToMovies(t *testing.T) {
	t.Parallel()

	r, err := render.For(render.FormatPlot, render.WithTitle("Catalog"), render.WithTheme(plotpage.ThemeLight))
	require.NoError(t, err)

	var buf bytes.Buffer

	require.NoError(t, r.Render(&buf, snapshot(sampleDashboard(), filter.All)))

	html := buf.String()
	assert.Contains(t, html, "<title>Catalog")
	assert.Contains(t, html, render.MoviesByDefaultNote)
	assert.Contains(t, html, "Titles by Release Year")
	assert.Contains(t, html, "Top Genres")
	assert.Contains(t, html, "Top Countries")
	assert.Contains(t, html, "Movie Durations")
	assert.NotContains(t, html, render.NoDataMessage)
	assert.NotContains(t, html, `class="dark"`)
}

func TestPlotRenderer_TVShow(t *testing.T) {
	t.Parallel()

	r, err := render.For(render.FormatPlot)
	require.NoError(t, err)

	var buf bytes.Buffer

	require.NoError(t, r.Render(&buf, snapshot(sampleDashboard(), filter.TVShow)))

	html := buf.String()
	assert.Contains(t, html, "TV Show Seasons")
	assert.NotContains(t, html, render.MoviesByDefaultNote)
}

func TestPlotRenderer_EmptyCharts(t *testing.T) {
	t.Parallel()

	r, err := render.For(render.FormatPlot)
	require.NoError(t, err)

	var buf bytes.Buffer

	require.NoError(t, r.Render(&buf, snapshot(movieOnlyDashboard(), filter.TVShow)))
	assert.Equal(t, 4, strings.Count(buf.String(), render.NoDataMessage))
}

func TestPlotRenderer_Page(t *testing.T) {
	t.Parallel()

	r, err := render.For(render.FormatPlot)
	require.NoError(t, err)

	plot, ok := r.(*render.PlotRenderer)
	require.True(t, ok)

	page := plot.Page(snapshot(sampleDashboard(), filter.Movie))
	require.Len(t, page.Sections, 4)
	require.Len(t, page.Stats, 4)
	assert.Equal(t, "3", page.Stats[3].Value)
	assert.Empty(t, page.Sections[3].Note)
	assert.Equal(t, "Summary", page.Sections[3].Hint.Title)
}

func TestTextRenderer(t *testing.T) {
	t.Parallel()

	r, err := render.For(render.FormatText, render.WithTerminal(terminal.Config{Width: 80, NoColor: true}))
	require.NoError(t, err)

	var buf bytes.Buffer

	require.NoError(t, r.Render(&buf, snapshot(sampleDashboard(), filter.All)))

	out := buf.String()
	assert.Contains(t, out, "NETFLIX TITLES")
	assert.Contains(t, out, "Filter: All")
	assert.Contains(t, out, "4 titles | 3 movies | 1 TV shows | 4 selected")
	assert.Contains(t, out, render.MoviesByDefaultNote)
	assert.Contains(t, out, "Dramas")
	assert.Contains(t, out, "Côte d'Ivoire")
	assert.Contains(t, out, "median 95 min")
	assert.NotContains(t, out, "\x1b[")
}

func TestTextRenderer_Color(t *testing.T) {
	t.Parallel()

	r, err := render.For(render.FormatText, render.WithTerminal(terminal.Config{Width: 100}))
	require.NoError(t, err)

	var buf bytes.Buffer

	require.NoError(t, r.Render(&buf, snapshot(sampleDashboard(), filter.Movie)))
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestTextRenderer_Empty(t *testing.T) {
	t.Parallel()

	r, err := render.For(render.FormatText)
	require.NoError(t, err)

	var buf bytes.Buffer

	require.NoError(t, r.Render(&buf, snapshot(movieOnlyDashboard(), filter.TVShow)))
	assert.Equal(t, 4, strings.Count(buf.String(), render.NoDataMessage))
	assert.Contains(t, buf.String(), "TV Show Seasons")
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, render.WriteJSON(&buf, snapshot(sampleDashboard(), filter.Movie)))

	var decoded map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, map[string]any{"type": "Movie"}, decoded["filter"])
	assert.InDelta(t, 3, decoded["selected"], 0)
	assert.Contains(t, decoded, "durations")
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, render.WriteYAML(&buf, snapshot(sampleDashboard(), filter.TVShow)))

	var decoded map[string]any

	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 1, decoded["selected"])
	assert.Contains(t, buf.String(), "measure: seasons")
}

package plotpage_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/titlelens/pkg/render/plotpage"
)

var errChart = errors.New("chart failed")

type failingChart struct{}

func (failingChart) Render(io.Writer) error { return errChart }

type fragmentChart string

func (f fragmentChart) Render(w io.Writer) error {
	_, err := io.WriteString(w, string(f))

	return err
}

func TestPage_Render(t *testing.T) {
	t.Parallel()

	page := plotpage.NewPage("Netflix Titles", "Release years & genres")
	page.AddStats(plotpage.Stat{Label: "Titles", Value: "8,807"})

	bar := plotpage.BuildBarChart(nil, []string{"Dramas"}, []plotpage.BarSeries{
		{Name: "Titles", Data: []plotpage.SeriesData{3}},
	}, "", "Titles")

	page.Add(plotpage.Section{
		Title:    "Top Genres",
		Subtitle: "Ten most common",
		Note:     "Showing movies by default",
		Hint:     plotpage.Hint{Title: "Reading", Items: []string{"Longer bars mean more titles"}},
		Chart:    plotpage.WrapChart(bar),
	})

	var buf bytes.Buffer

	require.NoError(t, page.Render(&buf))

	html := buf.String()
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `class="dark"`)
	assert.Contains(t, html, "echarts.min.js")
	assert.Contains(t, html, "Netflix Titles")
	assert.Contains(t, html, "Release years &amp; genres")
	assert.Contains(t, html, "8,807")
	assert.Contains(t, html, "Top Genres")
	assert.Contains(t, html, "Showing movies by default")
	assert.Contains(t, html, "Longer bars mean more titles")
	assert.Contains(t, html, `class="echart-box"`)
	assert.NotContains(t, html, plotpage.DefaultEmptyMessage)
}

func TestPage_RenderLightTheme(t *testing.T) {
	t.Parallel()

	page := plotpage.NewPage("Titles", "").WithTheme(plotpage.ThemeLight)

	var buf bytes.Buffer

	require.NoError(t, page.Render(&buf))
	assert.NotContains(t, buf.String(), `class="dark"`)
	assert.Contains(t, buf.String(), plotpage.GetThemeConfig(plotpage.ThemeLight).Background)
}

func TestPage_RenderEmptySection(t *testing.T) {
	t.Parallel()

	page := plotpage.NewPage("Titles", "")
	page.Add(
		plotpage.Section{Title: "Years", Empty: true},
		plotpage.Section{Title: "Genres", Empty: true, EmptyMessage: "Nothing matched"},
		plotpage.Section{Title: "Countries"},
	)

	var buf bytes.Buffer

	require.NoError(t, page.Render(&buf))

	html := buf.String()
	assert.Equal(t, 2, strings.Count(html, plotpage.DefaultEmptyMessage))
	assert.Contains(t, html, "Nothing matched")
	assert.NotContains(t, html, "echart-box\"")
}

func TestPage_RenderChartError(t *testing.T) {
	t.Parallel()

	page := plotpage.NewPage("Titles", "")
	page.Add(plotpage.Section{Title: "Broken", Chart: failingChart{}})

	err := page.Render(io.Discard)
	require.ErrorIs(t, err, errChart)
	assert.Contains(t, err.Error(), "Broken")
}

func TestHTMLRenderer_ExtraCSS(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := plotpage.HTMLRenderer{ExtraCSS: ".custom { color: red; }"}.Render(&buf, plotpage.NewPage("Titles", ""))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), ".custom { color: red; }")
}

func TestWrapChart_Fragment(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, plotpage.WrapChart(fragmentChart(`<div id="x"></div>`)).Render(&buf))
	assert.Equal(t, `<div id="x"></div>`, buf.String())

	buf.Reset()
	require.NoError(t, plotpage.WrapChart(nil).Render(&buf))
	assert.Empty(t, buf.String())
}

func TestWrapChart_StripsDocument(t *testing.T) {
	t.Parallel()

	doc := `<!DOCTYPE html><html><head><style>.a{}</style></head><body>` +
		`<div class="container"><style>.b{}</style><div id="c"></div></div><script>x()</script></body></html>`

	var buf bytes.Buffer

	require.NoError(t, plotpage.WrapChart(fragmentChart(doc)).Render(&buf))
	assert.Equal(t, `<div class="echart-box"><div id="c"></div></div><script>x()</script>`, buf.String())
}

package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/titlelens/pkg/aggregate"
	"github.com/Sumatoshi-tech/titlelens/pkg/catalog"
	"github.com/Sumatoshi-tech/titlelens/pkg/dashboard"
	"github.com/Sumatoshi-tech/titlelens/pkg/filter"
	"github.com/Sumatoshi-tech/titlelens/pkg/render/plotpage"
)

// PlotRenderer draws the snapshot as a self-contained HTML page of
// go-echarts charts.
type PlotRenderer struct {
	opts Options
}

// Render writes the HTML page.
func (r *PlotRenderer) Render(w io.Writer, snap dashboard.Snapshot) error {
	page := r.Page(snap)

	err := page.Render(w)
	if err != nil {
		return fmt.Errorf("render plot page: %w", err)
	}

	return nil
}

// Page builds the page for snap without writing it.
func (r *PlotRenderer) Page(snap dashboard.Snapshot) *plotpage.Page {
	cOpts := plotpage.NewChartOpts(r.opts.Theme)

	page := plotpage.NewPage(r.opts.Title,
		fmt.Sprintf("Filter: %s. %s of %s titles selected.",
			filterLabel(snap.Filter), humanize.Comma(int64(snap.Selected)), humanize.Comma(int64(snap.Records))))
	page.WithTheme(r.opts.Theme)

	page.AddStats(
		plotpage.Stat{Label: "Titles", Value: humanize.Comma(int64(snap.Records))},
		plotpage.Stat{Label: "Movies", Value: humanize.Comma(int64(snap.Counts[string(catalog.Movie)]))},
		plotpage.Stat{Label: "TV Shows", Value: humanize.Comma(int64(snap.Counts[string(catalog.TVShow)]))},
		plotpage.Stat{Label: "Selected", Value: humanize.Comma(int64(snap.Selected))},
	)

	page.Add(
		yearsSection(cOpts, snap),
		distributionSection(cOpts, "Top Genres", "genres", snap.Genres, snap.Filter),
		distributionSection(cOpts, "Top Countries", "countries", snap.Countries, snap.Filter),
		durationsSection(cOpts, snap.Durations),
	)

	return page
}

func seriesColor(cOpts *plotpage.ChartOpts, st filter.State) string {
	if st.Type == filter.TVShow {
		return cOpts.Palette().Show
	}

	return cOpts.Palette().Movie
}

func yearsSection(cOpts *plotpage.ChartOpts, snap dashboard.Snapshot) plotpage.Section {
	section := plotpage.Section{
		Title:    "Titles by Release Year",
		Subtitle: fmt.Sprintf("%s titles across %d years", humanize.Comma(int64(snap.Years.Total())), len(snap.Years.Points)),
		Empty:    snap.Years.Empty(),
	}

	if section.Empty {
		return section
	}

	labels := make([]string, len(snap.Years.Points))
	data := make([]plotpage.SeriesData, len(snap.Years.Points))

	for i, p := range snap.Years.Points {
		labels[i] = strconv.Itoa(p.Year)
		data[i] = p.Count
	}

	line := plotpage.BuildLineChart(cOpts, labels, []plotpage.LineSeries{{
		Name:        "Titles",
		Data:        data,
		Color:       seriesColor(cOpts, snap.Filter),
		AreaOpacity: 0.25,
		Smooth:      true,
	}}, "Release year", "Titles")

	section.Chart = plotpage.WrapChart(line)

	return section
}

func distributionSection(
	cOpts *plotpage.ChartOpts, title, noun string, dist aggregate.Distribution, st filter.State,
) plotpage.Section {
	section := plotpage.Section{
		Title:    title,
		Subtitle: fmt.Sprintf("Top %d of %d %s", len(dist.Items), dist.Distinct, noun),
		Empty:    dist.Empty(),
	}

	if section.Empty {
		return section
	}

	labels := make([]string, len(dist.Items))
	data := make([]plotpage.SeriesData, len(dist.Items))

	for i, item := range dist.Items {
		labels[i] = item.Label
		data[i] = item.Count
	}

	bar := plotpage.BuildBarChart(cOpts, labels, []plotpage.BarSeries{{
		Name:  "Titles",
		Data:  data,
		Color: seriesColor(cOpts, st),
	}}, "", "Titles")

	section.Chart = plotpage.WrapChart(bar)

	return section
}

func durationsSection(cOpts *plotpage.ChartOpts, res aggregate.DurationResult) plotpage.Section {
	section := plotpage.Section{
		Title: measureTitle(res.Measure),
		Empty: res.Empty(),
	}

	if res.DefaultedToMovies {
		section.Note = MoviesByDefaultNote
	}

	if section.Empty {
		return section
	}

	section.Subtitle = fmt.Sprintf("%s titles in %d bins", humanize.Comma(int64(res.Samples)), len(res.Bins))
	section.Hint = plotpage.Hint{Title: "Summary", Items: []string{summaryLine(res)}}

	labels, counts := binLabels(res.Bins)

	color := cOpts.Palette().Movie
	if res.Measure == aggregate.MeasureSeasons {
		color = cOpts.Palette().Show
	}

	hist := plotpage.BuildHistogram(cOpts, labels, counts, "Titles", color, measureUnit(res.Measure))
	section.Chart = plotpage.WrapChart(hist)

	return section
}

package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Sumatoshi-tech/titlelens/pkg/aggregate"
	"github.com/Sumatoshi-tech/titlelens/pkg/catalog"
	"github.com/Sumatoshi-tech/titlelens/pkg/dashboard"
	"github.com/Sumatoshi-tech/titlelens/pkg/render/terminal"
)

// Column budget for text tables.
const (
	labelColumnWidth = 28
	fixedColumnWidth = 44
	minBarWidth      = 10
)

// TextRenderer draws the snapshot as terminal tables.
type TextRenderer struct {
	opts Options
}

type row struct {
	label string
	count int
}

// Render writes the text report.
func (r *TextRenderer) Render(w io.Writer, snap dashboard.Snapshot) error {
	cfg := r.opts.Terminal
	if cfg.Width <= 0 {
		cfg.Width = terminal.DefaultWidth
	}

	var b strings.Builder

	b.WriteString(terminal.DrawHeader(strings.ToUpper(r.opts.Title), "Filter: "+filterLabel(snap.Filter), cfg.Width))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s titles | %s movies | %s TV shows | %s selected\n",
		humanize.Comma(int64(snap.Records)),
		humanize.Comma(int64(snap.Counts[string(catalog.Movie)])),
		humanize.Comma(int64(snap.Counts[string(catalog.TVShow)])),
		cfg.Colorize(humanize.Comma(int64(snap.Selected)), terminal.ColorRed))

	years := make([]row, len(snap.Years.Points))
	for i, p := range snap.Years.Points {
		years[i] = row{label: strconv.Itoa(p.Year), count: p.Count}
	}

	r.section(&b, cfg, "Titles by Release Year", "Year", years, "")
	r.section(&b, cfg, "Top Genres", "Genre", distributionRows(snap.Genres), "")
	r.section(&b, cfg, "Top Countries", "Country", distributionRows(snap.Countries), "")

	note := ""
	if snap.Durations.DefaultedToMovies {
		note = MoviesByDefaultNote
	}

	r.section(&b, cfg, measureTitle(snap.Durations.Measure), measureUnit(snap.Durations.Measure),
		durationRows(snap.Durations), note)

	if !snap.Durations.Empty() {
		fmt.Fprintf(&b, "%s\n", cfg.Colorize(summaryLine(snap.Durations), terminal.ColorGray))
	}

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("write text report: %w", err)
	}

	return nil
}

func (r *TextRenderer) section(b *strings.Builder, cfg terminal.Config, title, column string, rows []row, note string) {
	fmt.Fprintf(b, "\n%s\n%s\n", cfg.Colorize(title, terminal.ColorBold), terminal.DrawSeparator(cfg.Width))

	if note != "" {
		fmt.Fprintf(b, "%s\n", cfg.Colorize(note, terminal.ColorYellow))
	}

	if len(rows) == 0 {
		fmt.Fprintf(b, "%s\n", cfg.Colorize(NoDataMessage, terminal.ColorGray))

		return
	}

	largest := 0
	for _, rw := range rows {
		largest = max(largest, rw.count)
	}

	barWidth := max(cfg.Width-fixedColumnWidth, minBarWidth)

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})

	tbl.AppendHeader(table.Row{column, "Titles", ""})

	for _, rw := range rows {
		tbl.AppendRow(table.Row{
			terminal.TruncateWithEllipsis(rw.label, labelColumnWidth),
			humanize.Comma(int64(rw.count)),
			cfg.Colorize(terminal.DrawRatioBar(rw.count, largest, barWidth), terminal.ColorRed),
		})
	}

	b.WriteString(tbl.Render())
	b.WriteString("\n")
}

func distributionRows(dist aggregate.Distribution) []row {
	rows := make([]row, len(dist.Items))
	for i, item := range dist.Items {
		rows[i] = row{label: item.Label, count: item.Count}
	}

	return rows
}

func durationRows(res aggregate.DurationResult) []row {
	labels, counts := binLabels(res.Bins)

	rows := make([]row, len(labels))
	for i := range labels {
		rows[i] = row{label: labels[i], count: counts[i]}
	}

	return rows
}

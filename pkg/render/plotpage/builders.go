package plotpage

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// SeriesData represents a single numeric value in a chart series.
// Both int and float64 values are accepted.
type SeriesData any

// BarSeries defines the properties and data for a single bar chart series.
type BarSeries struct {
	Name  string
	Data  []SeriesData
	Color string // Optional, uses the palette if empty.
}

// LineSeries defines the properties and data for a single line chart series.
type LineSeries struct {
	Name        string
	Data        []SeriesData
	Color       string  // Optional, uses the palette if empty.
	AreaOpacity float32 // Optional, area opacity for area charts.
	Smooth      bool
}

// BuildBarChart constructs a themed go-echarts Bar chart.
// If cOpts is nil, DefaultChartOpts() is used.
func BuildBarChart(cOpts *ChartOpts, labels []string, series []BarSeries, xAxisLabel, yAxisLabel string) *charts.Bar {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(defaultChartWidth, defaultChartHeight)),
		charts.WithTooltipOpts(cOpts.Tooltip("axis")),
		charts.WithGridOpts(cOpts.Grid()),
		charts.WithXAxisOpts(cOpts.XAxis(xAxisLabel)),
		charts.WithYAxisOpts(cOpts.YAxis(yAxisLabel)),
		charts.WithLegendOpts(cOpts.Legend()),
	)

	bar.SetXAxis(labels)

	for i, s := range series {
		bar.AddSeries(s.Name, barData(s.Data),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: seriesColor(cOpts, s.Color, i)}))
	}

	return bar
}

// BuildHistogram constructs a bar chart whose bars touch, one per bin label.
// An empty color uses the first palette color.
func BuildHistogram(cOpts *ChartOpts, binLabels []string, counts []int, name, color, xAxisLabel string) *charts.Bar {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	data := make([]SeriesData, len(counts))
	for i, c := range counts {
		data[i] = c
	}

	bar := BuildBarChart(cOpts, binLabels, []BarSeries{{Name: name, Data: data, Color: color}}, xAxisLabel, "Titles")
	bar.SetSeriesOptions(charts.WithBarChartOpts(opts.BarChart{BarCategoryGap: "2%"}))

	return bar
}

// BuildLineChart constructs a themed go-echarts Line chart with zoom controls.
// If cOpts is nil, DefaultChartOpts() is used.
func BuildLineChart(cOpts *ChartOpts, labels []string, series []LineSeries, xAxisLabel, yAxisLabel string) *charts.Line {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(defaultChartWidth, defaultChartHeight)),
		charts.WithTooltipOpts(cOpts.Tooltip("axis")),
		charts.WithGridOpts(cOpts.Grid()),
		charts.WithDataZoomOpts(cOpts.DataZoom()...),
		charts.WithXAxisOpts(cOpts.XAxis(xAxisLabel)),
		charts.WithYAxisOpts(cOpts.YAxis(yAxisLabel)),
		charts.WithLegendOpts(cOpts.Legend()),
	)

	line.SetXAxis(labels)

	for i, s := range series {
		lineData := make([]opts.LineData, len(s.Data))
		for j, v := range s.Data {
			lineData[j] = opts.LineData{Value: v}
		}

		color := seriesColor(cOpts, s.Color, i)

		seriesOpts := []charts.SeriesOpts{
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: color}),
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(s.Smooth)}),
		}

		if s.AreaOpacity > 0 {
			seriesOpts = append(seriesOpts, charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(s.AreaOpacity)}))
		}

		line.AddSeries(s.Name, lineData, seriesOpts...)
	}

	return line
}

func barData(values []SeriesData) []opts.BarData {
	data := make([]opts.BarData, len(values))
	for i, v := range values {
		data[i] = opts.BarData{Value: v}
	}

	return data
}

func seriesColor(cOpts *ChartOpts, explicit string, index int) string {
	if explicit != "" {
		return explicit
	}

	primary := cOpts.Palette().Primary

	return primary[index%len(primary)]
}

package dashboard

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/Suraj0791/stockcharts/internal/market"
	"github.com/Suraj0791/stockcharts/internal/view"
)

type namedSeries struct {
	Name   string
	Values []float64
}

// RenderECharts writes an interactive ECharts page for the session's dataset,
// mirroring the SVG chart's kind and metric.
func RenderECharts(w io.Writer, dataset market.Dataset, entities []market.Entity, state view.State) error {
	labels, series := echartsSeries(dataset, entities, state)

	theme := types.ThemeWesteros
	if state.Theme == view.ThemeDark {
		theme = types.ThemeChalk
	}

	if state.ChartKind == view.KindBar {
		bar := charts.NewBar()
		bar.SetGlobalOptions(echartsGlobalOptions(theme, state)...)
		bar.SetXAxis(labels)
		for _, s := range series {
			data := make([]opts.BarData, len(s.Values))
			for i, v := range s.Values {
				data[i] = opts.BarData{Value: v}
			}
			bar.AddSeries(s.Name, data)
		}
		return bar.Render(w)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(echartsGlobalOptions(theme, state)...)
	line.SetXAxis(labels)
	for _, s := range series {
		data := make([]opts.LineData, len(s.Values))
		for i, v := range s.Values {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(s.Name, data)
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: true}))
	return line.Render(w)
}

func echartsGlobalOptions(theme string, state view.State) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  theme,
			Width:  "900px",
			Height: "420px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Stock Charts",
			Subtitle: fmt.Sprintf("%s over the last %s", state.Metric, state.TimeRange),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: true,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    true,
			Trigger: "axis",
		}),
	}
}

// echartsSeries flattens the dataset into per-entity value slices for the
// visible entities, in entity-list order, aligned with formatted axis labels.
func echartsSeries(dataset market.Dataset, entities []market.Entity, state view.State) ([]string, []namedSeries) {
	visible := make(map[string]bool, len(state.Visible))
	for _, name := range state.Visible {
		visible[name] = true
	}

	labels := make([]string, len(dataset))
	for i, point := range dataset {
		labels[i] = point.Timestamp.Format("Jan 02 15:04")
	}

	series := make([]namedSeries, 0, len(state.Visible))
	for _, e := range entities {
		if !visible[e.Name] {
			continue
		}
		series = append(series, namedSeries{Name: e.Name, Values: dataset.MetricValues(e.Name, state.Metric)})
	}
	return labels, series
}

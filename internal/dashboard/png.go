package dashboard

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Suraj0791/stockcharts/internal/market"
	"github.com/Suraj0791/stockcharts/internal/render"
	"github.com/Suraj0791/stockcharts/internal/view"
)

// RenderPNG writes a static PNG export of the session's dataset. Line charts
// draw one time series per visible entity; bar charts summarize the latest
// sample per entity.
func RenderPNG(w io.Writer, dataset market.Dataset, entities []market.Entity, state view.State) error {
	if len(dataset) == 0 {
		return fmt.Errorf("no data to export")
	}
	if state.ChartKind == view.KindBar {
		return renderBarPNG(w, dataset, entities, state)
	}
	return renderLinePNG(w, dataset, entities, state)
}

func renderLinePNG(w io.Writer, dataset market.Dataset, entities []market.Entity, state view.State) error {
	theme := render.ThemeFor(state.Theme)
	_, series := echartsSeries(dataset, entities, state)
	if len(series) == 0 {
		return fmt.Errorf("no visible entities to export")
	}

	xValues := make([]time.Time, len(dataset))
	for i, point := range dataset {
		xValues[i] = point.Timestamp
	}

	graph := chart.Chart{
		Title: fmt.Sprintf("Stock Charts: %s (%s)", state.Metric, state.TimeRange),
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: drawing.ColorBlack,
		},
		Width:  900,
		Height: 420,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 60, Right: 20, Bottom: 40},
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 02"),
		},
	}

	for _, s := range series {
		color := colorFor(theme, entities, s.Name)
		// go-chart interpolates through NaNs; drop invalid samples instead.
		var xs []time.Time
		var ys []float64
		for i, v := range s.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			xs = append(xs, xValues[i])
			ys = append(ys, v)
		}
		graph.Series = append(graph.Series, chart.TimeSeries{
			Name: s.Name,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotColor:    color,
				DotWidth:    3,
			},
			XValues: xs,
			YValues: ys,
		})
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render PNG export: %w", err)
	}
	return nil
}

func renderBarPNG(w io.Writer, dataset market.Dataset, entities []market.Entity, state view.State) error {
	theme := render.ThemeFor(state.Theme)
	_, series := echartsSeries(dataset, entities, state)
	if len(series) == 0 {
		return fmt.Errorf("no visible entities to export")
	}

	bars := make([]chart.Value, 0, len(series))
	for _, s := range series {
		latest := 0.0
		for i := len(s.Values) - 1; i >= 0; i-- {
			if !math.IsNaN(s.Values[i]) && !math.IsInf(s.Values[i], 0) {
				latest = s.Values[i]
				break
			}
		}
		bars = append(bars, chart.Value{
			Label: s.Name,
			Value: latest,
			Style: chart.Style{FillColor: colorFor(theme, entities, s.Name)},
		})
	}

	graph := chart.BarChart{
		Title: fmt.Sprintf("Stock Charts: latest %s", state.Metric),
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: drawing.ColorBlack,
		},
		Width:    900,
		Height:   420,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 60, Right: 20, Bottom: 40},
		},
		Bars: bars,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render PNG export: %w", err)
	}
	return nil
}

func colorFor(theme render.Theme, entities []market.Entity, name string) drawing.Color {
	for _, e := range entities {
		if e.Name == name {
			return theme.SeriesColor(e.ColorIndex)
		}
	}
	return drawing.ColorBlue
}

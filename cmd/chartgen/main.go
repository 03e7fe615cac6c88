// Command chartgen renders a chart offline, without the HTTP service. It
// generates a synthetic dataset, renders the SVG scene plus the PNG and
// ECharts exports, and saves all three through the local snapshot store.
// Useful for eyeballing renderer changes in a browser.
package main

import (
	"bytes"
	"context"
	"flag"
	"log"
	"time"

	"github.com/rs/zerolog"

	"github.com/Suraj0791/stockcharts/internal/dashboard"
	"github.com/Suraj0791/stockcharts/internal/market"
	"github.com/Suraj0791/stockcharts/internal/render"
	"github.com/Suraj0791/stockcharts/internal/scale"
	"github.com/Suraj0791/stockcharts/internal/scene"
	"github.com/Suraj0791/stockcharts/internal/storage"
	"github.com/Suraj0791/stockcharts/internal/view"
)

func main() {
	var (
		outDir    = flag.String("out", "./snapshots", "snapshot output directory")
		kind      = flag.String("kind", "line", "chart kind (line|bar)")
		metric    = flag.String("metric", "price", "metric (price|volume|change)")
		timeRange = flag.String("range", "month", "time range (day|week|month)")
		theme     = flag.String("theme", "light", "theme (light|dark)")
		points    = flag.Int("points", view.DefaultPointCount, "points per series")
		seed      = flag.Int64("seed", 0, "generator seed (0 seeds from time)")
		width     = flag.Float64("width", 960, "surface width in pixels")
		height    = flag.Float64("height", 420, "surface height in pixels")
	)
	flag.Parse()

	ctx := context.Background()
	entities := market.Entities([]string{"ACME", "Globex", "Initech"})

	gen := market.NewGenerator()
	if *seed != 0 {
		gen = market.NewSeededGenerator(*seed)
	}

	store := view.NewStore(entities)
	k := string(view.ParseChartKind(*kind))
	m := string(market.ParseMetric(*metric))
	tr := string(market.ParseTimeRange(*timeRange))
	th := string(view.ParseTheme(*theme))
	store.Apply(view.Update{
		ChartKind:  &k,
		Metric:     &m,
		TimeRange:  &tr,
		Theme:      &th,
		PointCount: points,
	})
	state := store.State()

	log.Printf("🎨 Generating %s/%s chart with %d points", state.ChartKind, state.Metric, state.PointCount)

	dataset, err := gen.Generate(state.PointCount, entities, state.TimeRange)
	if err != nil {
		log.Fatalf("❌ Dataset generation failed: %v", err)
	}

	surface := render.Surface{Width: *width, Height: *height}
	now := time.Now()
	frame, err := renderFrame(dataset, entities, state, surface, now)
	if err != nil {
		log.Fatalf("❌ Render failed: %v", err)
	}
	svg, err := scene.SVGString(frame.Root, surface.Width, surface.Height)
	if err != nil {
		log.Fatalf("❌ SVG serialization failed: %v", err)
	}

	var png bytes.Buffer
	if err := dashboard.RenderPNG(&png, dataset, entities, state); err != nil {
		log.Fatalf("❌ PNG export failed: %v", err)
	}
	var echarts bytes.Buffer
	if err := dashboard.RenderECharts(&echarts, dataset, entities, state); err != nil {
		log.Fatalf("❌ ECharts export failed: %v", err)
	}

	client, err := storage.NewLocalClient(*outDir)
	if err != nil {
		log.Fatalf("❌ Failed to open snapshot store: %v", err)
	}
	defer client.Close()

	outputs := []struct {
		ext  string
		data []byte
	}{
		{"svg", []byte(svg)},
		{"png", png.Bytes()},
		{"html", echarts.Bytes()},
	}
	for _, out := range outputs {
		path, err := client.Save(ctx, out.data, storage.SnapshotFileName(now, out.ext), now)
		if err != nil {
			log.Fatalf("❌ Failed to save %s snapshot: %v", out.ext, err)
		}
		log.Printf("📄 Saved %s/%s", *outDir, path)
	}
	log.Println("✅ Done")
}

func renderFrame(dataset market.Dataset, entities []market.Entity, state view.State, surface render.Surface, now time.Time) (*render.Frame, error) {
	pair := scale.Compute(dataset, state.Visible, state.Metric, surface.PlotWidth(), surface.PlotHeight())
	pipeline := render.NewPipeline(zerolog.Nop())
	return pipeline.Render(render.Context{
		Dataset:  dataset,
		Entities: entities,
		View:     state,
		Scales:   pair,
		Theme:    render.ThemeFor(state.Theme),
		Surface:  surface,
		// Sample with enter animations already settled.
		Now:       now,
		AnimStart: now.Add(-time.Minute),
	})
}

package render

import (
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Suraj0791/stockcharts/internal/market"
	"github.com/Suraj0791/stockcharts/internal/scale"
	"github.com/Suraj0791/stockcharts/internal/view"
)

func testContext(t *testing.T, kind view.ChartKind, metric market.Metric) Context {
	t.Helper()

	gen := market.NewSeededGenerator(99)
	entities := market.Entities([]string{"ACME", "Globex"})
	dataset, err := gen.Generate(30, entities, market.RangeMonth)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	store := view.NewStore(entities)
	store.SetChartKind(kind)
	store.SetMetric(metric)
	state := store.State()

	surface := Surface{Width: 800, Height: 400}
	pair := scale.Compute(dataset, state.Visible, state.Metric, surface.PlotWidth(), surface.PlotHeight())

	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return Context{
		Dataset:   dataset,
		Entities:  entities,
		View:      state,
		Scales:    pair,
		Theme:     ThemeFor(state.Theme),
		Surface:   surface,
		Now:       start.Add(5 * time.Second), // animations settled
		AnimStart: start,
	}
}

func TestRenderIdempotent(t *testing.T) {
	p := NewPipeline(zerolog.Nop())
	ctx := testContext(t, view.KindLine, market.MetricPrice)

	first, err := p.Render(ctx)
	if err != nil {
		t.Fatalf("first render failed: %v", err)
	}
	second, err := p.Render(ctx)
	if err != nil {
		t.Fatalf("second render failed: %v", err)
	}

	if first.Root.Count() != second.Root.Count() {
		t.Errorf("render not idempotent: %d elements then %d", first.Root.Count(), second.Root.Count())
	}
}

func TestLineModeGeometry(t *testing.T) {
	p := NewPipeline(zerolog.Nop())
	frame, err := p.Render(testContext(t, view.KindLine, market.MetricPrice))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if got := frame.Root.CountTag("path"); got != 2 {
		t.Errorf("expected one path per visible entity, got %d", got)
	}
	// 30 points per entity, two entities.
	if got := frame.Root.CountTag("circle"); got != 60 {
		t.Errorf("expected 60 markers, got %d", got)
	}
	if frame.Root.CountTag("rect") != 0 {
		t.Error("line mode should not draw bars")
	}
}

func TestBarModeLeavesNoLineGeometry(t *testing.T) {
	p := NewPipeline(zerolog.Nop())

	if _, err := p.Render(testContext(t, view.KindLine, market.MetricPrice)); err != nil {
		t.Fatalf("line render failed: %v", err)
	}
	frame, err := p.Render(testContext(t, view.KindBar, market.MetricPrice))
	if err != nil {
		t.Fatalf("bar render failed: %v", err)
	}

	if got := frame.Root.CountTag("path"); got != 0 {
		t.Errorf("bar mode left %d path elements behind", got)
	}
	if got := frame.Root.CountTag("rect"); got != 60 {
		t.Errorf("expected 60 bars, got %d", got)
	}
}

func TestZeroLineOnlyForChangeMetric(t *testing.T) {
	p := NewPipeline(zerolog.Nop())

	frame, err := p.Render(testContext(t, view.KindLine, market.MetricChange))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if frame.Root.Find("zero-line") == nil {
		t.Error("change metric should draw the zero reference line")
	}

	frame, err = p.Render(testContext(t, view.KindLine, market.MetricPrice))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if frame.Root.Find("zero-line") != nil {
		t.Error("price metric should not draw the zero reference line")
	}
}

func TestRenderSkipsZeroWidthSurface(t *testing.T) {
	p := NewPipeline(zerolog.Nop())
	ctx := testContext(t, view.KindLine, market.MetricPrice)
	ctx.Surface = Surface{Width: 0, Height: 400}

	if _, err := p.Render(ctx); err != ErrNoSurface {
		t.Errorf("expected ErrNoSurface, got %v", err)
	}
}

func TestReprojectKeepsElementCount(t *testing.T) {
	p := NewPipeline(zerolog.Nop())
	ctx := testContext(t, view.KindLine, market.MetricPrice)

	frame, err := p.Render(ctx)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	before := frame.Root.Count()

	// Narrow the x domain as a zoom-in would.
	d0, d1 := ctx.Scales.X.Domain()
	span := d1.Sub(d0)
	zoomed := scale.Pair{
		X: ctx.Scales.X.WithDomain(d0.Add(span/4), d1.Add(-span/4)),
		Y: ctx.Scales.Y,
	}

	reprojected, err := p.Reproject(zoomed, ctx.Now.Add(time.Second))
	if err != nil {
		t.Fatalf("reproject failed: %v", err)
	}
	if got := reprojected.Root.Count(); got != before {
		t.Errorf("reproject changed element count: %d -> %d", before, got)
	}
}

func TestReprojectMovesMarkers(t *testing.T) {
	p := NewPipeline(zerolog.Nop())
	ctx := testContext(t, view.KindLine, market.MetricPrice)

	frame, err := p.Render(ctx)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	marker := frame.Node("marker-ACME-5")
	if marker == nil {
		t.Fatal("marker-ACME-5 missing from frame")
	}
	beforeCX := marker.Attrs["cx"]

	d0, d1 := ctx.Scales.X.Domain()
	span := d1.Sub(d0)
	zoomed := scale.Pair{X: ctx.Scales.X.WithDomain(d0.Add(span/3), d1), Y: ctx.Scales.Y}

	if _, err := p.Reproject(zoomed, ctx.Now); err != nil {
		t.Fatalf("reproject failed: %v", err)
	}
	if marker.Attrs["cx"] == beforeCX {
		t.Error("reproject did not move marker position")
	}
}

func TestReprojectWidensBarsWithZoom(t *testing.T) {
	p := NewPipeline(zerolog.Nop())
	ctx := testContext(t, view.KindBar, market.MetricPrice)

	frame, err := p.Render(ctx)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	g := frame.Geometry["ACME"]
	if g == nil || len(g.BarKeys) == 0 {
		t.Fatal("bar geometry missing for ACME")
	}
	before, err := strconv.ParseFloat(frame.Node(g.BarKeys[0]).Attrs["width"], 64)
	if err != nil {
		t.Fatalf("bar width not numeric: %v", err)
	}

	// Halve the visible time span, as a 2x zoom-in does.
	d0, d1 := ctx.Scales.X.Domain()
	span := d1.Sub(d0)
	zoomed := scale.Pair{
		X: ctx.Scales.X.WithDomain(d0.Add(span/4), d1.Add(-span/4)),
		Y: ctx.Scales.Y,
	}
	if _, err := p.Reproject(zoomed, ctx.Now); err != nil {
		t.Fatalf("reproject failed: %v", err)
	}

	after, err := strconv.ParseFloat(frame.Node(g.BarKeys[0]).Attrs["width"], 64)
	if err != nil {
		t.Fatalf("bar width not numeric after reproject: %v", err)
	}
	if ratio := after / before; math.Abs(ratio-2) > 0.01 {
		t.Errorf("bar width ratio after 2x zoom = %v, want 2", ratio)
	}

	// Zooming back out to the full domain restores the original width.
	if _, err := p.Reproject(ctx.Scales, ctx.Now); err != nil {
		t.Fatalf("reproject failed: %v", err)
	}
	restored, _ := strconv.ParseFloat(frame.Node(g.BarKeys[0]).Attrs["width"], 64)
	if math.Abs(restored-before) > 1e-9 {
		t.Errorf("bar width after zoom-out = %v, want %v", restored, before)
	}
}

func TestReprojectWithoutFrameFails(t *testing.T) {
	p := NewPipeline(zerolog.Nop())
	ctx := testContext(t, view.KindLine, market.MetricPrice)
	if _, err := p.Reproject(ctx.Scales, time.Now()); err != ErrNoFrame {
		t.Errorf("expected ErrNoFrame, got %v", err)
	}
}

func TestHiddenEntityNotRendered(t *testing.T) {
	p := NewPipeline(zerolog.Nop())
	ctx := testContext(t, view.KindLine, market.MetricPrice)
	ctx.View.Visible = []string{"ACME"}

	frame, err := p.Render(ctx)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if frame.Root.Find("line-Globex") != nil {
		t.Error("hidden entity still has geometry")
	}
	if frame.Root.Find("line-ACME") == nil {
		t.Error("visible entity missing geometry")
	}
}

func TestMarkerGrowthSampledMidAnimation(t *testing.T) {
	p := NewPipeline(zerolog.Nop())
	ctx := testContext(t, view.KindLine, market.MetricPrice)
	ctx.Now = ctx.AnimStart // sample at the very start

	frame, err := p.Render(ctx)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	marker := frame.Node("marker-ACME-0")
	if marker == nil {
		t.Fatal("marker missing")
	}
	if marker.Attrs["r"] != "0" {
		t.Errorf("marker should start at radius 0, got %s", marker.Attrs["r"])
	}
}

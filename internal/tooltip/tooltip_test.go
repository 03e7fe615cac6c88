package tooltip

import (
	"testing"
	"time"

	"github.com/Suraj0791/stockcharts/internal/market"
	"github.com/Suraj0791/stockcharts/internal/scale"
)

func testDataset() market.Dataset {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	ds := make(market.Dataset, 3)
	for i := range ds {
		ds[i] = market.Point{
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Values: map[string]market.Sample{
				"A": {Price: 100 + float64(i)*10, Volume: 1_200_000, Change: float64(i) - 1},
				"B": {Price: 200, Volume: 50_000, Change: 0},
			},
		}
	}
	return ds
}

func testCoordinator(metric market.Metric) *Coordinator {
	ds := testDataset()
	first, last, _ := ds.TimeBounds()
	c := NewCoordinator()
	c.SetContext(Context{
		Dataset: ds,
		Visible: []string{"A", "B"},
		Metric:  metric,
		Scales: scale.Pair{
			X: scale.NewTimeScale(first, last, 0, 600),
			Y: scale.NewLinearScale(0, 300, 300, 0),
		},
		OffsetX: 55,
		OffsetY: 20,
	})
	return c
}

func TestPriceFormatting(t *testing.T) {
	ds := testDataset()
	ds[0].Values["A"] = market.Sample{Price: 123.456}
	c := testCoordinator(market.MetricPrice)
	ctx := c.ctx
	ctx.Dataset = ds
	c.SetContext(ctx)

	state, ok := c.PointerEnter("A", 0)
	if !ok {
		t.Fatal("PointerEnter rejected a valid point")
	}
	if state.Text != "$123.46" {
		t.Errorf("price text = %q, want $123.46", state.Text)
	}
}

func TestChangeFormattingAndSign(t *testing.T) {
	c := testCoordinator(market.MetricChange)

	cases := []struct {
		index int
		text  string
		sign  Sign
	}{
		{0, "-1.0%", SignDown},
		{1, "+0.0%", SignFlat},
		{2, "+1.0%", SignUp},
	}
	for _, tc := range cases {
		state, ok := c.PointerEnter("A", tc.index)
		if !ok {
			t.Fatalf("PointerEnter rejected index %d", tc.index)
		}
		if state.Text != tc.text {
			t.Errorf("index %d text = %q, want %q", tc.index, state.Text, tc.text)
		}
		if state.Sign != tc.sign {
			t.Errorf("index %d sign = %q, want %q", tc.index, state.Sign, tc.sign)
		}
	}
}

func TestVolumeFormattingCompact(t *testing.T) {
	c := testCoordinator(market.MetricVolume)

	state, ok := c.PointerEnter("A", 0)
	if !ok {
		t.Fatal("PointerEnter rejected a valid point")
	}
	if state.Text != "1.2M" {
		t.Errorf("volume text = %q, want 1.2M", state.Text)
	}

	state, _ = c.PointerEnter("B", 0)
	if state.Text != "50K" {
		t.Errorf("volume text = %q, want 50K", state.Text)
	}
}

func TestEnterReplacesActiveAtomically(t *testing.T) {
	c := testCoordinator(market.MetricPrice)

	if _, ok := c.PointerEnter("A", 0); !ok {
		t.Fatal("first enter failed")
	}
	if _, ok := c.PointerEnter("B", 2); !ok {
		t.Fatal("second enter failed")
	}

	active := c.Active()
	if active == nil {
		t.Fatal("no active tooltip after enter")
	}
	if active.Entity != "B" || active.Timestamp != c.ctx.Dataset[2].Timestamp {
		t.Errorf("active tooltip is %s@%v, want B at index 2", active.Entity, active.Timestamp)
	}
}

func TestLeaveClears(t *testing.T) {
	c := testCoordinator(market.MetricPrice)
	c.PointerEnter("A", 0)
	c.PointerLeave()
	if c.Active() != nil {
		t.Error("tooltip still active after PointerLeave")
	}
}

func TestBadEnterKeepsCurrentState(t *testing.T) {
	c := testCoordinator(market.MetricPrice)
	c.PointerEnter("A", 1)

	if _, ok := c.PointerEnter("A", 99); ok {
		t.Error("out-of-range index accepted")
	}
	if _, ok := c.PointerEnter("missing", 0); ok {
		t.Error("unknown entity accepted")
	}
	if active := c.Active(); active == nil || active.Entity != "A" {
		t.Error("failed enter disturbed the active tooltip")
	}
}

func TestAnchorTracksRescale(t *testing.T) {
	c := testCoordinator(market.MetricPrice)
	state, _ := c.PointerEnter("A", 1)
	before := state.ScreenX

	// Zoom in horizontally: domain narrows to the right half.
	ctx := c.ctx
	d0, d1 := ctx.Scales.X.Domain()
	mid := d0.Add(d1.Sub(d0) / 2)
	ctx.Scales.X = ctx.Scales.X.WithDomain(mid, d1)
	c.SetContext(ctx)

	active := c.Active()
	if active == nil {
		t.Fatal("tooltip cleared by rescale")
	}
	if active.ScreenX == before {
		t.Error("anchor did not move with the rescaled axis")
	}
}

func TestMetricSwitchClearsActive(t *testing.T) {
	c := testCoordinator(market.MetricPrice)
	c.PointerEnter("A", 1)

	ctx := c.ctx
	ctx.Metric = market.MetricVolume
	c.SetContext(ctx)

	if c.Active() != nil {
		t.Error("tooltip survived a metric switch")
	}
}

func TestDatasetReplacementClearsActive(t *testing.T) {
	c := testCoordinator(market.MetricPrice)
	c.PointerEnter("A", 1)

	// Regenerating produces a fresh dataset; the anchored timestamp and value
	// belong to the old one and must not be re-projected.
	ctx := c.ctx
	ctx.Dataset = testDataset()
	c.SetContext(ctx)

	if c.Active() != nil {
		t.Error("tooltip survived a dataset replacement")
	}
}

func TestHoverPicksNearestWithinRadius(t *testing.T) {
	c := testCoordinator(market.MetricPrice)

	// Aim just off A's middle point.
	target := c.ctx.Dataset[1]
	px := c.ctx.Scales.X.Scale(target.Timestamp) + 3
	py := c.ctx.Scales.Y.Scale(target.Values["A"].Price) - 3

	state, ok := c.Hover(px, py)
	if !ok {
		t.Fatal("Hover missed a nearby point")
	}
	if state.Entity != "A" || state.Value != target.Values["A"].Price {
		t.Errorf("Hover picked %s=%v, want A's middle point", state.Entity, state.Value)
	}

	// Far from everything: clears like pointer-leave.
	if _, ok := c.Hover(-500, -500); ok {
		t.Error("Hover activated a point outside the hit radius")
	}
	if c.Active() != nil {
		t.Error("miss did not clear the active tooltip")
	}
}

package engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Suraj0791/stockcharts/internal/render"
	"github.com/Suraj0791/stockcharts/internal/scale"
	"github.com/Suraj0791/stockcharts/internal/scene"
	"github.com/Suraj0791/stockcharts/internal/view"
)

func testOptions() Options {
	return Options{
		Entities:       []string{"A", "B"},
		LoadDelay:      5 * time.Millisecond,
		ResizeDebounce: 25 * time.Millisecond,
		Seed:           7,
		Log:            zerolog.Nop(),
	}
}

// waitFor reads updates until the predicate matches or the deadline passes.
func waitFor(t *testing.T, s *Session, timeout time.Duration, pred func(Update) bool) Update {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case u := <-s.Updates():
			if pred(u) {
				return u
			}
		case <-deadline:
			t.Fatal("timed out waiting for update")
			return Update{}
		}
	}
}

func TestInitialLoadPublishesFrame(t *testing.T) {
	s := NewSession(testOptions())
	defer s.Close()

	u := waitFor(t, s, time.Second, func(u Update) bool { return !u.Loading })
	if u.SVG == "" {
		t.Error("loaded frame has no rendered scene")
	}
	if !strings.Contains(u.SVG, "line-A") {
		t.Error("rendered scene missing series geometry")
	}
}

func TestSnapshotBeforeLoadReportsLoading(t *testing.T) {
	opts := testOptions()
	opts.LoadDelay = time.Second
	s := NewSession(opts)
	defer s.Close()

	u, err := s.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if !u.Loading {
		t.Error("expected loading flag before the delayed load fires")
	}
	if u.SVG != "" {
		t.Error("no scene should exist before the first load")
	}
}

func TestCloseMakesPendingLoadNoOp(t *testing.T) {
	opts := testOptions()
	opts.LoadDelay = 20 * time.Millisecond
	s := NewSession(opts)
	s.Close()

	time.Sleep(60 * time.Millisecond)

	select {
	case u := <-s.Updates():
		t.Errorf("closed session still published an update: %+v", u)
	default:
	}
	if _, err := s.Snapshot(context.Background()); err != ErrClosed {
		t.Errorf("Snapshot after Close = %v, want ErrClosed", err)
	}
}

func TestViewChangeBeforeLoadIsPickedUp(t *testing.T) {
	opts := testOptions()
	opts.LoadDelay = 30 * time.Millisecond
	s := NewSession(opts)
	defer s.Close()

	points := 12
	s.ApplyView(view.Update{PointCount: &points})

	waitFor(t, s, time.Second, func(u Update) bool { return !u.Loading })
	dataset, _, state, err := s.Data(context.Background())
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}
	if state.PointCount != 12 {
		t.Errorf("point count = %d, want 12", state.PointCount)
	}
	if len(dataset) != 12 {
		t.Errorf("dataset length = %d, want 12", len(dataset))
	}
}

func TestResizeBurstCoalesces(t *testing.T) {
	s := NewSession(testOptions())
	defer s.Close()
	waitFor(t, s, time.Second, func(u Update) bool { return !u.Loading })

	for w := 500; w <= 540; w += 10 {
		s.Resize(float64(w), 400)
	}

	u := waitFor(t, s, time.Second, func(u Update) bool {
		return strings.Contains(u.SVG, `width="540"`)
	})
	if strings.Contains(u.SVG, `width="500"`) {
		t.Error("intermediate resize leaked into the final frame")
	}
}

func TestUpdatesChannelKeepsLatest(t *testing.T) {
	s := NewSession(testOptions())
	defer s.Close()
	waitFor(t, s, time.Second, func(u Update) bool { return !u.Loading })

	// Two quick settings changes with nobody reading: the unconsumed frame is
	// replaced, not queued.
	volume := "volume"
	change := "change"
	s.ApplyView(view.Update{Metric: &volume})
	s.ApplyView(view.Update{Metric: &change})

	u := waitFor(t, s, time.Second, func(u Update) bool { return string(u.View.Metric) == "change" })
	if u.Loading {
		t.Error("latest frame still flagged loading")
	}
}

func TestGestureUpdatesTransform(t *testing.T) {
	s := NewSession(testOptions())
	defer s.Close()
	waitFor(t, s, time.Second, func(u Update) bool { return !u.Loading })

	s.Wheel(2, 100, 50)
	u := waitFor(t, s, time.Second, func(u Update) bool { return u.Transform.K > 1 })
	if u.Transform.K != 2 {
		t.Errorf("zoom factor = %v, want 2", u.Transform.K)
	}

	s.ApplyView(view.Update{ChartKind: strPtr("bar")})
	u = waitFor(t, s, time.Second, func(u Update) bool { return u.View.ChartKind == view.KindBar })
	if !u.Transform.IsIdentity() {
		t.Error("chart-kind switch should reset the transform")
	}
}

func TestGestureFramesCarryPatchesNotSVG(t *testing.T) {
	s := NewSession(testOptions())
	defer s.Close()
	waitFor(t, s, time.Second, func(u Update) bool { return !u.Loading })

	s.Wheel(2, 100, 50)
	u := waitFor(t, s, time.Second, func(u Update) bool { return u.Transform.K > 1 })
	if u.SVG != "" {
		t.Error("gesture frame should not re-ship the whole scene")
	}
	if len(u.Patches) == 0 {
		t.Fatal("gesture frame carries no patches")
	}
	for _, p := range u.Patches {
		if p.Op != scene.OpUpdate {
			t.Errorf("reprojection produced structural patch %v for %s", p.Op, p.Key)
		}
	}

	// A settings change rebuilds the scene and goes back to a full frame.
	s.ApplyView(view.Update{ChartKind: strPtr("bar")})
	u = waitFor(t, s, time.Second, func(u Update) bool { return u.View.ChartKind == view.KindBar })
	if u.SVG == "" || len(u.Patches) != 0 {
		t.Error("full render should carry the serialized scene, not patches")
	}
}

func TestHoverPublishesTooltip(t *testing.T) {
	s := NewSession(testOptions())
	defer s.Close()
	waitFor(t, s, time.Second, func(u Update) bool { return !u.Loading })

	dataset, _, state, err := s.Data(context.Background())
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}

	// Scale computation is deterministic from the dataset and view, so the
	// test can recompute the exact screen position of a point.
	surface := render.Surface{Width: DefaultWidth, Height: DefaultHeight}
	pair := scale.Compute(dataset, state.Visible, state.Metric, surface.PlotWidth(), surface.PlotHeight())
	target := dataset[len(dataset)-1]
	entity := state.Visible[0]
	px := pair.X.Scale(target.Timestamp)
	py := pair.Y.Scale(target.Values[entity].Price)

	s.Hover(px, py)
	got := waitFor(t, s, time.Second, func(u Update) bool { return u.Tooltip != nil })
	if got.Tooltip.Entity != entity {
		t.Errorf("tooltip entity = %s, want %s", got.Tooltip.Entity, entity)
	}
	if got.Tooltip.Value != target.Values[entity].Price {
		t.Errorf("tooltip value = %v, want %v", got.Tooltip.Value, target.Values[entity].Price)
	}

	s.Leave()
	waitFor(t, s, time.Second, func(u Update) bool { return u.Tooltip == nil })
}

func strPtr(s string) *string { return &s }

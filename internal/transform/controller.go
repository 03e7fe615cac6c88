package transform

import (
	"math"
	"time"

	"github.com/Suraj0791/stockcharts/internal/anim"
	"github.com/Suraj0791/stockcharts/internal/scale"
)

// Zoom factor bounds and the pan margin allowed beyond the plot rectangle.
const (
	MinZoom = 1.0
	MaxZoom = 5.0

	// PanMargin is how far (in pixels) content may be dragged past the plot
	// edge before the translate clamps.
	PanMargin = 80.0
)

// Controller owns the interactive transform for one chart. It clamps zoom and
// translate, derives rescaled axis functions, and animates reset-to-identity.
// All methods are called from the owning session's event loop.
type Controller struct {
	current Transform
	plotW   float64
	plotH   float64

	// verticalZoom enables Y rescaling; the stock dashboard zooms the time
	// axis only, matching the source behavior.
	verticalZoom bool

	clock anim.Clock
	reset *resetTween
}

type resetTween struct {
	from  Transform
	start time.Time
}

// NewController creates a controller at identity for the given plot size.
func NewController(plotW, plotH float64, clock anim.Clock) *Controller {
	if clock == nil {
		clock = anim.WallClock{}
	}
	return &Controller{
		current: Identity(),
		plotW:   plotW,
		plotH:   plotH,
		clock:   clock,
	}
}

// SetPlotSize updates the clamping extent after a resize.
func (c *Controller) SetPlotSize(plotW, plotH float64) {
	c.plotW = plotW
	c.plotH = plotH
	c.current = c.clamp(c.current)
}

// Current returns the transform as of now, sampling the reset tween when one
// is running.
func (c *Controller) Current() Transform {
	if c.reset == nil {
		return c.current
	}
	now := c.clock.Now()
	tl := anim.NewTimeline(0, 1, c.reset.start, anim.ResetTween, anim.CubicOut)
	if tl.Done(now) {
		// Land exactly on identity so a zoom+reset round trip restores
		// positions bit-identically.
		c.reset = nil
		c.current = Identity()
		return c.current
	}
	p := tl.At(now)
	from := c.reset.from
	return Transform{
		K:  from.K + (1-from.K)*p,
		TX: from.TX * (1 - p),
		TY: from.TY * (1 - p),
	}
}

// Wheel applies a zoom step centered on the pointer position (cx, cy in plot
// pixels). factor > 1 zooms in. The zoom factor is clamped to [MinZoom,
// MaxZoom] and the translate re-clamped so content stays within the pan
// extent.
func (c *Controller) Wheel(factor, cx, cy float64) Transform {
	t := c.interrupt()
	k := clampFloat(t.K*factor, MinZoom, MaxZoom)
	if k != t.K {
		// Keep the point under the cursor stationary.
		ratio := k / t.K
		t.TX = cx - (cx-t.TX)*ratio
		t.TY = cy - (cy-t.TY)*ratio
		t.K = k
	}
	c.current = c.clamp(t)
	return c.current
}

// Drag pans by the given pixel delta, clamped to the translate extent.
func (c *Controller) Drag(dx, dy float64) Transform {
	t := c.interrupt()
	t.TX += dx
	t.TY += dy
	c.current = c.clamp(t)
	return c.current
}

// Reset starts an animated tween back to identity. The chart keeps sampling
// Current until the tween completes.
func (c *Controller) Reset() {
	from := c.Current()
	if from.IsIdentity() {
		return
	}
	c.current = from
	c.reset = &resetTween{from: from, start: c.clock.Now()}
}

// ResetImmediate snaps to identity without animating. Used when the chart
// kind or metric changes and the old view extent is meaningless.
func (c *Controller) ResetImmediate() {
	c.reset = nil
	c.current = Identity()
}

// Resetting reports whether the reset tween is still running.
func (c *Controller) Resetting() bool {
	return c.reset != nil
}

// Rescale derives the scale pair for the current transform. This is the cheap
// re-projection path: the static pair is never modified.
func (c *Controller) Rescale(pair scale.Pair) scale.Pair {
	t := c.Current()
	out := scale.Pair{X: t.RescaleX(pair.X), Y: pair.Y}
	if c.verticalZoom {
		out.Y = t.RescaleY(pair.Y)
	}
	return out
}

// EnableVerticalZoom turns on Y-axis rescaling for chart variants that want
// it.
func (c *Controller) EnableVerticalZoom() {
	c.verticalZoom = true
}

// interrupt cancels a running reset tween, freezing the transform at its
// sampled value so a new gesture takes over smoothly.
func (c *Controller) interrupt() Transform {
	t := c.Current()
	c.reset = nil
	c.current = t
	return t
}

// clamp bounds the translate so content cannot be panned arbitrarily far
// off-canvas. For zoom factor k the content spans k*plot; the visible window
// must stay within PanMargin of it.
func (c *Controller) clamp(t Transform) Transform {
	t.K = clampFloat(t.K, MinZoom, MaxZoom)
	t.TX = clampFloat(t.TX, c.plotW-PanMargin-t.K*c.plotW, PanMargin)
	t.TY = clampFloat(t.TY, c.plotH-PanMargin-t.K*c.plotH, PanMargin)
	return t
}

func clampFloat(v, lo, hi float64) float64 {
	if lo > hi {
		// Degenerate extent (tiny plot): pin to the midpoint.
		return (lo + hi) / 2
	}
	return math.Min(math.Max(v, lo), hi)
}

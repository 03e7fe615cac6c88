// Package tooltip tracks pointer hover over decorated data points and holds
// the single active tooltip record consumed by the overlay. The coordinator is
// single-owner state driven from the engine's event loop; no locking happens
// here.
package tooltip

import (
	"math"
	"time"

	"github.com/Suraj0791/stockcharts/internal/market"
	"github.com/Suraj0791/stockcharts/internal/scale"
)

// hitRadius is the pointer distance within which a marker counts as hovered.
const hitRadius = 12.0

// State is the active tooltip record. At most one instance is alive at any
// time; entering a new point while one is active replaces it atomically.
type State struct {
	Entity    string        `json:"entity"`
	Timestamp time.Time     `json:"timestamp"`
	Value     float64       `json:"value"`
	Metric    market.Metric `json:"metric"`
	Text      string        `json:"text"`
	Sign      Sign          `json:"sign"`
	ScreenX   float64       `json:"screenX"`
	ScreenY   float64       `json:"screenY"`
}

// Context is what the coordinator needs to resolve a hover: the dataset, the
// active metric, the currently effective (possibly transformed) scales and the
// margin offsets that map plot coordinates to screen coordinates.
type Context struct {
	Dataset market.Dataset
	Visible []string
	Metric  market.Metric
	Scales  scale.Pair
	OffsetX float64
	OffsetY float64
}

// Coordinator owns the active tooltip state.
type Coordinator struct {
	ctx    Context
	active *State
}

// NewCoordinator creates a coordinator with no context and no active tooltip.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// SetContext installs the context for subsequent hovers and re-anchors the
// active tooltip against the new scales, so it keeps tracking its point
// mid-zoom.
func (c *Coordinator) SetContext(ctx Context) {
	prev := c.ctx.Dataset
	c.ctx = ctx
	if c.active == nil {
		return
	}
	if c.active.Metric != ctx.Metric || !sameDataset(prev, ctx.Dataset) {
		// The hovered value no longer matches what is on screen.
		c.active = nil
		return
	}
	c.active.ScreenX = ctx.OffsetX + ctx.Scales.X.Scale(c.active.Timestamp)
	c.active.ScreenY = ctx.OffsetY + ctx.Scales.Y.Scale(c.active.Value)
}

// sameDataset reports whether both slices are backed by the same points. A
// regenerated dataset gets a fresh backing array, so identity of the first
// element is enough to tell a rescale from a replacement.
func sameDataset(a, b market.Dataset) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

// PointerEnter activates the tooltip for one entity's point. An invalid index
// or an undefined value leaves the current state untouched and reports false.
func (c *Coordinator) PointerEnter(entity string, index int) (State, bool) {
	if index < 0 || index >= len(c.ctx.Dataset) {
		return State{}, false
	}
	point := c.ctx.Dataset[index]
	if !point.Valid() {
		return State{}, false
	}
	sample, ok := point.Values[entity]
	if !ok {
		return State{}, false
	}
	v := sample.Value(c.ctx.Metric)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return State{}, false
	}

	text, sign := FormatValue(v, c.ctx.Metric)
	state := State{
		Entity:    entity,
		Timestamp: point.Timestamp,
		Value:     v,
		Metric:    c.ctx.Metric,
		Text:      text,
		Sign:      sign,
		ScreenX:   c.ctx.OffsetX + c.ctx.Scales.X.Scale(point.Timestamp),
		ScreenY:   c.ctx.OffsetY + c.ctx.Scales.Y.Scale(v),
	}
	c.active = &state
	return state, true
}

// PointerLeave clears the active tooltip.
func (c *Coordinator) PointerLeave() {
	c.active = nil
}

// Active returns the current tooltip record, or nil when none is active.
func (c *Coordinator) Active() *State {
	return c.active
}

// Hover resolves a pointer position in plot coordinates against the visible
// points and activates the nearest one within the hit radius. Outside the
// radius the active tooltip is cleared, matching pointer-leave semantics.
func (c *Coordinator) Hover(px, py float64) (State, bool) {
	var (
		bestEntity string
		bestIndex  = -1
		bestDist   = hitRadius
	)
	for _, name := range c.ctx.Visible {
		values := c.ctx.Dataset.MetricValues(name, c.ctx.Metric)
		for i, point := range c.ctx.Dataset {
			v := values[i]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			d := math.Hypot(c.ctx.Scales.X.Scale(point.Timestamp)-px, c.ctx.Scales.Y.Scale(v)-py)
			if d <= bestDist {
				bestEntity, bestIndex, bestDist = name, i, d
			}
		}
	}
	if bestIndex < 0 {
		c.active = nil
		return State{}, false
	}
	return c.PointerEnter(bestEntity, bestIndex)
}

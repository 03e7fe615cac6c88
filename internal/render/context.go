package render

import (
	"time"

	"github.com/Suraj0791/stockcharts/internal/market"
	"github.com/Suraj0791/stockcharts/internal/scale"
	"github.com/Suraj0791/stockcharts/internal/view"
)

// Chart margins around the plot rectangle. Tooltip anchors add these offsets
// so screen positions line up with the rendered frame.
const (
	MarginTop    = 20.0
	MarginRight  = 30.0
	MarginBottom = 30.0
	MarginLeft   = 55.0
)

// Surface is the addressable drawing area: the container's current width and
// a fixed height.
type Surface struct {
	Width  float64
	Height float64
}

// PlotWidth returns the width of the plot rectangle inside the margins.
func (s Surface) PlotWidth() float64 {
	return s.Width - MarginLeft - MarginRight
}

// PlotHeight returns the height of the plot rectangle inside the margins.
func (s Surface) PlotHeight() float64 {
	return s.Height - MarginTop - MarginBottom
}

// Context carries everything one render pass needs. It is built by the engine
// and threaded explicitly through the pipeline; no component holds hidden
// rendered-state singletons.
type Context struct {
	Dataset  market.Dataset
	Entities []market.Entity
	View     view.State
	Scales   scale.Pair
	Theme    Theme
	Surface  Surface

	// Now is the sampling instant for animation timelines; AnimStart is when
	// the current enter animation began (reset on data or view changes).
	Now       time.Time
	AnimStart time.Time
}

// VisibleEntities resolves the view's visible names against the entity list,
// preserving entity-list order.
func (c Context) VisibleEntities() []market.Entity {
	visible := make(map[string]bool, len(c.View.Visible))
	for _, name := range c.View.Visible {
		visible[name] = true
	}
	out := make([]market.Entity, 0, len(c.View.Visible))
	for _, e := range c.Entities {
		if visible[e.Name] {
			out = append(out, e)
		}
	}
	return out
}

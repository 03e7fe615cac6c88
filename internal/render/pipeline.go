package render

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Suraj0791/stockcharts/internal/market"
	"github.com/Suraj0791/stockcharts/internal/scale"
	"github.com/Suraj0791/stockcharts/internal/scene"
	"github.com/Suraj0791/stockcharts/internal/view"
)

// ErrNoSurface is returned when the drawing surface has no usable area; the
// caller skips the frame instead of dividing by zero.
var ErrNoSurface = errors.New("render surface has no drawable area")

// ErrNoFrame is returned by Reproject before the first successful render.
var ErrNoFrame = errors.New("no rendered frame to reproject")

// PointRef ties one dataset index to the value a geometry element was built
// from, so re-projection never re-reads the dataset.
type PointRef struct {
	Index   int
	Time    time.Time
	Value   float64
	Defined bool
}

// SeriesGeometry is the typed mapping from an entity to the geometry it owns
// in the current frame.
type SeriesGeometry struct {
	Entity       string
	ColorIndex   int
	Slot         int
	VisibleCount int
	PathKey      string
	MarkerKeys   []string
	BarKeys      []string
	LabelKeys    []string
	Points       []PointRef
}

// Frame is one rendered scene: the root node, a node index for keyed lookups
// and per-entity geometry handles. The previous frame is retained by the
// pipeline for diffing and transform re-projection.
type Frame struct {
	Root     *scene.Node
	Geometry map[string]*SeriesGeometry

	ctx   Context
	nodes map[string]*scene.Node
}

// Node returns the keyed node in this frame, or nil.
func (f *Frame) Node(key string) *scene.Node {
	return f.nodes[key]
}

// Pipeline turns a render context into a scene graph. A failed pass is caught
// at this boundary: it is logged, the retained frame is dropped and the error
// is returned; the caller shows an empty chart region until the next
// successful render.
type Pipeline struct {
	log  zerolog.Logger
	prev *Frame
}

// NewPipeline creates a pipeline logging through the given logger.
func NewPipeline(log zerolog.Logger) *Pipeline {
	return &Pipeline{log: log}
}

// Last returns the retained frame from the most recent successful render.
func (p *Pipeline) Last() *Frame {
	return p.prev
}

// Render runs one full pass: clear, axes, then a per-entity series pass. The
// pass is idempotent: identical contexts produce scenes with identical
// element counts.
func (p *Pipeline) Render(ctx Context) (frame *Frame, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Interface("panic", r).Msg("render pass failed, clearing frame")
			p.prev = nil
			frame = nil
			err = fmt.Errorf("render pass panicked: %v", r)
		}
	}()

	if ctx.Surface.PlotWidth() <= 0 || ctx.Surface.PlotHeight() <= 0 {
		return nil, ErrNoSurface
	}

	// Clear step: every pass starts from an empty root, so repeated renders
	// never accumulate duplicate elements.
	root := scene.Group("chart").
		Set("transform", fmt.Sprintf("translate(%s,%s)", scene.Ftoa(MarginLeft), scene.Ftoa(MarginTop)))

	root.Append(buildAxes(ctx, ctx.Scales))
	if ctx.View.Metric == market.MetricChange {
		root.Append(buildZeroLine(ctx, ctx.Scales.Y))
	}

	visible := ctx.VisibleEntities()
	geometry := make(map[string]*SeriesGeometry, len(visible))
	for slot, entity := range visible {
		g := &SeriesGeometry{
			Entity:       entity.Name,
			ColorIndex:   entity.ColorIndex,
			Slot:         slot,
			VisibleCount: len(visible),
		}
		geometry[entity.Name] = g

		var node *scene.Node
		if ctx.View.ChartKind == view.KindBar {
			node = buildBarSeries(ctx, ctx.Scales, entity, slot, len(visible), g)
		} else {
			node = buildLineSeries(ctx, ctx.Scales, entity, g)
		}
		root.Append(node)
	}

	frame = &Frame{
		Root:     root,
		Geometry: geometry,
		ctx:      ctx,
		nodes:    indexNodes(root),
	}
	p.prev = frame
	return frame, nil
}

// Reproject re-applies a rescaled pair to the retained frame: axis ticks are
// rebuilt and existing geometry positions updated in place. No elements are
// created or destroyed and no enter animations restart, which keeps transform
// updates cheap compared to a full render.
func (p *Pipeline) Reproject(pair scale.Pair, now time.Time) (*Frame, error) {
	frame := p.prev
	if frame == nil {
		return nil, ErrNoFrame
	}

	ctx := frame.ctx
	ctx.Now = now

	// Swap the axes subtree for one built against the rescaled pair.
	if axes := frame.Root.Find("axes"); axes != nil {
		fresh := buildAxes(ctx, pair)
		axes.Children = fresh.Children
	}
	if zero := frame.Root.Find("zero-line"); zero != nil {
		py := pair.Y.Scale(0)
		zero.SetFloat("y1", py).SetFloat("y2", py)
	}

	for _, g := range frame.Geometry {
		if ctx.View.ChartKind == view.KindBar {
			reprojectBars(frame, ctx, pair, g)
		} else {
			reprojectLine(frame, ctx, pair, g)
		}
	}

	return frame, nil
}

func reprojectLine(frame *Frame, ctx Context, pair scale.Pair, g *SeriesGeometry) {
	var (
		path    = pathBuilder{}
		markers = 0
		labels  = 0
	)
	for _, ref := range g.Points {
		if !ref.Defined {
			path.Break()
			continue
		}
		px := pair.X.Scale(ref.Time)
		py := pair.Y.Scale(ref.Value)
		path.LineTo(px, py)

		if markers < len(g.MarkerKeys) {
			if n := frame.Node(g.MarkerKeys[markers]); n != nil {
				n.SetFloat("cx", px).SetFloat("cy", py)
			}
			markers++
		}
		if labels < len(g.LabelKeys) {
			if n := frame.Node(g.LabelKeys[labels]); n != nil {
				n.SetFloat("x", px).SetFloat("y", py-10)
			}
			labels++
		}
	}
	if n := frame.Node(g.PathKey); n != nil {
		n.Set("d", path.String())
		// The stroke is fully drawn by the time a gesture lands; drop any
		// stale draw-in dash state rather than replaying it mid-zoom.
		delete(n.Attrs, "stroke-dasharray")
		delete(n.Attrs, "stroke-dashoffset")
	}
}

func reprojectBars(frame *Frame, ctx Context, pair scale.Pair, g *SeriesGeometry) {
	count := len(ctx.Dataset)
	if count == 0 || g.VisibleCount == 0 {
		return
	}
	var (
		plotH    = ctx.Surface.PlotHeight()
		barW     = ctx.Surface.PlotWidth() / float64(count) / float64(g.VisibleCount+1) * 0.8
		baseline = plotH
	)
	// Bars widen with the horizontal zoom: the rescaled pair covers a smaller
	// time span over the same pixel range, so slot coverage keeps its ratio.
	d0, d1 := ctx.Scales.X.Domain()
	z0, z1 := pair.X.Domain()
	if span := z1.Sub(z0); span > 0 {
		barW *= float64(d1.Sub(d0)) / float64(span)
	}
	slotW := barW * float64(g.VisibleCount)
	if ctx.View.Metric == market.MetricChange {
		baseline = pair.Y.Scale(0)
	}

	bars := 0
	for _, ref := range g.Points {
		if !ref.Defined {
			continue
		}
		if bars >= len(g.BarKeys) {
			break
		}
		n := frame.Node(g.BarKeys[bars])
		bars++
		if n == nil {
			continue
		}

		px := pair.X.Scale(ref.Time)
		py := pair.Y.Scale(ref.Value)
		x := px - slotW/2 + float64(g.Slot)*barW

		var y, h float64
		if py <= baseline {
			y, h = py, baseline-py
		} else {
			y, h = baseline, py-baseline
		}
		n.SetFloat("x", x).SetFloat("y", y).SetFloat("width", barW).SetFloat("height", h)
	}
}

func indexNodes(root *scene.Node) map[string]*scene.Node {
	nodes := make(map[string]*scene.Node)
	root.Walk(func(n *scene.Node) {
		if n.Key != "" {
			nodes[n.Key] = n
		}
	})
	return nodes
}

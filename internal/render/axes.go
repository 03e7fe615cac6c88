package render

import (
	"fmt"

	"github.com/Suraj0791/stockcharts/internal/anim"
	"github.com/Suraj0791/stockcharts/internal/scale"
	"github.com/Suraj0791/stockcharts/internal/scene"
)

const (
	xTickCount = 6
	yTickCount = 5
	tickLength = 6.0
)

// buildAxes draws the axis lines, tick marks, tick labels and gridlines for
// the given scale pair. Tick labels fade in over the axis transition so scale
// changes read as a transition rather than a jump.
func buildAxes(ctx Context, pair scale.Pair) *scene.Node {
	axes := scene.Group("axes")
	axes.Append(buildXAxis(ctx, pair.X), buildYAxis(ctx, pair.Y))
	return axes
}

func buildXAxis(ctx Context, x scale.TimeScale) *scene.Node {
	var (
		plotW = ctx.Surface.PlotWidth()
		plotH = ctx.Surface.PlotHeight()
		fade  = anim.NewTimeline(0, 1, ctx.AnimStart, anim.AxisTransition, anim.CubicOut)
		group = scene.Group("axis-x")
	)

	group.Append(scene.Line("axis-x-domain", 0, plotH, plotW, plotH).
		Set("stroke", Hex(ctx.Theme.AxisLine)))

	for i, t := range x.Ticks(xTickCount) {
		px := x.Scale(t)
		if px < 0 || px > plotW {
			continue
		}
		group.Append(
			scene.Line(fmt.Sprintf("xgrid-%d", i), px, 0, px, plotH).
				Set("stroke", Hex(ctx.Theme.GridLine)),
			scene.Line(fmt.Sprintf("xtick-%d", i), px, plotH, px, plotH+tickLength).
				Set("stroke", Hex(ctx.Theme.AxisLine)),
			scene.Text(fmt.Sprintf("xlabel-%d", i), px, plotH+tickLength+12,
				formatTickTime(t, ctx.View.TimeRange)).
				Set("fill", Hex(ctx.Theme.TickLabel)).
				Set("text-anchor", "middle").
				Set("font-size", "11").
				SetFloat("opacity", fade.At(ctx.Now)),
		)
	}

	return group
}

func buildYAxis(ctx Context, y scale.LinearScale) *scene.Node {
	var (
		plotW = ctx.Surface.PlotWidth()
		plotH = ctx.Surface.PlotHeight()
		fade  = anim.NewTimeline(0, 1, ctx.AnimStart, anim.AxisTransition, anim.CubicOut)
		group = scene.Group("axis-y")
	)

	group.Append(scene.Line("axis-y-domain", 0, 0, 0, plotH).
		Set("stroke", Hex(ctx.Theme.AxisLine)))

	for i, v := range y.Ticks(yTickCount) {
		py := y.Scale(v)
		if py < 0 || py > plotH {
			continue
		}
		group.Append(
			scene.Line(fmt.Sprintf("ygrid-%d", i), 0, py, plotW, py).
				Set("stroke", Hex(ctx.Theme.GridLine)),
			scene.Line(fmt.Sprintf("ytick-%d", i), -tickLength, py, 0, py).
				Set("stroke", Hex(ctx.Theme.AxisLine)),
			scene.Text(fmt.Sprintf("ylabel-%d", i), -tickLength-4, py+4,
				formatTickValue(v, ctx.View.Metric)).
				Set("fill", Hex(ctx.Theme.TickLabel)).
				Set("text-anchor", "end").
				Set("font-size", "11").
				SetFloat("opacity", fade.At(ctx.Now)),
		)
	}

	return group
}

// buildZeroLine draws the dashed zero reference, present only for the change
// metric.
func buildZeroLine(ctx Context, y scale.LinearScale) *scene.Node {
	py := y.Scale(0)
	return scene.Line("zero-line", 0, py, ctx.Surface.PlotWidth(), py).
		Set("stroke", Hex(ctx.Theme.ZeroLine)).
		Set("stroke-dasharray", "4,3")
}

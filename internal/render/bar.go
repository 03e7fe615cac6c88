package render

import (
	"fmt"
	"math"

	"github.com/Suraj0791/stockcharts/internal/anim"
	"github.com/Suraj0791/stockcharts/internal/market"
	"github.com/Suraj0791/stockcharts/internal/scale"
	"github.com/Suraj0791/stockcharts/internal/scene"
)

// buildBarSeries draws one entity's series as one rectangle per data point.
// Entities share each time slot side by side without overlap:
// barWidth = plotWidth / pointCount / (visibleCount+1) * 0.8. For the change
// metric bars extend up or down from the zero baseline; price and volume bars
// rise from the bottom of the plot.
func buildBarSeries(ctx Context, pair scale.Pair, entity market.Entity, slot, visibleCount int, geometry *SeriesGeometry) *scene.Node {
	var (
		color  = Hex(ctx.Theme.SeriesColor(entity.ColorIndex))
		values = ctx.Dataset.MetricValues(entity.Name, ctx.View.Metric)
		group  = scene.Group("series-" + entity.Name)
		plotH  = ctx.Surface.PlotHeight()
	)

	count := len(ctx.Dataset)
	if count == 0 || visibleCount == 0 {
		return group
	}
	barW := ctx.Surface.PlotWidth() / float64(count) / float64(visibleCount+1) * 0.8

	baseline := plotH
	if ctx.View.Metric == market.MetricChange {
		baseline = pair.Y.Scale(0)
	}

	for i, point := range ctx.Dataset {
		v := values[i]
		defined := point.Valid() && !math.IsNaN(v) && !math.IsInf(v, 0)
		geometry.Points = append(geometry.Points, PointRef{Index: i, Time: point.Timestamp, Value: v, Defined: defined})
		if !defined {
			continue
		}

		var (
			px     = pair.X.Scale(point.Timestamp)
			py     = pair.Y.Scale(v)
			slotW  = barW * float64(visibleCount)
			x      = px - slotW/2 + float64(slot)*barW
			grow   = anim.NewTimeline(0, 1, ctx.AnimStart, anim.MarkerGrow, anim.CubicOut).Staggered(i)
			scaleP = grow.At(ctx.Now)
		)

		// Bars grow out of the baseline as the enter animation progresses.
		var y, h float64
		if py <= baseline {
			h = (baseline - py) * scaleP
			y = baseline - h
		} else {
			h = (py - baseline) * scaleP
			y = baseline
		}

		barKey := fmt.Sprintf("bar-%s-%d", entity.Name, i)
		geometry.BarKeys = append(geometry.BarKeys, barKey)
		group.Append(scene.Rect(barKey, x, y, barW, h).
			Set("fill", color))
	}

	return group
}

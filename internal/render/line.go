package render

import (
	"fmt"
	"math"

	"github.com/Suraj0791/stockcharts/internal/anim"
	"github.com/Suraj0791/stockcharts/internal/market"
	"github.com/Suraj0791/stockcharts/internal/scale"
	"github.com/Suraj0791/stockcharts/internal/scene"
)

const (
	markerRadius = 4.0

	// Value labels clutter dense charts; they appear only below this count.
	labelPointLimit = 15
)

// buildLineSeries draws one entity's series as a gap-skipping path with
// marker circles and optional value labels. The draw-in animation reveals the
// stroke over its length; markers grow from zero radius with a staggered
// delay.
func buildLineSeries(ctx Context, pair scale.Pair, entity market.Entity, geometry *SeriesGeometry) *scene.Node {
	var (
		color  = Hex(ctx.Theme.SeriesColor(entity.ColorIndex))
		values = ctx.Dataset.MetricValues(entity.Name, ctx.View.Metric)
		group  = scene.Group("series-" + entity.Name)
		path   = pathBuilder{}
	)

	for i, point := range ctx.Dataset {
		v := values[i]
		defined := point.Valid() && !math.IsNaN(v) && !math.IsInf(v, 0)
		geometry.Points = append(geometry.Points, PointRef{Index: i, Time: point.Timestamp, Value: v, Defined: defined})

		if !defined {
			// Gaps are skipped, not interpolated.
			path.Break()
			continue
		}

		px := pair.X.Scale(point.Timestamp)
		py := pair.Y.Scale(v)
		path.LineTo(px, py)

		markerKey := fmt.Sprintf("marker-%s-%d", entity.Name, i)
		geometry.MarkerKeys = append(geometry.MarkerKeys, markerKey)
		grow := anim.NewTimeline(0, markerRadius, ctx.AnimStart, anim.MarkerGrow, anim.CubicOut).Staggered(i)
		group.Append(scene.Circle(markerKey, px, py, grow.At(ctx.Now)).
			Set("fill", color))

		if len(ctx.Dataset) <= labelPointLimit {
			labelKey := fmt.Sprintf("label-%s-%d", entity.Name, i)
			geometry.LabelKeys = append(geometry.LabelKeys, labelKey)
			fade := anim.NewTimeline(0, 1, ctx.AnimStart, anim.LabelFade, anim.Linear).Staggered(i)
			group.Append(scene.Text(labelKey, px, py-10, formatTickValue(v, ctx.View.Metric)).
				Set("fill", Hex(ctx.Theme.ValueLabel)).
				Set("text-anchor", "middle").
				Set("font-size", "10").
				SetFloat("opacity", fade.At(ctx.Now)))
		}
	}

	pathKey := "line-" + entity.Name
	geometry.PathKey = pathKey
	drawIn := anim.NewTimeline(0, 1, ctx.AnimStart, anim.DrawIn, anim.CubicOut)
	pathNode := scene.Path(pathKey, path.String()).
		Set("stroke", color).
		Set("stroke-width", "2").
		Set("fill", "none")
	if progress := drawIn.At(ctx.Now); progress < 1 {
		// Reveal the stroke by sliding the dash offset along the path length.
		pathNode.SetFloat("stroke-dasharray", path.Length())
		pathNode.SetFloat("stroke-dashoffset", path.Length()*(1-progress))
	}

	// Path under markers so circles stay hoverable.
	group.Children = append([]*scene.Node{pathNode}, group.Children...)
	return group
}

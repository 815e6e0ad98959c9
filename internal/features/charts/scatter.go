package charts

import (
	"math"

	"job-charts/internal/dataset"
)

const (
	pointRadius   = 7.0
	labelOffsetPx = 10.0 // gap between a marker and its annotation
	scatterTicks  = 6
	rangePad      = 0.05
)

// drawScatter plots one marker per row at (X, Y) with the Label text to its right.
// Rows with a null coordinate are not drawn.
func (c *canvas) drawScatter(ds *dataset.Dataset, spec Spec) (Result, error) {
	type point struct {
		x, y  float64
		label string
		row   int
	}

	var points []point
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i := 0; i < ds.Len(); i++ {
		x, okX := ds.Float(i, spec.X)
		y, okY := ds.Float(i, spec.Y)
		if !okX || !okY {
			continue
		}
		label := ""
		if spec.Label != "" {
			label = ds.String(i, spec.Label)
		}
		points = append(points, point{x: x, y: y, label: label, row: i})
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	if len(points) == 0 {
		minX, maxX, minY, maxY = 0, 1, 0, 1
	}

	padX := (maxX - minX) * rangePad
	padY := (maxY - minY) * rangePad
	xTicks := niceTicks(minX-padX, maxX+padX, scatterTicks)
	yTicks := niceTicks(minY-padY, maxY+padY, scatterTicks)
	xLo, xHi := xTicks[0], xTicks[len(xTicks)-1]
	yLo, yHi := yTicks[0], yTicks[len(yTicks)-1]
	xStep, yStep := tickStep(xTicks), tickStep(yTicks)

	yTickLabels := make([]string, len(yTicks))
	for i, t := range yTicks {
		yTickLabels[i] = formatTick(t, yStep)
	}

	if err := c.setFont(annotFontSize); err != nil {
		return Result{}, err
	}
	labels := make([]string, len(points))
	for i, p := range points {
		labels[i] = p.label
	}
	rightPad := math.Max(plotRightPx, c.maxWidth(labels)+labelOffsetPx+pointRadius)

	if err := c.setFont(tickFontSize); err != nil {
		return Result{}, err
	}
	area := plotArea{
		left:   c.maxWidth(yTickLabels) + tickGap*2 + yLabelSpace,
		top:    plotTop,
		right:  float64(c.dc.Width()) - rightPad,
		bottom: float64(c.dc.Height()) - plotBottomPx,
	}

	c.dc.SetLineWidth(1)
	for _, t := range xTicks {
		x := scale(t, xLo, xHi, area.left, area.right)
		c.dc.SetColor(gridColor)
		c.dc.DrawLine(x, area.top, x, area.bottom)
		c.dc.Stroke()
		c.dc.SetColor(textColor)
		c.dc.DrawStringAnchored(formatTick(t, xStep), x, area.bottom+tickGap, 0.5, 1)
	}
	for i, t := range yTicks {
		y := scale(t, yLo, yHi, area.bottom, area.top)
		c.dc.SetColor(gridColor)
		c.dc.DrawLine(area.left, y, area.right, y)
		c.dc.Stroke()
		c.dc.SetColor(textColor)
		c.dc.DrawStringAnchored(yTickLabels[i], area.left-tickGap, y, 1, 0.5)
	}

	colors := rowColors(ds, spec)
	for _, p := range points {
		px := scale(p.x, xLo, xHi, area.left, area.right)
		py := scale(p.y, yLo, yHi, area.bottom, area.top)

		c.dc.SetColor(colors[p.row])
		c.dc.DrawCircle(px, py, pointRadius)
		c.dc.FillPreserve()
		c.dc.SetColor(backgroundColor)
		c.dc.SetLineWidth(1)
		c.dc.Stroke()
	}

	if err := c.setFont(annotFontSize); err != nil {
		return Result{}, err
	}
	c.dc.SetColor(textColor)
	for _, p := range points {
		if p.label == "" {
			continue
		}
		px := scale(p.x, xLo, xHi, area.left, area.right)
		py := scale(p.y, yLo, yHi, area.bottom, area.top)
		c.dc.DrawStringAnchored(p.label, px+pointRadius+labelOffsetPx, py, 0, 0.5)
	}

	c.drawSpines(area)
	if err := c.drawAxisLabels(area, spec.XLabel, spec.YLabel); err != nil {
		return Result{}, err
	}

	return Result{Marks: len(points), Labels: labels}, nil
}

func tickStep(ticks []float64) float64 {
	if len(ticks) < 2 {
		return 0
	}
	return ticks[1] - ticks[0]
}

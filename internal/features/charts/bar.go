package charts

import (
	"math"
	"strings"

	"job-charts/internal/dataset"
)

const (
	barFill     = 0.8 // share of each row band covered by the bar
	barTicks    = 6
	minLeftPx   = 90.0
	yLabelSpace = 44.0
)

// drawBars draws one horizontal bar per row, first row on top.
// Rows keep dataset order; a null value leaves an empty band with its label.
func (c *canvas) drawBars(ds *dataset.Dataset, spec Spec) (Result, error) {
	n := ds.Len()
	labels := make([]string, n)
	values := make([]float64, n)
	valid := make([]bool, n)

	lo, hi := 0.0, 0.0
	for i := 0; i < n; i++ {
		label := ds.String(i, spec.Y)
		if strings.TrimSpace(label) == "" && spec.Label != "" {
			label = ds.String(i, spec.Label)
		}
		labels[i] = label

		v, ok := ds.Float(i, spec.X)
		if !ok {
			continue
		}
		values[i], valid[i] = v, true
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}

	ticks := niceTicks(lo, hi, barTicks)
	xMin, xMax := ticks[0], ticks[len(ticks)-1]
	step := tickStep(ticks)

	if err := c.setFont(tickFontSize); err != nil {
		return Result{}, err
	}
	left := math.Max(minLeftPx, c.maxWidth(labels)+tickGap*2+yLabelSpace)
	area := plotArea{
		left:   left,
		top:    plotTop,
		right:  float64(c.dc.Width()) - plotRightPx,
		bottom: float64(c.dc.Height()) - plotBottomPx,
	}

	// vertical grid and x tick labels
	c.dc.SetLineWidth(1)
	for _, t := range ticks {
		x := scale(t, xMin, xMax, area.left, area.right)
		c.dc.SetColor(gridColor)
		c.dc.DrawLine(x, area.top, x, area.bottom)
		c.dc.Stroke()
		c.dc.SetColor(textColor)
		c.dc.DrawStringAnchored(formatTick(t, step), x, area.bottom+tickGap, 0.5, 1)
	}

	colors := rowColors(ds, spec)
	band := area.height() / float64(n)
	zero := scale(0, xMin, xMax, area.left, area.right)

	marks := 0
	for i := 0; i < n; i++ {
		center := area.top + band*(float64(i)+0.5)

		if valid[i] {
			end := scale(values[i], xMin, xMax, area.left, area.right)
			x0, x1 := math.Min(zero, end), math.Max(zero, end)
			c.dc.SetColor(colors[i])
			c.dc.DrawRectangle(x0, center-band*barFill/2, x1-x0, band*barFill)
			c.dc.Fill()
			marks++
		}

		c.dc.SetColor(textColor)
		c.dc.DrawStringAnchored(labels[i], area.left-tickGap, center, 1, 0.5)
	}

	c.drawSpines(area)
	if err := c.drawAxisLabels(area, spec.XLabel, spec.YLabel); err != nil {
		return Result{}, err
	}

	return Result{Marks: marks, Labels: labels}, nil
}

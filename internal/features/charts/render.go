package charts

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"time"

	"job-charts/internal/dataset"
	"job-charts/internal/infra/fs"
	logging "job-charts/internal/infra/log"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
)

var (
	// ErrNoRows - the renderer was handed an empty dataset
	ErrNoRows = errors.New("dataset has no rows")
	// ErrEmptyOutput - the PNG encoder produced nothing
	ErrEmptyOutput = errors.New("chart file is empty after rendering")
)

const (
	defaultWidth  = 1000
	defaultHeight = 600

	titleFontSize = 20.0
	labelFontSize = 15.0
	tickFontSize  = 12.0
	annotFontSize = 12.0

	titleY       = 34.0
	plotTop      = 64.0
	plotBottomPx = 72.0 // space under the plot for ticks and the x label
	plotRightPx  = 40.0
	yLabelX      = 22.0
	tickGap      = 8.0
)

var (
	backgroundColor = color.RGBA{0x12, 0x12, 0x12, 0xff}
	gridColor       = color.RGBA{0x33, 0x33, 0x33, 0xff}
	spineColor      = color.RGBA{0xcc, 0xcc, 0xcc, 0xff}
	textColor       = color.White
)

// Result describes what was drawn
type Result struct {
	Name   string
	Path   string
	Marks  int      // bars or points drawn
	Labels []string // category / annotation labels in draw order
	Bytes  int64
}

// Renderer draws charts into Dir
type Renderer struct {
	Dir   string
	Fonts *Fonts
}

func NewRenderer(dir string, fonts *Fonts) *Renderer {
	if fonts == nil {
		fonts = &Fonts{}
	}
	return &Renderer{Dir: dir, Fonts: fonts}
}

// Path is where spec's image is written
func (r *Renderer) Path(spec Spec) string {
	return filepath.Join(r.Dir, spec.FileName())
}

// Render draws ds according to spec and writes <Dir>/<spec.Name>.png,
// replacing any previous image only after the new one is fully encoded.
func (r *Renderer) Render(ds *dataset.Dataset, spec Spec) (Result, error) {
	start := time.Now()

	if ds.Empty() {
		return Result{}, fmt.Errorf("chart %s: %w", spec.Name, ErrNoRows)
	}
	if err := ds.Require(spec.Fields()...); err != nil {
		return Result{}, fmt.Errorf("chart %s: %w", spec.Name, err)
	}
	if err := ds.RequireNumber(spec.NumericFields()...); err != nil {
		return Result{}, fmt.Errorf("chart %s: %w", spec.Name, err)
	}

	width, height := spec.Width, spec.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	c := &canvas{dc: gg.NewContext(width, height), fonts: r.Fonts}
	c.dc.SetColor(backgroundColor)
	c.dc.Clear()

	var res Result
	var err error
	switch spec.Kind {
	case HorizontalBar:
		res, err = c.drawBars(ds, spec)
	case Scatter:
		res, err = c.drawScatter(ds, spec)
	default:
		err = fmt.Errorf("unsupported chart kind %v", spec.Kind)
	}
	if err != nil {
		return Result{}, fmt.Errorf("chart %s: %w", spec.Name, err)
	}
	if err := c.drawTitle(spec.Title); err != nil {
		return Result{}, fmt.Errorf("chart %s: %w", spec.Name, err)
	}

	path := r.Path(spec)
	size, err := fs.WriteAtomic(path, c.dc.EncodePNG)
	if err != nil {
		return Result{}, fmt.Errorf("failed to save chart %s: %w", spec.Name, err)
	}
	if size == 0 {
		logging.LogError("Chart file is empty after rendering", zap.String("filename", path))
		return Result{}, fmt.Errorf("chart %s: %w", spec.Name, ErrEmptyOutput)
	}

	res.Name = spec.Name
	res.Path = path
	res.Bytes = size

	logging.LogSuccess("Saved "+path,
		zap.String("chart", spec.Name),
		zap.String("kind", spec.Kind.String()),
		zap.Int("marks", res.Marks),
		zap.Int64("fileSize", size),
		zap.String("font", r.Fonts.Source()),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()))
	return res, nil
}

// canvas wraps a gg context with the shared chart frame
type canvas struct {
	dc    *gg.Context
	fonts *Fonts
}

type plotArea struct {
	left, top, right, bottom float64
}

func (p plotArea) width() float64  { return p.right - p.left }
func (p plotArea) height() float64 { return p.bottom - p.top }

func (c *canvas) setFont(points float64) error {
	face, err := c.fonts.Face(points)
	if err != nil {
		return err
	}
	c.dc.SetFontFace(face)
	return nil
}

func (c *canvas) maxWidth(labels []string) float64 {
	widest := 0.0
	for _, l := range labels {
		if w, _ := c.dc.MeasureString(l); w > widest {
			widest = w
		}
	}
	return widest
}

func (c *canvas) drawTitle(title string) error {
	if title == "" {
		return nil
	}
	if err := c.setFont(titleFontSize); err != nil {
		return err
	}
	c.dc.SetColor(textColor)
	c.dc.DrawStringAnchored(title, float64(c.dc.Width())/2, titleY, 0.5, 0.5)
	return nil
}

// drawAxisLabels puts xLabel under the plot and yLabel rotated on the left edge
func (c *canvas) drawAxisLabels(area plotArea, xLabel, yLabel string) error {
	if err := c.setFont(labelFontSize); err != nil {
		return err
	}
	c.dc.SetColor(textColor)
	if xLabel != "" {
		c.dc.DrawStringAnchored(xLabel, area.left+area.width()/2, float64(c.dc.Height())-22, 0.5, 0.5)
	}
	if yLabel != "" {
		cy := area.top + area.height()/2
		c.dc.Push()
		c.dc.RotateAbout(gg.Radians(-90), yLabelX, cy)
		c.dc.DrawStringAnchored(yLabel, yLabelX, cy, 0.5, 0.5)
		c.dc.Pop()
	}
	return nil
}

func (c *canvas) drawSpines(area plotArea) {
	c.dc.SetColor(spineColor)
	c.dc.SetLineWidth(1.5)
	c.dc.DrawLine(area.left, area.bottom, area.right, area.bottom)
	c.dc.Stroke()
	c.dc.DrawLine(area.left, area.top, area.left, area.bottom)
	c.dc.Stroke()
}

// rowColors gives one colour per row: by distinct Hue value when set,
// otherwise one palette step per row
func rowColors(ds *dataset.Dataset, spec Spec) []color.Color {
	n := ds.Len()
	if spec.Hue == "" {
		return Colors(spec.Palette, n)
	}
	index := make(map[string]int)
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		k := ds.String(i, spec.Hue)
		keys[i] = k
		if _, ok := index[k]; !ok {
			index[k] = len(index)
		}
	}
	palette := Colors(spec.Palette, len(index))
	out := make([]color.Color, n)
	for i, k := range keys {
		out[i] = palette[index[k]]
	}
	return out
}

// scale maps v from [lo, hi] onto [a, b]
func scale(v, lo, hi, a, b float64) float64 {
	if hi == lo {
		return (a + b) / 2
	}
	return a + (v-lo)/(hi-lo)*(b-a)
}

package charts

import (
	"image/color"
	"strconv"
)

// Palettes are anchor colours. Sequential ones are interpolated,
// qualitative ones cycle.
var palettes = map[string]struct {
	anchors     []string
	qualitative bool
}{
	"viridis":  {anchors: []string{"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"}},
	"magma":    {anchors: []string{"#000004", "#3b0f70", "#8c2981", "#de4968", "#fe9f6d", "#fcfdbf"}},
	"coolwarm": {anchors: []string{"#3b4cc0", "#dddcdc", "#b40426"}},
	"deep": {
		anchors:     []string{"#4c72b0", "#dd8452", "#55a868", "#c44e52", "#8172b3", "#937860", "#da8bc3", "#8c8c8c", "#ccb974", "#64b5cd"},
		qualitative: true,
	},
}

const defaultPalette = "viridis"

// Colors returns n colours from the named palette.
// Sequential palettes skip both ends so the darkest colour never sits on the dark background.
func Colors(name string, n int) []color.Color {
	if n <= 0 {
		return nil
	}
	p, ok := palettes[name]
	if !ok {
		p = palettes[defaultPalette]
	}

	anchors := make([]color.RGBA, len(p.anchors))
	for i, h := range p.anchors {
		anchors[i] = hexColor(h)
	}

	out := make([]color.Color, n)
	if p.qualitative {
		for i := range out {
			out[i] = anchors[i%len(anchors)]
		}
		return out
	}
	for i := range out {
		out[i] = interpolate(anchors, float64(i+1)/float64(n+1))
	}
	return out
}

func interpolate(anchors []color.RGBA, t float64) color.RGBA {
	if t <= 0 {
		return anchors[0]
	}
	if t >= 1 {
		return anchors[len(anchors)-1]
	}
	pos := t * float64(len(anchors)-1)
	i := int(pos)
	f := pos - float64(i)
	a, b := anchors[i], anchors[i+1]
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*f + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

func hexColor(h string) color.RGBA {
	if len(h) == 7 && h[0] == '#' {
		if v, err := strconv.ParseUint(h[1:], 16, 32); err == nil {
			return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
		}
	}
	return color.RGBA{A: 255}
}

package charts

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	logging "job-charts/internal/infra/log"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Inter first, then common sans fonts. The embedded Go font is the last resort,
// so rendering never depends on what the host has installed.
var defaultFontPaths = []string{
	"etc/fonts/InterVariable.ttf",
	"etc/fonts/Inter-Regular.ttf",
	"~/Library/Fonts/InterVariable.ttf",
	"~/Library/Fonts/Inter-Regular.ttf",
	"/Library/Fonts/Inter-Regular.ttf",
	"/usr/share/fonts/truetype/inter/Inter-Regular.ttf",
	"/usr/local/share/fonts/Inter-Regular.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
}

// Fonts resolves font faces by point size
type Fonts struct {
	// Paths are probed in order; nil means the default list, empty means embedded only
	Paths []string

	once     sync.Once
	path     string
	embedded *truetype.Font
	err      error
}

// EmbeddedFonts skips the filesystem probe. Output is identical on every host.
func EmbeddedFonts() *Fonts {
	return &Fonts{Paths: []string{}}
}

func (f *Fonts) resolve() {
	paths := f.Paths
	if paths == nil {
		paths = defaultFontPaths
	}
	for _, p := range paths {
		p = expandPath(p)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if _, err := gg.LoadFontFace(p, 12); err != nil {
			logging.LogWarn("Font file exists but failed to load", zap.String("path", p), zap.Error(err))
			continue
		}
		f.path = p
		logging.LogDebug("Using font", zap.String("path", p))
		return
	}

	f.embedded, f.err = truetype.Parse(goregular.TTF)
	if f.err != nil {
		f.err = fmt.Errorf("failed to parse embedded font: %w", f.err)
	}
}

// Face returns a face of the given size in points
func (f *Fonts) Face(points float64) (font.Face, error) {
	f.once.Do(f.resolve)
	if f.err != nil {
		return nil, f.err
	}
	if f.path != "" {
		return gg.LoadFontFace(f.path, points)
	}
	return truetype.NewFace(f.embedded, &truetype.Options{Size: points}), nil
}

// Source names the font in use, for logs
func (f *Fonts) Source() string {
	f.once.Do(f.resolve)
	if f.path != "" {
		return f.path
	}
	return "embedded:goregular"
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if homeDir, err := os.UserHomeDir(); err == nil {
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}

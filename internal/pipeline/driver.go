package pipeline

// Package pipeline runs the fixed chart set: load each dataset, render it,
// and keep going when a single chart fails.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"job-charts/internal/features/charts"
	"job-charts/internal/infra/fs"
	logging "job-charts/internal/infra/log"
	"job-charts/internal/source"

	"go.uber.org/zap"
)

// Failure is one chart that could not be produced
type Failure struct {
	Name string
	Err  error
}

// Report summarises one run
type Report struct {
	Rendered []charts.Result
	Skipped  []string // empty datasets
	Failed   []Failure
	Pruned   []string
}

// Paths lists the images written in this run
func (r Report) Paths() []string {
	out := make([]string, 0, len(r.Rendered))
	for _, res := range r.Rendered {
		out = append(out, res.Path)
	}
	return out
}

// Driver renders Specs from Source into Renderer.Dir
type Driver struct {
	Source   source.Source
	Renderer *charts.Renderer
	Specs    []charts.Spec
	// Prune removes PNGs in the figures directory that no registered chart owns
	Prune bool
}

// Run processes every spec in order. It returns an error only when the source
// is unreachable (or ctx is cancelled); per-chart failures land in the Report.
func (d *Driver) Run(ctx context.Context) (Report, error) {
	var report Report
	start := time.Now()

	specs := d.Specs
	if specs == nil {
		specs = charts.Specs()
	}

	logging.LogInfo("Starting chart run",
		zap.Int("charts", len(specs)),
		zap.String("dir", d.Renderer.Dir))

	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		ds, err := d.Source.Load(ctx, spec.Name)
		if err != nil {
			if errors.Is(err, source.ErrSourceUnavailable) || errors.Is(err, context.Canceled) {
				logging.LogError("Data source unavailable, aborting run",
					zap.String("chart", spec.Name), zap.Error(err))
				return report, err
			}
			logging.LogError("Failed to load "+spec.Name, zap.Error(err))
			report.Failed = append(report.Failed, Failure{Name: spec.Name, Err: err})
			continue
		}

		if ds.Empty() {
			logging.LogNotice("No rows returned for "+spec.Name, zap.String("chart", spec.Name))
			report.Skipped = append(report.Skipped, spec.Name)
			continue
		}

		res, err := d.Renderer.Render(ds, spec)
		if err != nil {
			logging.LogError("Failed to render "+spec.Name, zap.Error(err))
			report.Failed = append(report.Failed, Failure{Name: spec.Name, Err: err})
			continue
		}
		report.Rendered = append(report.Rendered, res)
	}

	if d.Prune {
		removed, err := d.prune()
		if err != nil {
			logging.LogWarn("Failed to prune figures directory", zap.Error(err))
		}
		report.Pruned = removed
	}

	logging.LogInfo("Chart run finished",
		zap.Int("rendered", len(report.Rendered)),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("failed", len(report.Failed)),
		zap.Int("pruned", len(report.Pruned)),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()))
	return report, nil
}

// prune keeps the file of every registered chart, including charts not selected for this run
func (d *Driver) prune() ([]string, error) {
	keep := make(map[string]bool)
	for _, spec := range charts.Specs() {
		keep[spec.FileName()] = true
	}
	removed, err := fs.PruneExcept(d.Renderer.Dir, ".png", keep)
	if err != nil {
		return removed, fmt.Errorf("prune %s: %w", d.Renderer.Dir, err)
	}
	for _, path := range removed {
		logging.LogNotice("Removed stale chart "+path, zap.String("path", path))
	}
	return removed, nil
}

//go:build integration

package tests

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"job-charts/internal/features/charts"
	"job-charts/internal/infra/config"
	"job-charts/internal/pipeline"
	"job-charts/internal/source"
)

// findRepoRoot walks up from current working dir until it finds go.mod.
func findRepoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 10; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("repo root not found (go.mod)")
}

// loadConfig reads .env and config.yaml from the repo root, like the CLI does
func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	root, err := findRepoRoot()
	if err != nil {
		t.Fatalf("findRepoRoot failed: %v", err)
	}
	t.Chdir(root)

	cfg, err := config.LoadConfig(nil)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	return cfg
}

// TestIntegration_Postgres_RenderAll:
// - Connects with PG* / DATABASE_URL settings
// - Runs the four chart queries against job_postings_fact and friends
// - Renders every chart into a temp dir
func TestIntegration_Postgres_RenderAll(t *testing.T) {
	if os.Getenv("PGHOST") == "" && os.Getenv("DATABASE_URL") == "" {
		t.Skip("PGHOST / DATABASE_URL not set; cannot run Postgres integration test")
	}
	cfg := loadConfig(t)

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	t.Cleanup(cancel)

	q, err := source.Open(ctx, cfg.DB)
	if errors.Is(err, source.ErrSourceUnavailable) {
		t.Skipf("database unreachable: %v", err)
	}
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { q.Close() })

	for _, name := range source.Names {
		ds, err := q.Load(ctx, name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if ds.Len() > 10 {
			t.Errorf("%s: expected at most 10 rows, got %d", name, ds.Len())
		}
		spec, _ := charts.Lookup(name)
		if !ds.Empty() {
			if err := ds.Require(spec.Fields()...); err != nil {
				t.Errorf("%s: result does not fit the chart: %v", name, err)
			}
		}
		t.Logf("%s: %d rows", name, ds.Len())
	}

	driver := &pipeline.Driver{
		Source:   q,
		Renderer: charts.NewRenderer(t.TempDir(), nil),
	}
	report, err := driver.Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(report.Failed) > 0 {
		t.Errorf("charts failed: %+v", report.Failed)
	}
	t.Logf("rendered=%v skipped=%v", report.Paths(), report.Skipped)
}

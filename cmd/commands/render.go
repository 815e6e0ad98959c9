package commands

// Command to render the chart set into the figures directory.
// Exits non-zero only when config is invalid or the database is unreachable;
// a single broken chart is logged and the rest are still rendered.

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"job-charts/internal/features/charts"
	"job-charts/internal/infra/config"
	"job-charts/internal/infra/log"
	"job-charts/internal/pipeline"
	"job-charts/internal/source"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render charts to PNG files",
	Long: `Load each dataset from the configured source and write <figures-dir>/<chart>.png.
With --source file (default), a missing input file falls back to built-in sample data.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringSliceVar(&onlyCharts, "only", nil, "Render only these charts (comma separated, see 'job-charts charts')")
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	_, err = renderCharts(ctx, cfg)
	return err
}

// setup loads config and starts file logging
func setup(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := log.Init(cfg.App.LogsDir); err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	log.LogInfo("Config loaded",
		zap.String("source", cfg.App.Source),
		zap.String("dataDir", cfg.App.DataDir),
		zap.String("figuresDir", cfg.App.FiguresDir),
		zap.String("db", cfg.DB.Redacted()))
	return cfg, nil
}

func renderCharts(ctx context.Context, cfg *config.Config) (pipeline.Report, error) {
	specs, err := charts.Select(onlyCharts)
	if err != nil {
		return pipeline.Report{}, err
	}

	src, closeSource, err := source.FromConfig(ctx, cfg)
	if err != nil {
		log.LogError("Failed to open data source", zap.String("source", cfg.App.Source), zap.Error(err))
		return pipeline.Report{}, err
	}
	defer func() {
		if err := closeSource(); err != nil {
			log.LogWarn("Failed to close data source", zap.Error(err))
		}
	}()

	driver := &pipeline.Driver{
		Source:   src,
		Renderer: charts.NewRenderer(cfg.App.FiguresDir, nil),
		Specs:    specs,
		Prune:    cfg.App.Prune,
	}
	report, err := driver.Run(ctx)
	if err != nil {
		return report, err
	}

	if len(report.Failed) > 0 {
		log.LogNotice(fmt.Sprintf("%d of %d charts rendered, %d failed (see logs)",
			len(report.Rendered), len(specs), len(report.Failed)))
	}
	return report, nil
}

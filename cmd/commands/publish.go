package commands

// Command to render the charts and post each one to a Telegram chat

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"job-charts/internal/features/charts"
	"job-charts/internal/infra/log"
	"job-charts/internal/publish"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Render charts and send them to Telegram",
	Long: `Render the charts like 'render', then send every rendered PNG to TELEGRAM_CHAT_ID
as a photo captioned with the chart title. Requires TELEGRAM_BOT_TOKEN.`,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringSliceVar(&onlyCharts, "only", nil, "Publish only these charts (comma separated)")
}

func runPublish(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	if err := cfg.Telegram.Validate(); err != nil {
		return err
	}
	chatID, _ := strconv.ParseInt(cfg.Telegram.ChatID, 10, 64)

	bot, err := publish.NewBot(cfg.Telegram.BotToken)
	if err != nil {
		log.LogError("Failed to create Telegram bot", zap.Error(err))
		return err
	}

	report, err := renderCharts(ctx, cfg)
	if err != nil {
		return err
	}

	photos := make([]publish.Photo, 0, len(report.Rendered))
	for _, res := range report.Rendered {
		caption := res.Name
		if spec, ok := charts.Lookup(res.Name); ok {
			caption = spec.Title
		}
		photos = append(photos, publish.Photo{Name: res.Name, Path: res.Path, Caption: caption})
	}
	if len(photos) == 0 {
		log.LogNotice("Nothing to publish")
		return nil
	}

	sent, err := publish.NewPublisher(bot, chatID).Publish(ctx, photos)
	if err != nil {
		return err
	}
	if len(sent.Failed) > 0 {
		return fmt.Errorf("%d of %d charts failed to publish", len(sent.Failed), len(photos))
	}
	return nil
}

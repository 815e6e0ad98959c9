package publish

// Package publish sends rendered charts to a Telegram chat as photos.

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"job-charts/internal/infra/fs"
	logging "job-charts/internal/infra/log"
	"job-charts/internal/infra/retry"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Sender is the part of *tgbotapi.BotAPI the publisher needs
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Photo is one chart image and its caption
type Photo struct {
	Name    string
	Path    string
	Caption string
}

// Report lists what was sent and what failed
type Report struct {
	Sent   []string
	Failed map[string]error
}

type Publisher struct {
	sender  Sender
	chatID  int64
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	retry   retry.Options
	// fileWait bounds how long a chart file may take to appear
	fileWait time.Duration
}

// NewBot connects to the Bot API with token
func NewBot(token string) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	logging.LogInfo("Telegram bot authorized", zap.String("username", bot.Self.UserName))
	return bot, nil
}

// NewPublisher sends to chatID through sender.
// Telegram allows about one message per second per chat.
func NewPublisher(sender Sender, chatID int64) *Publisher {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "TelegramPublish",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.LogWarn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Publisher{
		sender:  sender,
		chatID:  chatID,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		breaker: breaker,
		retry: retry.Options{
			MaxRetries: 3,
			BaseDelay:  time.Second,
			MaxDelay:   30 * time.Second,
		},
		fileWait: 2 * time.Second,
	}
}

// Publish sends every photo in order. A failed photo is recorded and the rest
// are still sent; only ctx cancellation stops the loop early.
func (p *Publisher) Publish(ctx context.Context, photos []Photo) (Report, error) {
	report := Report{Failed: make(map[string]error)}

	for _, ph := range photos {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		start := time.Now()
		if err := p.send(ctx, ph); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return report, err
			}
			logging.LogError("Failed to publish "+ph.Name, zap.String("path", ph.Path), zap.Error(err))
			report.Failed[ph.Name] = err
			continue
		}

		logging.LogSuccess("Published "+ph.Name,
			zap.String("path", ph.Path),
			zap.Int64("chatID", p.chatID),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()))
		report.Sent = append(report.Sent, ph.Name)
	}
	return report, nil
}

func (p *Publisher) send(ctx context.Context, ph Photo) error {
	if err := fs.WaitForFile(ctx, ph.Path, p.fileWait); err != nil {
		return err
	}

	opts := p.retry
	opts.OnRetry = func(attempt int, delay time.Duration, err error) {
		logging.LogWarn("Retrying telegram send",
			zap.String("chart", ph.Name),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(err))
	}

	return retry.Do(ctx, opts, func() error {
		if p.limiter != nil {
			if err := p.limiter.Wait(ctx); err != nil {
				return fmt.Errorf("rate limiter wait failed: %w", err)
			}
		}

		photo := tgbotapi.NewPhoto(p.chatID, tgbotapi.FilePath(ph.Path))
		photo.Caption = ph.Caption

		_, err := p.breaker.Execute(func() (interface{}, error) {
			msg, err := p.sender.Send(photo)
			return msg, err
		})
		return classify(err)
	})
}

// classify turns Bot API and network failures into errors the retry loop understands
func classify(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) {
		var value tgbotapi.Error
		if errors.As(err, &value) {
			apiErr = &value
		}
	}
	if apiErr != nil {
		return &retry.StatusError{
			Code:       apiErr.Code,
			Message:    apiErr.Message,
			RetryAfter: time.Duration(apiErr.RetryAfter) * time.Second,
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return retry.Temporary(err)
	}
	return err
}

package cli

import (
	"context"
	"io"
	"time"

	"github.com/pfrederiksen/powerball-results/internal/config"
	"github.com/pfrederiksen/powerball-results/internal/draw"
	"github.com/pfrederiksen/powerball-results/internal/logger"
	"github.com/pfrederiksen/powerball-results/internal/notifier"
	"github.com/pfrederiksen/powerball-results/internal/telegram"
)

// buildNotifier assembles the configured channels. Dry run replaces every real
// channel with a printer. A channel that cannot be set up is logged and skipped.
func buildNotifier(cfg *config.Config, dryRunOut io.Writer, log *logger.Logger) *notifier.Multi {
	if cfg.Notify.DryRun {
		return notifier.NewMulti(notifier.Channel{Name: "dry-run", Notifier: notifier.NewDryRunNotifier(dryRunOut)})
	}

	var channels []notifier.Channel

	if cfg.Notify.Twitter {
		tw, err := notifier.NewTwitterNotifier(notifier.TwitterCredentials{
			APIKey:       cfg.Twitter.APIKey,
			APISecret:    cfg.Twitter.APISecret,
			AccessToken:  cfg.Twitter.AccessToken,
			AccessSecret: cfg.Twitter.AccessSecret,
		})
		if err != nil {
			log.Error("Twitter notifications disabled", nil, err)
		} else {
			channels = append(channels, notifier.Channel{Name: "twitter", Notifier: tw})
		}
	}

	if cfg.Notify.Telegram {
		tg, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID,
			telegram.WithBaseURL(cfg.Telegram.APIURL))
		if err != nil {
			log.Error("Telegram notifications disabled", nil, err)
		} else {
			channels = append(channels, notifier.Channel{Name: "telegram", Notifier: tg})
		}
	}

	return notifier.NewMulti(channels...)
}

// announce tells every configured channel about a newly recorded draw.
// Notification failures are logged and never fail the run.
func announce(ctx context.Context, cfg *config.Config, snap *draw.Snapshot, dryRunOut io.Writer, log *logger.Logger, metrics *logger.Metrics) {
	multi := buildNotifier(cfg, dryRunOut, log)
	if multi.Len() == 0 {
		return
	}

	start := time.Now()
	err := multi.Notify(ctx, snap)
	metrics.RecordTiming("notify", time.Since(start))

	fields := logger.Fields{"channels": multi.Names(), "draw_date": snap.Draw.Date}
	if err != nil {
		metrics.IncrCounter("notify.failures")
		log.Error("Notification failed", fields, err)
		return
	}
	metrics.IncrCounter("notify.sent")
	log.Info("Notifications sent", fields)
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pfrederiksen/powerball-results/internal/calendar"
	"github.com/pfrederiksen/powerball-results/internal/config"
	"github.com/pfrederiksen/powerball-results/internal/draw"
	"github.com/pfrederiksen/powerball-results/internal/logger"
	"github.com/pfrederiksen/powerball-results/internal/scraper"
	"github.com/pfrederiksen/powerball-results/internal/storage"
	"github.com/spf13/cobra"
)

// runScrape is the main command logic
func runScrape(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(flagFormat)
	if err != nil {
		return err
	}

	cfg, err := config.Load(flagConfig, cmd.Flags())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, closeLog, err := openLogger(cfg, flagVerbose, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	runID := uuid.NewString()
	log = log.With(logger.Fields{"run_id": runID})
	logger.SetDefault(log)

	if cfg.ConfigFile != "" {
		log.Debug("Loaded config file", logger.Fields{"path": cfg.ConfigFile})
	}

	store, err := storage.New(cfg.StorageFiles())
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	metrics := logger.NewMetrics()
	defer func() {
		log.Debug("Run metrics", logger.Fields{"metrics": metrics.GetSnapshot()})
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	outcome := scrape(ctx, cfg, log, metrics)

	summary := &Summary{
		RunID:       runID,
		Success:     outcome.Success,
		Attempts:    outcome.Attempt,
		LatestFile:  store.LatestPath(),
		HistoryFile: store.HistoryPath(),
	}
	if flagVerbose {
		summary.Diagnostics = outcome.Diagnostics
	}

	if !outcome.Success {
		summary.Error = failureDetail(outcome)
		log.Error("Scrape failed", logger.Fields{"attempts": outcome.Attempt}, errors.New(summary.Error))
		if err := WriteSummary(cmd.OutOrStdout(), summary, format); err != nil {
			return &exitError{code: ExitError, err: fmt.Errorf("writing output: %w", err)}
		}
		return &exitError{code: ExitError}
	}

	snap := outcome.Snapshot()
	summary.setSnapshot(snap)

	saved, err := store.Save(outcome)
	if err != nil {
		log.Error("Saving results failed", logger.Fields{"latest_file": store.LatestPath(), "history_file": store.HistoryPath()}, err)
		summary.Success = false
		summary.Error = fmt.Sprintf("saving results: %v", err)
		if werr := WriteSummary(cmd.OutOrStdout(), summary, format); werr != nil {
			log.Error("Writing output failed", nil, werr)
		}
		return &exitError{code: ExitError}
	}
	summary.HistoryCount = saved.HistoryCount
	summary.Added = saved.Added
	metrics.SetGauge("history.records", float64(saved.HistoryCount))

	if saved.Added {
		log.Info("Draw added to history", logger.Fields{"draw_date": snap.Draw.Date, "total": saved.HistoryCount})
	} else {
		log.Info("Draw already in history", logger.Fields{"draw_date": snap.Draw.Date, "total": saved.HistoryCount})
	}

	if cfg.ICSFile != "" {
		writeCalendar(cfg.ICSFile, snap.Next, log)
	}

	if saved.Added {
		announce(ctx, cfg, &snap, cmd.ErrOrStderr(), log, metrics)
	}

	if err := WriteSummary(cmd.OutOrStdout(), summary, format); err != nil {
		return &exitError{code: ExitError, err: fmt.Errorf("writing output: %w", err)}
	}

	if saved.Added {
		return &exitError{code: ExitNewDraw}
	}
	return nil
}

// scrape runs the retry loop against the configured page
func scrape(ctx context.Context, cfg *config.Config, log *logger.Logger, metrics *logger.Metrics) *draw.Outcome {
	extractor := scraper.NewExtractor(cfg.Selectors,
		scraper.WithStrictWinnerRegion(cfg.Extraction.StrictWinnerRegion))
	sc := scraper.New(
		scraper.WithURL(cfg.URL),
		scraper.WithUserAgent(cfg.UserAgent),
		scraper.WithTimeout(cfg.Timeout),
		scraper.WithExtractor(extractor),
	)

	retrier := scraper.NewRetrier(cfg.Retry.MaxAttempts, cfg.Retry.Delay,
		scraper.WithObserver(func(o *draw.Outcome) {
			logAttempt(log, o, cfg.Retry.MaxAttempts, cfg.Retry.Delay)
		}))

	log.Info("Starting scrape", logger.Fields{"url": sc.URL(), "max_attempts": retrier.MaxAttempts()})

	return retrier.Run(ctx, func(ctx context.Context, attempt int) *draw.Outcome {
		start := time.Now()
		o := sc.Scrape(ctx, attempt)
		metrics.RecordTiming("scrape.attempt", time.Since(start))
		metrics.IncrCounter("scrape.attempts")
		if !o.Success {
			metrics.IncrCounter("scrape.failures")
		}
		return o
	})
}

// logAttempt forwards an attempt's diagnostics to the log
func logAttempt(log *logger.Logger, o *draw.Outcome, maxAttempts int, delay time.Duration) {
	for _, d := range o.Diagnostics {
		log.Log(logLevel(d.Level), d.Message, logger.Fields{"field": d.Field, "attempt": o.Attempt})
	}

	fields := logger.Fields{"attempt": o.Attempt, "max_attempts": maxAttempts}
	if o.Success {
		fields["numbers"] = o.Draw.Numbers
		fields["special"] = o.Draw.Special
		log.Info("Complete results extracted", fields)
		return
	}

	fields["error"] = failureDetail(o)
	log.Warn("Attempt failed", fields)
	if o.Attempt < maxAttempts {
		log.Info("Waiting before next attempt", logger.Fields{"delay": delay.String()})
	}
}

func logLevel(l draw.Level) logger.Level {
	switch l {
	case draw.LevelError:
		return logger.LevelError
	case draw.LevelWarn:
		return logger.LevelWarn
	default:
		return logger.LevelInfo
	}
}

// failureDetail describes why an outcome is not usable
func failureDetail(o *draw.Outcome) string {
	if o.Err != "" {
		return o.Err
	}
	return fmt.Sprintf("incomplete results: %d/%d primary numbers, special number found: %v, date: %q",
		len(o.Draw.Numbers), draw.NumbersPerDraw, o.Draw.Special != nil, o.Draw.Date)
}

// openLogger builds the run logger, teeing to the log file when one is configured
func openLogger(cfg *config.Config, verbose bool, stderr io.Writer) (*logger.Logger, func(), error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		level = logger.LevelDebug
	}

	if cfg.LogFile == "" {
		return logger.New(level, stderr), func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return logger.New(level, io.MultiWriter(stderr, f)), func() { f.Close() }, nil
}

// writeCalendar exports the next drawing. Failures are logged and never fail the run.
func writeCalendar(path string, next *draw.NextDraw, log *logger.Logger) {
	ics, err := calendar.GenerateICS(next, time.Now())
	if err != nil {
		log.Warn("Skipping calendar export", logger.Fields{"path": path, "reason": err.Error()})
		return
	}
	if err := os.WriteFile(path, []byte(ics), 0644); err != nil {
		log.Error("Writing calendar file failed", logger.Fields{"path": path}, err)
		return
	}
	log.Info("Wrote calendar entry", logger.Fields{"path": path, "draw_date": next.Date})
}

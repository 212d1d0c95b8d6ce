package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pfrederiksen/powerball-results/internal/scraper"
	"github.com/pfrederiksen/powerball-results/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitNewDraw = 2
)

var (
	flagConfig  string
	flagFormat  string
	flagVerbose bool
)

// exitError carries a process exit code out of a command. err may be nil when the
// code is not a failure.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// ExitCode maps the error returned by a command to a process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitError
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "powerball-results",
		Short: "Scrape the latest Powerball results",
		Long: `Fetch the latest Powerball drawing from powerball.com, keep a local
history of drawings and print a summary.

Exit status is 0 on success, 1 on failure and 2 when a drawing was added to
the history.`,
		RunE:          runScrape,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default powerball.yaml in . or ./config)")
	pf.StringVar(&flagFormat, "format", "text", "Output format: text, json or yaml")
	pf.BoolVar(&flagVerbose, "verbose", false, "Enable debug logging and show diagnostics")
	pf.String("data-dir", ".", "Directory for result files")
	pf.String("latest-file", storage.DefaultLatestFile, "Latest results file name")
	pf.String("history-file", storage.DefaultHistoryFile, "History file name")
	pf.String("log-file", "powerball_scraper.log", "Log file, empty to log to stderr only")
	pf.String("log-level", "info", "Log level: debug, info, warn or error")

	f := cmd.Flags()
	f.String("url", scraper.ResultsURL, "Results page URL")
	f.String("user-agent", scraper.UserAgent, "User-Agent header")
	f.Duration("timeout", scraper.Timeout, "HTTP timeout")
	f.Int("max-attempts", scraper.DefaultMaxAttempts, "Maximum scrape attempts")
	f.Duration("retry-delay", scraper.DefaultRetryDelay, "Delay between attempts")
	f.Bool("strict-winner-region", false, "Only accept an explicitly marked jackpot winner region")
	f.Bool("dry-run", false, "Print the notification for a new drawing instead of posting it")
	f.Bool("notify-twitter", false, "Tweet newly recorded drawings")
	f.Bool("notify-telegram", false, "Send newly recorded drawings to Telegram")
	f.String("ics-file", "", "Write an iCalendar entry for the next drawing to this file")

	cmd.AddCommand(newHistoryCmd())

	return cmd
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()

	code := ExitCode(err)
	var ee *exitError
	if err != nil && (!errors.As(err, &ee) || ee.err != nil) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(code)
}

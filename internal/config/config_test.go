package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/powerball-results/internal/scraper"
	"github.com/spf13/pflag"
)

// isolate runs the test from an empty directory so no stray config or .env is read
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("url", "", "")
	fs.Int("max-attempts", 0, "")
	fs.Duration("retry-delay", 0, "")
	fs.String("data-dir", "", "")
	fs.Bool("strict-winner-region", false, "")
	fs.Bool("dry-run", false, "")
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.URL != scraper.ResultsURL {
		t.Errorf("URL = %q, want %q", cfg.URL, scraper.ResultsURL)
	}
	if cfg.UserAgent != scraper.UserAgent {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout)
	}
	if cfg.Retry.MaxAttempts != 3 || cfg.Retry.Delay != 5*time.Second {
		t.Errorf("Retry = %+v, want 3 attempts 5s apart", cfg.Retry)
	}
	if cfg.LatestFile != "resultados_actuales.json" || cfg.HistoryFile != "historico_resultados.json" {
		t.Errorf("files = %q, %q", cfg.LatestFile, cfg.HistoryFile)
	}
	if cfg.LogFile != DefaultLogFile || cfg.LogLevel != "info" {
		t.Errorf("logging = %q, %q", cfg.LogFile, cfg.LogLevel)
	}
	if cfg.Selectors != scraper.DefaultSelectors() {
		t.Errorf("Selectors = %+v, want defaults", cfg.Selectors)
	}
	if cfg.ConfigFile != "" {
		t.Errorf("ConfigFile = %q, want none", cfg.ConfigFile)
	}
	if cfg.Notify.DryRun || cfg.Notify.Twitter || cfg.Notify.Telegram {
		t.Errorf("Notify = %+v, want all disabled", cfg.Notify)
	}
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "powerball.yaml"), `
url: https://file.example.com/
data_dir: /var/lib/powerball
retry:
  max_attempts: 4
  delay: 2s
selectors:
  multiplier: span.pp-value
extraction:
  strict_winner_region: true
`)
	t.Setenv("POWERBALL_RETRY_MAX_ATTEMPTS", "6")
	t.Setenv("POWERBALL_SELECTORS_JACKPOT", "strong.jackpot")

	cfg, err := Load("", testFlags(t, "--url=https://flag.example.com/"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ConfigFile == "" {
		t.Error("ConfigFile is empty, want powerball.yaml")
	}
	if cfg.URL != "https://flag.example.com/" {
		t.Errorf("URL = %q, flag should win", cfg.URL)
	}
	if cfg.Retry.MaxAttempts != 6 {
		t.Errorf("MaxAttempts = %d, env should beat file", cfg.Retry.MaxAttempts)
	}
	if cfg.Retry.Delay != 2*time.Second {
		t.Errorf("Delay = %v, want file value 2s", cfg.Retry.Delay)
	}
	if cfg.DataDir != "/var/lib/powerball" {
		t.Errorf("DataDir = %q, unset flag must not override file", cfg.DataDir)
	}
	if cfg.Selectors.Multiplier != "span.pp-value" {
		t.Errorf("Selectors.Multiplier = %q", cfg.Selectors.Multiplier)
	}
	if cfg.Selectors.Jackpot != "strong.jackpot" {
		t.Errorf("Selectors.Jackpot = %q, want env override", cfg.Selectors.Jackpot)
	}
	if cfg.Selectors.Ball != scraper.DefaultSelectors().Ball {
		t.Errorf("Selectors.Ball = %q, want default", cfg.Selectors.Ball)
	}
	if !cfg.Extraction.StrictWinnerRegion {
		t.Error("StrictWinnerRegion = false, want true from file")
	}
}

func TestLoad_ConfigDirectory(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config", "powerball.yaml"), "log_level: debug\n")

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "timeout: 30s\nics_file: next.ics\n")

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Timeout != 30*time.Second || cfg.ICSFile != "next.ics" {
		t.Errorf("cfg = timeout %v ics %q", cfg.Timeout, cfg.ICSFile)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml"), nil); err == nil {
		t.Error("Load() expected error for missing explicit file")
	}
}

func TestLoad_Flags(t *testing.T) {
	isolate(t)

	cfg, err := Load("", testFlags(t, "--max-attempts=1", "--retry-delay=0s", "--dry-run", "--strict-winner-region"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Retry.MaxAttempts != 1 || cfg.Retry.Delay != 0 {
		t.Errorf("Retry = %+v", cfg.Retry)
	}
	if !cfg.Notify.DryRun || !cfg.Extraction.StrictWinnerRegion {
		t.Errorf("flags not applied: notify %+v extraction %+v", cfg.Notify, cfg.Extraction)
	}
}

func TestLoad_CredentialsFromEnvironment(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".env"), "TELEGRAM_BOT_TOKEN=from-dotenv\nTWITTER_API_KEY=key-from-dotenv\n")
	t.Setenv("TELEGRAM_CHAT_ID", "12345")
	t.Setenv("POWERBALL_TWITTER_API_SECRET", "prefixed-secret")
	t.Setenv("POWERBALL_NOTIFY_TELEGRAM", "true")
	// godotenv sets variables process-wide; make sure they are cleared afterwards
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	os.Unsetenv("TELEGRAM_BOT_TOKEN")
	t.Setenv("TWITTER_API_KEY", "")
	os.Unsetenv("TWITTER_API_KEY")

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Telegram.BotToken != "from-dotenv" || cfg.Telegram.ChatID != "12345" {
		t.Errorf("Telegram = %+v", cfg.Telegram)
	}
	if cfg.Twitter.APIKey != "key-from-dotenv" || cfg.Twitter.APISecret != "prefixed-secret" {
		t.Errorf("Twitter = %+v", cfg.Twitter)
	}
	if !cfg.Notify.Telegram {
		t.Error("Notify.Telegram = false, want true")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"zero attempts", map[string]string{"POWERBALL_RETRY_MAX_ATTEMPTS": "0"}, "max_attempts"},
		{"negative delay", map[string]string{"POWERBALL_RETRY_DELAY": "-1s"}, "retry.delay"},
		{"zero timeout", map[string]string{"POWERBALL_TIMEOUT": "0s"}, "timeout"},
		{"telegram without token", map[string]string{"POWERBALL_NOTIFY_TELEGRAM": "true"}, "telegram.bot_token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load("", nil)
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		URL:     scraper.ResultsURL,
		Timeout: time.Second,
		Retry:   RetryConfig{MaxAttempts: 1},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	invalid := valid
	invalid.URL = "  "
	invalid.Retry.MaxAttempts = 0
	err := invalid.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	if !strings.Contains(err.Error(), "url") || !strings.Contains(err.Error(), "max_attempts") {
		t.Errorf("Validate() error = %v, want every problem listed", err)
	}
}

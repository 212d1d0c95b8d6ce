package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pfrederiksen/powerball-results/internal/scraper"
	"github.com/pfrederiksen/powerball-results/internal/storage"
	"github.com/pfrederiksen/powerball-results/internal/telegram"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "POWERBALL"
	ConfigName     = "powerball"
	DefaultLogFile = "powerball_scraper.log"
)

// Config holds all configuration for a run
type Config struct {
	URL       string        `mapstructure:"url" yaml:"url"`
	UserAgent string        `mapstructure:"user_agent" yaml:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`

	Retry RetryConfig `mapstructure:"retry" yaml:"retry"`

	DataDir     string `mapstructure:"data_dir" yaml:"data_dir"`
	LatestFile  string `mapstructure:"latest_file" yaml:"latest_file"`
	HistoryFile string `mapstructure:"history_file" yaml:"history_file"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	LogLevel    string `mapstructure:"log_level" yaml:"log_level"`

	Selectors  scraper.Selectors `mapstructure:"selectors" yaml:"selectors"`
	Extraction ExtractionConfig  `mapstructure:"extraction" yaml:"extraction"`

	Notify   NotifyConfig   `mapstructure:"notify" yaml:"notify"`
	Telegram TelegramConfig `mapstructure:"telegram" yaml:"telegram"`
	Twitter  TwitterConfig  `mapstructure:"twitter" yaml:"-"`

	ICSFile string `mapstructure:"ics_file" yaml:"ics_file"`

	// ConfigFile is the YAML file that was read, empty when none was found
	ConfigFile string `mapstructure:"-" yaml:"-"`
}

// RetryConfig holds the attempt budget and the delay between attempts
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts" yaml:"max_attempts"`
	Delay       time.Duration `mapstructure:"delay" yaml:"delay"`
}

// ExtractionConfig holds field locator switches
type ExtractionConfig struct {
	StrictWinnerRegion bool `mapstructure:"strict_winner_region" yaml:"strict_winner_region"`
}

// NotifyConfig selects the channels told about a newly recorded draw
type NotifyConfig struct {
	DryRun   bool `mapstructure:"dry_run" yaml:"dry_run"`
	Twitter  bool `mapstructure:"twitter" yaml:"twitter"`
	Telegram bool `mapstructure:"telegram" yaml:"telegram"`
}

// TelegramConfig holds Telegram Bot API credentials
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token" yaml:"-"`
	ChatID   string `mapstructure:"chat_id" yaml:"chat_id"`
	APIURL   string `mapstructure:"api_url" yaml:"api_url"`
}

// TwitterConfig holds OAuth1 credentials for posting tweets
type TwitterConfig struct {
	APIKey       string `mapstructure:"api_key"`
	APISecret    string `mapstructure:"api_secret"`
	AccessToken  string `mapstructure:"access_token"`
	AccessSecret string `mapstructure:"access_secret"`
}

// flagKeys maps command-line flag names to configuration keys
var flagKeys = map[string]string{
	"url":                  "url",
	"user-agent":           "user_agent",
	"timeout":              "timeout",
	"max-attempts":         "retry.max_attempts",
	"retry-delay":          "retry.delay",
	"data-dir":             "data_dir",
	"latest-file":          "latest_file",
	"history-file":         "history_file",
	"log-file":             "log_file",
	"log-level":            "log_level",
	"strict-winner-region": "extraction.strict_winner_region",
	"dry-run":              "notify.dry_run",
	"notify-twitter":       "notify.twitter",
	"notify-telegram":      "notify.telegram",
	"ics-file":             "ics_file",
}

// envAliases are conventional variable names accepted next to the prefixed ones
var envAliases = map[string][]string{
	"telegram.bot_token":    {"TELEGRAM_BOT_TOKEN"},
	"telegram.chat_id":      {"TELEGRAM_CHAT_ID"},
	"twitter.api_key":       {"TWITTER_API_KEY"},
	"twitter.api_secret":    {"TWITTER_API_SECRET"},
	"twitter.access_token":  {"TWITTER_ACCESS_TOKEN"},
	"twitter.access_secret": {"TWITTER_ACCESS_SECRET"},
}

// Load builds the configuration. path names an explicit YAML file; when empty,
// powerball.yaml is looked up in . and ./config and may be absent. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envAliases {
		bind := append([]string{key, envName(key)}, names...)
		if err := v.BindEnv(bind...); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			// A missing config file is fine; defaults and the environment still apply
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("url", scraper.ResultsURL)
	v.SetDefault("user_agent", scraper.UserAgent)
	v.SetDefault("timeout", scraper.Timeout)
	v.SetDefault("retry.max_attempts", scraper.DefaultMaxAttempts)
	v.SetDefault("retry.delay", scraper.DefaultRetryDelay)
	v.SetDefault("data_dir", ".")
	v.SetDefault("latest_file", storage.DefaultLatestFile)
	v.SetDefault("history_file", storage.DefaultHistoryFile)
	v.SetDefault("log_file", DefaultLogFile)
	v.SetDefault("log_level", "info")
	v.SetDefault("extraction.strict_winner_region", false)
	v.SetDefault("notify.dry_run", false)
	v.SetDefault("notify.twitter", false)
	v.SetDefault("notify.telegram", false)
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
	v.SetDefault("telegram.api_url", telegram.DefaultAPIURL)
	v.SetDefault("twitter.api_key", "")
	v.SetDefault("twitter.api_secret", "")
	v.SetDefault("twitter.access_token", "")
	v.SetDefault("twitter.access_secret", "")
	v.SetDefault("ics_file", "")

	// Selector defaults make every selectors.* key visible to AutomaticEnv
	sel := scraper.DefaultSelectors()
	for key, value := range map[string]string{
		"winners_region":   sel.WinnersRegion,
		"draw_date":        sel.DrawDate,
		"draw_date_alt":    sel.DrawDateAlt,
		"ball":             sel.Ball,
		"primary_marker":   sel.PrimaryMarker,
		"special_marker":   sel.SpecialMarker,
		"multiplier":       sel.Multiplier,
		"winner_region":    sel.WinnerRegion,
		"next_draw_region": sel.NextDrawRegion,
		"next_draw_date":   sel.NextDrawDate,
		"jackpot":          sel.Jackpot,
		"cash_value":       sel.CashValue,
	} {
		v.SetDefault("selectors."+key, value)
	}
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// loadDotEnv loads credentials from path without overriding variables already set
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Validate checks the values a run cannot work without
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.URL) == "" {
		errs = append(errs, errors.New("url must not be empty"))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	if c.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("retry.max_attempts must be at least 1, got %d", c.Retry.MaxAttempts))
	}
	if c.Retry.Delay < 0 {
		errs = append(errs, fmt.Errorf("retry.delay must not be negative, got %s", c.Retry.Delay))
	}
	if c.Notify.Telegram && (c.Telegram.BotToken == "" || c.Telegram.ChatID == "") {
		errs = append(errs, errors.New("notify.telegram requires telegram.bot_token and telegram.chat_id"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// StorageFiles returns the arguments for storage.New
func (c *Config) StorageFiles() (dir, latest, history string) {
	return c.DataDir, c.LatestFile, c.HistoryFile
}

// Package config loads scraper settings from defaults, an optional YAML file,
// the environment and command-line flags, in increasing order of precedence.
//
// Environment variables use the POWERBALL_ prefix with dots replaced by
// underscores (POWERBALL_RETRY_MAX_ATTEMPTS). Credentials may also come from a
// .env file in the working directory and from the conventional TELEGRAM_* and
// TWITTER_* variables.
package config

// Package cli implements the powerball-results command line.
//
// The root command runs one scrape: it fetches the results page with retries,
// persists the latest snapshot and history, announces newly recorded draws and
// prints a summary (text, JSON or YAML). The history subcommand prints the
// stored draws.
package cli

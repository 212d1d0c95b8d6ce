// Package notifier announces newly recorded draws on external channels.
//
// A Notifier receives the snapshot of a draw that was just added to the history.
// Implementations exist for a dry-run printer and Twitter; Multi fans one
// announcement out to several channels at once.
package notifier

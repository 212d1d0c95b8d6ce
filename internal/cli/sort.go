package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/powerball-results/internal/draw"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

func parseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case SortNewest, SortOldest:
		return o, nil
	default:
		return "", fmt.Errorf("invalid sort order: %s (must be 'newest' or 'oldest')", s)
	}
}

// sortRecords sorts history records by draw date in the given order.
// Records for the same date keep capture order.
func sortRecords(records []draw.Record, order SortOrder) {
	sort.SliceStable(records, func(i, j int) bool {
		if order == SortNewest {
			return compareRecords(records[j], records[i])
		}
		return compareRecords(records[i], records[j])
	})
}

// compareRecords reports whether a was drawn before b.
// Canonical dates compare lexically; records without a date sort first.
func compareRecords(a, b draw.Record) bool {
	if a.Draw.Date != b.Draw.Date {
		return a.Draw.Date < b.Draw.Date
	}
	return a.CapturedAt.Before(b.CapturedAt)
}

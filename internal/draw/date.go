package draw

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	_ "time/tzdata" // embedded zone data for America/New_York
)

// DateLayout is the canonical calendar-date form used in every persisted document
const DateLayout = "2006-01-02"

// ErrUnparseableDate is returned when no known date form matches the input
var ErrUnparseableDate = errors.New("unparseable date")

var (
	// "Wed, " or "Miércoles, " in front of the date
	weekdayPrefix = regexp.MustCompile(`^\p{L}+\.?,\s*`)

	// last resort: "<word> <digits>, <year>" anywhere in the text
	looseDatePattern = regexp.MustCompile(`(\p{L}+)\.?\s+(\d{1,2}),\s*(\d{4})`)
)

// dateLayouts are tried in order; the first one that parses wins
var dateLayouts = []string{
	"January 2, 2006",
	"1/2/2006",
	"2-1-2006",
}

var monthAbbreviations = map[string]string{
	"jan":  "January",
	"feb":  "February",
	"mar":  "March",
	"apr":  "April",
	"may":  "May",
	"jun":  "June",
	"jul":  "July",
	"aug":  "August",
	"sep":  "September",
	"sept": "September",
	"oct":  "October",
	"nov":  "November",
	"dec":  "December",
}

// NormalizeDate converts loosely formatted date text into YYYY-MM-DD.
// Supported forms: "Wed, Feb 2, 2026", "February 2, 2026", "02/02/2026", "2-2-2026",
// and any text containing "<Month> <day>, <year>".
func NormalizeDate(text string) (string, error) {
	clean := strings.Join(strings.Fields(text), " ")
	if clean == "" {
		return "", fmt.Errorf("%w: empty text", ErrUnparseableDate)
	}

	clean = weekdayPrefix.ReplaceAllString(clean, "")
	clean = expandMonth(clean)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, clean); err == nil {
			return t.Format(DateLayout), nil
		}
	}

	if m := looseDatePattern.FindStringSubmatch(clean); m != nil {
		candidate := fmt.Sprintf("%s %s, %s", expandMonth(m[1]), m[2], m[3])
		if t, err := time.Parse(dateLayouts[0], candidate); err == nil {
			return t.Format(DateLayout), nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnparseableDate, text)
}

// expandMonth replaces a leading month abbreviation with the full month name.
// Only the first token is inspected so digits elsewhere are never rewritten.
func expandMonth(s string) string {
	token, rest, _ := strings.Cut(s, " ")
	key := strings.ToLower(strings.TrimSuffix(token, "."))
	full, ok := monthAbbreviations[key]
	if !ok {
		return s
	}
	if rest == "" {
		return full
	}
	return full + " " + rest
}

var (
	spanishWeekdays = [...]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}
	spanishMonths   = [...]string{"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"}
)

var eastern = loadEastern()

func loadEastern() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.FixedZone("ET", -5*60*60)
	}
	return loc
}

// FormatUpdateTime renders t as the localized update stamp stored with every result,
// e.g. "Sábado, 1 de Febrero de 2026 - 11:15 PM ET".
func FormatUpdateTime(t time.Time) string {
	et := t.In(eastern)
	return fmt.Sprintf("%s, %d de %s de %d - %s ET",
		spanishWeekdays[et.Weekday()], et.Day(), spanishMonths[et.Month()], et.Year(), et.Format("03:04 PM"))
}

// Eastern returns the time zone drawings are scheduled in
func Eastern() *time.Location {
	return eastern
}

package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/powerball-results/internal/draw"
)

const (
	drawHour     = 22
	drawMinute   = 59
	drawDuration = 30 * time.Minute
	resultsURL   = "https://www.powerball.com/"
)

// ErrNoDrawDate is returned when the next drawing has no known date
var ErrNoDrawDate = errors.New("next drawing date unknown")

// GenerateICS generates an iCalendar (.ics) file for the next drawing, held at
// 10:59 PM Eastern on the drawing date. now stamps the entry.
func GenerateICS(next *draw.NextDraw, now time.Time) (string, error) {
	if next == nil || next.Date == "" {
		return "", ErrNoDrawDate
	}
	day, err := time.ParseInLocation(draw.DateLayout, next.Date, draw.Eastern())
	if err != nil {
		return "", fmt.Errorf("parsing next drawing date: %w", err)
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), drawHour, drawMinute, 0, 0, draw.Eastern())
	end := start.Add(drawDuration)

	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//Powerball Results//powerball-results//ES\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString("BEGIN:VEVENT\r\n")

	// One UID per drawing day so re-exports update the same entry
	ics.WriteString(fmt.Sprintf("UID:draw-%s@powerball-results\r\n", next.Date))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(now)))
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(start)))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(end)))

	summary := "Sorteo Powerball"
	if next.Estimated != nil {
		summary = fmt.Sprintf("Sorteo Powerball - %s", draw.FormatAmount(*next.Estimated))
	}
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(describe(next))))
	ics.WriteString(fmt.Sprintf("URL:%s\r\n", resultsURL))
	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:TRANSPARENT\r\n")

	ics.WriteString("END:VEVENT\r\n")
	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String(), nil
}

func describe(next *draw.NextDraw) string {
	lines := []string{"Próximo sorteo: " + next.Date}
	if next.Estimated != nil {
		lines = append(lines, "Premio estimado: "+draw.FormatAmount(*next.Estimated))
	}
	if next.Cash != nil {
		lines = append(lines, "Premio en efectivo: "+draw.FormatAmount(*next.Cash))
	}
	return strings.Join(lines, "\n")
}

// formatICSTime formats a time.Time as an iCalendar UTC datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar format (RFC 5545)
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

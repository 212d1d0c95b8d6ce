package draw

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNoAmount is returned when currency text holds no recognizable amount
var ErrNoAmount = errors.New("no amount found")

var (
	billionsPattern = regexp.MustCompile(`(?i)\$?\s*(\d[\d,]*(?:\.\d+)?)\s*(?:billion|mil\s+millones)`)
	millionsPattern = regexp.MustCompile(`(?i)\$?\s*(\d[\d,]*(?:\.\d+)?)\s*(?:millones|million)`)
	digitsPattern   = regexp.MustCompile(`\d+`)

	currencyStripper = strings.NewReplacer("$", "", ",", "")

	oneMillion = decimal.NewFromInt(1_000_000)
	oneBillion = decimal.NewFromInt(1_000_000_000)
)

// ParseAmount converts currency text into whole currency units.
// "$36.2 Million" and "36,2 Millones" become 36200000, "$1.5 Billion" becomes
// 1500000000 and "$285,000,000" becomes 285000000.
func ParseAmount(text string) (int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrNoAmount
	}

	if m := billionsPattern.FindStringSubmatch(text); m != nil {
		return scaled(m[1], oneBillion)
	}
	if m := millionsPattern.FindStringSubmatch(text); m != nil {
		return scaled(m[1], oneMillion)
	}

	digits := digitsPattern.FindString(currencyStripper.Replace(text))
	if digits == "" {
		return 0, fmt.Errorf("%w in %q", ErrNoAmount, text)
	}
	amount, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", digits, err)
	}
	return amount, nil
}

// MillionsMentions returns every distinct amount written in millions or billions
// notation in text, in the order first seen.
func MillionsMentions(text string) []int64 {
	seen := make(map[int64]bool)
	var out []int64
	for _, pattern := range []struct {
		re   *regexp.Regexp
		unit decimal.Decimal
	}{{billionsPattern, oneBillion}, {millionsPattern, oneMillion}} {
		for _, m := range pattern.re.FindAllStringSubmatch(text, -1) {
			v, err := scaled(m[1], pattern.unit)
			if err != nil || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func scaled(number string, unit decimal.Decimal) (int64, error) {
	d, err := decimal.NewFromString(decimalText(number))
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", number, err)
	}
	return d.Mul(unit).Truncate(0).IntPart(), nil
}

// decimalText resolves the comma in "36,2" (decimal) versus "1,500" (grouping)
func decimalText(number string) string {
	if strings.Contains(number, ".") {
		return strings.ReplaceAll(number, ",", "")
	}
	i := strings.LastIndex(number, ",")
	if i < 0 {
		return number
	}
	if len(number)-i-1 == 3 {
		return strings.ReplaceAll(number, ",", "")
	}
	return strings.ReplaceAll(number[:i], ",", "") + "." + number[i+1:]
}

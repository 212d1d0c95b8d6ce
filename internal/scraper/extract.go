package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/powerball-results/internal/draw"
	"golang.org/x/net/html"
)

var (
	nonDigits         = regexp.MustCompile(`[^\d]`)
	multiplierValue   = regexp.MustCompile(`(?i)(\d+)\s*x`)
	multiplierLabel   = regexp.MustCompile(`(?i)power\s*play|multiplicador`)
	noWinnerPhrase    = regexp.MustCompile(`(?i)\bno\s+(?:jackpot\s+)?winners?\b|\bsin\s+ganador(?:es)?\b|\bno\s+hubo\s+ganador(?:es)?\b`)
	regionCode        = regexp.MustCompile(`\b[A-Z]{2}\b`)
	exactRegionCode   = regexp.MustCompile(`^[A-Z]{2}$`)
	winnersLabel      = regexp.MustCompile(`(?i)jackpot\s+winners?|ganadores`)
	nextDrawLabel     = regexp.MustCompile(`(?i)next\s+drawing|pr[oó]ximo\s+sorteo`)
	estimatedLabel    = regexp.MustCompile(`(?i)estimated\s+jackpot|premio\s+estimado`)
	cashLabel         = regexp.MustCompile(`(?i)cash\s*value|valor\s+en\s+efectivo`)
	cashCandidateText = regexp.MustCompile(`(?i)\$.*(?:million|millones|billion)|\$[\d,]+`)
)

// winnerStatus is the jackpot outcome of the last drawing
type winnerStatus struct {
	won    bool
	region string
}

// Extraction holds everything recovered from one document
type Extraction struct {
	Draw        draw.DrawResult
	Next        *draw.NextDraw
	Diagnostics []draw.Diagnostic
}

// Extractor locates draw fields in a parsed results page
type Extractor struct {
	sel Selectors

	date       []Strategy[string]
	numbers    []Strategy[[]int]
	special    []Strategy[int]
	multiplier []Strategy[int]
	winner     []Strategy[winnerStatus]
	nextDate   []Strategy[string]
	estimated  []Strategy[int64]
	cash       []Strategy[int64]
}

// ExtractorOption configures an Extractor
type ExtractorOption func(*extractorConfig)

type extractorConfig struct {
	strictWinnerRegion bool
}

// WithStrictWinnerRegion accepts a winner region only from the explicit winner_region
// element instead of any two-letter uppercase token in the winners text.
func WithStrictWinnerRegion(strict bool) ExtractorOption {
	return func(c *extractorConfig) {
		c.strictWinnerRegion = strict
	}
}

// NewExtractor builds an extractor for the given selectors. Empty selectors fall back
// to DefaultSelectors.
func NewExtractor(sel Selectors, opts ...ExtractorOption) *Extractor {
	var cfg extractorConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Extractor{sel: sel.withDefaults()}
	s := e.sel

	e.date = []Strategy[string]{
		{Name: "winners card title", Find: func(doc *goquery.Document, d *draw.Diagnostics) (string, bool) {
			return dateFrom(doc.Find(s.WinnersRegion).First().Find(s.DrawDate).First(), "date", d)
		}},
		{Name: "first card title", Find: func(doc *goquery.Document, d *draw.Diagnostics) (string, bool) {
			return dateFrom(doc.Find(s.DrawDate).First(), "date", d)
		}},
		{Name: "title date", Find: func(doc *goquery.Document, d *draw.Diagnostics) (string, bool) {
			return dateFrom(doc.Find(s.DrawDateAlt).First(), "date", d)
		}},
	}

	e.numbers = []Strategy[[]int]{
		{Name: "winners region balls", Find: func(doc *goquery.Document, _ *draw.Diagnostics) ([]int, bool) {
			return e.primaryNumbers(doc.Find(s.WinnersRegion).First().Find(s.Ball))
		}},
		{Name: "document balls", Find: func(doc *goquery.Document, _ *draw.Diagnostics) ([]int, bool) {
			return e.primaryNumbers(doc.Find(s.Ball))
		}},
		{Name: "primary marker", Find: func(doc *goquery.Document, _ *draw.Diagnostics) ([]int, bool) {
			return e.primaryNumbers(doc.Find("." + s.PrimaryMarker))
		}},
	}

	e.special = []Strategy[int]{
		{Name: "winners region ball", Find: func(doc *goquery.Document, _ *draw.Diagnostics) (int, bool) {
			return e.specialNumber(doc.Find(s.WinnersRegion).First().Find(s.Ball))
		}},
		{Name: "document ball", Find: func(doc *goquery.Document, _ *draw.Diagnostics) (int, bool) {
			return e.specialNumber(doc.Find(s.Ball))
		}},
		{Name: "special marker", Find: func(doc *goquery.Document, _ *draw.Diagnostics) (int, bool) {
			return e.specialNumber(doc.Find("." + s.SpecialMarker))
		}},
	}

	e.multiplier = []Strategy[int]{
		{Name: "multiplier element", Find: func(doc *goquery.Document, _ *draw.Diagnostics) (int, bool) {
			return multiplierIn(doc.Find(s.Multiplier).First().Text())
		}},
		{Name: "power play label", Find: multiplierFromLabels},
	}

	if cfg.strictWinnerRegion {
		e.winner = []Strategy[winnerStatus]{
			{Name: "explicit winner region", Find: func(doc *goquery.Document, _ *draw.Diagnostics) (winnerStatus, bool) {
				return explicitWinner(doc.Find(s.WinnerRegion).First())
			}},
			{Name: "winners region no-winner phrase", Find: func(doc *goquery.Document, _ *draw.Diagnostics) (winnerStatus, bool) {
				if noWinnerPhrase.MatchString(doc.Find(s.WinnersRegion).First().Text()) {
					return winnerStatus{}, true
				}
				return winnerStatus{}, false
			}},
		}
	} else {
		e.winner = []Strategy[winnerStatus]{
			{Name: "winners region text", Find: func(doc *goquery.Document, _ *draw.Diagnostics) (winnerStatus, bool) {
				region := doc.Find(s.WinnersRegion).First()
				if region.Length() == 0 {
					return winnerStatus{}, false
				}
				return classifyWinners(region.Text())
			}},
			{Name: "winners label", Find: winnerFromLabels},
		}
	}

	e.nextDate = []Strategy[string]{
		{Name: "next drawing card title", Find: func(doc *goquery.Document, d *draw.Diagnostics) (string, bool) {
			return dateFrom(doc.Find(s.NextDrawRegion).First().Find(s.NextDrawDate).First(), "next_draw.date", d)
		}},
		{Name: "next drawing label", Find: nextDateFromLabels},
		{Name: "next drawing region text", Find: func(doc *goquery.Document, _ *draw.Diagnostics) (string, bool) {
			region := doc.Find(s.NextDrawRegion).First()
			if region.Length() == 0 {
				return "", false
			}
			date, err := draw.NormalizeDate(collapse(region.Text()))
			return date, err == nil
		}},
	}

	e.estimated = []Strategy[int64]{
		{Name: "next drawing jackpot", Find: func(doc *goquery.Document, d *draw.Diagnostics) (int64, bool) {
			return amountFrom(doc.Find(s.NextDrawRegion).First().Find(s.Jackpot).First(), "next_draw.estimated", d)
		}},
		{Name: "document jackpot", Find: func(doc *goquery.Document, d *draw.Diagnostics) (int64, bool) {
			return amountFrom(doc.Find(s.Jackpot).First(), "next_draw.estimated", d)
		}},
		{Name: "estimated jackpot label", Find: estimatedFromLabels},
	}

	e.cash = []Strategy[int64]{
		{Name: "cash value element", Find: func(doc *goquery.Document, d *draw.Diagnostics) (int64, bool) {
			return amountFrom(doc.Find(s.NextDrawRegion).First().Find(s.CashValue).First(), "next_draw.cash", d)
		}},
		{Name: "cash value label", Find: cashFromLabels},
		{Name: "smaller of region amounts", Find: func(doc *goquery.Document, d *draw.Diagnostics) (int64, bool) {
			return smallerRegionAmount(doc.Find(s.NextDrawRegion).First(), d)
		}},
	}

	return e
}

// Extract locates every field in doc. A missing field never stops the others.
func (e *Extractor) Extract(doc *goquery.Document) Extraction {
	var diags draw.Diagnostics
	var result draw.DrawResult

	if date, ok := locate(doc, "date", e.date, &diags); ok {
		result.Date = date
	}
	if numbers, ok := locate(doc, "numbers", e.numbers, &diags); ok {
		result.Numbers = numbers
	}
	if special, ok := locate(doc, "special", e.special, &diags); ok {
		result.Special = draw.IntPtr(special)
	}
	if mult, ok := locate(doc, "multiplier", e.multiplier, &diags); ok {
		result.Multiplier = draw.IntPtr(mult)
	}
	if status, ok := locate(doc, "winner", e.winner, &diags); ok {
		result.JackpotWon = status.won
		result.WinnerRegion = status.region
	} else {
		diags.Warnf("winner", "jackpot winner status not found, assuming no winner")
	}

	next := &draw.NextDraw{}
	if date, ok := locate(doc, "next_draw.date", e.nextDate, &diags); ok {
		next.Date = date
	}
	if est, ok := locate(doc, "next_draw.estimated", e.estimated, &diags); ok {
		next.Estimated = draw.AmountPtr(est)
	}
	if cash, ok := locate(doc, "next_draw.cash", e.cash, &diags); ok {
		next.Cash = draw.AmountPtr(cash)
	}
	if next.Cash != nil && next.Estimated != nil && *next.Cash >= *next.Estimated {
		diags.Warnf("next_draw.cash", "discarding cash value %d: not below estimated jackpot %d", *next.Cash, *next.Estimated)
		next.Cash = nil
	}
	if next.IsEmpty() {
		next = nil
	}

	return Extraction{Draw: result, Next: next, Diagnostics: diags}
}

// primaryNumbers reads every ball carrying the primary marker
func (e *Extractor) primaryNumbers(balls *goquery.Selection) ([]int, bool) {
	var numbers []int
	balls.Each(func(_ int, ball *goquery.Selection) {
		if !ball.HasClass(e.sel.PrimaryMarker) {
			return
		}
		if n, ok := ballNumber(ball.Text()); ok {
			numbers = append(numbers, n)
		}
	})
	return numbers, len(numbers) > 0
}

// specialNumber reads the first ball carrying the special marker but not the primary one.
// Both kinds of ball may share other classes.
func (e *Extractor) specialNumber(balls *goquery.Selection) (int, bool) {
	var (
		value int
		found bool
	)
	balls.EachWithBreak(func(_ int, ball *goquery.Selection) bool {
		if !ball.HasClass(e.sel.SpecialMarker) || ball.HasClass(e.sel.PrimaryMarker) {
			return true
		}
		value, found = ballNumber(ball.Text())
		return !found
	})
	return value, found
}

func ballNumber(text string) (int, bool) {
	digits := nonDigits.ReplaceAllString(text, "")
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

func dateFrom(sel *goquery.Selection, field string, diags *draw.Diagnostics) (string, bool) {
	if sel.Length() == 0 {
		return "", false
	}
	raw := collapse(sel.Text())
	if raw == "" {
		return "", false
	}
	date, err := draw.NormalizeDate(raw)
	if err != nil {
		diags.Warnf(field, "%v", err)
		return "", false
	}
	return date, true
}

func amountFrom(sel *goquery.Selection, field string, diags *draw.Diagnostics) (int64, bool) {
	if sel.Length() == 0 {
		return 0, false
	}
	raw := collapse(sel.Text())
	amount, err := draw.ParseAmount(raw)
	if err != nil {
		diags.Warnf(field, "%v", err)
		return 0, false
	}
	return amount, true
}

func multiplierIn(text string) (int, bool) {
	m := multiplierValue.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// multiplierFromLabels checks every "Power Play" text, then its enclosing element
func multiplierFromLabels(doc *goquery.Document, _ *draw.Diagnostics) (int, bool) {
	for _, label := range documentTextNodes(doc, multiplierLabel) {
		if n, ok := multiplierIn(label.Data); ok {
			return n, true
		}
		if label.Parent != nil {
			if n, ok := multiplierIn(nodeText(doc, label.Parent)); ok {
				return n, true
			}
		}
	}
	return 0, false
}

// classifyWinners applies the no-winner phrase check, then takes any two-letter
// uppercase token as the winning region.
func classifyWinners(text string) (winnerStatus, bool) {
	if noWinnerPhrase.MatchString(text) {
		return winnerStatus{}, true
	}
	if code := regionCode.FindString(text); code != "" {
		return winnerStatus{won: true, region: code}, true
	}
	return winnerStatus{}, false
}

func winnerFromLabels(doc *goquery.Document, _ *draw.Diagnostics) (winnerStatus, bool) {
	for _, label := range documentTextNodes(doc, winnersLabel) {
		container := label.Parent
		if container != nil && container.Parent != nil {
			container = container.Parent
		}
		if status, ok := classifyWinners(nodeText(doc, container)); ok {
			return status, true
		}
	}
	return winnerStatus{}, false
}

func explicitWinner(sel *goquery.Selection) (winnerStatus, bool) {
	if sel.Length() == 0 {
		return winnerStatus{}, false
	}
	text := collapse(sel.Text())
	if attr, ok := sel.Attr("data-winner-state"); ok && strings.TrimSpace(attr) != "" {
		text = strings.TrimSpace(attr)
	}
	if noWinnerPhrase.MatchString(text) {
		return winnerStatus{}, true
	}
	if exactRegionCode.MatchString(text) {
		return winnerStatus{won: true, region: text}, true
	}
	return winnerStatus{}, false
}

// nextDateFromLabels reads a date from the element holding a "Next Drawing" caption,
// or from its parent.
func nextDateFromLabels(doc *goquery.Document, _ *draw.Diagnostics) (string, bool) {
	for _, label := range documentTextNodes(doc, nextDrawLabel) {
		n := label.Parent
		for depth := 0; depth < 2 && n != nil && n.Type == html.ElementNode; depth++ {
			if date, err := draw.NormalizeDate(nodeText(doc, n)); err == nil {
				return date, true
			}
			n = n.Parent
		}
	}
	return "", false
}

// estimatedFromLabels finds an "Estimated Jackpot" caption and reads the next
// jackpot span after it in document order.
func estimatedFromLabels(doc *goquery.Document, d *draw.Diagnostics) (int64, bool) {
	for _, label := range documentTextNodes(doc, estimatedLabel) {
		if label.Parent == nil {
			continue
		}
		if span := nextMatching(doc, label.Parent, "span[class*=jackpot]"); span != nil {
			if amount, ok := amountFrom(span, "next_draw.estimated", d); ok {
				return amount, true
			}
		}
	}
	return 0, false
}

// cashFromLabels finds a "Cash Value" caption and reads the amount written after it,
// from its next sibling, or failing that from any currency text in the surrounding
// container.
func cashFromLabels(doc *goquery.Document, d *draw.Diagnostics) (int64, bool) {
	for _, label := range documentTextNodes(doc, cashLabel) {
		if loc := cashLabel.FindStringIndex(label.Data); loc != nil {
			if rest := label.Data[loc[1]:]; strings.ContainsAny(rest, "0123456789") {
				if amount, err := draw.ParseAmount(rest); err == nil {
					return amount, true
				}
			}
		}

		parent := label.Parent
		if parent == nil {
			continue
		}

		if sibling := doc.FindNodes(parent).Next(); sibling.Length() > 0 {
			if amount, err := draw.ParseAmount(collapse(sibling.Text())); err == nil {
				return amount, true
			}
		}

		if parent.Parent == nil {
			continue
		}
		for _, candidate := range matchingTextNodes(parent.Parent, cashCandidateText) {
			upper := strings.ToUpper(candidate.Data)
			if strings.Contains(upper, "CASH") || strings.Contains(upper, "VALUE") {
				continue
			}
			if amount, err := draw.ParseAmount(collapse(candidate.Data)); err == nil {
				return amount, true
			}
		}
	}
	return 0, false
}

// smallerRegionAmount takes the smaller of the amounts mentioned in the next-draw
// region. Cash value is always below the estimated jackpot, so with a single mention
// there is nothing to tell them apart and the field stays absent.
func smallerRegionAmount(region *goquery.Selection, diags *draw.Diagnostics) (int64, bool) {
	if region.Length() == 0 {
		return 0, false
	}
	amounts := draw.MillionsMentions(collapse(region.Text()))
	if len(amounts) < 2 {
		if len(amounts) == 1 {
			diags.Infof("next_draw.cash", "only one amount in next drawing region, cash value left empty")
		}
		return 0, false
	}
	smallest := amounts[0]
	for _, a := range amounts[1:] {
		if a < smallest {
			smallest = a
		}
	}
	return smallest, true
}

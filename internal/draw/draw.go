package draw

import (
	"sort"
	"time"
)

const (
	// NumbersPerDraw is the count of primary (white ball) numbers in a complete draw.
	NumbersPerDraw = 5

	// MaxPrimaryNumber is the highest white ball number.
	MaxPrimaryNumber = 69
	// MaxSpecialNumber is the highest Powerball number.
	MaxSpecialNumber = 26
)

// DrawResult represents the numbers and metadata of one completed drawing
type DrawResult struct {
	Date         string `json:"fecha,omitempty" yaml:"fecha,omitempty"` // YYYY-MM-DD
	Numbers      []int  `json:"blancos" yaml:"blancos"`
	Special      *int   `json:"powerball" yaml:"powerball"`
	Multiplier   *int   `json:"powerplay" yaml:"powerplay"`
	JackpotWon   bool   `json:"premio_mayor_ganado" yaml:"premio_mayor_ganado"`
	WinnerRegion string `json:"region_ganador,omitempty" yaml:"region_ganador,omitempty"`
}

// NextDraw is the projection for the upcoming drawing published next to the last result
type NextDraw struct {
	Date      string `json:"fecha,omitempty" yaml:"fecha,omitempty"`
	Estimated *int64 `json:"premio_estimado" yaml:"premio_estimado"`
	Cash      *int64 `json:"premio_efectivo" yaml:"premio_efectivo"`
}

// IsEmpty reports whether no next-draw field was recovered
func (n *NextDraw) IsEmpty() bool {
	return n == nil || (n.Date == "" && n.Estimated == nil && n.Cash == nil)
}

// Outcome is the result of a single fetch and extract attempt.
// It is built once by NewOutcome or Failed and not modified afterwards.
type Outcome struct {
	Draw        DrawResult
	Next        *NextDraw
	CapturedAt  time.Time
	Attempt     int
	Success     bool
	Err         string
	Diagnostics []Diagnostic
}

// NewOutcome builds an outcome from extracted values and classifies it with Validate.
// Numbers are sorted ascending; the input slice is left untouched.
func NewOutcome(result DrawResult, next *NextDraw, capturedAt time.Time, attempt int, diags []Diagnostic) *Outcome {
	result.Numbers = sortedCopy(result.Numbers)

	ok, warnings := Validate(result, next)

	all := make([]Diagnostic, 0, len(diags)+len(warnings))
	all = append(all, diags...)
	all = append(all, warnings...)

	return &Outcome{
		Draw:        result,
		Next:        next,
		CapturedAt:  capturedAt,
		Attempt:     attempt,
		Success:     ok,
		Diagnostics: all,
	}
}

// Failed builds an unsuccessful outcome carrying the error detail
func Failed(err error, capturedAt time.Time, attempt int, diags []Diagnostic) *Outcome {
	detail := "unknown error"
	if err != nil {
		detail = err.Error()
	}
	all := make([]Diagnostic, 0, len(diags)+1)
	all = append(all, diags...)
	all = append(all, Diagnostic{Level: LevelError, Field: "scrape", Message: detail})

	return &Outcome{
		CapturedAt:  capturedAt,
		Attempt:     attempt,
		Success:     false,
		Err:         detail,
		Diagnostics: all,
	}
}

// Record is one history entry. The next-draw projection is not part of it.
type Record struct {
	Draw        DrawResult `json:"sorteo" yaml:"sorteo"`
	UpdatedText string     `json:"fecha_actualizacion" yaml:"fecha_actualizacion"`
	CapturedAt  time.Time  `json:"capturado_en" yaml:"capturado_en"`
}

// Snapshot is the latest-results document, overwritten on every save
type Snapshot struct {
	Draw        DrawResult `json:"sorteo" yaml:"sorteo"`
	Next        *NextDraw  `json:"proximo_sorteo,omitempty" yaml:"proximo_sorteo,omitempty"`
	UpdatedText string     `json:"fecha_actualizacion" yaml:"fecha_actualizacion"`
	CapturedAt  time.Time  `json:"capturado_en" yaml:"capturado_en"`
}

// Record returns the minimal history entry for this outcome
func (o *Outcome) Record() Record {
	return Record{
		Draw:        o.Draw,
		UpdatedText: FormatUpdateTime(o.CapturedAt),
		CapturedAt:  o.CapturedAt.UTC(),
	}
}

// Snapshot returns the latest-results document for this outcome
func (o *Outcome) Snapshot() Snapshot {
	var next *NextDraw
	if !o.Next.IsEmpty() {
		next = o.Next
	}
	return Snapshot{
		Draw:        o.Draw,
		Next:        next,
		UpdatedText: FormatUpdateTime(o.CapturedAt),
		CapturedAt:  o.CapturedAt.UTC(),
	}
}

func sortedCopy(numbers []int) []int {
	if numbers == nil {
		return []int{}
	}
	out := make([]int, len(numbers))
	copy(out, numbers)
	sort.Ints(out)
	return out
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}

// AmountPtr returns a pointer to v
func AmountPtr(v int64) *int64 {
	return &v
}

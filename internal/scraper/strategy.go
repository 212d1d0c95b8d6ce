package scraper

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/powerball-results/internal/draw"
)

// Strategy is one way of locating a field value in a document.
// Find reports false when the value is absent; it may record diagnostics.
type Strategy[T any] struct {
	Name string
	Find func(doc *goquery.Document, diags *draw.Diagnostics) (T, bool)
}

// locate evaluates strategies in order and returns the first present value
func locate[T any](doc *goquery.Document, field string, strategies []Strategy[T], diags *draw.Diagnostics) (T, bool) {
	var zero T
	for i, s := range strategies {
		v, ok := run(doc, field, s, diags)
		if !ok {
			continue
		}
		if i > 0 {
			diags.Infof(field, "located by fallback %q", s.Name)
		}
		return v, true
	}
	diags.Infof(field, "no strategy matched (%d tried)", len(strategies))
	return zero, false
}

// run isolates a single strategy so a panic only loses that strategy's value
func run[T any](doc *goquery.Document, field string, s Strategy[T], diags *draw.Diagnostics) (v T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			diags.Errorf(field, "strategy %q failed: %v", s.Name, r)
			var zero T
			v, ok = zero, false
		}
	}()
	return s.Find(doc, diags)
}

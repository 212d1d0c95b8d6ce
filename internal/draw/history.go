package draw

// Dated is a history entry keyed by its canonical draw date
type Dated interface {
	DrawDate() string
}

// DrawDate returns the date the record is keyed by
func (r Record) DrawDate() string {
	return r.Draw.Date
}

// Contains reports whether history already holds an entry for date
func Contains[E Dated](history []E, date string) bool {
	for _, e := range history {
		if e.DrawDate() == date {
			return true
		}
	}
	return false
}

// MergeHistory prepends rec to history unless an entry with the same draw date exists.
// It returns the resulting history and whether rec was added. The input slice is
// never modified and existing entries keep their order.
func MergeHistory[E Dated](history []E, rec E) ([]E, bool) {
	if rec.DrawDate() == "" || Contains(history, rec.DrawDate()) {
		return history, false
	}

	merged := make([]E, 0, len(history)+1)
	merged = append(merged, rec)
	merged = append(merged, history...)
	return merged, true
}

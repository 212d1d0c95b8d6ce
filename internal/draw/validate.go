package draw

// IsComplete reports whether r is usable: exactly five distinct primary numbers,
// a special number and a draw date.
func IsComplete(r DrawResult) bool {
	return len(r.Numbers) == NumbersPerDraw && distinct(r.Numbers) && r.Special != nil && r.Date != ""
}

// Validate classifies an extraction. Missing required fields make it unsuccessful;
// missing optional fields only produce warnings.
func Validate(r DrawResult, next *NextDraw) (bool, []Diagnostic) {
	var diags Diagnostics

	if len(r.Numbers) != NumbersPerDraw {
		diags.Warnf("numbers", "found %d/%d primary numbers", len(r.Numbers), NumbersPerDraw)
	} else if !distinct(r.Numbers) {
		diags.Warnf("numbers", "primary numbers are not distinct: %v", r.Numbers)
	}
	for _, n := range r.Numbers {
		if n < 1 || n > MaxPrimaryNumber {
			diags.Warnf("numbers", "primary number %d outside 1..%d", n, MaxPrimaryNumber)
		}
	}

	if r.Special == nil {
		diags.Warnf("special", "special number not found")
	} else if *r.Special < 1 || *r.Special > MaxSpecialNumber {
		diags.Warnf("special", "special number %d outside 1..%d", *r.Special, MaxSpecialNumber)
	}

	if r.Date == "" {
		diags.Warnf("date", "draw date not found")
	}

	if r.Multiplier == nil {
		diags.Warnf("multiplier", "multiplier not found")
	}

	if next.IsEmpty() {
		diags.Warnf("next_draw", "next draw projection not found")
	} else {
		if next.Date == "" {
			diags.Warnf("next_draw.date", "next draw date not found")
		}
		if next.Estimated == nil {
			diags.Warnf("next_draw.estimated", "estimated jackpot not found")
		}
		if next.Cash == nil {
			diags.Warnf("next_draw.cash", "cash value not found")
		}
	}

	ok := IsComplete(r)
	if !ok {
		diags.Errorf("result", "incomplete result: numbers %d/%d, special present %t, date %q",
			len(r.Numbers), NumbersPerDraw, r.Special != nil, r.Date)
	}
	return ok, diags
}

func distinct(numbers []int) bool {
	seen := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		if seen[n] {
			return false
		}
		seen[n] = true
	}
	return true
}

package draw

import "testing"

func completeResult() DrawResult {
	return DrawResult{
		Date:       "2026-02-02",
		Numbers:    []int{5, 12, 23, 41, 60},
		Special:    IntPtr(9),
		Multiplier: IntPtr(2),
	}
}

func TestValidate(t *testing.T) {
	full := &NextDraw{Date: "2026-02-04", Estimated: AmountPtr(120_000_000), Cash: AmountPtr(54_300_000)}

	tests := []struct {
		name   string
		modify func(*DrawResult)
		next   *NextDraw
		want   bool
	}{
		{name: "complete", modify: func(*DrawResult) {}, next: full, want: true},
		{name: "optional fields missing", modify: func(r *DrawResult) { r.Multiplier = nil }, next: nil, want: true},
		{name: "four numbers", modify: func(r *DrawResult) { r.Numbers = r.Numbers[:4] }, next: full, want: false},
		{name: "six numbers", modify: func(r *DrawResult) { r.Numbers = append(r.Numbers, 61) }, next: full, want: false},
		{name: "duplicate numbers", modify: func(r *DrawResult) { r.Numbers = []int{5, 5, 23, 41, 60} }, next: full, want: false},
		{name: "no special", modify: func(r *DrawResult) { r.Special = nil }, next: full, want: false},
		{name: "no date", modify: func(r *DrawResult) { r.Date = "" }, next: full, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := completeResult()
			tt.modify(&r)

			got, diags := Validate(r, tt.next)
			if got != tt.want {
				t.Errorf("Validate() = %v, want %v (diagnostics: %v)", got, tt.want, diags)
			}

			hasError := false
			for _, d := range diags {
				if d.Level == LevelError {
					hasError = true
				}
			}
			if hasError == tt.want {
				t.Errorf("Validate() error diagnostic present = %v, want %v", hasError, !tt.want)
			}
		})
	}
}

func TestValidate_WarnsOnMissingOptionalFields(t *testing.T) {
	r := completeResult()
	r.Multiplier = nil

	ok, diags := Validate(r, &NextDraw{Estimated: AmountPtr(100_000_000)})
	if !ok {
		t.Fatal("Validate() = false, want true")
	}

	fields := make(map[string]bool)
	for _, d := range diags {
		if d.Level != LevelWarn {
			t.Errorf("diagnostic %v has level %s, want WARN", d, d.Level)
		}
		fields[d.Field] = true
	}
	for _, f := range []string{"multiplier", "next_draw.date", "next_draw.cash"} {
		if !fields[f] {
			t.Errorf("missing warning for %s in %v", f, diags)
		}
	}
}

func TestValidate_OutOfRangeIsWarningOnly(t *testing.T) {
	r := completeResult()
	r.Numbers = []int{1, 2, 3, 4, 70}

	ok, diags := Validate(r, nil)
	if !ok {
		t.Error("Validate() = false, want true for out-of-range number")
	}
	found := false
	for _, d := range diags {
		if d.Field == "numbers" && d.Level == LevelWarn {
			found = true
		}
	}
	if !found {
		t.Errorf("expected numbers range warning, got %v", diags)
	}
}

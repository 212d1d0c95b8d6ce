package draw

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"$36.2 Million", 36_200_000, false},
		{"$285,000,000", 285_000_000, false},
		{"$80 Million", 80_000_000, false},
		{"Estimated Jackpot: $ 120 MILLION", 120_000_000, false},
		{"36,2 Millones", 36_200_000, false},
		{"$0.29 million", 290_000, false},
		{"$1.5 Billion", 1_500_000_000, false},
		{"$1,500 Million", 1_500_000_000, false},
		{"1,2 mil millones", 1_200_000_000, false},
		{"Cash: $54,300,000", 54_300_000, false},
		{"garbage", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAmount(%q) = %d, want error", tt.input, got)
				}
				if !errors.Is(err, ErrNoAmount) {
					t.Errorf("ParseAmount(%q) error = %v, want ErrNoAmount", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseAmount(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAmount_Overflow(t *testing.T) {
	if _, err := ParseAmount("$99999999999999999999"); err == nil {
		t.Error("ParseAmount() expected overflow error, got nil")
	}
}

func TestMillionsMentions(t *testing.T) {
	text := "Estimated Jackpot $120 Million Cash Value $54.3 Million (was $120 Million)"
	got := MillionsMentions(text)
	want := []int64{120_000_000, 54_300_000}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MillionsMentions() = %v, want %v", got, want)
	}

	if got := MillionsMentions("no amounts here"); len(got) != 0 {
		t.Errorf("MillionsMentions() = %v, want empty", got)
	}
}

func TestDecimalText(t *testing.T) {
	tests := map[string]string{
		"36.2":      "36.2",
		"36,2":      "36.2",
		"1,500":     "1500",
		"1,500.5":   "1500.5",
		"1,234,567": "1234567",
		"120":       "120",
	}
	for in, want := range tests {
		if got := decimalText(in); got != want {
			t.Errorf("decimalText(%q) = %q, want %q", in, got, want)
		}
	}
}

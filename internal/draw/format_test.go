package draw

import "testing"

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "$0"},
		{999, "$999"},
		{54_300_000, "$54,300,000"},
		{1_200_000_000, "$1,200,000,000"},
	}

	for _, tt := range tests {
		if got := FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumbers(t *testing.T) {
	if got := FormatNumbers([]int{5, 12, 23, 41, 60}); got != "5 - 12 - 23 - 41 - 60" {
		t.Errorf("FormatNumbers() = %q", got)
	}
	if got := FormatNumbers(nil); got != "" {
		t.Errorf("FormatNumbers(nil) = %q, want empty", got)
	}
}

package draw

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders whole currency units with thousands grouping, "$120,000,000"
func FormatAmount(v int64) string {
	return amountPrinter.Sprintf("$%d", v)
}

// FormatNumbers joins draw numbers the way the summary shows them, "5 - 12 - 23"
func FormatNumbers(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " - ")
}

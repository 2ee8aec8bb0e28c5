package utils

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// unitSuffixes are stripped from the end of an amount before parsing.
var unitSuffixes = []string{"백만원", "천원", "억원", "원", "%", "명"}

// HasDigit reports whether s contains at least one decimal digit.
func HasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

// ParseAmount parses a statement numeral such as "1,200", "(300)", "△1,000"
// or "12.5%". Parenthesised and triangle-prefixed values are negative.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	for _, unit := range unitSuffixes {
		s = strings.TrimSpace(strings.TrimSuffix(s, unit))
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}
	for _, sign := range []string{"△", "▲", "-"} {
		if strings.HasPrefix(s, sign) {
			negative = !negative
			s = strings.TrimPrefix(s, sign)
			break
		}
	}
	s = strings.TrimPrefix(s, "+")
	s = strings.ReplaceAll(s, ",", "")

	if !HasDigit(s) {
		return decimal.Zero, fmt.Errorf("amount %q has no digits", raw)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount %q: %w", raw, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// FormatGrouped renders d rounded to an integer with comma thousands separators.
func FormatGrouped(d decimal.Decimal) string {
	digits := d.Round(0).Abs().String()

	var b strings.Builder
	if d.Round(0).IsNegative() {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

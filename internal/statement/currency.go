package statement

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUSD renders d the way statement totals are printed: dollar sign,
// comma-grouped integer part, two fraction digits. Reconciliation compares
// totals through this rendering so both sides absorb the same formatting
// noise.
func FormatUSD(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// ParseAmount converts a printed amount like "$1,234.56" to an exact
// decimal, stripping the currency symbol and thousands separators.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, AmountError{Raw: raw, Err: err}
	}
	return d, nil
}

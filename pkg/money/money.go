package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	ARS Currency = "ARS"
	USD Currency = "USD"
)

var ErrUnknownCurrency = errors.New("unknown currency")

var hundred = decimal.NewFromInt(100)

func ParseCurrency(s string) (Currency, error) {
	switch c := Currency(strings.ToUpper(strings.TrimSpace(s))); c {
	case ARS, USD:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, s)
	}
}

func (c Currency) Symbol() string {
	if c == USD {
		return "US$"
	}
	return "$"
}

// Format renders an amount the way es-AR does: dot thousands separator,
// comma decimal separator, two decimals rounded half away from zero.
func Format(amount decimal.Decimal, currency Currency) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}
	return fmt.Sprintf("%s%s %s,%s", sign, currency.Symbol(), grouped.String(), fracPart)
}

// Percentage returns part/whole*100 rounded to one decimal. A zero whole yields zero.
func Percentage(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(1)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}

// ProgressClass buckets a completion percentage into the CSS class used by progress bars.
func ProgressClass(pct decimal.Decimal) string {
	switch {
	case pct.LessThan(decimal.NewFromInt(50)):
		return "progress-bar-low"
	case pct.LessThan(decimal.NewFromInt(80)):
		return "progress-bar-medium"
	case pct.LessThan(hundred):
		return "progress-bar-high"
	default:
		return "progress-bar-complete"
	}
}

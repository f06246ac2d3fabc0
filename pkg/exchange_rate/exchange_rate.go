package exchange_rate

import (
	"errors"
	"fmt"
	"time"

	"github.com/finboard/finboard/pkg/money"
	"github.com/shopspring/decimal"
)

var ErrInvalidRate = errors.New("invalid exchange rate")

// Rate is the ARS price of one USD for a given month.
type Rate struct {
	Month int             `json:"month"`
	Year  int             `json:"year"`
	Rate  decimal.Decimal `json:"rate"`
}

// Label renders the rate period as MM/YYYY.
func (r Rate) Label() string {
	return fmt.Sprintf("%02d/%d", r.Month, r.Year)
}

func (r Rate) Period() time.Time {
	return time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, time.UTC)
}

// Convert changes amount between ARS and USD. Same currency conversions return amount unchanged.
func (r Rate) Convert(amount decimal.Decimal, from, to money.Currency) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	if !r.Rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: rate for %s must be positive", ErrInvalidRate, r.Label())
	}
	switch {
	case from == money.USD && to == money.ARS:
		return amount.Mul(r.Rate).Round(2), nil
	case from == money.ARS && to == money.USD:
		return amount.Div(r.Rate).Round(2), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %s to %s", money.ErrUnknownCurrency, from, to)
	}
}

func ValidatePeriod(year, month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidRate)
	}
	if year < 2000 || year > 9999 {
		return fmt.Errorf("%w: year %d out of range", ErrInvalidRate, year)
	}
	return nil
}

package investment

import (
	"errors"
	"fmt"
	"time"

	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/money"
	"github.com/shopspring/decimal"
)

type Type string

const (
	FixedTerm   Type = "plazo_fijo"
	Stocks      Type = "acciones"
	Crypto      Type = "criptomonedas"
	MutualFund  Type = "fci"
	Bonds       Type = "obligaciones"
	OtherInvest Type = "otro"
)

const daysInYear = 365

var typeLabels = map[Type]string{
	FixedTerm:   "Plazo fijo",
	Stocks:      "Acciones",
	Crypto:      "Criptomonedas",
	MutualFund:  "FCI",
	Bonds:       "Obligaciones negociables",
	OtherInvest: "Otro",
}

var ErrInvalidInvestment = errors.New("invalid investment")

// Investment is polymorphic on Type. Quantity based types use Quantity and the
// prices, amount based types use AmountInvested.
type Investment struct {
	Id             string              `json:"id"`
	Name           string              `json:"name"`
	Type           Type                `json:"type"`
	Currency       money.Currency      `json:"currency"`
	Symbol         string              `json:"symbol,omitempty"`
	Platform       string              `json:"platform,omitempty"`
	PurchaseDate   *time.Time          `json:"purchaseDate,omitempty"`
	Quantity       decimal.NullDecimal `json:"quantity"`
	PurchasePrice  decimal.NullDecimal `json:"purchasePrice"`
	CurrentPrice   decimal.NullDecimal `json:"currentPrice"`
	AmountInvested decimal.NullDecimal `json:"amountInvested"`
	InterestRate   decimal.NullDecimal `json:"interestRate"`
	StartDate      *time.Time          `json:"startDate,omitempty"`
	EndDate        *time.Time          `json:"endDate,omitempty"`
	CurrentValue   decimal.NullDecimal `json:"currentValue"`
	Notes          string              `json:"notes,omitempty"`
}

type Performance struct {
	Initial          decimal.Decimal `json:"initial"`
	Current          decimal.Decimal `json:"current"`
	Profit           decimal.Decimal `json:"profit"`
	ProfitPercentage decimal.Decimal `json:"profitPercentage"`
}

func (t Type) Label() string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(t)
}

func (t Type) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

func (t Type) IsQuantityBased() bool {
	switch t {
	case Stocks, Crypto, MutualFund, Bonds:
		return true
	}
	return false
}

func (i Investment) Performance() Performance {
	initial := i.initialValue()
	current := i.currentValue(initial)
	profit := current.Sub(initial)
	return Performance{
		Initial:          initial.Round(2),
		Current:          current.Round(2),
		Profit:           profit.Round(2),
		ProfitPercentage: money.Percentage(profit, initial),
	}
}

func (i Investment) initialValue() decimal.Decimal {
	if i.Type.IsQuantityBased() {
		return i.Quantity.Decimal.Mul(i.PurchasePrice.Decimal)
	}
	return i.AmountInvested.Decimal
}

func (i Investment) currentValue(initial decimal.Decimal) decimal.Decimal {
	if i.CurrentValue.Valid {
		return i.CurrentValue.Decimal
	}
	if i.Type.IsQuantityBased() {
		if !i.CurrentPrice.Valid {
			return initial
		}
		return i.Quantity.Decimal.Mul(i.CurrentPrice.Decimal)
	}
	if i.Type == FixedTerm {
		return initial.Add(i.accruedInterest(initial))
	}
	return initial
}

// accruedInterest is simple interest over the whole term at the yearly InterestRate percentage.
func (i Investment) accruedInterest(principal decimal.Decimal) decimal.Decimal {
	if !i.InterestRate.Valid || i.StartDate == nil || i.EndDate == nil {
		return decimal.Zero
	}
	days := utils.DaysBetween(*i.StartDate, *i.EndDate)
	if days <= 0 {
		return decimal.Zero
	}
	return principal.
		Mul(i.InterestRate.Decimal).
		Div(decimal.NewFromInt(100)).
		Mul(decimal.NewFromInt(int64(days))).
		Div(decimal.NewFromInt(daysInYear))
}

// Validate enforces the required fields of the investment type.
func (i Investment) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInvestment)
	}
	if !i.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidInvestment, i.Type)
	}
	if _, err := money.ParseCurrency(string(i.Currency)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInvestment, err)
	}

	if i.Type.IsQuantityBased() {
		if !positive(i.Quantity) {
			return fmt.Errorf("%w: quantity is required for %s", ErrInvalidInvestment, i.Type)
		}
		if !positive(i.PurchasePrice) {
			return fmt.Errorf("%w: purchase price is required for %s", ErrInvalidInvestment, i.Type)
		}
		return nil
	}

	if !positive(i.AmountInvested) {
		return fmt.Errorf("%w: amount invested is required for %s", ErrInvalidInvestment, i.Type)
	}
	if i.Type == FixedTerm {
		if !positive(i.InterestRate) {
			return fmt.Errorf("%w: interest rate is required for %s", ErrInvalidInvestment, i.Type)
		}
		if i.StartDate == nil || i.EndDate == nil {
			return fmt.Errorf("%w: start and end dates are required for %s", ErrInvalidInvestment, i.Type)
		}
		if !i.EndDate.After(*i.StartDate) {
			return fmt.Errorf("%w: end date must be after start date", ErrInvalidInvestment)
		}
	}
	return nil
}

func positive(d decimal.NullDecimal) bool {
	return d.Valid && d.Decimal.IsPositive()
}

package recurring

import (
	"errors"
	"fmt"
	"time"

	"github.com/finboard/finboard/internal/utils"
	"github.com/shopspring/decimal"
)

type Type string

const (
	Income  Type = "ingreso"
	Expense Type = "egreso"
)

type Frequency string

const (
	Daily    Frequency = "daily"
	Weekly   Frequency = "weekly"
	Biweekly Frequency = "biweekly"
	Monthly  Frequency = "monthly"
	Yearly   Frequency = "yearly"
)

var ErrInvalidRecurring = errors.New("invalid recurring transaction")

type RecurringTransaction struct {
	Id          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        Type            `json:"type"`
	Frequency   Frequency       `json:"frequency"`
	NextRunDate time.Time       `json:"nextRunDate"`
	LastRunDate *time.Time      `json:"lastRunDate,omitempty"`
	IsActive    bool            `json:"isActive"`
	AccountId   string          `json:"accountId"`
	CategoryId  string          `json:"categoryId,omitempty"`
}

type ActiveRequest struct {
	IsActive bool `json:"isActive"`
}

func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, Biweekly, Monthly, Yearly:
		return true
	}
	return false
}

// Advance returns the run date that follows from.
func (f Frequency) Advance(from time.Time) time.Time {
	switch f {
	case Daily:
		return from.AddDate(0, 0, 1)
	case Weekly:
		return from.AddDate(0, 0, 7)
	case Biweekly:
		return from.AddDate(0, 0, 14)
	case Yearly:
		return from.AddDate(1, 0, 0)
	default:
		return addMonthClamped(from)
	}
}

// addMonthClamped keeps end of month dates inside the next month: Jan 31 becomes Feb 28.
func addMonthClamped(from time.Time) time.Time {
	next := from.AddDate(0, 1, 0)
	if next.Day() != from.Day() {
		next = next.AddDate(0, 0, -next.Day())
	}
	return next
}

// IsDue reports whether an active transaction should run on now's day or earlier.
func (r RecurringTransaction) IsDue(now time.Time) bool {
	return r.IsActive && utils.DaysBetween(now, r.NextRunDate) <= 0
}

// Upcoming lists the run dates within the next days, starting at NextRunDate.
func (r RecurringTransaction) Upcoming(now time.Time, days int) []time.Time {
	if !r.IsActive || !r.Frequency.Valid() {
		return nil
	}
	var dates []time.Time
	for next := r.NextRunDate; utils.DaysBetween(now, next) <= days; next = r.Frequency.Advance(next) {
		if utils.DaysBetween(now, next) >= 0 {
			dates = append(dates, next)
		}
	}
	return dates
}

// SignedAmount is negative for expenses.
func (r RecurringTransaction) SignedAmount() decimal.Decimal {
	if r.Type == Expense {
		return r.Amount.Neg()
	}
	return r.Amount
}

func (r RecurringTransaction) Validate() error {
	if r.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidRecurring)
	}
	if !r.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidRecurring)
	}
	if r.Type != Income && r.Type != Expense {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidRecurring, r.Type)
	}
	if !r.Frequency.Valid() {
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidRecurring, r.Frequency)
	}
	if r.NextRunDate.IsZero() {
		return fmt.Errorf("%w: next run date is required", ErrInvalidRecurring)
	}
	if r.AccountId == "" {
		return fmt.Errorf("%w: account is required", ErrInvalidRecurring)
	}
	return nil
}

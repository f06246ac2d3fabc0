package goal

import (
	"errors"
	"fmt"
	"time"

	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/money"
	"github.com/shopspring/decimal"
)

type Status string

const (
	Active    Status = "active"
	Paused    Status = "paused"
	Completed Status = "completed"
	Cancelled Status = "cancelled"
)

type Priority string

const (
	Low    Priority = "low"
	Medium Priority = "medium"
	High   Priority = "high"
)

var (
	ErrInvalidGoal     = errors.New("invalid goal")
	ErrInvalidProgress = errors.New("invalid goal progress")
)

type Goal struct {
	Id            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Currency      money.Currency  `json:"currency"`
	TargetDate    *time.Time      `json:"targetDate,omitempty"`
	Status        Status          `json:"status"`
	Priority      Priority        `json:"priority"`
	Description   string          `json:"description,omitempty"`
}

// ProgressRequest adds money to a goal; the finance API debits AccountId by Amount.
type ProgressRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	AccountId string          `json:"accountId"`
	Note      string          `json:"note,omitempty"`
}

var hundred = decimal.NewFromInt(100)

// Progress is the completion percentage, one decimal, capped at 100.
func (g Goal) Progress() decimal.Decimal {
	return money.Clamp(money.Percentage(g.CurrentAmount, g.TargetAmount), decimal.Zero, hundred)
}

func (g Goal) ProgressClass() string {
	return money.ProgressClass(g.Progress())
}

func (g Goal) Remaining() decimal.Decimal {
	return decimal.Max(g.TargetAmount.Sub(g.CurrentAmount), decimal.Zero)
}

func (g Goal) IsReached() bool {
	return g.TargetAmount.IsPositive() && g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// DaysLeft counts days until the target date; nil when the goal has none.
func (g Goal) DaysLeft(now time.Time) *int {
	if g.TargetDate == nil {
		return nil
	}
	days := utils.DaysBetween(now, *g.TargetDate)
	return &days
}

// MonthlyContribution is the amount to save each month to hit the target on time.
// Zero when there is no target date, it already passed or nothing remains.
func (g Goal) MonthlyContribution(now time.Time) decimal.Decimal {
	days := g.DaysLeft(now)
	if days == nil || *days <= 0 || g.Remaining().IsZero() {
		return decimal.Zero
	}
	months := decimal.NewFromInt(int64(*days)).Div(decimal.NewFromInt(30)).Ceil()
	return g.Remaining().Div(months).Round(2)
}

func (g Goal) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidGoal)
	}
	if !g.TargetAmount.IsPositive() {
		return fmt.Errorf("%w: target amount must be positive", ErrInvalidGoal)
	}
	if g.CurrentAmount.IsNegative() {
		return fmt.Errorf("%w: current amount cannot be negative", ErrInvalidGoal)
	}
	if _, err := money.ParseCurrency(string(g.Currency)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGoal, err)
	}
	switch g.Status {
	case "", Active, Paused, Completed, Cancelled:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidGoal, g.Status)
	}
	switch g.Priority {
	case "", Low, Medium, High:
	default:
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidGoal, g.Priority)
	}
	return nil
}

func (p ProgressRequest) Validate() error {
	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidProgress)
	}
	if p.AccountId == "" {
		return fmt.Errorf("%w: account is required", ErrInvalidProgress)
	}
	return nil
}

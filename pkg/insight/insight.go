package insight

import (
	"time"

	"github.com/finboard/finboard/pkg/money"
	"github.com/shopspring/decimal"
)

type Balances struct {
	ARS decimal.Decimal `json:"ARS"`
	USD decimal.Decimal `json:"USD"`
}

type BalanceSummary struct {
	Balances                 Balances        `json:"balances"`
	TotalBalanceARSConverted decimal.Decimal `json:"totalBalanceARSConverted"`
	ConversionRateUsed       decimal.Decimal `json:"conversionRateUsed"`
	RateMonthYear            string          `json:"rateMonthYear,omitempty"`
}

type MonthlyStatus struct {
	Month    int             `json:"month"`
	Year     int             `json:"year"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Currency money.Currency  `json:"currency"`
}

func (m MonthlyStatus) Net() decimal.Decimal {
	return m.Income.Sub(m.Expenses)
}

// SavingsRate is the share of income left after expenses. Negative when overspending.
func (m MonthlyStatus) SavingsRate() decimal.Decimal {
	return money.Percentage(m.Net(), m.Income)
}

func (m MonthlyStatus) IsEmpty() bool {
	return m.Income.IsZero() && m.Expenses.IsZero()
}

type CategoryBudget struct {
	CategoryId   string          `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Budgeted     decimal.Decimal `json:"budgeted"`
	Spent        decimal.Decimal `json:"spent"`
}

type BudgetStatus struct {
	TotalBudgeted decimal.Decimal  `json:"totalBudgeted"`
	TotalSpent    decimal.Decimal  `json:"totalSpent"`
	Currency      money.Currency   `json:"currency"`
	Categories    []CategoryBudget `json:"categories,omitempty"`
}

func (b BudgetStatus) Remaining() decimal.Decimal {
	return b.TotalBudgeted.Sub(b.TotalSpent)
}

func (b BudgetStatus) UsedPercentage() decimal.Decimal {
	return money.Percentage(b.TotalSpent, b.TotalBudgeted)
}

func (b BudgetStatus) IsEmpty() bool {
	return b.TotalBudgeted.IsZero()
}

type TrendPoint struct {
	// Month is formatted YYYY-MM.
	Month   string          `json:"month"`
	Balance decimal.Decimal `json:"balance"`
}

type HealthScore struct {
	Score           int      `json:"score"`
	Level           string   `json:"level"`
	Recommendations []string `json:"recommendations"`
}

// LevelFor buckets a 0-100 health score.
func LevelFor(score int) string {
	switch {
	case score >= 80:
		return "excellent"
	case score >= 60:
		return "good"
	case score >= 40:
		return "fair"
	default:
		return "poor"
	}
}

type EventType string

const (
	RecurringEvent  EventType = "recurring"
	DebtEvent       EventType = "debt"
	CreditCardEvent EventType = "credit_card"
	GoalEvent       EventType = "goal"
)

type UpcomingEvent struct {
	Id          string          `json:"id"`
	Type        EventType       `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    money.Currency  `json:"currency"`
	Date        time.Time       `json:"date"`
}

type TransactionType string

const (
	Income   TransactionType = "ingreso"
	Expense  TransactionType = "egreso"
	Transfer TransactionType = "transferencia"
)

type Transaction struct {
	Id           string          `json:"id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Type         TransactionType `json:"type"`
	Currency     money.Currency  `json:"currency"`
	Date         time.Time       `json:"date"`
	AccountName  string          `json:"accountName,omitempty"`
	CategoryName string          `json:"categoryName,omitempty"`
}

type CategorySpending struct {
	CategoryId   string          `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Amount       decimal.Decimal `json:"amount"`
	Color        string          `json:"color,omitempty"`
}

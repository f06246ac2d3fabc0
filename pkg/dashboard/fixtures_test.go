package dashboard

import (
	"context"
	"time"

	"github.com/finboard/finboard/internal/config"
	"github.com/finboard/finboard/pkg/account"
	"github.com/finboard/finboard/pkg/goal"
	"github.com/finboard/finboard/pkg/insight"
	"github.com/finboard/finboard/pkg/investment"
	"github.com/finboard/finboard/pkg/money"
	"github.com/finboard/finboard/pkg/user"
	"github.com/shopspring/decimal"
)

var (
	ctx = user.WithUid(context.Background(), "user-1")
	now = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
)

func testConfig() config.Dashboard {
	return config.Dashboard{
		SourceTimeout:      time.Second,
		MaxConcurrency:     11,
		SnapshotTTL:        5 * time.Minute,
		SnapshotCacheSize:  10,
		TrendMonths:        6,
		UpcomingDays:       30,
		RecentTransactions: 5,
	}
}

func amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

type stubs struct {
	accounts    *account.ClientStub
	investments *investment.ClientStub
	insights    *insight.ClientStub
	goals       *goal.ClientStub
}

func (s stubs) clients() Clients {
	return Clients{
		Accounts:    s.accounts,
		Investments: s.investments,
		Insights:    s.insights,
		Goals:       s.goals,
	}
}

// newStubs returns clients where every source has something to show.
func newStubs() stubs {
	insights := insight.NewClientStub()
	insights.Summary = insight.BalanceSummary{
		Balances:                 insight.Balances{ARS: amount(150000), USD: amount(100)},
		TotalBalanceARSConverted: amount(250000),
		ConversionRateUsed:       amount(1000),
		RateMonthYear:            "03/2025",
	}
	insights.Monthly = insight.MonthlyStatus{Month: 3, Year: 2025, Income: amount(1000), Expenses: amount(600), Currency: money.ARS}
	insights.Budget = insight.BudgetStatus{TotalBudgeted: amount(1000), TotalSpent: amount(900), Currency: money.ARS}
	insights.Trend = []insight.TrendPoint{{Month: "2025-02", Balance: amount(200)}, {Month: "2025-01", Balance: amount(100)}}
	insights.Health = insight.HealthScore{Score: 72, Recommendations: []string{"Build an emergency fund"}}
	insights.Events = []insight.UpcomingEvent{
		{Id: "e2", Type: insight.DebtEvent, Description: "Loan", Amount: amount(200), Currency: money.ARS, Date: now.AddDate(0, 0, 10)},
		{Id: "e1", Type: insight.RecurringEvent, Description: "Rent", Amount: amount(500), Currency: money.ARS, Date: now.AddDate(0, 0, 2)},
	}
	insights.Recent = []insight.Transaction{{Id: "t1", Description: "Coffee", Amount: amount(5), Type: insight.Expense, Currency: money.ARS, Date: now}}
	insights.Spending = []insight.CategorySpending{
		{CategoryId: "c1", CategoryName: "Food", Amount: amount(250)},
		{CategoryId: "c2", CategoryName: "Rent", Amount: amount(750)},
	}

	return stubs{
		accounts: account.NewClientStub(
			account.Account{Id: "a1", Name: "Wallet", Type: account.Cash, Balance: amount(1000), Currency: money.ARS, IncludeInDashboardSummary: true},
			account.Account{Id: "a2", Name: "Savings", Type: account.Bank, Balance: amount(5000), Currency: money.USD},
		),
		investments: investment.NewClientStub(investment.Investment{
			Id:            "i1",
			Name:          "GGAL",
			Type:          investment.Stocks,
			Currency:      money.ARS,
			Quantity:      decimal.NewNullDecimal(amount(10)),
			PurchasePrice: decimal.NewNullDecimal(amount(100)),
			CurrentPrice:  decimal.NewNullDecimal(amount(120)),
		}),
		insights: insights,
		goals: goal.NewClientStub(
			goal.Goal{Id: "g1", Name: "House", TargetAmount: amount(300000), CurrentAmount: amount(75000), Currency: money.ARS, Status: goal.Active},
			goal.Goal{Id: "g2", Name: "Old", TargetAmount: amount(10), Currency: money.ARS, Status: goal.Cancelled},
		),
	}
}

func newTestAggregator(s stubs) *Aggregator {
	return NewAggregator(NewSources(s.clients(), testConfig()), testConfig())
}

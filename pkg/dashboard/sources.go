package dashboard

import (
	"context"

	"github.com/finboard/finboard/internal/config"
	"github.com/finboard/finboard/pkg/account"
	"github.com/finboard/finboard/pkg/goal"
	"github.com/finboard/finboard/pkg/insight"
	"github.com/finboard/finboard/pkg/investment"
)

// SourceName identifies one of the independent requests the dashboard is built from.
type SourceName string

const (
	SourceAccounts               SourceName = "accounts"
	SourceInvestmentHighlights   SourceName = "investmentHighlights"
	SourceMonthlyFinancialStatus SourceName = "monthlyFinancialStatus"
	SourceBalanceSummary         SourceName = "balanceSummary"
	SourceGlobalBudgetStatus     SourceName = "globalBudgetStatus"
	SourceBalanceTrend           SourceName = "balanceTrend"
	SourceFinancialHealth        SourceName = "financialHealth"
	SourceUpcomingEvents         SourceName = "upcomingEvents"
	SourceRecentTransactions     SourceName = "recentTransactions"
	SourceSpendingByCategory     SourceName = "spendingByCategory"
	SourceActiveGoals            SourceName = "activeGoals"
)

const spendingPeriod = "month"

// Data holds the payload of every source. A source that failed keeps its zero value.
type Data struct {
	Accounts               []account.Account          `json:"accounts"`
	InvestmentHighlights   *investment.Highlights     `json:"investmentHighlights"`
	MonthlyFinancialStatus *insight.MonthlyStatus     `json:"monthlyFinancialStatus"`
	BalanceSummary         *insight.BalanceSummary    `json:"balanceSummary"`
	GlobalBudgetStatus     *insight.BudgetStatus      `json:"globalBudgetStatus"`
	BalanceTrend           []insight.TrendPoint       `json:"balanceTrend"`
	FinancialHealth        *insight.HealthScore       `json:"financialHealth"`
	UpcomingEvents         []insight.UpcomingEvent    `json:"upcomingEvents"`
	RecentTransactions     []insight.Transaction      `json:"recentTransactions"`
	SpendingByCategory     []insight.CategorySpending `json:"spendingByCategory"`
	ActiveGoals            []goal.Goal                `json:"activeGoals"`
}

// Clients are the finance API clients the sources read from.
type Clients struct {
	Accounts    account.Client
	Investments investment.Client
	Insights    insight.Client
	Goals       goal.Client
}

// Source is one aggregator request. Fetch stores its payload in the Data field
// owned by the source, so sources can run concurrently on the same Data.
type Source struct {
	Name       SourceName
	LoadingKey string
	Fetch      func(ctx context.Context, into *Data) error
}

// NewSources returns the dashboard sources in declaration order.
func NewSources(c Clients, cfg config.Dashboard) []Source {
	return []Source{
		{SourceAccounts, "accounts", func(ctx context.Context, into *Data) (err error) {
			into.Accounts, err = c.Accounts.List(ctx)
			return err
		}},
		{SourceInvestmentHighlights, "investments", func(ctx context.Context, into *Data) error {
			return assign(&into.InvestmentHighlights)(c.Investments.Highlights(ctx))
		}},
		{SourceMonthlyFinancialStatus, "monthlyStatus", func(ctx context.Context, into *Data) error {
			return assign(&into.MonthlyFinancialStatus)(c.Insights.MonthlyStatus(ctx))
		}},
		{SourceBalanceSummary, "summary", func(ctx context.Context, into *Data) error {
			return assign(&into.BalanceSummary)(c.Insights.BalanceSummary(ctx))
		}},
		{SourceGlobalBudgetStatus, "budget", func(ctx context.Context, into *Data) error {
			return assign(&into.GlobalBudgetStatus)(c.Insights.BudgetStatus(ctx))
		}},
		{SourceBalanceTrend, "trend", func(ctx context.Context, into *Data) (err error) {
			into.BalanceTrend, err = c.Insights.BalanceTrend(ctx, cfg.TrendMonths)
			return err
		}},
		{SourceFinancialHealth, "health", func(ctx context.Context, into *Data) error {
			return assign(&into.FinancialHealth)(c.Insights.FinancialHealth(ctx))
		}},
		{SourceUpcomingEvents, "events", func(ctx context.Context, into *Data) (err error) {
			into.UpcomingEvents, err = c.Insights.UpcomingEvents(ctx, cfg.UpcomingDays)
			return err
		}},
		{SourceRecentTransactions, "transactions", func(ctx context.Context, into *Data) (err error) {
			into.RecentTransactions, err = c.Insights.RecentTransactions(ctx, cfg.RecentTransactions)
			return err
		}},
		{SourceSpendingByCategory, "spending", func(ctx context.Context, into *Data) (err error) {
			into.SpendingByCategory, err = c.Insights.SpendingByCategory(ctx, spendingPeriod)
			return err
		}},
		{SourceActiveGoals, "goals", func(ctx context.Context, into *Data) (err error) {
			into.ActiveGoals, err = c.Goals.List(ctx, goal.Active)
			return err
		}},
	}
}

// assign stores a successfully fetched object payload behind dst.
func assign[T any](dst **T) func(T, error) error {
	return func(value T, err error) error {
		if err != nil {
			return err
		}
		*dst = &value
		return nil
	}
}

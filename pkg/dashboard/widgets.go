package dashboard

import (
	"cmp"
	"slices"

	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/account"
	"github.com/finboard/finboard/pkg/goal"
	"github.com/finboard/finboard/pkg/insight"
	"github.com/finboard/finboard/pkg/investment"
	"github.com/finboard/finboard/pkg/money"
	"github.com/shopspring/decimal"
)

const (
	BalanceOverview      WidgetId = "balanceOverview"
	MonthlyStatus        WidgetId = "monthlyStatus"
	BudgetStatus         WidgetId = "budgetStatus"
	BalanceTrend         WidgetId = "balanceTrend"
	FinancialHealth      WidgetId = "financialHealth"
	UpcomingPayments     WidgetId = "upcomingPayments"
	RecentTransactions   WidgetId = "recentTransactions"
	SpendingChart        WidgetId = "spendingChart"
	SavingsGoals         WidgetId = "savingsGoals"
	InvestmentHighlights WidgetId = "investmentHighlights"
	AccountsList         WidgetId = "accountsList"
)

type BalanceOverviewProps struct {
	Balances           insight.Balances     `json:"balances"`
	TotalARS           decimal.Decimal      `json:"totalARS"`
	TotalARSFormatted  string               `json:"totalARSFormatted"`
	ConversionRateUsed decimal.Decimal      `json:"conversionRateUsed"`
	RateMonthYear      string               `json:"rateMonthYear,omitempty"`
	SummaryAccounts    []account.AccountDTO `json:"summaryAccounts"`
}

type MonthlyStatusProps struct {
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	Net         decimal.Decimal `json:"net"`
	SavingsRate decimal.Decimal `json:"savingsRate"`
	Currency    money.Currency  `json:"currency"`
}

type BudgetStatusProps struct {
	Budgeted       decimal.Decimal `json:"budgeted"`
	Spent          decimal.Decimal `json:"spent"`
	Remaining      decimal.Decimal `json:"remaining"`
	UsedPercentage decimal.Decimal `json:"usedPercentage"`
	ProgressClass  string          `json:"progressClass"`
	OverBudget     bool            `json:"overBudget"`
}

type BalanceTrendProps struct {
	Points []insight.TrendPoint `json:"points"`
}

type FinancialHealthProps struct {
	Score           int      `json:"score"`
	Level           string   `json:"level"`
	Recommendations []string `json:"recommendations"`
}

// UpcomingPayment is an upcoming event with the days left until it is due.
type UpcomingPayment struct {
	insight.UpcomingEvent
	DaysUntil int `json:"daysUntil"`
}

type UpcomingPaymentsProps struct {
	Payments []UpcomingPayment `json:"payments"`
}

type RecentTransactionsProps struct {
	Transactions []insight.Transaction `json:"transactions"`
}

// CategoryShare is a spending category with its share of the month total.
type CategoryShare struct {
	insight.CategorySpending
	Percentage decimal.Decimal `json:"percentage"`
}

type SpendingChartProps struct {
	Total      decimal.Decimal `json:"total"`
	Categories []CategoryShare `json:"categories"`
}

type GoalProgress struct {
	Id            string          `json:"id"`
	Name          string          `json:"name"`
	Currency      money.Currency  `json:"currency"`
	Current       decimal.Decimal `json:"current"`
	Target        decimal.Decimal `json:"target"`
	Remaining     decimal.Decimal `json:"remaining"`
	Progress      decimal.Decimal `json:"progress"`
	ProgressClass string          `json:"progressClass"`
	DaysLeft      *int            `json:"daysLeft,omitempty"`
}

type SavingsGoalsProps struct {
	Goals []GoalProgress `json:"goals"`
}

type InvestmentHighlightsProps struct {
	investment.Highlights
}

type AccountsListProps struct {
	Accounts []account.AccountDTO `json:"accounts"`
}

// DefaultRegistry is the widget catalogue in its default dashboard order.
func DefaultRegistry() *Registry {
	registry, err := NewRegistry(
		NewWidget(BalanceOverview, "Balance general", true, []SourceName{SourceBalanceSummary, SourceAccounts}, selectBalanceOverview),
		NewWidget(MonthlyStatus, "Estado del mes", true, []SourceName{SourceMonthlyFinancialStatus}, selectMonthlyStatus),
		NewWidget(BudgetStatus, "Presupuesto global", true, []SourceName{SourceGlobalBudgetStatus}, selectBudgetStatus),
		NewWidget(BalanceTrend, "Evolución del balance", true, []SourceName{SourceBalanceTrend}, selectBalanceTrend),
		NewWidget(FinancialHealth, "Salud financiera", true, []SourceName{SourceFinancialHealth}, selectFinancialHealth),
		NewWidget(UpcomingPayments, "Próximos pagos", true, []SourceName{SourceUpcomingEvents}, selectUpcomingPayments),
		NewWidget(RecentTransactions, "Últimas transacciones", true, []SourceName{SourceRecentTransactions}, selectRecentTransactions),
		NewWidget(SpendingChart, "Gastos por categoría", true, []SourceName{SourceSpendingByCategory}, selectSpendingChart),
		NewWidget(SavingsGoals, "Metas de ahorro", true, []SourceName{SourceActiveGoals}, selectSavingsGoals),
		NewWidget(InvestmentHighlights, "Inversiones destacadas", false, []SourceName{SourceInvestmentHighlights}, selectInvestmentHighlights),
		NewWidget(AccountsList, "Cuentas", false, []SourceName{SourceAccounts}, selectAccountsList),
	)
	if err != nil {
		panic(err)
	}
	return registry
}

func selectBalanceOverview(wc WidgetContext) (BalanceOverviewProps, bool) {
	summary := wc.Result.Data.BalanceSummary
	if summary == nil {
		return BalanceOverviewProps{}, false
	}
	selected := account.SummaryAccounts(wc.Result.Data.Accounts, wc.PinnedAccounts)
	dtos := make([]account.AccountDTO, 0, len(selected))
	for _, a := range selected {
		dtos = append(dtos, account.ToDTO(a))
	}
	return BalanceOverviewProps{
		Balances:           summary.Balances,
		TotalARS:           summary.TotalBalanceARSConverted,
		TotalARSFormatted:  money.Format(summary.TotalBalanceARSConverted, money.ARS),
		ConversionRateUsed: summary.ConversionRateUsed,
		RateMonthYear:      summary.RateMonthYear,
		SummaryAccounts:    dtos,
	}, true
}

func selectMonthlyStatus(wc WidgetContext) (MonthlyStatusProps, bool) {
	status := wc.Result.Data.MonthlyFinancialStatus
	if status == nil || status.IsEmpty() {
		return MonthlyStatusProps{}, false
	}
	return MonthlyStatusProps{
		Income:      status.Income,
		Expenses:    status.Expenses,
		Net:         status.Net(),
		SavingsRate: status.SavingsRate(),
		Currency:    status.Currency,
	}, true
}

func selectBudgetStatus(wc WidgetContext) (BudgetStatusProps, bool) {
	budget := wc.Result.Data.GlobalBudgetStatus
	if budget == nil || budget.IsEmpty() {
		return BudgetStatusProps{}, false
	}
	used := budget.UsedPercentage()
	return BudgetStatusProps{
		Budgeted:       budget.TotalBudgeted,
		Spent:          budget.TotalSpent,
		Remaining:      budget.Remaining(),
		UsedPercentage: used,
		ProgressClass:  money.ProgressClass(used),
		OverBudget:     budget.Remaining().IsNegative(),
	}, true
}

func selectBalanceTrend(wc WidgetContext) (BalanceTrendProps, bool) {
	points := slices.Clone(wc.Result.Data.BalanceTrend)
	slices.SortStableFunc(points, func(a, b insight.TrendPoint) int {
		return cmp.Compare(a.Month, b.Month)
	})
	return BalanceTrendProps{Points: points}, len(points) > 0
}

func selectFinancialHealth(wc WidgetContext) (FinancialHealthProps, bool) {
	health := wc.Result.Data.FinancialHealth
	if health == nil {
		return FinancialHealthProps{}, false
	}
	level := health.Level
	if level == "" {
		level = insight.LevelFor(health.Score)
	}
	recommendations := health.Recommendations
	if recommendations == nil {
		recommendations = []string{}
	}
	return FinancialHealthProps{
		Score:           health.Score,
		Level:           level,
		Recommendations: recommendations,
	}, true
}

func selectUpcomingPayments(wc WidgetContext) (UpcomingPaymentsProps, bool) {
	payments := make([]UpcomingPayment, 0, len(wc.Result.Data.UpcomingEvents))
	for _, e := range wc.Result.Data.UpcomingEvents {
		payments = append(payments, UpcomingPayment{UpcomingEvent: e, DaysUntil: utils.DaysBetween(wc.Now, e.Date)})
	}
	slices.SortStableFunc(payments, func(a, b UpcomingPayment) int {
		return a.Date.Compare(b.Date)
	})
	return UpcomingPaymentsProps{Payments: payments}, len(payments) > 0
}

func selectRecentTransactions(wc WidgetContext) (RecentTransactionsProps, bool) {
	transactions := wc.Result.Data.RecentTransactions
	return RecentTransactionsProps{Transactions: transactions}, len(transactions) > 0
}

func selectSpendingChart(wc WidgetContext) (SpendingChartProps, bool) {
	total := decimal.Zero
	for _, c := range wc.Result.Data.SpendingByCategory {
		total = total.Add(c.Amount)
	}
	if !total.IsPositive() {
		return SpendingChartProps{}, false
	}
	categories := make([]CategoryShare, 0, len(wc.Result.Data.SpendingByCategory))
	for _, c := range wc.Result.Data.SpendingByCategory {
		categories = append(categories, CategoryShare{CategorySpending: c, Percentage: money.Percentage(c.Amount, total)})
	}
	slices.SortStableFunc(categories, func(a, b CategoryShare) int {
		return b.Amount.Cmp(a.Amount)
	})
	return SpendingChartProps{Total: total, Categories: categories}, true
}

func selectSavingsGoals(wc WidgetContext) (SavingsGoalsProps, bool) {
	goals := make([]GoalProgress, 0, len(wc.Result.Data.ActiveGoals))
	for _, g := range wc.Result.Data.ActiveGoals {
		if g.Status != goal.Active {
			continue
		}
		goals = append(goals, GoalProgress{
			Id:            g.Id,
			Name:          g.Name,
			Currency:      g.Currency,
			Current:       g.CurrentAmount,
			Target:        g.TargetAmount,
			Remaining:     g.Remaining(),
			Progress:      g.Progress(),
			ProgressClass: g.ProgressClass(),
			DaysLeft:      g.DaysLeft(wc.Now),
		})
	}
	return SavingsGoalsProps{Goals: goals}, len(goals) > 0
}

func selectInvestmentHighlights(wc WidgetContext) (InvestmentHighlightsProps, bool) {
	highlights := wc.Result.Data.InvestmentHighlights
	if highlights == nil || highlights.IsEmpty() {
		return InvestmentHighlightsProps{}, false
	}
	return InvestmentHighlightsProps{Highlights: *highlights}, true
}

func selectAccountsList(wc WidgetContext) (AccountsListProps, bool) {
	accounts := make([]account.AccountDTO, 0, len(wc.Result.Data.Accounts))
	for _, a := range wc.Result.Data.Accounts {
		accounts = append(accounts, account.ToDTO(a))
	}
	return AccountsListProps{Accounts: accounts}, len(accounts) > 0
}

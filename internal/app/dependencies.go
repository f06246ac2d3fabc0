package app

import (
	"database/sql"

	"github.com/finboard/finboard/internal/config"
	"github.com/finboard/finboard/internal/event_bus"
	"github.com/finboard/finboard/internal/upstream"
	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/account"
	"github.com/finboard/finboard/pkg/dashboard"
	"github.com/finboard/finboard/pkg/debt"
	"github.com/finboard/finboard/pkg/exchange_rate"
	"github.com/finboard/finboard/pkg/goal"
	"github.com/finboard/finboard/pkg/insight"
	"github.com/finboard/finboard/pkg/investment"
	"github.com/finboard/finboard/pkg/market"
	"github.com/finboard/finboard/pkg/recurring"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus
	Upstream *upstream.Client

	AccountService account.Service
	AccountHandler *account.Handler

	GoalService goal.Service
	GoalHandler *goal.Handler

	DebtService debt.Service
	DebtHandler *debt.Handler

	InvestmentService investment.Service
	InvestmentHandler *investment.Handler

	RecurringService recurring.Service
	RecurringHandler *recurring.Handler

	ExchangeRateHandler *exchange_rate.Handler
	MarketHandler       *market.Handler

	WidgetRegistry   *dashboard.Registry
	SnapshotStore    *dashboard.SnapshotStore
	LayoutRepository dashboard.LayoutRepository
	LayoutService    dashboard.LayoutService
	DashboardService dashboard.Service
	DashboardHandler *dashboard.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) (*Dependencies, error) {
	api, err := upstream.NewClient(cfg.Upstream)
	if err != nil {
		return nil, err
	}
	deps := &Dependencies{
		Clock:    &utils.SystemClock{},
		EventBus: event_bus.NewEventBus(),
		Upstream: api,
	}

	accounts := account.NewClient(api)
	deps.AccountService = account.NewService(accounts, deps.EventBus)
	deps.AccountHandler = account.NewHandler(deps.AccountService)

	goals := goal.NewClient(api)
	deps.GoalService = goal.NewService(goals, deps.EventBus)
	deps.GoalHandler = goal.NewHandler(deps.GoalService, deps.Clock)

	deps.DebtService = debt.NewService(debt.NewClient(api), deps.EventBus)
	deps.DebtHandler = debt.NewHandler(deps.DebtService, deps.Clock)

	investments := investment.NewClient(api)
	deps.InvestmentService = investment.NewService(investments, deps.EventBus)
	deps.InvestmentHandler = investment.NewHandler(deps.InvestmentService)

	deps.RecurringService = recurring.NewService(recurring.NewClient(api), deps.EventBus)
	deps.RecurringHandler = recurring.NewHandler(deps.RecurringService, deps.Clock)

	deps.ExchangeRateHandler = exchange_rate.NewHandler(exchange_rate.NewClient(api))
	deps.MarketHandler = market.NewHandler(market.NewClient(api))

	sources := dashboard.NewSources(dashboard.Clients{
		Accounts:    accounts,
		Investments: investments,
		Insights:    insight.NewClient(api),
		Goals:       goals,
	}, cfg.Dashboard)
	deps.WidgetRegistry = dashboard.DefaultRegistry()
	deps.SnapshotStore = dashboard.NewSnapshotStore(cfg.Dashboard, deps.Clock)
	deps.SnapshotStore.InvalidateOn(deps.EventBus)
	deps.LayoutRepository = dashboard.NewLayoutRepository(db, cfg.Database.Driver)
	deps.LayoutService = dashboard.NewLayoutService(deps.LayoutRepository, deps.WidgetRegistry, deps.EventBus, deps.Clock)
	deps.DashboardService = dashboard.NewService(
		dashboard.NewAggregator(sources, cfg.Dashboard),
		deps.SnapshotStore,
		deps.LayoutService,
		deps.WidgetRegistry,
		deps.Clock,
	)
	deps.DashboardHandler = dashboard.NewHandler(deps.DashboardService, deps.LayoutService)

	return deps, nil
}

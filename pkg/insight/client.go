package insight

import (
	"context"
	"net/url"
	"strconv"

	"github.com/finboard/finboard/internal/upstream"
)

// Client reads the pre-aggregated dashboard endpoints of the finance API.
type Client interface {
	BalanceSummary(ctx context.Context) (BalanceSummary, error)
	MonthlyStatus(ctx context.Context) (MonthlyStatus, error)
	BudgetStatus(ctx context.Context) (BudgetStatus, error)
	BalanceTrend(ctx context.Context, months int) ([]TrendPoint, error)
	FinancialHealth(ctx context.Context) (HealthScore, error)
	UpcomingEvents(ctx context.Context, days int) ([]UpcomingEvent, error)
	RecentTransactions(ctx context.Context, limit int) ([]Transaction, error)
	SpendingByCategory(ctx context.Context, period string) ([]CategorySpending, error)
}

type ClientImpl struct {
	api *upstream.Client
}

func NewClient(api *upstream.Client) *ClientImpl {
	return &ClientImpl{api: api}
}

func get[T any](ctx context.Context, api *upstream.Client, path string, query url.Values) (T, error) {
	var out T
	if err := api.Get(ctx, "/dashboard/"+path, query, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func list[T any](ctx context.Context, api *upstream.Client, path string, query url.Values) ([]T, error) {
	items, err := get[[]T](ctx, api, path, query)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *ClientImpl) BalanceSummary(ctx context.Context) (BalanceSummary, error) {
	return get[BalanceSummary](ctx, c.api, "summary", nil)
}

func (c *ClientImpl) MonthlyStatus(ctx context.Context) (MonthlyStatus, error) {
	return get[MonthlyStatus](ctx, c.api, "monthly-status", nil)
}

func (c *ClientImpl) BudgetStatus(ctx context.Context) (BudgetStatus, error) {
	return get[BudgetStatus](ctx, c.api, "budget-status", nil)
}

func (c *ClientImpl) BalanceTrend(ctx context.Context, months int) ([]TrendPoint, error) {
	return list[TrendPoint](ctx, c.api, "balance-trend", url.Values{"months": {strconv.Itoa(months)}})
}

func (c *ClientImpl) FinancialHealth(ctx context.Context) (HealthScore, error) {
	return get[HealthScore](ctx, c.api, "financial-health", nil)
}

func (c *ClientImpl) UpcomingEvents(ctx context.Context, days int) ([]UpcomingEvent, error) {
	return list[UpcomingEvent](ctx, c.api, "upcoming-events", url.Values{"days": {strconv.Itoa(days)}})
}

func (c *ClientImpl) RecentTransactions(ctx context.Context, limit int) ([]Transaction, error) {
	return list[Transaction](ctx, c.api, "recent-transactions", url.Values{"limit": {strconv.Itoa(limit)}})
}

func (c *ClientImpl) SpendingByCategory(ctx context.Context, period string) ([]CategorySpending, error) {
	return list[CategorySpending](ctx, c.api, "spending-by-category", url.Values{"period": {period}})
}

package insight

import (
	"context"
	"sync"
)

// ClientStub returns fixed payloads. Errs makes the named method fail, keyed by
// method name ("BalanceSummary", "BalanceTrend", ...). Block makes every call
// wait for ctx to be done.
type ClientStub struct {
	mu       sync.Mutex
	Summary  BalanceSummary
	Monthly  MonthlyStatus
	Budget   BudgetStatus
	Trend    []TrendPoint
	Health   HealthScore
	Events   []UpcomingEvent
	Recent   []Transaction
	Spending []CategorySpending
	Errs     map[string]error
	Block    bool
	Calls    map[string]int
}

func NewClientStub() *ClientStub {
	return &ClientStub{Errs: map[string]error{}, Calls: map[string]int{}}
}

func (c *ClientStub) call(ctx context.Context, method string) error {
	c.mu.Lock()
	if c.Calls == nil {
		c.Calls = map[string]int{}
	}
	c.Calls[method]++
	err := c.Errs[method]
	block := c.Block
	c.mu.Unlock()

	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

func (c *ClientStub) CallCount(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Calls[method]
}

func (c *ClientStub) BalanceSummary(ctx context.Context) (BalanceSummary, error) {
	if err := c.call(ctx, "BalanceSummary"); err != nil {
		return BalanceSummary{}, err
	}
	return c.Summary, nil
}

func (c *ClientStub) MonthlyStatus(ctx context.Context) (MonthlyStatus, error) {
	if err := c.call(ctx, "MonthlyStatus"); err != nil {
		return MonthlyStatus{}, err
	}
	return c.Monthly, nil
}

func (c *ClientStub) BudgetStatus(ctx context.Context) (BudgetStatus, error) {
	if err := c.call(ctx, "BudgetStatus"); err != nil {
		return BudgetStatus{}, err
	}
	return c.Budget, nil
}

func (c *ClientStub) BalanceTrend(ctx context.Context, months int) ([]TrendPoint, error) {
	if err := c.call(ctx, "BalanceTrend"); err != nil {
		return nil, err
	}
	return c.Trend, nil
}

func (c *ClientStub) FinancialHealth(ctx context.Context) (HealthScore, error) {
	if err := c.call(ctx, "FinancialHealth"); err != nil {
		return HealthScore{}, err
	}
	return c.Health, nil
}

func (c *ClientStub) UpcomingEvents(ctx context.Context, days int) ([]UpcomingEvent, error) {
	if err := c.call(ctx, "UpcomingEvents"); err != nil {
		return nil, err
	}
	return c.Events, nil
}

func (c *ClientStub) RecentTransactions(ctx context.Context, limit int) ([]Transaction, error) {
	if err := c.call(ctx, "RecentTransactions"); err != nil {
		return nil, err
	}
	if limit < len(c.Recent) {
		return c.Recent[:limit], nil
	}
	return c.Recent, nil
}

func (c *ClientStub) SpendingByCategory(ctx context.Context, period string) ([]CategorySpending, error) {
	if err := c.call(ctx, "SpendingByCategory"); err != nil {
		return nil, err
	}
	return c.Spending, nil
}

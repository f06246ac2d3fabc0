package insight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finboard/finboard/internal/config"
	"github.com/finboard/finboard/internal/upstream"
	"github.com/finboard/finboard/pkg/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyStatus(t *testing.T) {
	m := MonthlyStatus{Income: decimal.NewFromInt(1000), Expenses: decimal.NewFromInt(750)}

	assert.Equal(t, "250", m.Net().String())
	assert.Equal(t, "25", m.SavingsRate().String())
	assert.False(t, m.IsEmpty())
	assert.True(t, MonthlyStatus{}.SavingsRate().IsZero())
}

func TestBudgetStatus(t *testing.T) {
	b := BudgetStatus{TotalBudgeted: decimal.NewFromInt(200), TotalSpent: decimal.NewFromInt(170)}

	assert.Equal(t, "30", b.Remaining().String())
	assert.Equal(t, "85", b.UsedPercentage().String())
	assert.True(t, BudgetStatus{}.IsEmpty())
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, "excellent", LevelFor(80))
	assert.Equal(t, "good", LevelFor(79))
	assert.Equal(t, "fair", LevelFor(40))
	assert.Equal(t, "poor", LevelFor(0))
}

func TestClientImpl(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.RequestURI())
		switch r.URL.Path {
		case "/api/dashboard/summary":
			_, _ = w.Write([]byte(`{"balances":{"ARS":"1000","USD":"10"},"totalBalanceARSConverted":"11000","conversionRateUsed":"1000","rateMonthYear":"03/2025"}`))
		case "/api/dashboard/balance-trend":
			_, _ = w.Write([]byte(`null`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "no data"})
		}
	}))
	defer server.Close()
	api, err := upstream.NewClient(config.Upstream{BaseURL: server.URL + "/api", Timeout: 5 * time.Second})
	require.NoError(t, err)
	client := NewClient(api)
	ctx := user.WithUid(context.Background(), "user-1")

	summary, err := client.BalanceSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "11000", summary.TotalBalanceARSConverted.String())
	assert.Equal(t, "10", summary.Balances.USD.String())

	trend, err := client.BalanceTrend(ctx, 6)
	require.NoError(t, err)
	assert.NotNil(t, trend)
	assert.Empty(t, trend)

	_, err = client.FinancialHealth(ctx)
	assert.True(t, upstream.IsNotFound(err))

	assert.Equal(t, []string{
		"/api/dashboard/summary",
		"/api/dashboard/balance-trend?months=6",
		"/api/dashboard/financial-health",
	}, paths)
}

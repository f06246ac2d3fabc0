package app

import (
	"net/http"

	"github.com/finboard/finboard/internal/rest"
	"github.com/finboard/finboard/pkg/user"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Dashboard
	r.HandleFunc("/api/dashboard", deps.DashboardHandler.GetDashboard).Methods("GET")
	r.HandleFunc("/api/dashboard/widgets", deps.DashboardHandler.ListWidgets).Methods("GET")
	r.HandleFunc("/api/dashboard/layout", deps.DashboardHandler.GetLayout).Methods("GET")
	r.HandleFunc("/api/dashboard/layout", deps.DashboardHandler.ResetLayout).Methods("DELETE")
	r.HandleFunc("/api/dashboard/layout/order", deps.DashboardHandler.Reorder).Methods("PUT")
	r.HandleFunc("/api/dashboard/layout/visible", deps.DashboardHandler.SaveVisibleWidgets).Methods("PUT")
	r.HandleFunc("/api/dashboard/layout/pinned-accounts", deps.DashboardHandler.SavePinnedAccounts).Methods("PUT")
	r.HandleFunc("/api/dashboard/layout/widgets/{widgetId}/position", deps.DashboardHandler.MoveWidget).Methods("PUT")

	// Accounts
	r.HandleFunc("/api/accounts", deps.AccountHandler.List).Methods("GET")
	r.HandleFunc("/api/accounts", deps.AccountHandler.Create).Methods("POST")
	r.HandleFunc("/api/accounts/{accountId}", deps.AccountHandler.Get).Methods("GET")
	r.HandleFunc("/api/accounts/{accountId}", deps.AccountHandler.Update).Methods("PUT")
	r.HandleFunc("/api/accounts/{accountId}", deps.AccountHandler.Delete).Methods("DELETE")

	// Savings goals
	r.HandleFunc("/api/goals", deps.GoalHandler.List).Methods("GET")
	r.HandleFunc("/api/goals", deps.GoalHandler.Create).Methods("POST")
	r.HandleFunc("/api/goals/{goalId}", deps.GoalHandler.Update).Methods("PUT")
	r.HandleFunc("/api/goals/{goalId}", deps.GoalHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/goals/{goalId}/progress", deps.GoalHandler.AddProgress).Methods("POST")

	// Debts and loans
	r.HandleFunc("/api/debts", deps.DebtHandler.List).Methods("GET")
	r.HandleFunc("/api/debts", deps.DebtHandler.Create).Methods("POST")
	r.HandleFunc("/api/debts/{debtId}", deps.DebtHandler.Update).Methods("PUT")
	r.HandleFunc("/api/debts/{debtId}", deps.DebtHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/debts/{debtId}/payments", deps.DebtHandler.RegisterPayment).Methods("POST")

	// Investments
	r.HandleFunc("/api/investments", deps.InvestmentHandler.List).Methods("GET")
	r.HandleFunc("/api/investments", deps.InvestmentHandler.Create).Methods("POST")
	r.HandleFunc("/api/investments/highlights", deps.InvestmentHandler.Highlights).Methods("GET")
	r.HandleFunc("/api/investments/{investmentId}", deps.InvestmentHandler.Update).Methods("PUT")
	r.HandleFunc("/api/investments/{investmentId}", deps.InvestmentHandler.Delete).Methods("DELETE")

	// Recurring transactions
	r.HandleFunc("/api/recurring", deps.RecurringHandler.List).Methods("GET")
	r.HandleFunc("/api/recurring", deps.RecurringHandler.Create).Methods("POST")
	r.HandleFunc("/api/recurring/{recurringId}", deps.RecurringHandler.Update).Methods("PUT")
	r.HandleFunc("/api/recurring/{recurringId}", deps.RecurringHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/recurring/{recurringId}/active", deps.RecurringHandler.SetActive).Methods("PATCH")

	// Exchange rates and market data
	r.HandleFunc("/api/exchange-rates/current", deps.ExchangeRateHandler.Current).Methods("GET")
	r.HandleFunc("/api/exchange-rates/convert", deps.ExchangeRateHandler.Convert).Methods("GET")
	r.HandleFunc("/api/exchange-rates", deps.ExchangeRateHandler.ForMonth).Methods("GET")
	r.HandleFunc("/api/market/symbols", deps.MarketHandler.SearchSymbols).Methods("GET")

	// User
	r.HandleFunc("/api/user/current", user.CurrentUserHandler).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		rest.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
}

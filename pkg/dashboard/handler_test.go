package dashboard

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter() *mux.Router {
	d := setupDashboard(newTestAggregator(newStubs()))
	handler := NewHandler(d.service, d.layouts)
	r := mux.NewRouter()
	r.HandleFunc("/api/dashboard", handler.GetDashboard).Methods("GET")
	r.HandleFunc("/api/dashboard/widgets", handler.ListWidgets).Methods("GET")
	r.HandleFunc("/api/dashboard/layout", handler.GetLayout).Methods("GET")
	r.HandleFunc("/api/dashboard/layout", handler.ResetLayout).Methods("DELETE")
	r.HandleFunc("/api/dashboard/layout/order", handler.Reorder).Methods("PUT")
	r.HandleFunc("/api/dashboard/layout/visible", handler.SaveVisibleWidgets).Methods("PUT")
	r.HandleFunc("/api/dashboard/layout/pinned-accounts", handler.SavePinnedAccounts).Methods("PUT")
	r.HandleFunc("/api/dashboard/layout/widgets/{widgetId}/position", handler.MoveWidget).Methods("PUT")
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func request(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	return httptest.NewRequest(method, target, &buf).WithContext(ctx)
}

func TestHandler_GetDashboard(t *testing.T) {
	t.Run("should return page with etag", func(t *testing.T) {
		r := setupRouter()

		w := serve(r, request(http.MethodGet, "/api/dashboard", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("ETag"))
		var page Page
		require.NoError(t, json.NewDecoder(w.Body).Decode(&page))
		assert.Len(t, page.Widgets, 9)
		assert.Equal(t, BalanceOverview, page.Widgets[0].Id)
		assert.Equal(t, StateReady, page.Widgets[0].State)
	})

	t.Run("should answer not modified for matching etag", func(t *testing.T) {
		r := setupRouter()
		etag := serve(r, request(http.MethodGet, "/api/dashboard", nil)).Header().Get("ETag")

		req := request(http.MethodGet, "/api/dashboard", nil)
		req.Header.Set("If-None-Match", "W/"+etag)
		w := serve(r, req)

		assert.Equal(t, http.StatusNotModified, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("should return page after layout change", func(t *testing.T) {
		r := setupRouter()
		etag := serve(r, request(http.MethodGet, "/api/dashboard", nil)).Header().Get("ETag")
		w := serve(r, request(http.MethodPut, "/api/dashboard/layout/order", ReorderRequest{ActiveId: BalanceOverview, OverId: SpendingChart}))
		require.Equal(t, http.StatusOK, w.Code)

		req := request(http.MethodGet, "/api/dashboard?refresh=true", nil)
		req.Header.Set("If-None-Match", etag)
		w = serve(r, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEqual(t, etag, w.Header().Get("ETag"))
	})

	t.Run("should return 403 without user", func(t *testing.T) {
		r := setupRouter()

		w := serve(r, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestHandler_ListWidgets(t *testing.T) {
	r := setupRouter()

	w := serve(r, request(http.MethodGet, "/api/dashboard/widgets", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var widgets []WidgetDefinition
	require.NoError(t, json.NewDecoder(w.Body).Decode(&widgets))
	assert.Len(t, widgets, 11)
	assert.Equal(t, BalanceOverview, widgets[0].Id)
}

func TestHandler_Layout(t *testing.T) {
	t.Run("should return default layout", func(t *testing.T) {
		r := setupRouter()

		w := serve(r, request(http.MethodGet, "/api/dashboard/layout", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var layout Layout
		require.NoError(t, json.NewDecoder(w.Body).Decode(&layout))
		assert.False(t, layout.Customized)
		assert.Len(t, layout.Order, 11)
	})

	t.Run("should move widget", func(t *testing.T) {
		r := setupRouter()

		w := serve(r, request(http.MethodPut, "/api/dashboard/layout/widgets/savingsGoals/position", PositionRequest{}))

		assert.Equal(t, http.StatusOK, w.Code)
		var layout Layout
		require.NoError(t, json.NewDecoder(w.Body).Decode(&layout))
		assert.Equal(t, SavingsGoals, layout.Order[0])
	})

	t.Run("should save visible widgets and pinned accounts", func(t *testing.T) {
		r := setupRouter()

		w := serve(r, request(http.MethodPut, "/api/dashboard/layout/visible", VisibleWidgetsRequest{WidgetIds: []WidgetId{AccountsList}}))
		require.Equal(t, http.StatusOK, w.Code)
		w = serve(r, request(http.MethodPut, "/api/dashboard/layout/pinned-accounts", PinnedAccountsRequest{AccountIds: []string{"a2"}}))
		require.Equal(t, http.StatusOK, w.Code)

		w = serve(r, request(http.MethodGet, "/api/dashboard", nil))
		var page Page
		require.NoError(t, json.NewDecoder(w.Body).Decode(&page))
		require.Len(t, page.Widgets, 1)
		assert.Equal(t, AccountsList, page.Widgets[0].Id)
		assert.Equal(t, []string{"a2"}, page.PinnedAccounts)
	})

	t.Run("should return 400 for unknown widget", func(t *testing.T) {
		r := setupRouter()

		w := serve(r, request(http.MethodPut, "/api/dashboard/layout/order", ReorderRequest{ActiveId: "nope", OverId: BalanceOverview}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should return 400 for malformed body", func(t *testing.T) {
		r := setupRouter()
		req := httptest.NewRequest(http.MethodPut, "/api/dashboard/layout/visible", bytes.NewBufferString("{")).WithContext(ctx)

		w := serve(r, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should reset layout", func(t *testing.T) {
		r := setupRouter()
		serve(r, request(http.MethodPut, "/api/dashboard/layout/order", ReorderRequest{ActiveId: BalanceOverview, OverId: SpendingChart}))

		w := serve(r, request(http.MethodDelete, "/api/dashboard/layout", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var layout Layout
		require.NoError(t, json.NewDecoder(w.Body).Decode(&layout))
		assert.Equal(t, DefaultRegistry().DefaultOrder(), layout.Order)
	})

	t.Run("should return 409 when layout keeps changing concurrently", func(t *testing.T) {
		d := setupDashboard(newTestAggregator(newStubs()))
		d.repo.StoreErr = ErrLayoutConflict
		handler := NewHandler(d.service, d.layouts)
		r := mux.NewRouter()
		r.HandleFunc("/api/dashboard/layout/order", handler.Reorder).Methods("PUT")

		w := serve(r, request(http.MethodPut, "/api/dashboard/layout/order", ReorderRequest{ActiveId: BalanceOverview, OverId: SpendingChart}))

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestMatchesETag(t *testing.T) {
	assert.True(t, matchesETag(`"a-b"`, `"a-b"`))
	assert.True(t, matchesETag(`"x", W/"a-b"`, `"a-b"`))
	assert.True(t, matchesETag(`*`, `"a-b"`))
	assert.False(t, matchesETag(``, `"a-b"`))
	assert.False(t, matchesETag(`"a-c"`, `"a-b"`))
}

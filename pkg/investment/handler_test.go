package investment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finboard/finboard/internal/event_bus"
	"github.com/finboard/finboard/internal/upstream"
	"github.com/finboard/finboard/pkg/user"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUid(context.Background(), "user-1")

func setupRouter(stub *ClientStub) (*mux.Router, *[]event_bus.FinanceDataChange) {
	bus := event_bus.NewEventBus()
	changes := &[]event_bus.FinanceDataChange{}
	event_bus.SubscribeTyped(bus, event_bus.FinanceDataChanged, func(e event_bus.TypedEvent[event_bus.FinanceDataChange]) error {
		*changes = append(*changes, e.Payload)
		return nil
	})
	handler := NewHandler(NewService(stub, bus))
	r := mux.NewRouter()
	r.HandleFunc("/api/investments", handler.List).Methods("GET")
	r.HandleFunc("/api/investments/highlights", handler.Highlights).Methods("GET")
	r.HandleFunc("/api/investments", handler.Create).Methods("POST")
	r.HandleFunc("/api/investments/{investmentId}", handler.Update).Methods("PUT")
	r.HandleFunc("/api/investments/{investmentId}", handler.Delete).Methods("DELETE")
	return r, changes
}

func serve(r http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf).WithContext(ctx)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_List(t *testing.T) {
	inv := stocks("GGAL", 10, 100, 120)
	inv.Id = "inv-1"
	r, _ := setupRouter(NewClientStub(inv))

	w := serve(r, http.MethodGet, "/api/investments", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var dtos []InvestmentDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dtos))
	require.Len(t, dtos, 1)
	assert.Equal(t, "Acciones", dtos[0].TypeLabel)
	assert.Equal(t, "20", dtos[0].Performance.ProfitPercentage.String())
}

func TestHandler_Create(t *testing.T) {
	t.Run("should create valid investment", func(t *testing.T) {
		r, changes := setupRouter(NewClientStub())

		w := serve(r, http.MethodPost, "/api/investments", stocks("GGAL", 10, 100, 120))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Len(t, *changes, 1)
	})

	t.Run("should reject fixed term without dates", func(t *testing.T) {
		r, changes := setupRouter(NewClientStub())

		w := serve(r, http.MethodPost, "/api/investments", Investment{Name: "PF", Type: FixedTerm, Currency: "ARS", AmountInvested: some(100), InterestRate: some(30)})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, *changes)
	})
}

func TestHandler_Highlights(t *testing.T) {
	t.Run("should return upstream failure as bad gateway", func(t *testing.T) {
		stub := NewClientStub()
		stub.HighlightsErr = errors.New("connection refused")
		r, _ := setupRouter(stub)

		w := serve(r, http.MethodGet, "/api/investments/highlights", nil)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("should pass through upstream client errors", func(t *testing.T) {
		stub := NewClientStub()
		stub.HighlightsErr = &upstream.APIError{Status: http.StatusUnprocessableEntity, Message: "bad"}
		r, _ := setupRouter(stub)

		w := serve(r, http.MethodGet, "/api/investments/highlights", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

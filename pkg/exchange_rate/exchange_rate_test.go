package exchange_rate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finboard/finboard/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var march = Rate{Month: 3, Year: 2025, Rate: decimal.NewFromInt(1000)}

func TestRate_Convert(t *testing.T) {
	t.Run("should convert USD to ARS", func(t *testing.T) {
		converted, err := march.Convert(decimal.NewFromFloat(12.5), money.USD, money.ARS)

		require.NoError(t, err)
		assert.Equal(t, "12500", converted.String())
	})

	t.Run("should convert ARS to USD", func(t *testing.T) {
		converted, err := march.Convert(decimal.NewFromInt(1234), money.ARS, money.USD)

		require.NoError(t, err)
		assert.Equal(t, "1.23", converted.String())
	})

	t.Run("should not convert same currency", func(t *testing.T) {
		converted, err := Rate{}.Convert(decimal.NewFromInt(5), money.ARS, money.ARS)

		require.NoError(t, err)
		assert.Equal(t, "5", converted.String())
	})

	t.Run("should fail without rate", func(t *testing.T) {
		_, err := Rate{Month: 1, Year: 2025}.Convert(decimal.NewFromInt(5), money.USD, money.ARS)

		assert.ErrorIs(t, err, ErrInvalidRate)
	})
}

func TestRate_Label(t *testing.T) {
	assert.Equal(t, "03/2025", march.Label())
}

func TestHandler(t *testing.T) {
	april := Rate{Month: 4, Year: 2025, Rate: decimal.NewFromInt(1100)}
	handler := NewHandler(NewClientStub(march, april))

	serve := func(h http.HandlerFunc, target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil).WithContext(context.Background())
		w := httptest.NewRecorder()
		h(w, req)
		return w
	}

	t.Run("should return latest rate as current", func(t *testing.T) {
		w := serve(handler.Current, "/api/exchange-rates/current")

		assert.Equal(t, http.StatusOK, w.Code)
		var rate Rate
		require.NoError(t, json.NewDecoder(w.Body).Decode(&rate))
		assert.Equal(t, 4, rate.Month)
	})

	t.Run("should return rate for month", func(t *testing.T) {
		w := serve(handler.ForMonth, "/api/exchange-rates?year=2025&month=3")

		assert.Equal(t, http.StatusOK, w.Code)
		var rate Rate
		require.NoError(t, json.NewDecoder(w.Body).Decode(&rate))
		assert.True(t, march.Rate.Equal(rate.Rate))
	})

	t.Run("should reject invalid month", func(t *testing.T) {
		w := serve(handler.ForMonth, "/api/exchange-rates?year=2025&month=13")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should return 404 for missing month", func(t *testing.T) {
		w := serve(handler.ForMonth, "/api/exchange-rates?year=2024&month=1")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("should convert amount at the current rate", func(t *testing.T) {
		w := serve(handler.Convert, "/api/exchange-rates/convert?amount=25.5&from=usd&to=ARS")

		assert.Equal(t, http.StatusOK, w.Code)
		var dto ConversionDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
		assert.True(t, decimal.NewFromInt(28050).Equal(dto.Converted), "got %s", dto.Converted)
		assert.Equal(t, "$ 28.050,00", dto.Formatted)
		assert.Equal(t, money.USD, dto.From)
		assert.Equal(t, 4, dto.Rate.Month)
	})

	t.Run("should reject unknown currency", func(t *testing.T) {
		w := serve(handler.Convert, "/api/exchange-rates/convert?amount=10&from=EUR&to=ARS")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should reject invalid amount", func(t *testing.T) {
		w := serve(handler.Convert, "/api/exchange-rates/convert?amount=ten&from=USD&to=ARS")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should return 404 without any rate", func(t *testing.T) {
		w := serve(NewHandler(NewClientStub()).Convert, "/api/exchange-rates/convert?amount=10&from=USD&to=ARS")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

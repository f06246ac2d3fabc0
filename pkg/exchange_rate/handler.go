package exchange_rate

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/finboard/finboard/internal/rest"
	"github.com/finboard/finboard/pkg/money"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type ConversionDTO struct {
	Amount    decimal.Decimal `json:"amount"`
	From      money.Currency  `json:"from"`
	To        money.Currency  `json:"to"`
	Converted decimal.Decimal `json:"converted"`
	Formatted string          `json:"formatted"`
	Rate      Rate            `json:"rate"`
}

type Handler struct {
	client Client
}

func NewHandler(client Client) *Handler {
	return &Handler{client: client}
}

// Current godoc
// @Summary Current ARS/USD exchange rate
// @Tags ExchangeRate
// @Produce json
// @Success 200 {object} Rate
// @Router /api/exchange-rates/current [get]
// @Security XUserId
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	rate, err := h.client.Current(r.Context())
	if err != nil {
		rest.WriteUpstreamError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rate)
}

// ForMonth godoc
// @Summary Exchange rate of a given month
// @Tags ExchangeRate
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} Rate
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/exchange-rates [get]
// @Security XUserId
func (h *Handler) ForMonth(w http.ResponseWriter, r *http.Request) {
	year, yearErr := strconv.Atoi(r.URL.Query().Get("year"))
	month, monthErr := strconv.Atoi(r.URL.Query().Get("month"))
	if yearErr != nil || monthErr != nil {
		rest.WriteError(w, http.StatusBadRequest, "year and month query parameters are required", "")
		return
	}
	if err := ValidatePeriod(year, month); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	log.Debugf("Fetching exchange rate for %02d/%d", month, year)
	rate, err := h.client.ForMonth(r.Context(), year, month)
	if err != nil {
		rest.WriteUpstreamError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rate)
}

// Convert godoc
// @Summary Convert an amount between ARS and USD at the current rate
// @Tags ExchangeRate
// @Produce json
// @Param amount query string true "Amount"
// @Param from query string true "ARS or USD"
// @Param to query string true "ARS or USD"
// @Success 200 {object} ConversionDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/exchange-rates/convert [get]
// @Security XUserId
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	amount, err := decimal.NewFromString(query.Get("amount"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "amount must be a number", err.Error())
		return
	}
	from, fromErr := money.ParseCurrency(query.Get("from"))
	to, toErr := money.ParseCurrency(query.Get("to"))
	if err := errors.Join(fromErr, toErr); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	rate, err := h.client.Current(r.Context())
	if err != nil {
		rest.WriteUpstreamError(w, err)
		return
	}
	converted, err := rate.Convert(amount, from, to)
	if err != nil {
		rest.WriteError(w, http.StatusBadGateway, err.Error(), "finance API returned an unusable rate")
		return
	}
	rest.WriteJSON(w, http.StatusOK, ConversionDTO{
		Amount:    amount,
		From:      from,
		To:        to,
		Converted: converted,
		Formatted: money.Format(converted, to),
		Rate:      rate,
	})
}

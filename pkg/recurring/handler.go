package recurring

import (
	"errors"
	"net/http"
	"time"

	"github.com/finboard/finboard/internal/rest"
	"github.com/finboard/finboard/internal/utils"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// upcomingRunsDays is how far ahead the run dates of a transaction are listed.
const upcomingRunsDays = 30

type RecurringTransactionDTO struct {
	RecurringTransaction
	IsDue        bool            `json:"isDue"`
	RunAfter     time.Time       `json:"runAfter"`
	SignedAmount decimal.Decimal `json:"signedAmount"`
	UpcomingRuns []time.Time     `json:"upcomingRuns"`
}

type Handler struct {
	service Service
	clock   utils.Clock
}

func NewHandler(service Service, clock utils.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

func (h *Handler) toDTO(t RecurringTransaction) RecurringTransactionDTO {
	now := h.clock.Now()
	upcoming := t.Upcoming(now, upcomingRunsDays)
	if upcoming == nil {
		upcoming = []time.Time{}
	}
	return RecurringTransactionDTO{
		RecurringTransaction: t,
		IsDue:                t.IsDue(now),
		RunAfter:             t.Frequency.Advance(t.NextRunDate),
		SignedAmount:         t.SignedAmount(),
		UpcomingRuns:         upcoming,
	}
}

// List godoc
// @Summary List recurring transactions
// @Tags Recurring
// @Produce json
// @Success 200 {array} RecurringTransactionDTO
// @Router /api/recurring [get]
// @Security XUserId
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing recurring transactions")
	transactions, err := h.service.List(r.Context())
	if err != nil {
		rest.WriteUpstreamError(w, err)
		return
	}
	dtos := make([]RecurringTransactionDTO, 0, len(transactions))
	for _, t := range transactions {
		dtos = append(dtos, h.toDTO(t))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Create godoc
// @Summary Create a recurring transaction
// @Tags Recurring
// @Accept json
// @Produce json
// @Param transaction body RecurringTransaction true "Recurring transaction"
// @Success 201 {object} RecurringTransactionDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/recurring [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var t RecurringTransaction
	if !rest.DecodeJSON(w, r, &t) {
		return
	}
	created, err := h.service.Create(r.Context(), t)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, h.toDTO(created))
}

// Update godoc
// @Summary Update a recurring transaction
// @Tags Recurring
// @Accept json
// @Produce json
// @Param recurringId path string true "Recurring transaction ID"
// @Param transaction body RecurringTransaction true "Recurring transaction"
// @Success 200 {object} RecurringTransactionDTO
// @Router /api/recurring/{recurringId} [put]
// @Security XUserId
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var t RecurringTransaction
	if !rest.DecodeJSON(w, r, &t) {
		return
	}
	recurringId := mux.Vars(r)["recurringId"]
	if t.Id != "" && t.Id != recurringId {
		rest.WriteError(w, http.StatusBadRequest, "Invalid recurring transaction id in request body", "")
		return
	}
	t.Id = recurringId
	updated, err := h.service.Update(r.Context(), t)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.toDTO(updated))
}

// Delete godoc
// @Summary Delete a recurring transaction
// @Tags Recurring
// @Param recurringId path string true "Recurring transaction ID"
// @Success 204 "No Content"
// @Router /api/recurring/{recurringId} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["recurringId"]); err != nil {
		rest.WriteUpstreamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetActive godoc
// @Summary Pause or resume a recurring transaction
// @Tags Recurring
// @Accept json
// @Produce json
// @Param recurringId path string true "Recurring transaction ID"
// @Param active body ActiveRequest true "Active flag"
// @Success 200 {object} RecurringTransactionDTO
// @Router /api/recurring/{recurringId}/active [patch]
// @Security XUserId
func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req ActiveRequest
	if !rest.DecodeJSON(w, r, &req) {
		return
	}
	updated, err := h.service.SetActive(r.Context(), mux.Vars(r)["recurringId"], req.IsActive)
	if err != nil {
		rest.WriteUpstreamError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.toDTO(updated))
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidRecurring) {
		rest.WriteError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	rest.WriteUpstreamError(w, err)
}

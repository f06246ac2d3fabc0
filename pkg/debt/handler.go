package debt

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

type DebtDTO struct {
	DebtAndLoan
	Remaining        decimal.Decimal `json:"remaining"`
	PaidPercentage   decimal.Decimal `json:"paidPercentage"`
	DisplayStatus    Status          `json:"displayStatus"`
	InstallmentsLeft *int            `json:"installmentsLeft,omitempty"`
	NextInstallment  *time.Time      `json:"nextInstallment,omitempty"`
	Overdue          bool            `json:"overdue"`
}

type Handler struct {
	service Service
	clock   utils.Clock
}

func NewHandler(service Service, clock utils.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

func (h *Handler) toDTO(d DebtAndLoan) DebtDTO {
	now := h.clock.Now()
	return DebtDTO{
		DebtAndLoan:      d,
		Remaining:        d.Remaining(),
		PaidPercentage:   d.PaidPercentage(),
		DisplayStatus:    d.DisplayStatus(),
		InstallmentsLeft: d.InstallmentsLeft(),
		NextInstallment:  d.NextInstallmentDate(now),
		Overdue:          d.IsOverdue(now),
	}
}

// List godoc
// @Summary List debts and loans
// @Tags Debt
// @Produce json
// @Param type query string false "debt or loan"
// @Success 200 {array} DebtDTO
// @Router /api/debts [get]
// @Security XUserId
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing debts and loans")
	debts, err := h.service.List(r.Context(), Type(r.URL.Query().Get("type")))
	if err != nil {
		rest.WriteUpstreamError(w, err)
		return
	}
	dtos := make([]DebtDTO, 0, len(debts))
	for _, d := range debts {
		dtos = append(dtos, h.toDTO(d))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Create godoc
// @Summary Create a debt or loan
// @Tags Debt
// @Accept json
// @Produce json
// @Param debt body DebtAndLoan true "Debt or loan"
// @Success 201 {object} DebtDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/debts [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var d DebtAndLoan
	if !rest.DecodeJSON(w, r, &d) {
		return
	}
	created, err := h.service.Create(r.Context(), d)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, h.toDTO(created))
}

// Update godoc
// @Summary Update a debt or loan
// @Tags Debt
// @Accept json
// @Produce json
// @Param debtId path string true "Debt ID"
// @Param debt body DebtAndLoan true "Debt or loan"
// @Success 200 {object} DebtDTO
// @Router /api/debts/{debtId} [put]
// @Security XUserId
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var d DebtAndLoan
	if !rest.DecodeJSON(w, r, &d) {
		return
	}
	debtId := mux.Vars(r)["debtId"]
	if d.Id != "" && d.Id != debtId {
		rest.WriteError(w, http.StatusBadRequest, "Invalid debt id in request body", "")
		return
	}
	d.Id = debtId
	updated, err := h.service.Update(r.Context(), d)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.toDTO(updated))
}

// Delete godoc
// @Summary Delete a debt or loan
// @Tags Debt
// @Param debtId path string true "Debt ID"
// @Success 204 "No Content"
// @Router /api/debts/{debtId} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["debtId"]); err != nil {
		rest.WriteUpstreamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RegisterPayment godoc
// @Summary Register a payment on a debt or loan
// @Tags Debt
// @Accept json
// @Produce json
// @Param debtId path string true "Debt ID"
// @Param payment body PaymentRequest true "Payment"
// @Success 200 {object} DebtDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/debts/{debtId}/payments [post]
// @Security XUserId
func (h *Handler) RegisterPayment(w http.ResponseWriter, r *http.Request) {
	var payment PaymentRequest
	if !rest.DecodeJSON(w, r, &payment) {
		return
	}
	updated, err := h.service.RegisterPayment(r.Context(), mux.Vars(r)["debtId"], payment)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.toDTO(updated))
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidDebt) || errors.Is(err, ErrInvalidPayment) {
		rest.WriteError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	rest.WriteUpstreamError(w, err)
}

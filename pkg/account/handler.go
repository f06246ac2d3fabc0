package account

import (
	"errors"
	"net/http"

	"github.com/finboard/finboard/internal/rest"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// AccountDTO is the account as returned to the frontend, with display helpers filled in.
type AccountDTO struct {
	Account
	TypeLabel       string           `json:"typeLabel"`
	AvailableCredit *decimal.Decimal `json:"availableCredit,omitempty"`
}

func ToDTO(a Account) AccountDTO {
	dto := AccountDTO{Account: a, TypeLabel: a.Type.Label()}
	if a.IsCreditCard() {
		available := a.AvailableCredit()
		dto.AvailableCredit = &available
	}
	return dto
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List accounts
// @Tags Account
// @Produce json
// @Success 200 {array} AccountDTO
// @Router /api/accounts [get]
// @Security XUserId
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing accounts")
	accounts, err := h.service.List(r.Context())
	if err != nil {
		rest.WriteUpstreamError(w, err)
		return
	}
	dtos := make([]AccountDTO, 0, len(accounts))
	for _, a := range accounts {
		dtos = append(dtos, ToDTO(a))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Get godoc
// @Summary Get an account
// @Tags Account
// @Produce json
// @Param accountId path string true "Account ID"
// @Success 200 {object} AccountDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/accounts/{accountId} [get]
// @Security XUserId
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Get(r.Context(), mux.Vars(r)["accountId"])
	if err != nil {
		rest.WriteUpstreamError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTO(a))
}

// Create godoc
// @Summary Create an account
// @Tags Account
// @Accept json
// @Produce json
// @Param account body Account true "Account"
// @Success 201 {object} AccountDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/accounts [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating account")
	var a Account
	if !rest.DecodeJSON(w, r, &a) {
		return
	}
	created, err := h.service.Create(r.Context(), a)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, ToDTO(created))
}

// Update godoc
// @Summary Update an account
// @Tags Account
// @Accept json
// @Produce json
// @Param accountId path string true "Account ID"
// @Param account body Account true "Account"
// @Success 200 {object} AccountDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/accounts/{accountId} [put]
// @Security XUserId
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var a Account
	if !rest.DecodeJSON(w, r, &a) {
		return
	}
	accountId := mux.Vars(r)["accountId"]
	if a.Id != "" && a.Id != accountId {
		rest.WriteError(w, http.StatusBadRequest, "Invalid account id in request body", "")
		return
	}
	a.Id = accountId
	updated, err := h.service.Update(r.Context(), a)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTO(updated))
}

// Delete godoc
// @Summary Delete an account
// @Tags Account
// @Param accountId path string true "Account ID"
// @Success 204 "No Content"
// @Router /api/accounts/{accountId} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["accountId"]); err != nil {
		rest.WriteUpstreamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidAccount) {
		rest.WriteError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	rest.WriteUpstreamError(w, err)
}

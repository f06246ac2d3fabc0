package investment

import (
	"errors"
	"net/http"

	"github.com/finboard/finboard/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type InvestmentDTO struct {
	Investment
	TypeLabel   string      `json:"typeLabel"`
	Performance Performance `json:"performance"`
}

func ToDTO(i Investment) InvestmentDTO {
	return InvestmentDTO{
		Investment:  i,
		TypeLabel:   i.Type.Label(),
		Performance: i.Performance(),
	}
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List investments with their performance
// @Tags Investment
// @Produce json
// @Success 200 {array} InvestmentDTO
// @Router /api/investments [get]
// @Security XUserId
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing investments")
	investments, err := h.service.List(r.Context())
	if err != nil {
		rest.WriteUpstreamError(w, err)
		return
	}
	dtos := make([]InvestmentDTO, 0, len(investments))
	for _, i := range investments {
		dtos = append(dtos, ToDTO(i))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Highlights godoc
// @Summary Portfolio highlights
// @Tags Investment
// @Produce json
// @Success 200 {object} Highlights
// @Router /api/investments/highlights [get]
// @Security XUserId
func (h *Handler) Highlights(w http.ResponseWriter, r *http.Request) {
	highlights, err := h.service.Highlights(r.Context())
	if err != nil {
		rest.WriteUpstreamError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, highlights)
}

// Create godoc
// @Summary Create an investment
// @Tags Investment
// @Accept json
// @Produce json
// @Param investment body Investment true "Investment"
// @Success 201 {object} InvestmentDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/investments [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var i Investment
	if !rest.DecodeJSON(w, r, &i) {
		return
	}
	created, err := h.service.Create(r.Context(), i)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, ToDTO(created))
}

// Update godoc
// @Summary Update an investment
// @Tags Investment
// @Accept json
// @Produce json
// @Param investmentId path string true "Investment ID"
// @Param investment body Investment true "Investment"
// @Success 200 {object} InvestmentDTO
// @Router /api/investments/{investmentId} [put]
// @Security XUserId
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var i Investment
	if !rest.DecodeJSON(w, r, &i) {
		return
	}
	investmentId := mux.Vars(r)["investmentId"]
	if i.Id != "" && i.Id != investmentId {
		rest.WriteError(w, http.StatusBadRequest, "Invalid investment id in request body", "")
		return
	}
	i.Id = investmentId
	updated, err := h.service.Update(r.Context(), i)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTO(updated))
}

// Delete godoc
// @Summary Delete an investment
// @Tags Investment
// @Param investmentId path string true "Investment ID"
// @Success 204 "No Content"
// @Router /api/investments/{investmentId} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["investmentId"]); err != nil {
		rest.WriteUpstreamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidInvestment) {
		rest.WriteError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	rest.WriteUpstreamError(w, err)
}

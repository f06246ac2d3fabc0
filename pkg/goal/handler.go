package goal

import (
	"errors"
	"net/http"

	"github.com/finboard/finboard/internal/rest"
	"github.com/finboard/finboard/internal/utils"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type GoalDTO struct {
	Goal
	Progress            decimal.Decimal `json:"progress"`
	ProgressClass       string          `json:"progressClass"`
	Remaining           decimal.Decimal `json:"remaining"`
	DaysLeft            *int            `json:"daysLeft,omitempty"`
	MonthlyContribution decimal.Decimal `json:"monthlyContribution"`
}

type Handler struct {
	service Service
	clock   utils.Clock
}

func NewHandler(service Service, clock utils.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

func (h *Handler) toDTO(g Goal) GoalDTO {
	now := h.clock.Now()
	return GoalDTO{
		Goal:                g,
		Progress:            g.Progress(),
		ProgressClass:       g.ProgressClass(),
		Remaining:           g.Remaining(),
		DaysLeft:            g.DaysLeft(now),
		MonthlyContribution: g.MonthlyContribution(now),
	}
}

// List godoc
// @Summary List savings goals
// @Tags Goal
// @Produce json
// @Param status query string false "Goal status filter"
// @Success 200 {array} GoalDTO
// @Router /api/goals [get]
// @Security XUserId
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing goals")
	goals, err := h.service.List(r.Context(), Status(r.URL.Query().Get("status")))
	if err != nil {
		rest.WriteUpstreamError(w, err)
		return
	}
	dtos := make([]GoalDTO, 0, len(goals))
	for _, g := range goals {
		dtos = append(dtos, h.toDTO(g))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Create godoc
// @Summary Create a savings goal
// @Tags Goal
// @Accept json
// @Produce json
// @Param goal body Goal true "Goal"
// @Success 201 {object} GoalDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/goals [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var g Goal
	if !rest.DecodeJSON(w, r, &g) {
		return
	}
	created, err := h.service.Create(r.Context(), g)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, h.toDTO(created))
}

// Update godoc
// @Summary Update a savings goal
// @Tags Goal
// @Accept json
// @Produce json
// @Param goalId path string true "Goal ID"
// @Param goal body Goal true "Goal"
// @Success 200 {object} GoalDTO
// @Router /api/goals/{goalId} [put]
// @Security XUserId
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var g Goal
	if !rest.DecodeJSON(w, r, &g) {
		return
	}
	goalId := mux.Vars(r)["goalId"]
	if g.Id != "" && g.Id != goalId {
		rest.WriteError(w, http.StatusBadRequest, "Invalid goal id in request body", "")
		return
	}
	g.Id = goalId
	updated, err := h.service.Update(r.Context(), g)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.toDTO(updated))
}

// Delete godoc
// @Summary Delete a savings goal
// @Tags Goal
// @Param goalId path string true "Goal ID"
// @Success 204 "No Content"
// @Router /api/goals/{goalId} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["goalId"]); err != nil {
		rest.WriteUpstreamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddProgress godoc
// @Summary Add money to a goal
// @Description Adds progress to an active goal, debiting the chosen account
// @Tags Goal
// @Accept json
// @Produce json
// @Param goalId path string true "Goal ID"
// @Param progress body ProgressRequest true "Progress"
// @Success 200 {object} GoalDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/goals/{goalId}/progress [post]
// @Security XUserId
func (h *Handler) AddProgress(w http.ResponseWriter, r *http.Request) {
	var progress ProgressRequest
	if !rest.DecodeJSON(w, r, &progress) {
		return
	}
	updated, err := h.service.AddProgress(r.Context(), mux.Vars(r)["goalId"], progress)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.toDTO(updated))
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidGoal) || errors.Is(err, ErrInvalidProgress) {
		rest.WriteError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	rest.WriteUpstreamError(w, err)
}

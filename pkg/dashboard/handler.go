package dashboard

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/finboard/finboard/internal/rest"
	"github.com/finboard/finboard/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// ReorderRequest is the end of a drag: ActiveId was dropped over OverId.
type ReorderRequest struct {
	ActiveId WidgetId `json:"activeId"`
	OverId   WidgetId `json:"overId"`
}

// PositionRequest names the widget to follow, empty to move first.
type PositionRequest struct {
	PrecedingId WidgetId `json:"precedingId"`
}

type VisibleWidgetsRequest struct {
	WidgetIds []WidgetId `json:"widgetIds"`
}

type PinnedAccountsRequest struct {
	AccountIds []string `json:"accountIds"`
}

// Handler serves the dashboard page and layout endpoints.
type Handler struct {
	service Service
	layouts LayoutService
}

func NewHandler(service Service, layouts LayoutService) *Handler {
	return &Handler{service: service, layouts: layouts}
}

// GetDashboard godoc
// @Summary Get the rendered dashboard
// @Description Returns the visible widgets in layout order with their props and state.
// @Description Answers 304 when If-None-Match matches the current ETag.
// @Tags Dashboard
// @Produce json
// @Param refresh query bool false "Bypass the cached snapshot"
// @Success 200 {object} Page
// @Success 304 "Not Modified"
// @Router /api/dashboard [get]
// @Security XUserId
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))
	log.Debugf("Getting dashboard (refresh=%t)", refresh)

	page, err := h.service.GetDashboard(r.Context(), refresh)
	if err != nil {
		writeError(w, err)
		return
	}

	etag := page.ETag()
	if etag != "" {
		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "private, no-cache")
		if matchesETag(r.Header.Get("If-None-Match"), etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	rest.WriteJSON(w, http.StatusOK, page)
}

// ListWidgets godoc
// @Summary List the widget catalogue
// @Tags Dashboard
// @Produce json
// @Success 200 {array} WidgetDefinition
// @Router /api/dashboard/widgets [get]
// @Security XUserId
func (h *Handler) ListWidgets(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, h.service.Widgets())
}

// GetLayout godoc
// @Summary Get the dashboard layout of the current user
// @Tags Dashboard
// @Produce json
// @Success 200 {object} Layout
// @Router /api/dashboard/layout [get]
// @Security XUserId
func (h *Handler) GetLayout(w http.ResponseWriter, r *http.Request) {
	layout, err := h.layouts.GetLayout(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, layout)
}

// Reorder godoc
// @Summary Swap two widgets after a drag and drop
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param request body ReorderRequest true "Dragged widget and drop target"
// @Success 200 {object} Layout
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/dashboard/layout/order [put]
// @Security XUserId
func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if !rest.DecodeJSON(w, r, &req) {
		return
	}
	layout, err := h.layouts.Reorder(r.Context(), req.ActiveId, req.OverId)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, layout)
}

// MoveWidget godoc
// @Summary Move a widget after another one
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param widgetId path string true "Widget ID"
// @Param request body PositionRequest true "Preceding widget, empty to move first"
// @Success 200 {object} Layout
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/dashboard/layout/widgets/{widgetId}/position [put]
// @Security XUserId
func (h *Handler) MoveWidget(w http.ResponseWriter, r *http.Request) {
	var req PositionRequest
	if !rest.DecodeJSON(w, r, &req) {
		return
	}
	widgetId := WidgetId(mux.Vars(r)["widgetId"])
	layout, err := h.layouts.MoveWidgetAfter(r.Context(), widgetId, req.PrecedingId)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, layout)
}

// SaveVisibleWidgets godoc
// @Summary Choose which widgets are shown
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param request body VisibleWidgetsRequest true "Visible widget ids"
// @Success 200 {object} Layout
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/dashboard/layout/visible [put]
// @Security XUserId
func (h *Handler) SaveVisibleWidgets(w http.ResponseWriter, r *http.Request) {
	var req VisibleWidgetsRequest
	if !rest.DecodeJSON(w, r, &req) {
		return
	}
	layout, err := h.layouts.SaveVisibleWidgets(r.Context(), req.WidgetIds)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, layout)
}

// SavePinnedAccounts godoc
// @Summary Choose the accounts of the summary row
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param request body PinnedAccountsRequest true "Pinned account ids"
// @Success 200 {object} Layout
// @Router /api/dashboard/layout/pinned-accounts [put]
// @Security XUserId
func (h *Handler) SavePinnedAccounts(w http.ResponseWriter, r *http.Request) {
	var req PinnedAccountsRequest
	if !rest.DecodeJSON(w, r, &req) {
		return
	}
	layout, err := h.layouts.SavePinnedAccounts(r.Context(), req.AccountIds)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, layout)
}

// ResetLayout godoc
// @Summary Reset the dashboard layout to defaults
// @Tags Dashboard
// @Produce json
// @Success 200 {object} Layout
// @Router /api/dashboard/layout [delete]
// @Security XUserId
func (h *Handler) ResetLayout(w http.ResponseWriter, r *http.Request) {
	layout, err := h.layouts.Reset(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, layout)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoUser):
		rest.WriteError(w, http.StatusForbidden, "User not found", "")
	case errors.Is(err, ErrUnknownWidget), errors.Is(err, ErrInvalidLayout):
		rest.WriteError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, ErrLayoutConflict):
		rest.WriteError(w, http.StatusConflict, "Dashboard layout changed, try again", "")
	default:
		log.Errorf("dashboard request failed: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Dashboard request failed", "")
	}
}

func matchesETag(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

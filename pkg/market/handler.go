package market

import (
	"net/http"

	"github.com/finboard/finboard/internal/rest"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	client Client
}

func NewHandler(client Client) *Handler {
	return &Handler{client: client}
}

// SearchSymbols godoc
// @Summary Search market symbols
// @Description Used by the investment form to look up tickers
// @Tags Market
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {array} Symbol
// @Router /api/market/symbols [get]
// @Security XUserId
func (h *Handler) SearchSymbols(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	log.Debugf("Searching market symbols for %q", q)
	symbols, err := h.client.Search(r.Context(), q)
	if err != nil {
		rest.WriteUpstreamError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, symbols)
}

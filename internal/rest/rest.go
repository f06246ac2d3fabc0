package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/finboard/finboard/internal/upstream"
	"github.com/finboard/finboard/pkg/user"
	log "github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

func WriteError(w http.ResponseWriter, status int, message string, details string) {
	WriteJSON(w, status, ErrorResponse{Error: message, Details: details})
}

// WriteUpstreamError maps an error returned by a finance API call to a response.
// Client errors of the finance API are passed through, everything else is a bad gateway.
func WriteUpstreamError(w http.ResponseWriter, err error) {
	if errors.Is(err, user.ErrNoUser) {
		WriteError(w, http.StatusForbidden, err.Error(), "")
		return
	}
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		switch {
		case upstream.IsNotFound(err):
			WriteError(w, http.StatusNotFound, apiErr.Message, "")
		case apiErr.Status >= 400 && apiErr.Status < 500:
			WriteError(w, apiErr.Status, apiErr.Message, "")
		default:
			WriteError(w, http.StatusBadGateway, apiErr.Message, "finance API unavailable")
		}
		return
	}
	log.Errorf("finance API call failed: %v", err)
	WriteError(w, http.StatusBadGateway, "finance API call failed", err.Error())
}

// DecodeJSON decodes the request body into dst, writing a 400 response on failure.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return false
	}
	return true
}

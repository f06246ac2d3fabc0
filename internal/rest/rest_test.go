package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/finboard/finboard/internal/upstream"
	"github.com/finboard/finboard/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestWriteUpstreamError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedError  string
	}{
		{"missing user", fmt.Errorf("failed to get current user: %w", user.ErrNoUser), http.StatusForbidden, "user not found"},
		{"not found", &upstream.APIError{Status: 404, Message: "goal not found"}, http.StatusNotFound, "goal not found"},
		{"wrapped not found", fmt.Errorf("load goal: %w", &upstream.APIError{Status: 404, Message: "goal not found"}), http.StatusNotFound, "goal not found"},
		{"validation", &upstream.APIError{Status: 422, Message: "amount required"}, http.StatusUnprocessableEntity, "amount required"},
		{"server error", &upstream.APIError{Status: 500, Message: "database down"}, http.StatusBadGateway, "database down"},
		{"transport error", fmt.Errorf("dial tcp: refused"), http.StatusBadGateway, "finance API call failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			WriteUpstreamError(w, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedError, decodeError(t, w).Error)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))

	ok := DecodeJSON(w, r, &dst)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body format", decodeError(t, w).Error)
}

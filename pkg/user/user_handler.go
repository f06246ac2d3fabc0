package user

import (
	"encoding/json"
	"net/http"
)

type UserDTO struct {
	Uid string `json:"uid"`
}

// CurrentUser godoc
// @Summary Get the current user
// @Tags User
// @Produce json
// @Success 200 {object} UserDTO
// @Failure 403 {string} string "User not found"
// @Router /api/user/current [get]
// @Security XUserId
func CurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	u, err := CurrentUser(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(UserDTO{Uid: u.Uid}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/shaharia-lab/regnotify/internal/service"
)

// registerRequest uses a pointer so that a missing or null username can be
// told apart from an empty one, which is accepted.
type registerRequest struct {
	Username *string `json:"username"`
}

type registerResponse struct {
	Username string `json:"username"`
	Channel  string `json:"channel"`
	Message  string `json:"message"`
}

// handleRegister registers a user and triggers the success notification.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidJSONBody)
		return
	}
	if req.Username == nil {
		writeError(w, http.StatusBadRequest,
			(&service.ValidationError{Field: "username", Message: "username is required"}).Error())
		return
	}

	username := *req.Username
	s.registrationSvc.Register(username)

	writeJSON(w, http.StatusCreated, registerResponse{
		Username: username,
		Channel:  s.registrationSvc.Channel(),
		Message:  service.SuccessMessage(username),
	})
}

package api

import (
	"net/http"

	"github.com/shaharia-lab/regnotify/internal/build"
)

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	info := build.Fields()
	info["channel"] = s.registrationSvc.Channel()
	writeJSON(w, http.StatusOK, info)
}

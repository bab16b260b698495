package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shaharia-lab/regnotify/internal/storage"
)

// handleListDeliveries returns recent delivery log entries.
// Accepts an optional ?limit=N query parameter (default 50).
func (s *Server) handleListDeliveries(w http.ResponseWriter, r *http.Request) {
	if s.deliverySvc == nil {
		writeError(w, http.StatusNotFound, "delivery log is disabled")
		return
	}

	limit := storage.DefaultListLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := s.deliverySvc.List(r.Context(), limit)
	if err != nil {
		s.writeServiceError(w, err, "failed to list deliveries")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handlePruneDeliveries deletes entries older than ?older_than=<duration>.
func (s *Server) handlePruneDeliveries(w http.ResponseWriter, r *http.Request) {
	if s.deliverySvc == nil {
		writeError(w, http.StatusNotFound, "delivery log is disabled")
		return
	}

	raw := r.URL.Query().Get("older_than")
	olderThan, err := time.ParseDuration(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "older_than must be a duration such as 24h")
		return
	}

	deleted, err := s.deliverySvc.Prune(r.Context(), olderThan)
	if err != nil {
		s.writeServiceError(w, err, "failed to prune deliveries")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

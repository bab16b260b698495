package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shaharia-lab/regnotify/internal/service"
)

const errInvalidJSONBody = "invalid JSON body"

// Server holds all dependencies for the REST API handlers.
type Server struct {
	registrationSvc service.RegistrationService
	deliverySvc     service.DeliveryLogService
	logger          *slog.Logger
}

// New creates a new API Server backed by the provided services. deliverySvc
// may be nil when the delivery log is disabled.
func New(registrationSvc service.RegistrationService, deliverySvc service.DeliveryLogService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		registrationSvc: registrationSvc,
		deliverySvc:     deliverySvc,
		logger:          logger,
	}
}

// Mount registers all API routes under the given router.
func (s *Server) Mount(r chi.Router) {
	r.Get("/version", s.handleVersion)

	r.Post("/registrations", s.handleRegister)

	r.Get("/deliveries", s.handleListDeliveries)
	r.Delete("/deliveries", s.handlePruneDeliveries)
}

// ─── Shared helpers ───────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps service errors to HTTP status codes.
func (s *Server) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, ve.Error())
		return
	}
	s.logger.Error(fallback, "error", err)
	writeError(w, http.StatusInternalServerError, fallback)
}

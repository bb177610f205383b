// Package api implements the REST handlers for the notifier: event
// ingestion and read access to the notification audit trail.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shaharia-lab/devicedesk-notifier/internal/eventbus"
	"github.com/shaharia-lab/devicedesk-notifier/internal/notification"
)

const errInvalidJSONBody = "invalid JSON body"

// Server holds all dependencies for the REST API handlers.
type Server struct {
	store  notification.Store
	bus    eventbus.EventBus
	logger *slog.Logger
}

// New creates a new API Server backed by the provided store and event bus.
func New(store notification.Store, bus eventbus.EventBus, logger *slog.Logger) *Server {
	return &Server{store: store, bus: bus, logger: logger}
}

// Mount registers all API routes under the given router.
func (s *Server) Mount(r chi.Router) {
	r.Post("/events", s.handleIngestEvent)

	r.Get("/notifications", s.handleListNotifications)
	r.Get("/notifications/pending", s.handleListPending)
	r.Get("/notifications/{id}", s.handleGetNotification)
	r.Delete("/notifications/{id}", s.handleDeleteNotification)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shaharia-lab/devicedesk-notifier/internal/notification"
)

// handleListNotifications returns notification records. Accepts optional
// ?user_id= and ?status= query parameters; user_id takes precedence when
// both are given.
func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	status := r.URL.Query().Get("status")

	switch {
	case userID != "":
		list, err := s.store.ListByUserID(r.Context(), userID)
		if err != nil {
			s.logger.Error("listing notifications by user", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to list notifications")
			return
		}
		writeJSON(w, http.StatusOK, list)
	case status != "":
		st := notification.Status(status)
		switch st {
		case notification.StatusPending, notification.StatusSent, notification.StatusFailed:
		default:
			writeError(w, http.StatusBadRequest, "unknown status filter")
			return
		}
		list, err := s.store.ListByStatus(r.Context(), st)
		if err != nil {
			s.logger.Error("listing notifications by status", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to list notifications")
			return
		}
		writeJSON(w, http.StatusOK, list)
	default:
		writeError(w, http.StatusBadRequest, "user_id or status query parameter is required")
	}
}

// handleListPending returns all notifications still in the pending state.
func (s *Server) handleListPending(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListPending(r.Context())
	if err != nil {
		s.logger.Error("listing pending notifications", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list pending notifications")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleGetNotification returns a single notification by id.
func (s *Server) handleGetNotification(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	n, err := s.store.GetByID(r.Context(), id)
	if err != nil {
		s.logger.Error("getting notification", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get notification")
		return
	}
	if n == nil {
		writeError(w, http.StatusNotFound, "notification not found")
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// handleDeleteNotification removes a notification record. Deletion is
// idempotent: a missing id still answers 204.
func (s *Server) handleDeleteNotification(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.store.Delete(r.Context(), id); err != nil {
		s.logger.Error("deleting notification", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete notification")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

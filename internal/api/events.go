package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

// ingestEventRequest is the inbound event envelope.
type ingestEventRequest struct {
	Type    string            `json:"type"`
	Payload map[string]string `json:"payload"`
}

// handleIngestEvent accepts a reservation lifecycle event and enqueues it
// on the event bus. It always answers 202 for a well-formed envelope:
// downstream delivery failures are recorded on the notification row and
// never surfaced to the event source, so the caller has no reason to
// redeliver.
func (s *Server) handleIngestEvent(w http.ResponseWriter, r *http.Request) {
	var req ingestEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidJSONBody)
		return
	}
	if strings.TrimSpace(req.Type) == "" {
		writeError(w, http.StatusBadRequest, "event type is required")
		return
	}

	s.bus.Publish(req.Type, req.Payload)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

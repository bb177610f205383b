// Package notification implements the DeviceDesk email notification core:
// the notification record and its lifecycle, template rendering for
// reservation events, and the dispatcher that sequences render, persist,
// send, and outcome recording.
package notification

import (
	"regexp"
	"strings"
	"time"
)

// Status is the delivery state of a notification record.
type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

// Type identifies which reservation lifecycle transition a notification
// is about.
type Type string

const (
	TypeReservationCreated   Type = "reservation_created"
	TypeReservationCollected Type = "reservation_collected"
	TypeReservationReturned  Type = "reservation_returned"
	TypeReservationCancelled Type = "reservation_cancelled"
	TypeReservationExpired   Type = "reservation_expired"
	TypeReservationOverdue   Type = "reservation_overdue"
)

// Valid reports whether t is one of the recognized notification types.
func (t Type) Valid() bool {
	switch t {
	case TypeReservationCreated, TypeReservationCollected, TypeReservationReturned,
		TypeReservationCancelled, TypeReservationExpired, TypeReservationOverdue:
		return true
	}
	return false
}

// Notification is the persisted record of one email send intent and its
// outcome. Status starts at pending and moves to exactly one of sent or
// failed; there is no transition out of a terminal state.
type Notification struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	UserEmail     string     `json:"user_email"`
	Type          Type       `json:"type"`
	Subject       string     `json:"subject"`
	HTMLBody      string     `json:"html_body"`
	TextBody      string     `json:"text_body,omitempty"`
	Status        Status     `json:"status"`
	ReservationID string     `json:"reservation_id"`
	FailureReason string     `json:"failure_reason,omitempty"`
	RetryCount    int        `json:"retry_count"`
	CreatedAt     time.Time  `json:"created_at"`
	SentAt        *time.Time `json:"sent_at,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateParams holds the inputs for constructing a new Notification.
type CreateParams struct {
	ID            string
	UserID        string
	UserEmail     string
	Type          Type
	Subject       string
	HTMLBody      string
	TextBody      string
	ReservationID string
}

// emailRe accepts a basic local@domain.tld shape. Full RFC 5322 parsing is
// the transport's problem; this only rejects obviously broken addresses.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Create validates params and returns a new pending Notification.
// Fields are checked in a fixed order and the first invalid one is
// reported via *ValidationError. The email address is trimmed and
// lowercased before validation.
func Create(p CreateParams) (Notification, error) {
	email := strings.ToLower(strings.TrimSpace(p.UserEmail))

	switch {
	case strings.TrimSpace(p.ID) == "":
		return Notification{}, &ValidationError{Field: "id", Message: "id is required"}
	case strings.TrimSpace(p.UserID) == "":
		return Notification{}, &ValidationError{Field: "userId", Message: "user id is required"}
	case email == "":
		return Notification{}, &ValidationError{Field: "userEmail", Message: "user email is required"}
	case !emailRe.MatchString(email):
		return Notification{}, &ValidationError{Field: "userEmail", Message: "user email is not a valid address"}
	case strings.TrimSpace(p.Subject) == "":
		return Notification{}, &ValidationError{Field: "subject", Message: "subject is required"}
	case strings.TrimSpace(p.HTMLBody) == "":
		return Notification{}, &ValidationError{Field: "htmlBody", Message: "html body is required"}
	case strings.TrimSpace(p.ReservationID) == "":
		return Notification{}, &ValidationError{Field: "reservationId", Message: "reservation id is required"}
	case !p.Type.Valid():
		return Notification{}, &ValidationError{Field: "type", Message: "unrecognized notification type"}
	}

	now := time.Now().UTC()
	return Notification{
		ID:            p.ID,
		UserID:        p.UserID,
		UserEmail:     email,
		Type:          p.Type,
		Subject:       p.Subject,
		HTMLBody:      p.HTMLBody,
		TextBody:      p.TextBody,
		Status:        StatusPending,
		ReservationID: p.ReservationID,
		RetryCount:    0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// MarkSent returns a copy of n transitioned to sent with SentAt stamped.
// Only a pending notification can be marked sent.
func MarkSent(n Notification) (Notification, error) {
	if n.Status != StatusPending {
		return Notification{}, &InvalidStateTransitionError{From: n.Status, To: StatusSent}
	}
	now := time.Now().UTC()
	n.Status = StatusSent
	n.SentAt = &now
	n.UpdatedAt = now
	return n, nil
}

// MarkFailed returns a copy of n transitioned to failed, recording the
// reason and incrementing the retry counter by one. A failed notification
// may be failed again (an externally driven re-attempt records each
// failure), but a sent one may not.
func MarkFailed(n Notification, reason string) (Notification, error) {
	if n.Status == StatusSent {
		return Notification{}, &InvalidStateTransitionError{From: n.Status, To: StatusFailed}
	}
	n.Status = StatusFailed
	n.FailureReason = reason
	n.RetryCount++
	n.UpdatedAt = time.Now().UTC()
	return n, nil
}

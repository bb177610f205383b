package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/shaharia-lab/devicedesk-notifier/internal/eventbus"
)

// dispatchTimeout bounds one delivery attempt, covering the SMTP
// conversation and both store writes.
const dispatchTimeout = 30 * time.Second

// eventTypes maps upstream reservation event names to notification types.
// The table is closed: events not listed here are not ours and are skipped
// without comment, which keeps the adapter forward-compatible with new
// upstream event types.
var eventTypes = map[string]Type{
	"reservation.created":   TypeReservationCreated,
	"reservation.collected": TypeReservationCollected,
	"reservation.returned":  TypeReservationReturned,
	"reservation.cancelled": TypeReservationCancelled,
	"reservation.expired":   TypeReservationExpired,
	"reservation.overdue":   TypeReservationOverdue,
}

// dispatcher is the slice of Dispatcher the handler needs; it exists so
// tests can substitute a stub.
type dispatcher interface {
	Dispatch(ctx context.Context, typ Type, data EventData) Result
}

// Handler bridges the event bus to the dispatcher. It validates event
// shape, invokes the dispatcher at most once per recognized event, and
// never reports delivery failure back to the event source — a failed send
// is recorded on the notification row for out-of-band follow-up, not
// redelivered.
type Handler struct {
	dispatcher dispatcher
	logger     *slog.Logger
}

// NewHandler creates a Handler around the given dispatcher.
func NewHandler(d *Dispatcher, logger *slog.Logger) *Handler {
	return &Handler{dispatcher: d, logger: logger}
}

// Handle processes one inbound event. It satisfies eventbus.Listener.
func (h *Handler) Handle(e eventbus.Event) {
	typ, ok := eventTypes[e.Type]
	if !ok {
		return
	}

	data := eventDataFromPayload(e.Payload)
	if data.UserEmail == "" || data.ReservationID == "" {
		h.logger.Warn("skipping reservation event with incomplete payload",
			slog.String("event_type", e.Type),
			slog.Bool("has_user_email", data.UserEmail != ""),
			slog.Bool("has_reservation_id", data.ReservationID != ""),
		)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	res := h.dispatcher.Dispatch(ctx, typ, data)
	if res.Err != nil {
		h.logger.Warn("notification dispatch failed",
			slog.String("event_type", e.Type),
			slog.String("reservation_id", data.ReservationID),
			slog.String("error", res.Err.Error()),
		)
		return
	}
	h.logger.Info("notification sent",
		slog.String("event_type", e.Type),
		slog.String("notification_id", res.Notification.ID),
		slog.String("reservation_id", data.ReservationID),
	)
}

// eventDataFromPayload extracts the known payload fields. Unknown keys are
// ignored.
func eventDataFromPayload(payload map[string]string) EventData {
	return EventData{
		ReservationID: payload["reservationId"],
		UserID:        payload["userId"],
		UserEmail:     payload["userEmail"],
		DeviceName:    payload["deviceName"],
		ReservedAt:    payload["reservedAt"],
		ExpiresAt:     payload["expiresAt"],
		CollectedAt:   payload["collectedAt"],
		ReturnDueAt:   payload["returnDueAt"],
		ReturnedAt:    payload["returnedAt"],
	}
}

package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Recorder receives dispatch outcome counts. Implemented by the metrics
// package; a nil Recorder disables instrumentation.
type Recorder interface {
	RecordSent(notificationType string)
	RecordFailed(notificationType string)
}

// Result is the outcome of one dispatch invocation. Notification is the
// final persisted record when one was written; Err carries the validation,
// delivery or infrastructure error when Success is false.
type Result struct {
	Success      bool
	Notification *Notification
	Err          error
}

// Dispatcher sequences a single notification delivery: render the template,
// persist a pending record, attempt the send, and persist the terminal
// state. Dependencies are injected once at process start; each Dispatch
// call operates on an independent notification id, so concurrent calls need
// no coordination.
type Dispatcher struct {
	transport EmailTransport
	store     Store
	logger    *slog.Logger
	recorder  Recorder
}

// NewDispatcher creates a Dispatcher. recorder may be nil.
func NewDispatcher(transport EmailTransport, store Store, logger *slog.Logger, recorder Recorder) *Dispatcher {
	return &Dispatcher{transport: transport, store: store, logger: logger, recorder: recorder}
}

// Dispatch performs at most one delivery attempt for the given event.
// The pending record is written before the send so that a crash between
// the two leaves an auditable pending row rather than silent loss. There
// is no retry loop here; retry policy belongs to an external mechanism
// reading the persisted records.
func (d *Dispatcher) Dispatch(ctx context.Context, typ Type, data EventData) Result {
	rendered, err := SelectTemplate(typ, data)
	if err != nil {
		return Result{Err: err}
	}

	n, err := Create(CreateParams{
		ID:            uuid.NewString(),
		UserID:        data.UserID,
		UserEmail:     data.UserEmail,
		Type:          typ,
		Subject:       rendered.Subject,
		HTMLBody:      rendered.HTMLBody,
		TextBody:      rendered.TextBody,
		ReservationID: data.ReservationID,
	})
	if err != nil {
		return Result{Err: err}
	}

	pending, err := d.store.Save(ctx, n)
	if err != nil {
		return Result{Err: fmt.Errorf("saving pending notification: %w", err)}
	}

	sendRes, err := d.transport.Send(ctx, Email{
		To:       pending.UserEmail,
		Subject:  pending.Subject,
		HTMLBody: pending.HTMLBody,
		TextBody: pending.TextBody,
	})
	if err != nil {
		// Connection-level fault. Record the failure best-effort; the
		// pending row already preserves the intent if this write fails too.
		d.recordFailure(ctx, pending, err.Error())
		return Result{Err: fmt.Errorf("email transport: %w", err)}
	}

	if !sendRes.Success {
		failed, markErr := MarkFailed(pending, sendRes.Error)
		if markErr != nil {
			return Result{Err: markErr}
		}
		persisted, saveErr := d.store.Save(ctx, failed)
		if saveErr != nil {
			return Result{Err: fmt.Errorf("saving failed notification: %w", saveErr)}
		}
		if d.recorder != nil {
			d.recorder.RecordFailed(string(typ))
		}
		return Result{Notification: &persisted, Err: errors.New(sendRes.Error)}
	}

	sent, err := MarkSent(pending)
	if err != nil {
		return Result{Err: err}
	}
	persisted, err := d.store.Save(ctx, sent)
	if err != nil {
		return Result{Err: fmt.Errorf("saving sent notification: %w", err)}
	}
	if d.recorder != nil {
		d.recorder.RecordSent(string(typ))
	}
	return Result{Success: true, Notification: &persisted}
}

// recordFailure persists a failed transition without surfacing storage
// errors to the caller; it is used on the unexpected-fault path where
// persistence is best-effort only.
func (d *Dispatcher) recordFailure(ctx context.Context, pending Notification, reason string) {
	failed, err := MarkFailed(pending, reason)
	if err != nil {
		return
	}
	if _, err := d.store.Save(ctx, failed); err != nil && d.logger != nil {
		d.logger.Warn("failed to record notification failure",
			slog.String("notification_id", pending.ID),
			slog.String("error", err.Error()),
		)
	}
	if d.recorder != nil {
		d.recorder.RecordFailed(string(pending.Type))
	}
}

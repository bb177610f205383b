package notification

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/devicedesk-notifier/internal/eventbus"
)

type recordingDispatcher struct {
	calls  []Type
	data   []EventData
	result Result
}

func (d *recordingDispatcher) Dispatch(_ context.Context, typ Type, data EventData) Result {
	d.calls = append(d.calls, typ)
	d.data = append(d.data, data)
	return d.result
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandle_MappedEvent(t *testing.T) {
	disp := &recordingDispatcher{result: Result{Success: true, Notification: &Notification{ID: "n-1"}}}
	h := &Handler{dispatcher: disp, logger: discardLogger()}

	h.Handle(eventbus.Event{
		Type: "reservation.created",
		Payload: map[string]string{
			"reservationId": "R1",
			"userId":        "U1",
			"userEmail":     "a@b.com",
			"deviceName":    "Pixel 9 Pro",
		},
	})

	require.Len(t, disp.calls, 1)
	assert.Equal(t, TypeReservationCreated, disp.calls[0])
	assert.Equal(t, "R1", disp.data[0].ReservationID)
	assert.Equal(t, "Pixel 9 Pro", disp.data[0].DeviceName)
}

func TestHandle_UnmappedEventIsSkippedSilently(t *testing.T) {
	disp := &recordingDispatcher{}
	h := &Handler{dispatcher: disp, logger: discardLogger()}

	h.Handle(eventbus.Event{Type: "user.registered", Payload: map[string]string{
		"reservationId": "R1",
		"userEmail":     "a@b.com",
	}})

	assert.Empty(t, disp.calls)
}

func TestHandle_IncompletePayloadIsSkipped(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]string
	}{
		{"missing user email", map[string]string{"reservationId": "R1", "userId": "U1"}},
		{"missing reservation id", map[string]string{"userEmail": "a@b.com", "userId": "U1"}},
		{"empty payload", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			disp := &recordingDispatcher{}
			h := &Handler{dispatcher: disp, logger: discardLogger()}

			h.Handle(eventbus.Event{Type: "reservation.cancelled", Payload: tt.payload})
			assert.Empty(t, disp.calls)
		})
	}
}

func TestHandle_DispatchFailureIsNotPropagated(t *testing.T) {
	disp := &recordingDispatcher{result: Result{Err: errors.New("SMTP down")}}
	h := &Handler{dispatcher: disp, logger: discardLogger()}

	// Handle has no error return by design; a failed send must never reach
	// the event source as a transport failure.
	h.Handle(eventbus.Event{Type: "reservation.overdue", Payload: map[string]string{
		"reservationId": "R1",
		"userId":        "U1",
		"userEmail":     "a@b.com",
	}})

	require.Len(t, disp.calls, 1)
}

func TestEventTypeTableCoversAllNotificationTypes(t *testing.T) {
	seen := make(map[Type]bool)
	for _, typ := range eventTypes {
		seen[typ] = true
	}
	assert.Len(t, seen, 6)
	for typ := range subjects {
		assert.True(t, seen[typ], string(typ))
	}
}

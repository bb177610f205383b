package notification_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/devicedesk-notifier/internal/notification"
)

func TestSelectTemplate_Subjects(t *testing.T) {
	// Subject lines are part of the external contract and must match exactly.
	want := map[notification.Type]string{
		notification.TypeReservationCreated:   "DeviceDesk - Your reservation is confirmed",
		notification.TypeReservationCollected: "DeviceDesk - Device collected successfully",
		notification.TypeReservationReturned:  "DeviceDesk - Device returned - Thank you!",
		notification.TypeReservationCancelled: "DeviceDesk - Reservation cancelled",
		notification.TypeReservationExpired:   "DeviceDesk - Reservation expired",
		notification.TypeReservationOverdue:   "DeviceDesk - ⚠️ URGENT: Device return overdue",
	}

	data := notification.EventData{ReservationID: "R1", UserID: "U1", UserEmail: "a@b.com"}

	for typ, subject := range want {
		rendered, err := notification.SelectTemplate(typ, data)
		require.NoError(t, err, string(typ))
		assert.Equal(t, subject, rendered.Subject)
		assert.NotEmpty(t, rendered.HTMLBody)
		assert.NotEmpty(t, rendered.TextBody)
	}
}

func TestSelectTemplate_UnknownType(t *testing.T) {
	_, err := notification.SelectTemplate(notification.Type("carrier_pigeon"), notification.EventData{})
	var uErr *notification.UnknownTemplateTypeError
	require.ErrorAs(t, err, &uErr)
	assert.Equal(t, notification.Type("carrier_pigeon"), uErr.Type)
}

func TestSelectTemplate_OptionalFields(t *testing.T) {
	t.Run("present fields render a detail line", func(t *testing.T) {
		data := notification.EventData{
			ReservationID: "R1",
			DeviceName:    "Pixel 9 Pro",
			ReservedAt:    "2026-08-01 10:00",
			ExpiresAt:     "2026-08-02 10:00",
			CollectedAt:   "2026-08-01 11:30",
			ReturnDueAt:   "2026-08-15 10:00",
			ReturnedAt:    "2026-08-14 09:45",
		}
		rendered, err := notification.SelectTemplate(notification.TypeReservationCollected, data)
		require.NoError(t, err)

		assert.Contains(t, rendered.HTMLBody, "Pixel 9 Pro")
		assert.Contains(t, rendered.HTMLBody, "R1")
		assert.Contains(t, rendered.TextBody, "Device: Pixel 9 Pro")
		assert.Contains(t, rendered.TextBody, "Reserved at: 2026-08-01 10:00")
		assert.Contains(t, rendered.TextBody, "Expires at: 2026-08-02 10:00")
		assert.Contains(t, rendered.TextBody, "Collected at: 2026-08-01 11:30")
		assert.Contains(t, rendered.TextBody, "Return due: 2026-08-15 10:00")
		assert.Contains(t, rendered.TextBody, "Returned at: 2026-08-14 09:45")
	})

	t.Run("absent fields leave no line behind", func(t *testing.T) {
		data := notification.EventData{ReservationID: "R2"}
		rendered, err := notification.SelectTemplate(notification.TypeReservationCreated, data)
		require.NoError(t, err)

		assert.NotContains(t, rendered.TextBody, "Device:")
		assert.NotContains(t, rendered.TextBody, "Reserved at:")
		assert.NotContains(t, rendered.TextBody, "Returned at:")
		assert.NotContains(t, rendered.HTMLBody, "Device</td>")
		assert.Contains(t, rendered.TextBody, "Reservation ID: R2")
	})

	t.Run("output is deterministic for the same input", func(t *testing.T) {
		data := notification.EventData{ReservationID: "R3", DeviceName: "ThinkPad X1"}
		first, err := notification.SelectTemplate(notification.TypeReservationOverdue, data)
		require.NoError(t, err)
		second, err := notification.SelectTemplate(notification.TypeReservationOverdue, data)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestSelectTemplate_EscapesHTML(t *testing.T) {
	data := notification.EventData{
		ReservationID: "R1",
		DeviceName:    `<script>alert("x")</script>`,
	}
	rendered, err := notification.SelectTemplate(notification.TypeReservationCreated, data)
	require.NoError(t, err)
	assert.NotContains(t, rendered.HTMLBody, "<script>")
}

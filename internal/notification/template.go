package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
)

// SubjectPrefix is prepended to every outgoing notification subject.
const SubjectPrefix = "DeviceDesk - "

// EventData carries the reservation event payload used to render a
// notification. ReservationID, UserID and UserEmail identify the recipient
// and the originating reservation; the remaining fields are optional and a
// detail line is rendered only when the field is present.
type EventData struct {
	ReservationID string
	UserID        string
	UserEmail     string
	DeviceName    string
	ReservedAt    string
	ExpiresAt     string
	CollectedAt   string
	ReturnDueAt   string
	ReturnedAt    string
}

// Rendered is the output of template selection: a ready-to-send subject,
// HTML body and plain-text fallback.
type Rendered struct {
	Subject  string
	HTMLBody string
	TextBody string
}

// subjects holds the fixed subject line per notification type, without the
// product prefix. These strings are part of the external contract and must
// not change.
var subjects = map[Type]string{
	TypeReservationCreated:   "Your reservation is confirmed",
	TypeReservationCollected: "Device collected successfully",
	TypeReservationReturned:  "Device returned - Thank you!",
	TypeReservationCancelled: "Reservation cancelled",
	TypeReservationExpired:   "Reservation expired",
	TypeReservationOverdue:   "⚠️ URGENT: Device return overdue",
}

// leads holds the introductory paragraph per notification type.
var leads = map[Type]string{
	TypeReservationCreated:   "Your reservation has been confirmed. The device is being prepared for you.",
	TypeReservationCollected: "You have collected your device. Enjoy!",
	TypeReservationReturned:  "Your device has been returned. Thank you for using DeviceDesk!",
	TypeReservationCancelled: "Your reservation has been cancelled. If this was a mistake, you can create a new reservation at any time.",
	TypeReservationExpired:   "Your reservation has expired because the device was not collected in time.",
	TypeReservationOverdue:   "The return deadline for your device has passed. Please return it as soon as possible.",
}

// detailRow is one label/value pair rendered in the detail table and as a
// "Label: value" line in the plain-text body.
type detailRow struct {
	Label string
	Value string
}

// emailTmpl is the branded HTML wrapper applied to every outgoing
// notification. All values are auto-escaped by html/template.
var emailTmpl = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1.0">
  <title>{{.Subject}}</title>
</head>
<body style="margin:0;padding:0;background-color:#f4f4f5;
     font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Arial,sans-serif;">
  <table width="100%" cellpadding="0" cellspacing="0" role="presentation"
         style="background-color:#f4f4f5;padding:40px 16px;">
    <tr>
      <td align="center">
        <table width="600" cellpadding="0" cellspacing="0" role="presentation"
               style="max-width:600px;width:100%;">

          <tr>
            <td style="background-color:#0b1d33;padding:28px 40px;border-radius:12px 12px 0 0;">
              <table cellpadding="0" cellspacing="0" role="presentation">
                <tr>
                  <td style="vertical-align:middle;padding-right:12px;">
                    <div style="width:36px;height:36px;background:linear-gradient(135deg,#0ea5e9,#2563eb);
                                border-radius:8px;display:inline-block;text-align:center;line-height:36px;
                                font-size:20px;font-weight:900;color:#ffffff;">D</div>
                  </td>
                  <td style="vertical-align:middle;">
                    <span style="font-size:20px;font-weight:700;
                                 color:#ffffff;letter-spacing:-0.3px;">DeviceDesk</span>
                    <span style="display:block;font-size:11px;color:#94a3b8;margin-top:1px;letter-spacing:0.3px;">
                      Device Reservations
                    </span>
                  </td>
                </tr>
              </table>
            </td>
          </tr>

          <tr>
            <td style="background-color:#122a47;padding:16px 40px;border-left:3px solid #0ea5e9;">
              <p style="margin:0;font-size:15px;font-weight:600;color:#e2e8f0;">{{.Subject}}</p>
            </td>
          </tr>

          <tr>
            <td style="background-color:#ffffff;padding:36px 40px;">
              <p style="margin:0 0 20px;font-size:14px;line-height:1.7;color:#374151;">{{.Lead}}</p>
              <table cellpadding="0" cellspacing="0" role="presentation" width="100%"
                     style="border:1px solid #e5e7eb;border-radius:8px;">
                {{range .Details}}
                <tr>
                  <td style="padding:10px 16px;font-size:13px;color:#6b7280;width:140px;
                             border-bottom:1px solid #f3f4f6;">{{.Label}}</td>
                  <td style="padding:10px 16px;font-size:13px;font-weight:600;color:#111827;
                             border-bottom:1px solid #f3f4f6;">{{.Value}}</td>
                </tr>
                {{end}}
              </table>
            </td>
          </tr>

          <tr>
            <td style="background-color:#f9fafb;padding:20px 40px;
                       border-top:1px solid #e5e7eb;border-radius:0 0 12px 12px;">
              <p style="margin:0;font-size:12px;color:#9ca3af;">
                Automated notification from DeviceDesk. &copy; {{.Year}} DeviceDesk.
              </p>
            </td>
          </tr>

        </table>
      </td>
    </tr>
  </table>
</body>
</html>
`))

// detailRows builds the detail table for a notification: the reservation id
// first, then every optional event field that is present.
func detailRows(data EventData) []detailRow {
	rows := []detailRow{{Label: "Reservation ID", Value: data.ReservationID}}

	optional := []detailRow{
		{Label: "Device", Value: data.DeviceName},
		{Label: "Reserved at", Value: data.ReservedAt},
		{Label: "Expires at", Value: data.ExpiresAt},
		{Label: "Collected at", Value: data.CollectedAt},
		{Label: "Return due", Value: data.ReturnDueAt},
		{Label: "Returned at", Value: data.ReturnedAt},
	}
	for _, row := range optional {
		if row.Value != "" {
			rows = append(rows, row)
		}
	}
	return rows
}

// SelectTemplate renders the subject, HTML body and plain-text body for the
// given notification type and event data. The output is a pure function of
// its input; only the copyright year in the footer depends on the clock.
func SelectTemplate(typ Type, data EventData) (Rendered, error) {
	subject, ok := subjects[typ]
	if !ok {
		return Rendered{}, &UnknownTemplateTypeError{Type: typ}
	}

	fullSubject := SubjectPrefix + subject
	lead := leads[typ]
	details := detailRows(data)

	var buf bytes.Buffer
	err := emailTmpl.Execute(&buf, struct {
		Subject string
		Lead    string
		Details []detailRow
		Year    int
	}{fullSubject, lead, details, time.Now().Year()})
	if err != nil {
		return Rendered{}, fmt.Errorf("rendering email template: %w", err)
	}

	var text strings.Builder
	text.WriteString(fullSubject + "\n\n")
	text.WriteString(lead + "\n\n")
	for _, row := range details {
		fmt.Fprintf(&text, "%s: %s\n", row.Label, row.Value)
	}

	return Rendered{
		Subject:  fullSubject,
		HTMLBody: buf.String(),
		TextBody: text.String(),
	}, nil
}

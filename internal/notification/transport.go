package notification

import "context"

// Email is the content handed to an EmailTransport for delivery.
type Email struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendResult reports the outcome of a delivery attempt. An ordinary
// delivery failure is Success=false with Error filled in; the transport
// reserves its error return for connection-level faults.
type SendResult struct {
	Success   bool
	MessageID string
	Error     string
}

// EmailTransport is the interface for outbound email delivery backends.
type EmailTransport interface {
	Send(ctx context.Context, email Email) (SendResult, error)
}

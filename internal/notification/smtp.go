package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"
)

// SMTPConfig holds connection parameters for the SMTP transport.
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	Encryption string // "none", "starttls", "ssl_tls"
}

// SMTPTransport delivers notification emails via SMTP using the go-mail
// library. A delivery rejection from the server is reported as an
// unsuccessful SendResult; failures to build the message or reach the
// server are returned as errors.
type SMTPTransport struct {
	config SMTPConfig
}

// NewSMTPTransport creates a new SMTPTransport with the given configuration.
func NewSMTPTransport(config SMTPConfig) *SMTPTransport {
	return &SMTPTransport{config: config}
}

// Send delivers email using the configured SMTP server.
func (t *SMTPTransport) Send(ctx context.Context, email Email) (SendResult, error) {
	m := mail.NewMsg()
	if err := m.From(t.config.From); err != nil {
		return SendResult{}, fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(email.To); err != nil {
		return SendResult{}, fmt.Errorf("invalid recipient %q: %w", email.To, err)
	}

	m.Subject(email.Subject)
	m.SetMessageID()

	// Plain-text fallback for clients that don't render HTML.
	if email.TextBody != "" {
		m.SetBodyString(mail.TypeTextPlain, email.TextBody)
		m.AddAlternativeString(mail.TypeTextHTML, email.HTMLBody)
	} else {
		m.SetBodyString(mail.TypeTextHTML, email.HTMLBody)
	}

	c, err := mail.NewClient(t.config.Host,
		mail.WithPort(t.config.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(t.config.Username),
		mail.WithPassword(t.config.Password),
		mail.WithTLSPolicy(tlsPolicyFromEncryption(t.config.Encryption)),
	)
	if err != nil {
		return SendResult{}, fmt.Errorf("failed to create mail client: %w", err)
	}

	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		// The server rejected the message: an expected delivery failure,
		// reported as a result rather than an error.
		var sendErr *mail.SendError
		if errors.As(err, &sendErr) {
			return SendResult{Success: false, Error: sendErr.Error()}, nil
		}
		return SendResult{}, fmt.Errorf("smtp delivery: %w", err)
	}

	return SendResult{Success: true, MessageID: m.GetMessageID()}, nil
}

// tlsPolicyFromEncryption converts the encryption string to a go-mail TLSPolicy.
func tlsPolicyFromEncryption(enc string) mail.TLSPolicy {
	switch enc {
	case "ssl_tls":
		return mail.TLSMandatory
	case "starttls":
		return mail.TLSOpportunistic
	default:
		return mail.NoTLS
	}
}

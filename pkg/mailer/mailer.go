package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// Message is one outbound email with both HTML and plain-text bodies.
type Message struct {
	Subject    string
	Recipients []string
	HTMLBody   string
	TextBody   string
}

// Mailer sends a message to its recipients and reports transport failures.
type Mailer interface {
	Send(msg Message) error
}

// Config holds SMTP connection details.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer delivers messages through an SMTP server.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a mailer for the given SMTP server.
func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send delivers the message. The connection is dialed per send; volumes are a
// single bakery's orders, so connection pooling is not worth the bookkeeping.
func (m *SMTPMailer) Send(msg Message) error {
	if len(msg.Recipients) == 0 {
		return fmt.Errorf("message %q has no recipients", msg.Subject)
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.Recipients...)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.TextBody)
	gm.AddAlternative("text/html", msg.HTMLBody)

	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("failed to send %q to %d recipients: %w", msg.Subject, len(msg.Recipients), err)
	}
	return nil
}

package notify

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Mailer sends one message to a batch of recipients. Implementations do not
// retry; a failed dispatch is surfaced to the caller.
type Mailer interface {
	SendMail(subject, body string, recipients []string) error
}

// SMTPMailer dispatches mail through a plain SMTP relay.
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPMailer creates a mailer for the given relay address ("host:port")
// and sender. auth may be nil for an open relay.
func NewSMTPMailer(addr, from string, auth smtp.Auth) *SMTPMailer {
	return &SMTPMailer{addr: addr, from: from, auth: auth}
}

func (m *SMTPMailer) SendMail(subject, body string, recipients []string) error {
	if len(recipients) == 0 {
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.from, strings.Join(recipients, ", "), subject, body)

	return smtp.SendMail(m.addr, m.auth, m.from, recipients, []byte(msg))
}

// LogMailer is used when no SMTP relay is configured: it logs instead of
// sending, so the notification job stays exercisable in development.
type LogMailer struct{}

func (LogMailer) SendMail(subject, body string, recipients []string) error {
	log.Printf("mail (not sent, no relay configured) subject=%q recipients=%d", subject, len(recipients))
	return nil
}

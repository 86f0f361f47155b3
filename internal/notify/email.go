// Package notify delivers due-date reminders over SMTP.
package notify

import (
	"fmt"
	"net"
	"net/smtp"

	"github.com/jordan-wright/email"

	"finanzapp/internal/core"
)

// EmailSender sends reminder mails through a plain-auth SMTP relay.
type EmailSender struct {
	host string
	port int
	user string
	pass string
	from string
	to   string
}

func NewEmailSender(host string, port int, user, pass, from, to string) *EmailSender {
	return &EmailSender{host: host, port: port, user: user, pass: pass, from: from, to: to}
}

// SendReminder mails a payment reminder for one user debt.
func (s *EmailSender) SendReminder(rem core.Reminder, debt core.UserDebt, creditor core.Creditor) error {
	body := rem.Message
	if body == "" {
		body = fmt.Sprintf("Payment to %s is due on %s.", creditor.Name, debt.DueDate.String())
	}

	e := email.NewEmail()
	e.From = s.from
	e.To = []string{s.to}
	e.Subject = fmt.Sprintf("Payment reminder: %s (%s)", creditor.Name, debt.Concept)
	e.Text = []byte(fmt.Sprintf(
		"%s\n\nCreditor: %s\nConcept: %s\nDue date: %s\nBalance: %d.%02d\n",
		body, creditor.Name, debt.Concept, debt.DueDate.String(),
		debt.BalanceCents/100, debt.BalanceCents%100))

	addr := net.JoinHostPort(s.host, fmt.Sprintf("%d", s.port))
	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("send reminder mail: %w", err)
	}
	return nil
}

// Package mail delivers contact and booking enquiries to the studio
// inbox over SMTP.
package mail

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"
)

// ContactEnquiry is a message submitted through the public contact form.
type ContactEnquiry struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// BookingEnquiry is a request submitted through the event page booking form.
type BookingEnquiry struct {
	Name      string
	Email     string
	Phone     string
	EventType string
	EventDate string
	Details   string
}

// Sender delivers enquiry mail. The SMTP implementation is the only one
// in production; tests use a recording fake.
type Sender interface {
	SendContact(enquiry ContactEnquiry) error
	SendBooking(enquiry BookingEnquiry) error
}

// SMTPSender sends mail through a plain SMTP relay.
type SMTPSender struct {
	addr       string
	from       string
	recipients []string
	auth       smtp.Auth
}

// NewSMTPSender creates a sender for the given relay. user and pass may
// be empty for unauthenticated relays (MailHog, local postfix).
func NewSMTPSender(addr, host, user, pass, from string, recipients []string) *SMTPSender {
	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, pass, host)
	}
	return &SMTPSender{
		addr:       addr,
		from:       from,
		recipients: recipients,
		auth:       auth,
	}
}

// SendContact delivers a contact form enquiry to the studio inbox.
func (s *SMTPSender) SendContact(enquiry ContactEnquiry) error {
	subject := fmt.Sprintf("New contact enquiry from %s", enquiry.Name)
	body := formatContactBody(enquiry)
	return s.send(subject, body, enquiry.Email)
}

// SendBooking delivers an event booking enquiry to the studio inbox.
func (s *SMTPSender) SendBooking(enquiry BookingEnquiry) error {
	subject := fmt.Sprintf("New booking enquiry from %s", enquiry.Name)
	body := formatBookingBody(enquiry)
	return s.send(subject, body, enquiry.Email)
}

// send builds an RFC 5322 message and hands it to the relay. replyTo is
// the visitor's address so staff can answer directly from their client.
func (s *SMTPSender) send(subject, body, replyTo string) error {
	msg := buildMessage(s.from, s.recipients, replyTo, subject, body)

	if err := smtp.SendMail(s.addr, s.auth, s.from, s.recipients, msg); err != nil {
		slog.Error("sending enquiry mail", "error", err, "smtp_addr", s.addr)
		return fmt.Errorf("sending mail: %w", err)
	}

	slog.Info("enquiry mail sent", "subject", subject, "recipients", len(s.recipients))
	return nil
}

// headerValue strips CR and LF from a header-bound string. Enquiry
// fields are visitor input; a newline in a name or address would let
// the sender smuggle extra SMTP headers into the message.
func headerValue(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(s, "\n", "")
}

// buildMessage assembles the raw message bytes with CRLF line endings.
func buildMessage(from string, to []string, replyTo, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	if replyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", headerValue(replyTo))
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", headerValue(subject))
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

func formatContactBody(e ContactEnquiry) string {
	var b strings.Builder
	b.WriteString("A visitor sent a message through the contact form.\r\n\r\n")
	fmt.Fprintf(&b, "Name: %s\r\n", e.Name)
	fmt.Fprintf(&b, "Email: %s\r\n", e.Email)
	if e.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\r\n", e.Phone)
	}
	b.WriteString("\r\n")
	b.WriteString(e.Message)
	b.WriteString("\r\n")
	return b.String()
}

func formatBookingBody(e BookingEnquiry) string {
	var b strings.Builder
	b.WriteString("A visitor requested an event booking.\r\n\r\n")
	fmt.Fprintf(&b, "Name: %s\r\n", e.Name)
	fmt.Fprintf(&b, "Email: %s\r\n", e.Email)
	if e.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\r\n", e.Phone)
	}
	if e.EventType != "" {
		fmt.Fprintf(&b, "Event type: %s\r\n", e.EventType)
	}
	if e.EventDate != "" {
		fmt.Fprintf(&b, "Event date: %s\r\n", e.EventDate)
	}
	b.WriteString("\r\n")
	b.WriteString(e.Details)
	b.WriteString("\r\n")
	return b.String()
}

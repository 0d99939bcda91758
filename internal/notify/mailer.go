// Package notify delivers the side-channel messages of the booking flow:
// guest emails over SMTP and web push notifications to admin browsers.
// Every failure here is logged by the caller and never undoes a booking.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/iliyamo/bali-villa-booking/internal/config"
)

// EmailType selects the template.
type EmailType string

const (
	EmailBookingConfirmation EmailType = "booking_confirmation"
	EmailInquiryReceived     EmailType = "inquiry_received"
)

// EmailRequest is the body accepted by the email endpoint.
type EmailRequest struct {
	To   string         `json:"to"`
	Type EmailType      `json:"type"`
	Data map[string]any `json:"data"`
}

var (
	ErrMailDisabled    = errors.New("email delivery is not configured")
	ErrInvalidEmail    = errors.New("invalid recipient address")
	ErrUnknownTemplate = errors.New("unknown email type")
)

// EmailSender is implemented by *Mailer.
type EmailSender interface {
	Send(ctx context.Context, req EmailRequest) (string, error)
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailTemplate struct {
	subject *template.Template
	body    *template.Template
}

var templates = map[EmailType]emailTemplate{
	EmailBookingConfirmation: {
		subject: template.Must(template.New("s").Parse(`Booking request received: {{.villa_name}} ({{.reference}})`)),
		body: template.Must(template.New("b").Parse(`<p>Dear {{.guest_name}},</p>
<p>Thank you for your booking request at <strong>{{.villa_name}}</strong>.</p>
<table>
<tr><td>Check-in</td><td>{{.check_in}}</td></tr>
<tr><td>Check-out</td><td>{{.check_out}}</td></tr>
<tr><td>Nights</td><td>{{.nights}}</td></tr>
<tr><td>Guests</td><td>{{.guests}}</td></tr>
<tr><td>Total</td><td>{{.total}}</td></tr>
</table>
<p>Your booking reference is <strong>{{.reference}}</strong>. Our team will confirm availability with you on WhatsApp shortly.</p>`)),
	},
	EmailInquiryReceived: {
		subject: template.Must(template.New("s").Parse(`We received your inquiry`)),
		body: template.Must(template.New("b").Parse(`<p>Dear {{.guest_name}},</p>
<p>Thank you for reaching out. A member of our concierge team will reply within one business day.</p>
{{with .message}}<blockquote>{{.}}</blockquote>{{end}}`)),
	},
}

// Mailer sends templated emails through an SMTP relay.
type Mailer struct {
	from   string
	domain string
	dialer dialer
	log    logrus.FieldLogger
}

// NewMailer returns nil when cfg has no host; callers treat a nil mailer as
// "email disabled".
func NewMailer(cfg config.SMTPConfig, log logrus.FieldLogger) *Mailer {
	if cfg.Host == "" {
		return nil
	}
	return newMailer(cfg.From, gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password), log)
}

func newMailer(from string, d dialer, log logrus.FieldLogger) *Mailer {
	domain := "localhost"
	if i := strings.LastIndex(from, "@"); i >= 0 && i < len(from)-1 {
		domain = strings.TrimSuffix(from[i+1:], ">")
	}
	return &Mailer{from: from, domain: domain, dialer: d, log: log}
}

// Render builds subject and HTML body for req.
func Render(req EmailRequest) (subject, body string, err error) {
	tpl, ok := templates[req.Type]
	if !ok {
		return "", "", ErrUnknownTemplate
	}
	data := req.Data
	if data == nil {
		data = map[string]any{}
	}
	var s, b bytes.Buffer
	if err := tpl.subject.Execute(&s, data); err != nil {
		return "", "", fmt.Errorf("render subject: %w", err)
	}
	if err := tpl.body.Execute(&b, data); err != nil {
		return "", "", fmt.Errorf("render body: %w", err)
	}
	return s.String(), b.String(), nil
}

// Send renders and delivers req and returns the generated Message-ID.
func (m *Mailer) Send(ctx context.Context, req EmailRequest) (string, error) {
	if m == nil {
		return "", ErrMailDisabled
	}
	to := strings.TrimSpace(req.To)
	if !strings.Contains(to, "@") {
		return "", ErrInvalidEmail
	}
	subject, body, err := Render(req)
	if err != nil {
		return "", err
	}
	id := fmt.Sprintf("<%s@%s>", uuid.NewString(), m.domain)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetHeader("Message-ID", id)
	msg.SetBody("text/html", body)

	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(msg) }()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case err := <-done:
		if err != nil {
			return "", fmt.Errorf("smtp send: %w", err)
		}
	}
	m.log.WithFields(logrus.Fields{"type": req.Type, "message_id": id}).Info("email sent")
	return id, nil
}

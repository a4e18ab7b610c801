// Package contact relays visitor messages to the site owner by email.
package contact

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrMissingFields = errors.New("name and message are required")
	ErrNotConfigured = errors.New("SMTP credentials not configured")
)

// Message is what a visitor submits from the terminal.
type Message struct {
	Name    string `json:"name" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func (m Message) Validate() error {
	if m.Name == "" || m.Message == "" {
		return ErrMissingFields
	}
	return nil
}

// Sender delivers a contact message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

// SMTPMailer sends mail through an authenticated SMTP relay.
type SMTPMailer struct {
	cfg SMTPConfig
	log logrus.FieldLogger
	// send is smtp.SendMail; replaced in tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
	now  func() time.Time
}

func NewSMTPMailer(cfg SMTPConfig, log logrus.FieldLogger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, log: log, send: smtp.SendMail, now: time.Now}
}

// Send composes and delivers msg. smtp.SendMail cannot be interrupted, so ctx
// is only checked before dialing.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if m.cfg.User == "" || m.cfg.Pass == "" {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	to := m.cfg.To
	if to == "" {
		to = m.cfg.User
	}
	raw, err := compose(m.cfg.User, to, msg, m.now())
	if err != nil {
		return fmt.Errorf("compose mail: %w", err)
	}

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	if err := m.send(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{to}, raw); err != nil {
		m.log.WithError(err).Error("sending contact email")
		return fmt.Errorf("send mail: %w", err)
	}

	m.log.WithField("name", msg.Name).Info("contact email sent")
	return nil
}

// Subject is the subject line of the relayed mail.
func Subject(name string) string {
	return fmt.Sprintf("New Contact from %s (Terminal Portfolio)", name)
}

func textBody(msg Message) string {
	return fmt.Sprintf("Name: %s\n\nMessage:\n%s", msg.Name, msg.Message)
}

func htmlBody(msg Message) string {
	escaped := strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>")
	return fmt.Sprintf(`
<h3>New Contact Request</h3>
<p><strong>Name:</strong> %s</p>
<p><strong>Message:</strong></p>
<p>%s</p>
`, html.EscapeString(msg.Name), escaped)
}

// headerSafe strips line breaks so visitor input cannot inject headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

func compose(from, to string, msg Message, at time.Time) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	parts := []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=UTF-8", textBody(msg)},
		{"text/html; charset=UTF-8", htmlBody(msg)},
	}
	for _, p := range parts {
		w, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {p.contentType}})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(p.content)); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "From: %s\r\n", from)
	fmt.Fprintf(&out, "To: %s\r\n", to)
	fmt.Fprintf(&out, "Subject: %s\r\n", headerSafe(Subject(msg.Name)))
	fmt.Fprintf(&out, "Date: %s\r\n", at.Format(time.RFC1123Z))
	fmt.Fprintf(&out, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&out, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", mw.Boundary())
	out.Write(body.Bytes())
	return out.Bytes(), nil
}

package contact

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Submission is a form as received by the server.
type Submission struct {
	ID         uuid.UUID
	Form       Form
	ReceivedAt time.Time
}

// NewSubmission stamps f with a fresh ID and the current time.
func NewSubmission(f Form) Submission {
	return Submission{
		ID:         uuid.New(),
		Form:       f,
		ReceivedAt: time.Now(),
	}
}

// Submitter decides what happens to a submitted form.
type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// Discard logs the submission and drops it. Nothing outside the process
// observes it.
type Discard struct {
	Logger *log.Logger
}

func (d Discard) Submit(_ context.Context, s Submission) error {
	logger := d.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("Contact form submitted: id=%s name=%q email=%q message_len=%d",
		s.ID, s.Form.Name, s.Form.Email, len(s.Form.Message))
	return nil
}

// SMTPConfig configures Mailer.
type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

// Enabled reports whether credentials are present.
func (c SMTPConfig) Enabled() bool {
	return c.User != "" && c.Pass != ""
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer delivers submissions by email.
type Mailer struct {
	cfg  SMTPConfig
	send sendFunc
}

func NewMailer(cfg SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg, send: smtp.SendMail}
}

func (m *Mailer) Submit(ctx context.Context, s Submission) error {
	if !m.cfg.Enabled() {
		return fmt.Errorf("contact: SMTP credentials not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := composeMessage(m.cfg, s)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)

	if err := m.send(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{m.cfg.To}, msg); err != nil {
		log.Printf("Error sending contact email %s: %v", s.ID, err)
		return fmt.Errorf("contact: send mail: %w", err)
	}

	log.Printf("Contact email %s sent for %s", s.ID, s.Form.Email)
	return nil
}

func composeMessage(cfg SMTPConfig, s Submission) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", headerValue(s.Form.Name))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Submission %s received %s
`, s.Form.Name, s.Form.Email, s.Form.Message, s.ID, s.ReceivedAt.Format(time.RFC1123))

	return []byte("To: " + cfg.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + cfg.User + "\r\n" +
		"Reply-To: " + headerValue(s.Form.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

var headerReplacer = strings.NewReplacer("\r", " ", "\n", " ")

// headerValue keeps visitor input on a single header line.
func headerValue(v string) string {
	return headerReplacer.Replace(v)
}

package mailer

import (
	"context"

	"github.com/goliatone/go-errors"
	"gopkg.in/gomail.v2"
)

// Message is an outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers messages. Delivery is synchronous from the caller's
// perspective; callers decide on rollback based on the returned error.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Config holds SMTP settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpMailer struct {
	cfg    Config
	dialer *gomail.Dialer
}

// NewSMTP creates a gomail-backed Mailer.
func NewSMTP(cfg Config) Mailer {
	return &smtpMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	select {
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), errors.CategoryOperation, "context cancelled during email send")
	default:
	}

	if m.cfg.Host == "" || m.cfg.From == "" {
		return errors.New("email config missing", errors.CategoryOperation)
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.cfg.From)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)

	if err := m.dialer.DialAndSend(gm); err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "send email")
	}

	return nil
}

package email

import (
	"context"
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"

	"annia/internal/application/intake/usecases"
	"annia/internal/domain/intake"
	sharedConfig "annia/internal/shared/config"
)

// SMTPMailer sends notifications through one SMTP relay. Every Send dials a
// fresh connection and makes a single attempt.
type SMTPMailer struct {
	dialer *gomail.Dialer
}

func NewSMTPMailer(settings sharedConfig.MailSettings) *SMTPMailer {
	dialer := gomail.NewDialer(settings.Host, settings.Port, settings.User, settings.Password)
	dialer.SSL = settings.Secure
	if settings.RequireTLS && !settings.Secure {
		dialer.TLSConfig = &tls.Config{
			ServerName: settings.Host,
			MinVersion: tls.VersionTLS12,
		}
	}

	return &SMTPMailer{dialer: dialer}
}

func (s *SMTPMailer) Send(ctx context.Context, n intake.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.dialer.DialAndSend(BuildMessage(n)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", n.To, err)
	}

	return nil
}

// BuildMessage renders a notification as a multipart text/html message.
func BuildMessage(n intake.Notification) *gomail.Message {
	m := gomail.NewMessage()
	if n.FromName != "" {
		m.SetAddressHeader("From", n.From, n.FromName)
	} else {
		m.SetHeader("From", n.From)
	}
	m.SetHeader("To", n.To)
	if n.ReplyTo != "" {
		m.SetHeader("Reply-To", n.ReplyTo)
	}
	m.SetHeader("Subject", n.Subject)
	m.SetBody("text/plain", n.Text)
	m.AddAlternative("text/html", n.HTML)
	return m
}

// SMTPMailerFactory builds SMTP mailers for the intake use case.
type SMTPMailerFactory struct{}

var _ usecases.MailerFactory = SMTPMailerFactory{}

func (SMTPMailerFactory) NewMailer(settings sharedConfig.MailSettings) usecases.Mailer {
	return NewSMTPMailer(settings)
}

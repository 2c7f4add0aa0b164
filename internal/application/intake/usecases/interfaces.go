package usecases

import (
	"context"

	"annia/internal/domain/intake"
	sharedConfig "annia/internal/shared/config"
)

// Mailer delivers a single notification. Implementations make one attempt.
type Mailer interface {
	Send(ctx context.Context, n intake.Notification) error
}

// MailerFactory builds a Mailer for the mail settings in effect.
type MailerFactory interface {
	NewMailer(settings sharedConfig.MailSettings) Mailer
}

// MailSettingsProvider exposes the process-wide mail configuration. It is
// read on every request and may be incomplete.
type MailSettingsProvider interface {
	MailSettings() sharedConfig.MailSettings
}

type SubmitQuickRequestExecutor interface {
	Execute(ctx context.Context, cmd SubmitQuickRequestCommand) (*SubmitQuickRequestResult, error)
}

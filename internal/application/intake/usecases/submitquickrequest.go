package usecases

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"annia/internal/domain/intake"
	"annia/internal/shared/errors"
	"annia/internal/shared/logger"
	"annia/internal/shared/utils"
)

// Caller-facing messages. They are served to the Spanish landing page as is.
const (
	MsgMissingFields    = "Faltan campos obligatorios."
	MsgConfigIncomplete = "Configuración de correo incompleta."
	MsgDispatchFailed   = "No se pudo enviar el correo."
)

type SubmitQuickRequestCommand struct {
	Payload intake.Payload
}

type SubmitQuickRequestResult struct {
	OK bool
}

// SubmitQuickRequestUseCase validates a quick request and sends the operator
// notification and the acknowledgement together. Both must succeed.
type SubmitQuickRequestUseCase struct {
	settings MailSettingsProvider
	mailers  MailerFactory
	logger   logger.Interface
}

func NewSubmitQuickRequestUseCase(
	settings MailSettingsProvider,
	mailers MailerFactory,
	logger logger.Interface,
) *SubmitQuickRequestUseCase {
	return &SubmitQuickRequestUseCase{
		settings: settings,
		mailers:  mailers,
		logger:   logger,
	}
}

func (uc *SubmitQuickRequestUseCase) Execute(ctx context.Context, cmd SubmitQuickRequestCommand) (*SubmitQuickRequestResult, error) {
	submission, missing := intake.NewSubmission(cmd.Payload)
	if len(missing) > 0 {
		uc.logger.Infow("quick request rejected", "missing_fields", missing)
		return nil, errors.NewMissingFieldsError(MsgMissingFields, missing)
	}

	settings := uc.settings.MailSettings()
	if invalid := utils.InvalidFields(settings); len(invalid) > 0 {
		uc.logger.Warnw("mail configuration incomplete", "fields", invalid)
		return nil, errors.NewConfigurationError(MsgConfigIncomplete, strings.Join(invalid, ","))
	}

	routing := intake.Routing{To: settings.To, From: settings.From, FromName: settings.FromName}
	notifications := []intake.Notification{
		intake.OperatorNotification(submission, routing),
		intake.Acknowledgement(submission, routing),
	}

	mailer := uc.mailers.NewMailer(settings)

	// Once dispatch starts it runs to completion even if the caller goes away.
	sendCtx := context.WithoutCancel(ctx)

	var g errgroup.Group
	for _, n := range notifications {
		g.Go(func() error {
			return mailer.Send(sendCtx, n)
		})
	}
	if err := g.Wait(); err != nil {
		uc.logger.Errorw("failed to send quick request notifications", "error", err, "submitter", submission.Email)
		return nil, errors.NewDispatchError(MsgDispatchFailed, err)
	}

	uc.logger.Infow("quick request delivered", "submitter", submission.Email, "interest", submission.Interest)

	return &SubmitQuickRequestResult{OK: true}, nil
}

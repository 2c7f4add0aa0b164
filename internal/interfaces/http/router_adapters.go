package http

import (
	"annia/internal/infrastructure/config"
	sharedConfig "annia/internal/shared/config"
)

// mailSettingsAdapter resolves the mail settings on every call. A missing
// configuration yields empty settings, which the use case reports as
// incomplete.
type mailSettingsAdapter struct {
	current func() *config.Config
}

func (a *mailSettingsAdapter) MailSettings() sharedConfig.MailSettings {
	cfg := a.current()
	if cfg == nil {
		return sharedConfig.MailSettings{}
	}
	return cfg.Mail.Resolve()
}

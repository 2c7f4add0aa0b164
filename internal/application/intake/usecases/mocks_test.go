package usecases

import (
	"context"
	"sync"

	"annia/internal/domain/intake"
	sharedConfig "annia/internal/shared/config"
	"annia/internal/shared/logger"
)

type mockSettingsProvider struct {
	settings sharedConfig.MailSettings
}

func (m *mockSettingsProvider) MailSettings() sharedConfig.MailSettings {
	return m.settings
}

type mockMailer struct {
	mu       sync.Mutex
	sent     []intake.Notification
	SendFunc func(ctx context.Context, n intake.Notification) error
}

func (m *mockMailer) Send(ctx context.Context, n intake.Notification) error {
	m.mu.Lock()
	m.sent = append(m.sent, n)
	m.mu.Unlock()
	if m.SendFunc != nil {
		return m.SendFunc(ctx, n)
	}
	return nil
}

func (m *mockMailer) Sent() []intake.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]intake.Notification(nil), m.sent...)
}

type mockMailerFactory struct {
	mailer   *mockMailer
	settings []sharedConfig.MailSettings
}

func (f *mockMailerFactory) NewMailer(settings sharedConfig.MailSettings) Mailer {
	f.settings = append(f.settings, settings)
	return f.mailer
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)           {}
func (m *mockLogger) Info(msg string, args ...any)            {}
func (m *mockLogger) Warn(msg string, args ...any)            {}
func (m *mockLogger) Error(msg string, args ...any)           {}
func (m *mockLogger) With(args ...any) logger.Interface       { return m }
func (m *mockLogger) Named(name string) logger.Interface      { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...any) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...any) {}

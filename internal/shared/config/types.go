package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// MailConfig holds the SMTP transport and routing settings of the
// quick-request endpoint. Values come straight from the SMTP_* and MAIL_*
// environment variables and may be incomplete.
type MailConfig struct {
	Host       string `mapstructure:"smtp_host"`
	Port       int    `mapstructure:"smtp_port"`
	User       string `mapstructure:"smtp_user"`
	Password   string `mapstructure:"smtp_pass"`
	Secure     string `mapstructure:"smtp_secure"`
	RequireTLS string `mapstructure:"smtp_require_tls"`
	To         string `mapstructure:"mail_to"`
	From       string `mapstructure:"mail_from"`
	FromName   string `mapstructure:"mail_from_name"`
}

// MailSettings is MailConfig after the MAIL_TO/MAIL_FROM fallbacks have been
// applied. Every field tagged required must be set before mail is sent.
type MailSettings struct {
	Host       string `json:"host" validate:"required"`
	Port       int    `json:"port" validate:"required,min=1,max=65535"`
	User       string `json:"user" validate:"required"`
	Password   string `json:"password" validate:"required"`
	Secure     bool   `json:"secure"`
	RequireTLS bool   `json:"require_tls"`
	To         string `json:"to" validate:"required"`
	From       string `json:"from" validate:"required"`
	FromName   string `json:"from_name"`
}

// Resolve applies the fallbacks: the destination and sender addresses default
// to the authenticated SMTP user. The TLS switches are on only for the exact
// value "true".
func (m MailConfig) Resolve() MailSettings {
	to := m.To
	if to == "" {
		to = m.User
	}
	from := m.From
	if from == "" {
		from = m.User
	}
	return MailSettings{
		Host:       m.Host,
		Port:       m.Port,
		User:       m.User,
		Password:   m.Password,
		Secure:     m.Secure == "true",
		RequireTLS: m.RequireTLS == "true",
		To:         to,
		From:       from,
		FromName:   m.FromName,
	}
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type I18nConfig struct {
	// Dir overrides the embedded locale files when set.
	Dir             string   `mapstructure:"dir"`
	DefaultLanguage string   `mapstructure:"default_language"`
	Languages       []string `mapstructure:"languages"`
}

type RateLimitConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	Limit         int  `mapstructure:"limit"`
	WindowSeconds int  `mapstructure:"window_seconds"`
}

func (r *RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// CookieConfig shapes the visitor cookie that keys language preferences.
type CookieConfig struct {
	Domain   string `mapstructure:"domain"`
	Path     string `mapstructure:"path"`
	Secure   bool   `mapstructure:"secure"`
	SameSite string `mapstructure:"same_site"`
	MaxAge   int    `mapstructure:"max_age"`
}

// PreferenceConfig controls how long a language choice is remembered.
type PreferenceConfig struct {
	TTLHours int `mapstructure:"ttl_hours"`
}

func (p *PreferenceConfig) TTL() time.Duration {
	return time.Duration(p.TTLHours) * time.Hour
}

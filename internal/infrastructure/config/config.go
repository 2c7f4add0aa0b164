package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	sharedConfig "annia/internal/shared/config"
)

type Config struct {
	Server     sharedConfig.ServerConfig     `mapstructure:"server"`
	Logger     sharedConfig.LoggerConfig     `mapstructure:"logger"`
	Mail       sharedConfig.MailConfig       `mapstructure:"mail"`
	Redis      sharedConfig.RedisConfig      `mapstructure:"redis"`
	I18n       sharedConfig.I18nConfig       `mapstructure:"i18n"`
	RateLimit  sharedConfig.RateLimitConfig  `mapstructure:"ratelimit"`
	Cookie     sharedConfig.CookieConfig     `mapstructure:"cookie"`
	Preference sharedConfig.PreferenceConfig `mapstructure:"preference"`
}

// mailEnv maps mail settings to the unprefixed variable names the hosting
// platform already exposes.
var mailEnv = map[string]string{
	"mail.smtp_host":        "SMTP_HOST",
	"mail.smtp_port":        "SMTP_PORT",
	"mail.smtp_user":        "SMTP_USER",
	"mail.smtp_pass":        "SMTP_PASS",
	"mail.smtp_secure":      "SMTP_SECURE",
	"mail.smtp_require_tls": "SMTP_REQUIRE_TLS",
	"mail.mail_to":          "MAIL_TO",
	"mail.mail_from":        "MAIL_FROM",
	"mail.mail_from_name":   "MAIL_FROM_NAME",
}

// Load loads configuration from an optional .env file, an optional config
// file and environment variables.
func Load(env string) (*Config, error) {
	// .env is optional when variables come from the platform.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	v.SetEnvPrefix("ANNIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, name := range mailEnv {
		if err := v.BindEnv(key, name); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", name, err)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Mail settings have no defaults: missing values must surface as an
	// incomplete configuration at request time.
	v.SetDefault("mail.smtp_secure", "false")
	v.SetDefault("mail.smtp_require_tls", "false")
	v.SetDefault("mail.mail_from_name", "ANNiA")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("i18n.dir", "")
	v.SetDefault("i18n.default_language", "es")
	v.SetDefault("i18n.languages", []string{"es", "en"})

	v.SetDefault("ratelimit.enabled", false)
	v.SetDefault("ratelimit.limit", 10)
	v.SetDefault("ratelimit.window_seconds", 60)

	v.SetDefault("cookie.path", "/")
	v.SetDefault("cookie.secure", false)
	v.SetDefault("cookie.same_site", "Lax")
	v.SetDefault("cookie.max_age", 365*24*60*60)

	v.SetDefault("preference.ttl_hours", 24*365)
}

package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Hermes  HermesConfig  `yaml:"hermes"`
	Storage StorageConfig `yaml:"storage"`
	Mail    MailConfig    `yaml:"mail"`
	Limits  LimitsConfig  `yaml:"limits"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Port              int    `yaml:"port" validate:"min=1,max=65535"`
	MetricsPort       int    `yaml:"metrics_port" validate:"min=1,max=65535,nefield=Port"`
	AdminToken        string `yaml:"admin_token"`
	ShutdownTimeoutMs int    `yaml:"shutdown_timeout_ms" validate:"min=0"`
}

type HermesConfig struct {
	URL string `yaml:"url" validate:"omitempty,url"`
}

type StorageConfig struct {
	Dir string `yaml:"dir" validate:"required"`
}

type MailConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Host      string `yaml:"host" validate:"required_if=Enabled true"`
	Port      int    `yaml:"port" validate:"min=0,max=65535"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	From      string `yaml:"from" validate:"required_if=Enabled true,omitempty,email"`
	SSL       bool   `yaml:"ssl"`
	TimeoutMs int    `yaml:"timeout_ms" validate:"min=0"`
}

type LimitsConfig struct {
	MaxUploadBytes     int64 `yaml:"max_upload_bytes" validate:"min=1"`
	RateLimitPerMinute int   `yaml:"rate_limit_per_minute" validate:"min=1"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json text"`
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutMs) * time.Millisecond
}

func (c *Config) MailTimeout() time.Duration {
	return time.Duration(c.Mail.TimeoutMs) * time.Millisecond
}

// SlogLevel maps the configured level name to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:              8700,
			MetricsPort:       8701,
			ShutdownTimeoutMs: 10000,
		},
		Storage: StorageConfig{
			Dir: "uploads",
		},
		Mail: MailConfig{
			Port:      465,
			SSL:       true,
			TimeoutMs: 30000,
		},
		Limits: LimitsConfig{
			MaxUploadBytes:     10 << 20,
			RateLimitPerMinute: 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks field constraints declared in struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TOPSIS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("TOPSIS_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("TOPSIS_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("TOPSIS_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("TOPSIS_STORAGE_DIR"); v != "" {
		cfg.Storage.Dir = v
	}
	if v := os.Getenv("TOPSIS_MAIL_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Mail.Enabled = b
		}
	}
	if v := os.Getenv("TOPSIS_MAIL_HOST"); v != "" {
		cfg.Mail.Host = v
	}
	if v := os.Getenv("TOPSIS_MAIL_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Mail.Port = n
		}
	}
	if v := os.Getenv("TOPSIS_MAIL_USERNAME"); v != "" {
		cfg.Mail.Username = v
	}
	if v := os.Getenv("TOPSIS_MAIL_PASSWORD"); v != "" {
		cfg.Mail.Password = v
	}
	if v := os.Getenv("TOPSIS_MAIL_FROM"); v != "" {
		cfg.Mail.From = v
	}
	if v := os.Getenv("TOPSIS_MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Limits.MaxUploadBytes = n
		}
	}
	if v := os.Getenv("TOPSIS_RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Limits.RateLimitPerMinute = n
		}
	}
	if v := os.Getenv("TOPSIS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TOPSIS_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration, read from the environment with
// optional .env loading. Both binaries share one config; the batch ignores
// the HTTP settings and vice versa.
type Config struct {
	Env      string `validate:"oneof=dev prod"`
	LogLevel string `validate:"oneof=debug info warn error"`
	Port     int    `validate:"min=1,max=65535"`

	// DatabaseDSN is a go-sql-driver DSN, e.g.
	// "snackspace:secret@tcp(localhost:3306)/instrumentation?parseTime=true"
	DatabaseDSN string `validate:"required"`

	// BatchLogFile is the append-only invoicing log. Empty disables it.
	BatchLogFile string

	SMTP SMTPConfig
	Mail MailConfig
}

// SMTPConfig holds mail transport settings.
type SMTPConfig struct {
	Host     string `validate:"required"`
	Port     int    `validate:"min=1,max=65535"`
	Username string // optional - the space's relay allows unauthenticated send
	Password string
}

// MailConfig holds the envelope sender identity.
type MailConfig struct {
	From     string `validate:"required,email"`
	FromName string
}

// New loads configuration. A .env file is looked for in the working
// directory and up to two parents, then the environment wins over defaults.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		dir, _ := os.Getwd()
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				break
			}
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PORT", 8080)
	v.SetDefault("DATABASE_DSN", "snackspace:snackspace@tcp(localhost:3306)/instrumentation?parseTime=true")
	v.SetDefault("BATCH_LOG_FILE", "")
	v.SetDefault("SMTP_HOST", "localhost")
	v.SetDefault("SMTP_PORT", 25)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("MAIL_FROM", "snackspace@localhost")
	v.SetDefault("MAIL_FROM_NAME", "Snackspace")

	cfg := &Config{
		Env:          v.GetString("ENV"),
		LogLevel:     v.GetString("LOG_LEVEL"),
		Port:         v.GetInt("PORT"),
		DatabaseDSN:  v.GetString("DATABASE_DSN"),
		BatchLogFile: v.GetString("BATCH_LOG_FILE"),
		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			Username: v.GetString("SMTP_USERNAME"),
			Password: v.GetString("SMTP_PASSWORD"),
		},
		Mail: MailConfig{
			From:     v.GetString("MAIL_FROM"),
			FromName: v.GetString("MAIL_FROM_NAME"),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the ledger service settings
type Config struct {
	Addr            string        `env:"LEDGER_ADDR" envDefault:":8080"`
	Environment     string        `env:"LEDGER_ENV" envDefault:"development"`
	LogLevel        string        `env:"LEDGER_LOG_LEVEL"`
	MailboxCapacity int           `env:"LEDGER_MAILBOX_CAPACITY" envDefault:"0"`
	EventBuffer     int           `env:"LEDGER_EVENT_BUFFER" envDefault:"0"`
	RequestTimeout  time.Duration `env:"LEDGER_REQUEST_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout time.Duration `env:"LEDGER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSOrigins     []string      `env:"LEDGER_CORS_ORIGINS" envSeparator:","`
}

// Load reads an optional .env file and then the process environment.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.MailboxCapacity < 0 {
		return fmt.Errorf("LEDGER_MAILBOX_CAPACITY must not be negative, got %d", c.MailboxCapacity)
	}
	if c.EventBuffer < 0 {
		return fmt.Errorf("LEDGER_EVENT_BUFFER must not be negative, got %d", c.EventBuffer)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("LEDGER_REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

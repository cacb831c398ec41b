// Package config loads application configuration from environment
// variables.  Variables are read with envconfig; a .env file, when
// present, is applied by cmd/server before Load is called.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the runtime configuration of the booking service.
type Config struct {
	Env  string `envconfig:"APP_ENV" default:"dev"`
	Port string `envconfig:"APP_PORT" default:"8080"`

	// DBDriver selects the gateway driver: "mysql" or "pgx".
	DBDriver string `envconfig:"DB_DRIVER" default:"mysql"`
	// DBDSN is the gateway endpoint.  DBPass, when set, replaces the
	// password inside it so the secret can live in its own variable.
	DBDSN  string `envconfig:"DB_DSN" required:"true"`
	DBPass string `envconfig:"DB_PASS"`

	ToastDuration        time.Duration `envconfig:"TOAST_DURATION" default:"3s"`
	SuccessRedirectDelay time.Duration `envconfig:"SUCCESS_REDIRECT_DELAY" default:"1500ms"`
	ErrorRedirectDelay   time.Duration `envconfig:"ERROR_REDIRECT_DELAY" default:"2000ms"`
	WizardTTL            time.Duration `envconfig:"WIZARD_TTL" default:"2h"`

	// RabbitMQURL enables booking events when not empty.
	RabbitMQURL     string `envconfig:"RABBITMQ_URL"`
	BookingExchange string `envconfig:"BOOKING_EXCHANGE" default:"booking.exchange"`
	BookingQueue    string `envconfig:"BOOKING_QUEUE" default:"booking.log"`
	BookingLogDir   string `envconfig:"BOOKING_LOG_DIR" default:"logs"`
}

// Load reads Config from the environment.  A missing DB_DSN or an
// unknown driver is an error.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if c.DBDSN == "" {
		return Config{}, fmt.Errorf("load config: DB_DSN is empty")
	}
	switch c.DBDriver {
	case "mysql", "pgx":
	default:
		return Config{}, fmt.Errorf("load config: unsupported DB_DRIVER %q (want mysql or pgx)", c.DBDriver)
	}
	return c, nil
}

// EventsEnabled reports whether a broker is configured.
func (c Config) EventsEnabled() bool { return c.RabbitMQURL != "" }

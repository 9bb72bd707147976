package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	DatabaseURL string `env:"DATABASE_URL,required"`
	Port        int    `env:"PORT" envDefault:"8080"`
	ClientURL   string `env:"CLIENT_URL" envDefault:"http://localhost:5173"`

	// Money
	Currency string `env:"CURRENCY" envDefault:"USD"`

	// Payments: trusted bypass (no external gateway involved)
	DummyPayments bool `env:"DUMMY_PAYMENTS" envDefault:"false"`

	// Payments: PayPal-style gateway
	PayPalURL      string        `env:"PAYPAL_API_URL" envDefault:"https://api.sandbox.paypal.com"`
	PayPalClientID string        `env:"PAYPAL_CLIENT_ID"`
	PayPalSecret   string        `env:"PAYPAL_SECRET_ID"`
	GatewayTimeout time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"30s"`

	// Enrollment fan-out
	FanOutAttempts int           `env:"FANOUT_ATTEMPTS" envDefault:"3"`
	FanOutBackoff  time.Duration `env:"FANOUT_BACKOFF" envDefault:"200ms"`

	// Reconciliation sweep
	ReconcileInterval time.Duration `env:"RECONCILE_INTERVAL" envDefault:"1m"`
	ReconcileAfter    time.Duration `env:"RECONCILE_AFTER" envDefault:"1m"`

	// CORS
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	// Telegram ops alerting
	AlertBotToken string `env:"ALERT_BOT_TOKEN"`
	AlertChatID   int64  `env:"ALERT_CHAT_ID"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// TrustedBypass reports whether settlement should skip the external gateway
// entirely. Missing gateway credentials force the bypass, matching the
// deployment where no provider account is configured.
func (c *Config) TrustedBypass() bool {
	return c.DummyPayments || c.PayPalClientID == "" || c.PayPalSecret == ""
}

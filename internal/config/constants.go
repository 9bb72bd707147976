package config

const (
	// Invoice number collisions trigger regeneration up to this many times
	// before the creation fails.
	MaxInvoiceAttempts = 5

	// Synthetic payment identifier prefix used on the trusted path. Never
	// emitted by a real gateway.
	InternalPaymentPrefix = "DUMMY-"

	// Telegram message limit for the alert channel.
	MaxAlertMessageLen = 4096
)

package dispatcher

import "github.com/dshills/gotodoc/internal/jslib"

// Config holds dispatcher configuration options.
type Config struct {
	// Lookback is the number of characters the library detector examines
	// before a token.
	Lookback int

	// EnableMetrics enables per-key dispatch statistics.
	EnableMetrics bool

	// RecoverFromPanic wraps handler execution in panic recovery.
	RecoverFromPanic bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Lookback:         jslib.DefaultLookback,
		EnableMetrics:    false,
		RecoverFromPanic: true,
	}
}

// WithLookback returns a copy of the config with the lookback window set.
func (c Config) WithLookback(n int) Config {
	c.Lookback = n
	return c
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}

package boot

import (
	"time"

	"github.com/moffa90/go-xmodem/xmodem"
)

// Config holds the loader configuration.
type Config struct {
	// ProgressCallback is called with transfer-lifecycle events (optional)
	ProgressCallback xmodem.ProgressFunc

	// Logger is used for logging loader activity (optional)
	Logger Logger

	// Handoff is invoked with the image after a successful transfer
	// (optional; Run simply returns when unset)
	Handoff HandoffFunc

	// RetryDelay is how long Run waits between failed transfer attempts
	RetryDelay time.Duration

	// MaxAttempts caps how many transfer attempts Run makes.
	// Zero means retry indefinitely.
	MaxAttempts int
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		RetryDelay: time.Second,
	}
}

// Option is a functional option for configuring the Loader.
type Option func(*Config)

// WithProgressCallback sets a callback for transfer-lifecycle events.
//
// Example:
//
//	loader := boot.New(port, region,
//	    boot.WithProgressCallback(func(p xmodem.Progress) {
//	        fmt.Println(p.Phase)
//	    }),
//	)
func WithProgressCallback(f xmodem.ProgressFunc) Option {
	return func(c *Config) {
		c.ProgressCallback = f
	}
}

// WithLogger sets a logger for loader activity.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithHandoff sets the callback invoked with the received image after a
// successful transfer.
//
// Example:
//
//	loader := boot.New(port, region, boot.WithHandoff(func(image []byte) error {
//	    return jumpTo(image)
//	}))
func WithHandoff(f HandoffFunc) Option {
	return func(c *Config) {
		c.Handoff = f
	}
}

// WithRetryDelay sets the pause between failed transfer attempts.
// Default is one second.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.RetryDelay = d
		}
	}
}

// WithMaxAttempts caps how many transfer attempts Run makes before giving
// up. Default is 0, which retries indefinitely.
func WithMaxAttempts(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.MaxAttempts = n
		}
	}
}

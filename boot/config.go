package boot

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// FileConfig is the on-disk loader configuration for host-side tools.
// All fields are optional; zero values fall back to the loader defaults.
//
// Example file:
//
//	image_limit     = 1048576
//	retry_delay_ms  = 1000
//	read_timeout_ms = 750
//	max_attempts    = 0
type FileConfig struct {
	// ImageLimit is the largest acceptable image size in bytes; it sizes
	// the load region when the tool allocates one.
	ImageLimit int `toml:"image_limit"`

	// RetryDelayMS is the pause between failed transfer attempts.
	RetryDelayMS int `toml:"retry_delay_ms"`

	// ReadTimeoutMS bounds transport reads; zero means block forever.
	// Applied to the transport by the caller, not by the Loader.
	ReadTimeoutMS int `toml:"read_timeout_ms"`

	// MaxAttempts caps transfer attempts; zero retries indefinitely.
	MaxAttempts int `toml:"max_attempts"`
}

// LoadConfig reads a TOML loader configuration from path.
func LoadConfig(path string) (*FileConfig, error) {
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	if cfg.ImageLimit < 0 || cfg.RetryDelayMS < 0 || cfg.ReadTimeoutMS < 0 || cfg.MaxAttempts < 0 {
		return nil, errors.Errorf("config %s: negative values are not allowed", path)
	}
	return &cfg, nil
}

// ReadTimeout returns the configured transport read timeout.
func (c *FileConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutMS) * time.Millisecond
}

// Options translates the file configuration into loader options.
func (c *FileConfig) Options() []Option {
	var opts []Option
	if c.RetryDelayMS > 0 {
		opts = append(opts, WithRetryDelay(time.Duration(c.RetryDelayMS)*time.Millisecond))
	}
	if c.MaxAttempts > 0 {
		opts = append(opts, WithMaxAttempts(c.MaxAttempts))
	}
	return opts
}

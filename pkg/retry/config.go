package retry

import (
	"time"

	"github.com/niels/tinyhttpd/pkg/config"
)

// FromConfig creates backoff options from the application configuration
func FromConfig(cfg *config.Config) Options {
	return Options{
		InitialDelay:  time.Duration(cfg.Backoff.InitialDelay) * time.Millisecond,
		MaxDelay:      time.Duration(cfg.Backoff.MaxDelay) * time.Millisecond,
		BackoffFactor: cfg.Backoff.BackoffFactor,
		JitterFactor:  cfg.Backoff.JitterFactor,
	}
}

package retry

import (
	"math/rand"
	"time"
)

// Options configures the backoff behavior
type Options struct {
	// InitialDelay is the delay after the first failure
	InitialDelay time.Duration

	// MaxDelay is the maximum delay between attempts
	MaxDelay time.Duration

	// BackoffFactor is the factor by which the delay increases after each failure
	BackoffFactor float64

	// JitterFactor adds randomness to the delay (0.0 = no jitter, 1.0 = 100% jitter)
	JitterFactor float64
}

// DefaultOptions returns default backoff options
func DefaultOptions() Options {
	return Options{
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 2.0,
		JitterFactor:  0.2,
	}
}

// Backoff produces successive delays for a failing operation. It is used by
// the accept loop to avoid spinning when accept fails repeatedly; it is never
// applied to per-connection errors, which are dropped rather than retried.
type Backoff struct {
	opts  Options
	delay time.Duration
	rnd   *rand.Rand
}

// NewBackoff creates a backoff starting from the initial delay
func NewBackoff(opts Options) *Backoff {
	return &Backoff{
		opts: opts,
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Next returns the delay to wait before the next attempt, growing it
// exponentially up to the maximum
func (b *Backoff) Next() time.Duration {
	if b.delay == 0 {
		b.delay = b.opts.InitialDelay
	} else {
		// Apply exponential backoff
		b.delay = time.Duration(float64(b.delay) * b.opts.BackoffFactor)

		// Cap at MaxDelay
		if b.delay > b.opts.MaxDelay {
			b.delay = b.opts.MaxDelay
		}
	}

	delay := b.delay

	// Apply jitter
	if b.opts.JitterFactor > 0 {
		jitter := float64(delay) * b.opts.JitterFactor
		delay = time.Duration(float64(delay) + (b.rnd.Float64()*jitter*2 - jitter))
	}

	if delay < 0 {
		delay = 0
	}
	return delay
}

// Reset returns the backoff to its initial state after a success
func (b *Backoff) Reset() {
	b.delay = 0
}

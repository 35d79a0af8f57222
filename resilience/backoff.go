package resilience

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// BackoffConfig configures exponential backoff behavior.
type BackoffConfig struct {
	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration
	// MaxDelay is the upper bound for the delay.
	MaxDelay time.Duration
	// Factor is the multiplier applied per attempt.
	Factor float64
	// Jitter adds randomness to the delay (0.0 to 1.0).
	Jitter float64
}

// DefaultBackoffConfig returns sensible defaults.
func DefaultBackoffConfig() BackoffConfig {
	return BackoffConfig{
		InitialDelay: 2 * time.Second,
		MaxDelay:     30 * time.Second,
		Factor:       2.0,
		Jitter:       0.1,
	}
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *BackoffConfig) ApplyDefaults() {
	if c.InitialDelay <= 0 {
		c.InitialDelay = 2 * time.Second
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 30 * time.Second
	}
	if c.Factor <= 0 {
		c.Factor = 2.0
	}
}

// Backoff tracks consecutive failures and produces the delay before the
// next retry. Safe for concurrent use.
type Backoff struct {
	cfg     BackoffConfig
	mu      sync.Mutex
	attempt int
}

// NewBackoff creates a Backoff from the given configuration.
func NewBackoff(cfg BackoffConfig) *Backoff {
	cfg.ApplyDefaults()
	return &Backoff{cfg: cfg}
}

// Next advances the attempt counter and returns the delay before the
// next retry.
func (b *Backoff) Next() time.Duration {
	b.mu.Lock()
	b.attempt++
	attempt := b.attempt
	b.mu.Unlock()
	return b.Delay(attempt)
}

// Delay returns the delay for the given 1-based attempt without
// advancing the counter.
func (b *Backoff) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	// Exponential backoff: initial * factor^(attempt-1)
	delay := float64(b.cfg.InitialDelay) * math.Pow(b.cfg.Factor, float64(attempt-1))
	if delay > float64(b.cfg.MaxDelay) {
		delay = float64(b.cfg.MaxDelay)
	}

	if b.cfg.Jitter > 0 {
		jitterRange := delay * b.cfg.Jitter
		delay += (rand.Float64()*2 - 1) * jitterRange
	}

	if delay < 0 {
		delay = float64(b.cfg.InitialDelay)
	}
	if delay > float64(b.cfg.MaxDelay) {
		delay = float64(b.cfg.MaxDelay)
	}

	return time.Duration(delay)
}

// Reset restores the attempt counter after a success, so the next
// failure starts again from the initial delay.
func (b *Backoff) Reset() {
	b.mu.Lock()
	b.attempt = 0
	b.mu.Unlock()
}

// Attempt returns the number of consecutive failures recorded since the
// last Reset.
func (b *Backoff) Attempt() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attempt
}

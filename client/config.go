package client

import (
	"time"

	"github.com/kbukum/eventsource/config"
	"github.com/kbukum/eventsource/errors"
	"github.com/kbukum/eventsource/resilience"
)

const (
	defaultInitialReconnectDelay = 2 * time.Second
	defaultMaxReconnectDelay     = 30 * time.Second
	defaultHeartbeatTimeout      = 30 * time.Second
	defaultReadBufferSize        = 4096
)

// Config configures the SSE client.
type Config struct {
	// Name identifies the client in logs and component registration.
	// Defaults to "eventsource".
	Name string `yaml:"name" mapstructure:"name"`

	// URL is the event-stream endpoint.
	URL string `yaml:"url" mapstructure:"url" validate:"required,url"`

	// Headers are extra request headers applied to every connection attempt.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Auth configures request authentication. Nil disables it.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// InitialReconnectDelay is the backoff delay after the first
	// disconnect. Defaults to 2s.
	InitialReconnectDelay time.Duration `yaml:"initial_reconnect_delay" mapstructure:"initial_reconnect_delay"`

	// MaxReconnectDelay caps the backoff delay. Defaults to 30s.
	MaxReconnectDelay time.Duration `yaml:"max_reconnect_delay" mapstructure:"max_reconnect_delay"`

	// BackoffFactor is the backoff multiplier per failed attempt.
	// Defaults to 2.0.
	BackoffFactor float64 `yaml:"backoff_factor" mapstructure:"backoff_factor"`

	// BackoffJitter adds randomness to reconnect delays (0.0 to 1.0).
	BackoffJitter float64 `yaml:"backoff_jitter" mapstructure:"backoff_jitter"`

	// HeartbeatTimeout is the window within which the connection must
	// deliver at least one byte once connected. Defaults to 30s.
	HeartbeatTimeout time.Duration `yaml:"heartbeat_timeout" mapstructure:"heartbeat_timeout"`

	// ReadBufferSize is the size of the stream read buffer. Defaults to 4096.
	ReadBufferSize int `yaml:"read_buffer_size" mapstructure:"read_buffer_size"`

	// EnableH2C opens the stream over cleartext HTTP/2.
	EnableH2C bool `yaml:"enable_h2c" mapstructure:"enable_h2c"`

	// OnConnecting is invoked when a connection attempt starts.
	OnConnecting func() `yaml:"-" mapstructure:"-"`

	// OnConnected is invoked when the stream is established.
	OnConnected func() `yaml:"-" mapstructure:"-"`

	// OnDisconnected is invoked when the stream tears down, after any
	// OnError for the same teardown.
	OnDisconnected func() `yaml:"-" mapstructure:"-"`

	// OnError is invoked with the failure detail of an attempt. All
	// failures are recoverable; the client reconnects regardless.
	OnError func(error) `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "eventsource"
	}
	if c.InitialReconnectDelay <= 0 {
		c.InitialReconnectDelay = defaultInitialReconnectDelay
	}
	if c.MaxReconnectDelay <= 0 {
		c.MaxReconnectDelay = defaultMaxReconnectDelay
	}
	if c.BackoffFactor <= 0 {
		c.BackoffFactor = 2.0
	}
	if c.HeartbeatTimeout <= 0 {
		c.HeartbeatTimeout = defaultHeartbeatTimeout
	}
	if c.ReadBufferSize <= 0 {
		c.ReadBufferSize = defaultReadBufferSize
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := config.ValidateStruct(c); err != nil {
		return errors.InvalidConfig("client", err.Error()).WithCause(err)
	}
	if c.MaxReconnectDelay < c.InitialReconnectDelay {
		return errors.InvalidConfig("max_reconnect_delay", "must not be below initial_reconnect_delay")
	}
	if c.BackoffJitter < 0 || c.BackoffJitter > 1 {
		return errors.InvalidConfig("backoff_jitter", "must be between 0.0 and 1.0")
	}
	return nil
}

// backoffConfig maps the client settings onto the resilience policy.
func (c *Config) backoffConfig() resilience.BackoffConfig {
	return resilience.BackoffConfig{
		InitialDelay: c.InitialReconnectDelay,
		MaxDelay:     c.MaxReconnectDelay,
		Factor:       c.BackoffFactor,
		Jitter:       c.BackoffJitter,
	}
}

package client

import (
	"context"

	"github.com/kbukum/eventsource/component"
)

// Component wraps a Client with lifecycle management.
// Use this when the subscription is part of a managed application
// (e.g., with component.Registry).
type Component struct {
	client *Client
	config Config
	opts   []Option
}

// compile-time assertions
var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent creates a new SSE client component.
// The client is created lazily in Start().
func NewComponent(cfg Config, opts ...Option) *Component {
	return &Component{config: cfg, opts: opts}
}

// Name returns the component name.
func (c *Component) Name() string {
	name := c.config.Name
	if name == "" {
		name = "eventsource"
	}
	return name
}

// Start creates the client and begins the subscription.
func (c *Component) Start(ctx context.Context) error {
	cl, err := New(c.config, c.opts...)
	if err != nil {
		return err
	}
	c.client = cl
	return cl.Connect(ctx)
}

// Stop closes the subscription.
func (c *Component) Stop(_ context.Context) error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Health reports healthy while the stream is established.
func (c *Component) Health(_ context.Context) component.Health {
	status := component.StatusUnhealthy
	if c.client != nil {
		switch c.client.State() {
		case StateConnected:
			status = component.StatusHealthy
		case StateConnecting:
			status = component.StatusDegraded
		}
	}
	return component.Health{
		Name:   c.Name(),
		Status: status,
	}
}

// Describe returns the component description.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    c.Name(),
		Type:    "sse-client",
		Details: c.config.URL,
	}
}

// Client returns the underlying client. Must be called after Start().
func (c *Component) Client() *Client {
	return c.client
}

package hub

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/eventsource/component"
)

// Component wraps a Hub as a lifecycle-managed component.
// Register it with the component registry so Start/Stop are handled
// automatically.
type Component struct {
	hub  *Hub
	wg   sync.WaitGroup
	mu   sync.Mutex
	path string
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates a component with a fresh Hub. path is the HTTP
// path the hub is served on, used only for the description.
func NewComponent(path string) *Component {
	return &Component{
		hub:  New(),
		path: path,
	}
}

// Hub returns the underlying Hub for broadcasting and subscriber
// management.
func (c *Component) Hub() *Hub { return c.hub }

// Name returns the component name.
func (c *Component) Name() string { return "hub" }

// Start launches the hub's routing loop in a background goroutine.
func (c *Component) Start(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.hub.Run()
	}()
	return nil
}

// Stop signals the hub to shut down and waits for Run to return.
func (c *Component) Stop(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hub.Stop()
	c.wg.Wait()
	return nil
}

// Health reports the subscriber count.
func (c *Component) Health(_ context.Context) component.Health {
	return component.Health{
		Name:    c.Name(),
		Status:  component.StatusHealthy,
		Message: fmt.Sprintf("%d subscribers connected", c.hub.SubscriberCount()),
	}
}

// Describe returns the component description.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    "Event Hub",
		Type:    "sse-hub",
		Details: fmt.Sprintf("Path: %s", c.path),
	}
}

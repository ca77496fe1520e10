package sse

import (
	"context"
	"fmt"
	"sync"

	"github.com/skillsenselab/lyricsync/component"
)

// Component wraps the hub as a lifecycle-managed component so the
// registry handles Start/Stop.
type Component struct {
	hub *Hub
	wg  sync.WaitGroup
	mu  sync.Mutex
}

var _ component.Component = (*Component)(nil)

// NewComponent creates an SSE component with a fresh hub.
func NewComponent() *Component {
	return &Component{hub: NewHub()}
}

// Hub returns the underlying hub for broadcasting and client handling.
func (c *Component) Hub() *Hub { return c.hub }

// Name returns the component name.
func (c *Component) Name() string { return "sse" }

// Start launches the hub's event loop in a background goroutine.
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

// Health reports the hub status with the connected client count.
func (c *Component) Health(_ context.Context) component.Health {
	return component.Health{
		Name:    c.Name(),
		Status:  component.StatusHealthy,
		Message: fmt.Sprintf("%d clients connected", c.hub.ClientCount()),
	}
}

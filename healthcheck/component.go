package healthcheck

import (
	"context"

	"github.com/skillsenselab/lyricsync/component"
)

const componentName = "backend-monitor"

// Component wraps a Monitor for lifecycle management. The backend being
// down degrades health instead of failing it, since the editor keeps
// working on the already transcribed timeline.
type Component struct {
	monitor *Monitor
}

// NewComponent wraps m as a lifecycle component.
func NewComponent(m *Monitor) *Component {
	return &Component{monitor: m}
}

// Name returns the component name.
func (c *Component) Name() string { return componentName }

// Start begins periodic probing.
func (c *Component) Start(ctx context.Context) error {
	c.monitor.Start(ctx)
	return nil
}

// Stop halts probing.
func (c *Component) Stop(_ context.Context) error {
	c.monitor.Stop()
	return nil
}

// Health reports the backend reachability.
func (c *Component) Health(_ context.Context) component.Health {
	h := component.Health{Name: componentName}
	switch c.monitor.Status() {
	case StatusReachable:
		h.Status = component.StatusHealthy
	case StatusChecking:
		h.Status = component.StatusDegraded
		h.Message = "first probe has not completed"
	default:
		h.Status = component.StatusDegraded
		h.Message = "speech backend unreachable"
	}
	return h
}

// Monitor returns the wrapped monitor.
func (c *Component) Monitor() *Monitor { return c.monitor }

package view

import (
	"context"
	"time"

	"github.com/likipe/zonekit/internal/poll"
)

// DefaultRenderInterval is used when Start receives a non-positive interval.
const DefaultRenderInterval = poll.DefaultInterval

// PeriodicRenderer re-renders a view on a fixed interval, for content that
// depends on the clock such as relative timestamps.
type PeriodicRenderer struct {
	view     View
	onRender func(content string)
	ctl      poll.Controller
}

// NewPeriodicRenderer returns an idle renderer for v. onRender, if non-nil,
// receives each new output; a Bubble Tea program typically uses it to send
// a repaint message.
func NewPeriodicRenderer(v View, onRender func(content string)) *PeriodicRenderer {
	return &PeriodicRenderer{view: v, onRender: onRender}
}

// Start begins rendering every interval unless a loop is already running,
// and reports whether it started one.
func (p *PeriodicRenderer) Start(ctx context.Context, interval time.Duration) bool {
	return p.ctl.StartIfIdle(ctx, interval, false, func(context.Context) {
		out := p.view.Render()
		if p.onRender != nil {
			p.onRender(out)
		}
	})
}

// Stop cancels the loop.
func (p *PeriodicRenderer) Stop() {
	p.ctl.Stop()
}

// Active reports whether the loop is running.
func (p *PeriodicRenderer) Active() bool {
	return p.ctl.Active()
}

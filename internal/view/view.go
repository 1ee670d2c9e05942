package view

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/likipe/zonekit/internal/events"
)

// View is anything that can be mounted in a container or zone.
//
// Render rebuilds the view's output and returns it; it may be called any
// number of times. Content returns the output of the last Render. Close
// releases the view's event bindings and sub-views and must be safe to call
// more than once.
type View interface {
	Render() string
	Content() string
	Close()
}

// Updater is implemented by views that react to Bubble Tea messages.
type Updater interface {
	Update(msg tea.Msg) tea.Cmd
}

// Base carries the state every view needs: its last rendered content, the
// event subscriptions to release on Close, assigned sub-views and an
// optional close hook. Embed it and implement Render.
type Base struct {
	mu       sync.Mutex
	content  string
	bindings []events.Subscription
	regions  map[string]View
	order    []string
	onClose  func()
	closed   bool
}

// Bind registers subscriptions that Close cancels.
func (b *Base) Bind(subs ...events.Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bindings = append(b.bindings, subs...)
}

// SetContent stores s as the rendered content and returns it.
func (b *Base) SetContent(s string) string {
	b.mu.Lock()
	b.content = s
	b.mu.Unlock()
	return s
}

// Content returns the last rendered output.
func (b *Base) Content() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.content
}

// OnClose installs fn to run once when the view is closed.
func (b *Base) OnClose(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onClose = fn
}

// Assign mounts child under region and renders it. A different view
// previously assigned to the region is closed.
func (b *Base) Assign(region string, child View) string {
	b.mu.Lock()
	if b.regions == nil {
		b.regions = make(map[string]View)
	}
	prev, had := b.regions[region]
	b.regions[region] = child
	if !had {
		b.order = append(b.order, region)
	}
	b.mu.Unlock()

	if had && prev != nil && prev != child {
		prev.Close()
	}
	if child == nil {
		return ""
	}
	return child.Render()
}

// Region returns the view assigned to region, or nil.
func (b *Base) Region(region string) View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.regions[region]
}

// RegionContent returns the last output of the view assigned to region.
func (b *Base) RegionContent(region string) string {
	if v := b.Region(region); v != nil {
		return v.Content()
	}
	return ""
}

// Close cancels bindings, closes assigned sub-views in assignment order and
// runs the close hook. Later calls do nothing.
func (b *Base) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	bindings := b.bindings
	b.bindings = nil
	children := make([]View, 0, len(b.order))
	for _, name := range b.order {
		if v := b.regions[name]; v != nil {
			children = append(children, v)
		}
	}
	b.regions = nil
	b.order = nil
	hook := b.onClose
	b.content = ""
	b.mu.Unlock()

	for _, sub := range bindings {
		sub.Cancel()
	}
	for _, child := range children {
		child.Close()
	}
	if hook != nil {
		hook()
	}
}

// Closed reports whether Close has run.
func (b *Base) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// Func is a view whose output comes from a render function.
type Func struct {
	Base
	render func() string
}

// NewFunc returns a view rendering with fn.
func NewFunc(fn func() string) *Func {
	return &Func{render: fn}
}

// Render calls the render function and stores the result.
func (f *Func) Render() string {
	if f.render == nil {
		return f.SetContent("")
	}
	return f.SetContent(f.render())
}

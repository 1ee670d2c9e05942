package zone

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/likipe/zonekit/internal/view"
)

var (
	// ErrInvalidZone is returned for zone names the manager was not
	// created with.
	ErrInvalidZone = errors.New("invalid zone name")
	// ErrNilView is returned when a factory's CreateZone yields no view.
	ErrNilView = errors.New("zone factory returned no view")
)

// Assignment pairs a zone with the factory to install. A nil Factory
// clears the zone.
type Assignment struct {
	Zone    string
	Factory Factory
}

// Group is an ordered set of assignments applied by SetZoneGroup.
type Group []Assignment

// Layout composes zone output. names is the manager's zone order and
// blocks holds each zone's current content.
type Layout func(names []string, blocks map[string]string) string

// VerticalLayout stacks non-empty zones top to bottom.
func VerticalLayout(names []string, blocks map[string]string) string {
	parts := make([]string, 0, len(names))
	for _, name := range names {
		if s := blocks[name]; s != "" {
			parts = append(parts, s)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Manager owns a fixed set of named zones, each backed by a container and
// occupied by at most one factory.
type Manager struct {
	mu         sync.Mutex
	names      []string
	containers map[string]*view.Container
	factories  map[string]Factory
	focus      string
	layout     Layout
}

// NewManager creates a manager with one empty zone per name.
func NewManager(names ...string) *Manager {
	m := &Manager{
		containers: make(map[string]*view.Container, len(names)),
		factories:  make(map[string]Factory, len(names)),
		layout:     VerticalLayout,
	}
	for _, name := range names {
		if _, dup := m.containers[name]; dup {
			continue
		}
		m.names = append(m.names, name)
		m.containers[name] = view.NewContainer()
	}
	return m
}

// SetLayout replaces the layout used by Render and Content.
func (m *Manager) SetLayout(l Layout) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l == nil {
		l = VerticalLayout
	}
	m.layout = l
}

// Zones returns the zone names in creation order.
func (m *Manager) Zones() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.names...)
}

// Container returns the container backing name, or nil.
func (m *Manager) Container(name string) *view.Container {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.containers[name]
}

// Factory returns the factory occupying name, or nil.
func (m *Manager) Factory(name string) Factory {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.factories[name]
}

// SetZoneContents installs f in zone name. Installing the factory already
// present does nothing. Otherwise the current factory is closed (CloseZone
// then a closed event), f creates the zone's new view and f emits created.
// A nil f clears the zone.
func (m *Manager) SetZoneContents(name string, f Factory) error {
	m.mu.Lock()
	c, ok := m.containers[name]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrInvalidZone, name)
	}
	cur := m.factories[name]
	if f != nil && cur != nil && cur.ID() == f.ID() {
		m.mu.Unlock()
		return nil
	}
	delete(m.factories, name)
	if f != nil {
		m.factories[name] = f
	}
	m.mu.Unlock()

	if cur != nil {
		cur.CloseZone()
		cur.Events().Trigger(Closed, c.View())
	}
	if f == nil {
		c.SetView(nil)
		return nil
	}

	v := f.CreateZone()
	if isNil(v) {
		m.mu.Lock()
		if got := m.factories[name]; got != nil && got.ID() == f.ID() {
			delete(m.factories, name)
		}
		m.mu.Unlock()
		c.SetView(nil)
		f.CloseZone()
		return fmt.Errorf("%w: zone %q", ErrNilView, name)
	}
	c.SetView(v)
	f.Events().Trigger(Created, v)
	return nil
}

// ClearZoneContents closes the zone's factory, if any, and empties it.
func (m *Manager) ClearZoneContents(name string) error {
	return m.SetZoneContents(name, nil)
}

// SetZoneGroup applies each assignment in order. Every zone name is
// checked first, so an unknown name leaves all zones untouched. Zones not
// mentioned keep their contents.
func (m *Manager) SetZoneGroup(group Group) error {
	m.mu.Lock()
	for _, a := range group {
		if _, ok := m.containers[a.Zone]; !ok {
			m.mu.Unlock()
			return fmt.Errorf("%w: %q", ErrInvalidZone, a.Zone)
		}
	}
	m.mu.Unlock()

	var errs []error
	for _, a := range group {
		if err := m.SetZoneContents(a.Zone, a.Factory); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CurrentZones returns a snapshot of occupied zones and their factories.
func (m *Manager) CurrentZones() map[string]Factory {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.factories)
}

// Focus directs key messages to zone name.
func (m *Manager) Focus(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.containers[name]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidZone, name)
	}
	m.focus = name
	return nil
}

// Focused returns the zone receiving key messages, or "".
func (m *Manager) Focused() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.focus
}

// Update routes key messages to the focused zone and every other message
// to all zones.
func (m *Manager) Update(msg tea.Msg) tea.Cmd {
	m.mu.Lock()
	focus := m.focus
	targets := make([]*view.Container, 0, len(m.names))
	for _, name := range m.names {
		targets = append(targets, m.containers[name])
	}
	m.mu.Unlock()

	if _, ok := msg.(tea.KeyMsg); ok {
		if c := m.Container(focus); c != nil {
			return c.Update(msg)
		}
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(targets))
	for _, c := range targets {
		cmds = append(cmds, c.Update(msg))
	}
	return tea.Batch(cmds...)
}

// Render re-renders every zone and returns the composed output.
func (m *Manager) Render() string {
	return m.compose(func(c *view.Container) string { return c.Render() })
}

// Content composes the zones' latest output without re-rendering.
func (m *Manager) Content() string {
	return m.compose(func(c *view.Container) string { return c.Content() })
}

func (m *Manager) compose(fn func(*view.Container) string) string {
	m.mu.Lock()
	names := append([]string(nil), m.names...)
	containers := maps.Clone(m.containers)
	layout := m.layout
	m.mu.Unlock()

	blocks := make(map[string]string, len(names))
	for _, name := range names {
		blocks[name] = fn(containers[name])
	}
	return layout(names, blocks)
}

// Close closes every occupied zone and tears down all containers. The
// manager has no zones afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	names := m.names
	containers := m.containers
	factories := m.factories
	m.names = nil
	m.containers = map[string]*view.Container{}
	m.factories = map[string]Factory{}
	m.focus = ""
	m.mu.Unlock()

	for _, name := range names {
		c := containers[name]
		if f := factories[name]; f != nil {
			f.CloseZone()
			f.Events().Trigger(Closed, c.View())
		}
		c.Close()
	}
}

// isNil also catches a nil pointer stored in a non-nil View.
func isNil(v view.View) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

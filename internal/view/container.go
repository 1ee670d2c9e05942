package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Container hosts at most one child view. Replacing the child closes the
// previous one.
type Container struct {
	Base
	child View
}

// NewContainer returns an empty container.
func NewContainer() *Container {
	return &Container{}
}

// SetView closes the current child (unless it is v), adopts v and renders.
// A nil v empties the container.
func (c *Container) SetView(v View) string {
	c.mu.Lock()
	prev := c.child
	c.child = v
	c.mu.Unlock()

	if prev != nil && prev != v {
		prev.Close()
	}
	return c.Render()
}

// View returns the current child, or nil.
func (c *Container) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.child
}

// Render renders the child, or clears the content when empty.
func (c *Container) Render() string {
	child := c.View()
	if child == nil {
		return c.SetContent("")
	}
	return c.SetContent(child.Render())
}

// Content returns the child's latest output. A child that re-renders itself
// on data events is reflected without re-rendering the container.
func (c *Container) Content() string {
	if child := c.View(); child != nil {
		return child.Content()
	}
	return ""
}

// Update forwards msg to the child when it handles messages.
func (c *Container) Update(msg tea.Msg) tea.Cmd {
	if u, ok := c.View().(Updater); ok {
		return u.Update(msg)
	}
	return nil
}

// Close closes the child and the container itself.
func (c *Container) Close() {
	c.mu.Lock()
	child := c.child
	c.child = nil
	c.mu.Unlock()

	if child != nil {
		child.Close()
	}
	c.Base.Close()
}

package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the global keyboard bindings. Dialog and dropdown keys
// live in their own packages.
type keyMap struct {
	Quit       key.Binding
	CycleTheme key.Binding
	SwitchMain key.Binding
	Filter     key.Binding
	Refresh    key.Binding
	Edit       key.Binding
	Delete     key.Binding
}

// defaultKeyMap returns the default key bindings.
func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Theme"),
		),
		SwitchMain: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next view"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Filter"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Edit profile"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Delete profile"),
		),
	}
}

// ShortHelp returns key bindings for the footer hint line.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchMain, k.Filter, k.Edit, k.Delete, k.CycleTheme, k.Quit}
}

// FullHelp returns every key binding.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SwitchMain, k.Filter, k.Refresh},
		{k.Edit, k.Delete},
		{k.CycleTheme, k.Quit},
	}
}

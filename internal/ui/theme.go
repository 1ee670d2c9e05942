package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/likipe/zonekit/internal/dropdown"
	"github.com/likipe/zonekit/internal/modal"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header and footer bars
	SurfaceAlt string // Dialog background
	FocusBg    string // Focus/active states

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Task status colors
	StatusColors map[string]string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)),

		Surface: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		statusColors: t.StatusColors,
		background:   t.Background,
		muted:        t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Background lipgloss.Style
	Surface    lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Logo     lipgloss.Style
	Selected lipgloss.Style

	statusColors map[string]string
	background   string
	muted        string
}

// StatusStyle returns a badge style for a task status.
func (s Styles) StatusStyle(status string) lipgloss.Style {
	color := s.statusColors[strings.ToLower(strings.TrimSpace(status))]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// WithBackground returns a copy of Styles with all text styles having the
// specified background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)

	out := s
	out.Background = s.Background.Background(bg)
	out.Surface = s.Surface.Background(bg)
	out.Text = s.Text.Background(bg)
	out.MutedText = s.MutedText.Background(bg)
	out.FaintText = s.FaintText.Background(bg)
	out.AccentText = s.AccentText.Background(bg)
	out.SuccessText = s.SuccessText.Background(bg)
	out.WarningText = s.WarningText.Background(bg)
	out.DangerText = s.DangerText.Background(bg)
	out.Logo = s.Logo.Background(bg)
	out.Selected = s.Selected.Background(bg)
	return out
}

// DropdownStyles returns dropdown styles in the theme's colors.
func (t Theme) DropdownStyles() dropdown.Styles {
	return dropdown.Styles{
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).Bold(true),
		Option:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		Cursor:   lipgloss.NewStyle().Background(lipgloss.Color(t.SelectionBg)).Foreground(lipgloss.Color(t.SelectionText)),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)).Bold(true),
		Query:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
	}
}

// ModalStyles returns dialog styles in the theme's colors.
func (t Theme) ModalStyles() modal.Styles {
	button := lipgloss.NewStyle().Padding(0, 1)
	return modal.Styles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Background(lipgloss.Color(t.SurfaceAlt)).
			Padding(0, 1),
		Title:          lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).Bold(true),
		Error:          lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
		Button:         button.Foreground(lipgloss.Color(t.Text)),
		ButtonFocused:  button.Background(lipgloss.Color(t.SelectionBg)).Foreground(lipgloss.Color(t.SelectionText)),
		ButtonDisabled: button.Foreground(lipgloss.Color(t.Faint)),
	}
}

var themes = map[string]Theme{
	"Dracula": draculaTheme(),
	"Slate":   slateTheme(),
}

var themeOrder = []string{"Dracula", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return draculaTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

// palette holds the active theme and terminal size. Views read it from
// stream goroutines while the program loop changes it.
type palette struct {
	mu     sync.RWMutex
	theme  Theme
	width  int
	height int
}

func (p *palette) Theme() Theme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.theme
}

func (p *palette) SetTheme(t Theme) {
	p.mu.Lock()
	p.theme = t
	p.mu.Unlock()
}

func (p *palette) Width() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.width
}

func (p *palette) Height() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.height
}

func (p *palette) SetSize(w, h int) {
	p.mu.Lock()
	p.width, p.height = w, h
	p.mu.Unlock()
}

func draculaTheme() Theme {
	// Official Dracula palette: https://draculatheme.com/spec
	return Theme{
		Name: "Dracula",

		Background: "#191A21", // BGDarker
		Surface:    "#282A36", // Background
		SurfaceAlt: "#21222C", // BGDark
		FocusBg:    "#343746", // BGLight

		SelectionBg:   "#44475A", // Selection
		SelectionText: "#F8F8F2", // Foreground

		Border:      "#44475A",
		BorderFocus: "#BD93F9", // Purple

		Text:    "#F8F8F2",
		Muted:   "#6272A4", // Comment
		Faint:   "#44475A",
		Accent:  "#BD93F9",
		Success: "#50FA7B",
		Warning: "#FFB86C",
		Danger:  "#FF5555",
		Info:    "#8BE9FD",

		StatusColors: map[string]string{
			"open":        "#6272A4", // Comment (muted)
			"in_progress": "#8BE9FD", // Cyan (active)
			"review":      "#FFB86C", // Orange (attention)
			"blocked":     "#FF79C6", // Pink
			"done":        "#50FA7B", // Green (success)
			"failed":      "#FF5555", // Red (error)
		},
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800
		FocusBg:    "#283548",

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50

		Border:      "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500

		StatusColors: map[string]string{
			"open":        "#64748b", // slate-500
			"in_progress": "#38bdf8", // sky-400
			"review":      "#ea580c", // orange-600
			"blocked":     "#a78bfa", // violet-400
			"done":        "#16a34a", // green-600
			"failed":      "#dc2626", // red-600
		},
	}
}

package dropdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/likipe/zonekit/internal/events"
	"github.com/likipe/zonekit/internal/resource"
	"github.com/likipe/zonekit/internal/view"
)

// Event names the events a Dropdown publishes.
type Event string

// Change fires when the selection changes. The payload is the selected
// model, or nil for the blank option.
const Change Event = "change"

// DefaultLabelKey is the attribute shown when no label is configured.
const DefaultLabelKey = "text"

// Options configure a Dropdown. Option text comes from LabelFunc when set,
// otherwise from the LabelKey attribute (DefaultLabelKey when empty).
type Options struct {
	Title      string
	BlankLabel string
	LabelKey   string
	LabelFunc  func(*resource.Model) string
	KeyMap     *KeyMap
	Styles     *Styles
}

// Styles control how options are drawn.
type Styles struct {
	Title    lipgloss.Style
	Option   lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Query    lipgloss.Style
}

// DefaultStyles returns unthemed styles.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true),
		Option:   lipgloss.NewStyle(),
		Cursor:   lipgloss.NewStyle().Reverse(true),
		Selected: lipgloss.NewStyle().Bold(true),
		Query:    lipgloss.NewStyle().Faint(true),
	}
}

// Option is a snapshot of one rendered option.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Dropdown renders a bound collection as a single-choice list with a
// leading blank option. It re-renders on collection change and reset and
// appends on add. Removed models stay listed until the next full render.
type Dropdown struct {
	view.Base

	coll   *resource.Collection
	label  func(*resource.Model) string
	blank  string
	title  string
	keys   KeyMap
	styles Styles

	mu       sync.Mutex
	items    []*Item
	selected *resource.Model
	cursor   int
	query    string

	events events.Emitter[Event, *resource.Model]
}

var (
	_ view.View    = (*Dropdown)(nil)
	_ view.Updater = (*Dropdown)(nil)
)

// New binds a dropdown to coll and renders it.
func New(coll *resource.Collection, opts Options) *Dropdown {
	d := &Dropdown{
		coll:   coll,
		label:  opts.LabelFunc,
		blank:  opts.BlankLabel,
		title:  opts.Title,
		keys:   DefaultKeyMap(),
		styles: DefaultStyles(),
	}
	if d.label == nil {
		labelKey := opts.LabelKey
		if labelKey == "" {
			labelKey = DefaultLabelKey
		}
		d.label = func(m *resource.Model) string { return m.GetString(labelKey) }
	}
	if d.blank == "" {
		d.blank = "(any)"
	}
	if opts.KeyMap != nil {
		d.keys = *opts.KeyMap
	}
	if opts.Styles != nil {
		d.styles = *opts.Styles
	}

	rerender := func(*resource.Model) { d.Render() }
	d.Bind(
		coll.On(resource.CollectionChange, rerender),
		coll.On(resource.CollectionReset, rerender),
		coll.On(resource.CollectionAdd, func(m *resource.Model) { d.appendItem(m) }),
	)
	d.OnClose(d.closeItems)
	d.Render()
	return d
}

// On subscribes fn to event.
func (d *Dropdown) On(event Event, fn func(*resource.Model)) events.Subscription {
	return d.events.On(event, fn)
}

// Render rebuilds every option from the collection. Item views from the
// previous render are closed.
func (d *Dropdown) Render() string {
	if d.Closed() {
		return ""
	}
	items := []*Item{newItem(nil, d.label, d.blank, d.recompose)}
	for _, m := range d.coll.Models() {
		items = append(items, newItem(m, d.label, d.blank, d.recompose))
	}

	d.mu.Lock()
	old := d.items
	d.items = items
	if d.cursor >= len(items) {
		d.cursor = len(items) - 1
	}
	d.mu.Unlock()

	for _, it := range old {
		it.Close()
	}
	return d.recompose()
}

func (d *Dropdown) appendItem(m *resource.Model) {
	if d.Closed() {
		return
	}
	it := newItem(m, d.label, d.blank, d.recompose)
	d.mu.Lock()
	d.items = append(d.items, it)
	d.mu.Unlock()
	d.recompose()
}

func (d *Dropdown) closeItems() {
	d.mu.Lock()
	items := d.items
	d.items = nil
	d.mu.Unlock()
	for _, it := range items {
		it.Close()
	}
}

// recompose draws the current items without re-rendering them.
func (d *Dropdown) recompose() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var b strings.Builder
	if d.title != "" {
		b.WriteString(d.styles.Title.Render(d.title))
		if d.query != "" {
			b.WriteString(" " + d.styles.Query.Render("/"+d.query))
		}
		b.WriteString("\n")
	}
	sel := d.selectedValueLocked()
	for i, it := range d.items {
		mark := "○ "
		style := d.styles.Option
		if it.Value() == sel {
			mark = "● "
			style = d.styles.Selected
		}
		line := style.Render(mark + it.Content())
		if i == d.cursor {
			line = d.styles.Cursor.Render(mark + it.Content())
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(line)
	}
	return d.SetContent(b.String())
}

// Options returns the rendered options in order, blank first.
func (d *Dropdown) Options() []Option {
	d.mu.Lock()
	defer d.mu.Unlock()
	sel := d.selectedValueLocked()
	out := make([]Option, 0, len(d.items))
	for _, it := range d.items {
		v := it.Value()
		out = append(out, Option{Value: v, Label: it.Content(), Selected: v == sel})
	}
	return out
}

// Selected returns the selected model, or nil.
func (d *Dropdown) Selected() *resource.Model {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selected
}

// Value returns the selected model's id, or BlankValue.
func (d *Dropdown) Value() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selectedValueLocked()
}

func (d *Dropdown) selectedValueLocked() string {
	if d.selected == nil {
		return BlankValue
	}
	return d.selected.ID()
}

// Select is the user selection path: the option with value becomes
// selected and change is emitted. It reports false for unknown values.
func (d *Dropdown) Select(value string) bool {
	var m *resource.Model
	if value != BlankValue {
		if m = d.coll.Get(value); m == nil {
			return false
		}
	}
	d.apply(m, true)
	return true
}

// SetSelected selects the model with id, or the blank option for
// BlankValue or an unknown id, emitting change when emit is set.
func (d *Dropdown) SetSelected(id string, emit bool) {
	var m *resource.Model
	if id != BlankValue {
		m = d.coll.Get(id)
	}
	d.apply(m, emit)
}

// SetSelectedModel selects m (nil for blank), emitting change when emit is
// set.
func (d *Dropdown) SetSelectedModel(m *resource.Model, emit bool) {
	d.apply(m, emit)
}

func (d *Dropdown) apply(m *resource.Model, emit bool) {
	d.mu.Lock()
	d.selected = m
	want := BlankValue
	if m != nil {
		want = m.ID()
	}
	for i, it := range d.items {
		if it.Value() == want {
			d.cursor = i
			break
		}
	}
	d.mu.Unlock()

	d.recompose()
	if emit {
		d.events.Trigger(Change, m)
	}
}

// Update handles navigation, selection and type-ahead.
func (d *Dropdown) Update(msg tea.Msg) tea.Cmd {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(k, d.keys.Up):
		d.move(-1)
	case key.Matches(k, d.keys.Down):
		d.move(1)
	case key.Matches(k, d.keys.Select):
		if v, ok := d.cursorValue(); ok {
			d.Select(v)
		}
	case key.Matches(k, d.keys.Clear):
		d.setQuery("")
	case key.Matches(k, d.keys.Erase):
		d.mu.Lock()
		q := []rune(d.query)
		d.mu.Unlock()
		if len(q) > 0 {
			d.setQuery(string(q[:len(q)-1]))
		}
	case k.Type == tea.KeyRunes:
		d.mu.Lock()
		q := d.query + string(k.Runes)
		d.mu.Unlock()
		d.setQuery(q)
	}
	return nil
}

func (d *Dropdown) move(delta int) {
	d.mu.Lock()
	n := len(d.items)
	if n > 0 {
		d.cursor = (d.cursor + delta + n) % n
	}
	d.mu.Unlock()
	d.recompose()
}

func (d *Dropdown) cursorValue() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cursor < 0 || d.cursor >= len(d.items) {
		return "", false
	}
	return d.items[d.cursor].Value(), true
}

// setQuery stores the type-ahead query and moves the cursor to the closest
// fuzzy match among the non-blank options.
func (d *Dropdown) setQuery(q string) {
	d.mu.Lock()
	d.query = q
	if trimmed := strings.TrimSpace(q); trimmed != "" && len(d.items) > 1 {
		labels := make([]string, len(d.items)-1)
		for i, it := range d.items[1:] {
			labels[i] = it.Content()
		}
		if idx := bestMatch(trimmed, labels); idx >= 0 {
			d.cursor = idx + 1
		}
	}
	d.mu.Unlock()
	d.recompose()
}

// bestMatch returns the index of the label closest to query, preferring a
// prefix match, or -1.
func bestMatch(query string, labels []string) int {
	lower := strings.ToLower(query)
	for i, l := range labels {
		if strings.HasPrefix(strings.ToLower(l), lower) {
			return i
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(query, labels)
	best := -1
	for i, r := range ranks {
		if best < 0 || r.Distance < ranks[best].Distance ||
			(r.Distance == ranks[best].Distance && r.OriginalIndex < ranks[best].OriginalIndex) {
			best = i
		}
	}
	if best < 0 {
		return -1
	}
	return ranks[best].OriginalIndex
}

// Query returns the current type-ahead text.
func (d *Dropdown) Query() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.query
}

package ui

import (
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/likipe/zonekit/internal/modal"
	"github.com/likipe/zonekit/internal/parse"
	"github.com/likipe/zonekit/internal/resource"
	"github.com/likipe/zonekit/internal/view"
	"github.com/likipe/zonekit/internal/zone"
)

const profileURL = "/api/profile"

type profileField struct {
	key         string
	label       string
	placeholder string
}

var profileFields = []profileField{
	{key: "name", label: "Name", placeholder: "Ada Lovelace"},
	{key: "email", label: "Email", placeholder: "ada@example.com"},
	{key: "bio", label: "Bio", placeholder: "Analyst of engines"},
}

// profileFactory fills the main zone with the profile card and streams the
// profile while it is shown.
type profileFactory struct {
	zone.BaseFactory
	env     *env
	profile *resource.SingularModel
}

var _ zone.Factory = (*profileFactory)(nil)

func newProfileFactory(e *env, profile *resource.SingularModel) *profileFactory {
	return &profileFactory{env: e, profile: profile}
}

func (f *profileFactory) CreateZone() view.View {
	v := newProfileView(f.env, f.profile)
	f.Refresh()
	return v
}

func (f *profileFactory) CloseZone() {
	f.profile.Unstream()
}

// Refresh restarts the stream, which fetches immediately.
func (f *profileFactory) Refresh() {
	ok, fail := f.env.store.Callbacks("profile")
	f.profile.Stream(f.env.ctx, resource.StreamOptions{
		Options: resource.Options{
			Success: ok,
			Error: func(err error) {
				fail(err)
				log.Printf("profile: %v", err)
				f.env.notify()
			},
		},
		Interval: f.env.interval,
	})
}

// profileView shows the profile's attributes.
type profileView struct {
	view.Base
	env     *env
	profile *resource.SingularModel
}

func newProfileView(e *env, profile *resource.SingularModel) *profileView {
	v := &profileView{env: e, profile: profile}
	v.Bind(profile.On(resource.ModelChange, func(*resource.Model) {
		v.Render()
		e.notify()
	}))
	v.Render()
	return v
}

func (v *profileView) Render() string {
	if v.Closed() {
		return ""
	}
	styles := v.env.pal.Theme().Styles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Profile"))
	b.WriteString("\n")
	if v.profile.Len() == 0 {
		b.WriteString(styles.MutedText.Render("No profile. Press e to create one."))
		return v.SetContent(b.String())
	}

	label := lipgloss.NewStyle().Width(8).Inherit(styles.MutedText)
	for _, field := range profileFields {
		value := v.profile.GetString(field.key)
		if value == "" {
			value = styles.FaintText.Render("-")
		} else {
			value = styles.Text.Render(value)
		}
		b.WriteString("\n" + label.Render(field.label) + value)
	}
	if updated, err := parse.ParseDateTimeStrict(v.profile.GetString("updated_at")); err == nil {
		b.WriteString("\n\n" + styles.FaintText.Render("updated "+humanize.RelTime(updated, time.Now(), "ago", "from now")))
	}
	return v.SetContent(b.String())
}

// profileForm edits the profile fields inside the dialog.
type profileForm struct {
	view.Base
	fields []profileField
	inputs []*textinput.Model
	styles Styles
}

var (
	_ view.Updater      = (*profileForm)(nil)
	_ modal.InputHolder = (*profileForm)(nil)
)

func newProfileForm(attrs resource.Attributes, styles Styles) *profileForm {
	f := &profileForm{fields: profileFields, styles: styles}
	for _, field := range profileFields {
		in := textinput.New()
		in.Placeholder = field.placeholder
		in.CharLimit = 120
		in.Width = 40
		if s, ok := attrs[field.key].(string); ok {
			in.SetValue(s)
		}
		f.inputs = append(f.inputs, &in)
	}
	return f
}

// Inputs returns the text inputs in field order.
func (f *profileForm) Inputs() []*textinput.Model {
	return f.inputs
}

// Values returns the entered attributes, trimmed.
func (f *profileForm) Values() resource.Attributes {
	out := make(resource.Attributes, len(f.fields))
	for i, field := range f.fields {
		out[field.key] = strings.TrimSpace(f.inputs[i].Value())
	}
	return out
}

func (f *profileForm) focused() int {
	for i, in := range f.inputs {
		if in.Focused() {
			return i
		}
	}
	return -1
}

// Update moves between inputs with up and down and passes other messages
// to the focused input.
func (f *profileForm) Update(msg tea.Msg) tea.Cmd {
	idx := f.focused()
	if idx < 0 {
		return nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyUp, tea.KeyDown:
			next := idx + 1
			if k.Type == tea.KeyUp {
				next = idx - 1
			}
			next = (next + len(f.inputs)) % len(f.inputs)
			f.inputs[idx].Blur()
			return f.inputs[next].Focus()
		}
	}
	updated, cmd := f.inputs[idx].Update(msg)
	*f.inputs[idx] = updated
	return cmd
}

func (f *profileForm) Render() string {
	lines := make([]string, 0, len(f.fields))
	label := lipgloss.NewStyle().Width(8).Inherit(f.styles.MutedText)
	for i, field := range f.fields {
		lines = append(lines, label.Render(field.label)+f.inputs[i].View())
	}
	return f.SetContent(strings.Join(lines, "\n"))
}

package ui

import (
	"context"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/likipe/zonekit/internal/modal"
	"github.com/likipe/zonekit/internal/prefs"
	"github.com/likipe/zonekit/internal/resource"
	"github.com/likipe/zonekit/internal/zone"
)

const (
	zoneHeader = "header"
	zoneMain   = "main"
	zoneFooter = "footer"
)

// inputCapturer is implemented by views that want every key, global
// bindings included, while active.
type inputCapturer interface {
	CapturingInput() bool
}

// filterer is implemented by views with a filter control.
type filterer interface {
	StartFilter()
}

// refresher is implemented by factories whose data can be reloaded.
type refresher interface {
	Refresh()
}

// Model is the Bubble Tea root. It owns the zone manager and the dialog.
type Model struct {
	env      *env
	keys     keyMap
	zones    *zone.Manager
	repaint  *repainter
	notice   *notice
	statuses *resource.Collection
	profile  *resource.SingularModel

	taskZone    *taskFactory
	profileZone *profileFactory
	sections    []section

	prefs      prefs.Prefs
	prefsPath  string
	prefsDirty bool

	dialog      *modal.Modal
	pendingSave resource.Attributes
}

// section is one of the views tab cycles through in the main zone.
type section struct {
	name    string
	factory zone.Factory
}

var _ tea.Model = (*Model)(nil)

func newModel(ctx context.Context, opts Options) (*Model, error) {
	interval := opts.PollEvery
	if interval <= 0 {
		interval = defaultPollInterval
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	m := &Model{
		keys:      defaultKeyMap(),
		repaint:   newRepainter(),
		notice:    &notice{},
		prefs:     opts.Prefs,
		prefsPath: prefsPath,
	}
	m.env = &env{
		ctx:      ctx,
		client:   opts.Client,
		store:    opts.Store,
		pal:      &palette{theme: GetTheme(opts.Prefs.Theme)},
		interval: interval,
		notify:   m.repaint.Notify,
	}

	m.statuses = resource.NewCollection(opts.Client, statusesURL)
	m.profile = resource.NewSingularModel(opts.Client, profileURL)
	m.taskZone = newTaskFactory(m.env, m.statuses, opts.Prefs.StatusFilter, func(status string) {
		m.prefs.StatusFilter = status
		m.prefsDirty = true
	})
	m.profileZone = newProfileFactory(m.env, m.profile)
	m.sections = []section{
		{name: "Tasks", factory: m.taskZone},
		{name: "Profile", factory: m.profileZone},
		{name: "Log", factory: newLogFactory(m.env, opts.LogPath)},
	}

	m.zones = zone.NewManager(zoneHeader, zoneMain, zoneFooter)
	m.zones.SetLayout(m.layout)
	err := m.zones.SetZoneGroup(zone.Group{
		{Zone: zoneHeader, Factory: newHeaderFactory(m.env, opts.BaseURL, m.sectionName)},
		{Zone: zoneMain, Factory: m.taskZone},
		{Zone: zoneFooter, Factory: newFooterFactory(m.env, m.keys, m.notice)},
	})
	if err != nil {
		m.zones.Close()
		return nil, fmt.Errorf("build zones: %w", err)
	}
	if err := m.zones.Focus(zoneMain); err != nil {
		m.zones.Close()
		return nil, fmt.Errorf("focus main: %w", err)
	}
	return m, nil
}

// currentSection returns the index of the section in the main zone.
func (m *Model) currentSection() int {
	f := m.zones.Factory(zoneMain)
	if f == nil {
		return 0
	}
	for i, s := range m.sections {
		if s.factory.ID() == f.ID() {
			return i
		}
	}
	return 0
}

func (m *Model) sectionName() string {
	return m.sections[m.currentSection()].name
}

// layout stretches the main zone to the terminal height.
func (m *Model) layout(names []string, blocks map[string]string) string {
	if height := m.env.pal.Height(); height > 0 {
		rest := lipgloss.Height(blocks[zoneHeader]) + lipgloss.Height(blocks[zoneFooter])
		if h := height - rest; h > 0 {
			blocks[zoneMain] = lipgloss.NewStyle().Height(h).MaxHeight(h).Render(blocks[zoneMain])
		}
	}
	return zone.VerticalLayout(names, blocks)
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.repaint.wait(m.env.ctx), m.fetchStatuses())
}

// fetchStatuses loads the dropdown options. The task view repaints on the
// resulting reset.
func (m *Model) fetchStatuses() tea.Cmd {
	ctx, statuses := m.env.ctx, m.statuses
	ok, fail := m.env.store.Callbacks("statuses")
	return func() tea.Msg {
		if err := statuses.Fetch(ctx, resource.Options{Success: ok, Error: fail}); err != nil {
			log.Printf("statuses: %v", err)
		}
		return nil
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.env.pal.SetSize(msg.Width, msg.Height)
		m.zones.Render()
		return m, nil

	case repaintMsg:
		// The header shows offline sources, which change with every sync.
		if c := m.zones.Container(zoneHeader); c != nil {
			c.Render()
		}
		return m, m.repaint.wait(m.env.ctx)

	case profileSavedMsg:
		if m.dialog == nil {
			return m, nil
		}
		if msg.err != nil {
			m.dialog.ShowError(msg.err.Error())
			return m, nil
		}
		m.dialog.Hide()
		m.notice.Set("Profile saved", false)
		return m, nil

	case profileDeletedMsg:
		if msg.err != nil {
			m.notice.Set("Delete failed: "+msg.err.Error(), true)
		} else {
			m.notice.Set("Profile deleted", false)
		}
		m.zones.Render()
		return m, nil

	case prefsSavedMsg:
		if msg.err != nil {
			log.Printf("save prefs: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, batch(cmd, m.flushPrefs())
	}

	var cmds []tea.Cmd
	if m.dialog != nil {
		cmds = append(cmds, m.dialog.Update(msg))
	}
	cmds = append(cmds, m.zones.Update(msg))
	return m, batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		m.close()
		return tea.Quit
	}
	if m.dialog != nil {
		cmd := m.dialog.Update(msg)
		if attrs := m.pendingSave; attrs != nil {
			m.pendingSave = nil
			return batch(cmd, m.saveProfile(attrs))
		}
		return cmd
	}

	if c, ok := m.mainView().(inputCapturer); ok && c.CapturingInput() {
		return m.zones.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.close()
		return tea.Quit
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return nil
	case key.Matches(msg, m.keys.SwitchMain):
		m.switchMain()
		return nil
	case key.Matches(msg, m.keys.Filter):
		if f, ok := m.mainView().(filterer); ok {
			f.StartFilter()
		}
		return nil
	case key.Matches(msg, m.keys.Refresh):
		if r, ok := m.zones.Factory(zoneMain).(refresher); ok {
			r.Refresh()
		}
		return m.fetchStatuses()
	case key.Matches(msg, m.keys.Edit):
		return m.openEditor()
	case key.Matches(msg, m.keys.Delete):
		return m.deleteProfile()
	}
	return m.zones.Update(msg)
}

func (m *Model) mainView() any {
	c := m.zones.Container(zoneMain)
	if c == nil {
		return nil
	}
	return c.View()
}

func (m *Model) cycleTheme() {
	name := NextTheme(m.env.pal.Theme().Name)
	m.env.pal.SetTheme(GetTheme(name))
	m.prefs.Theme = name
	m.prefsDirty = true
	m.zones.Render()
}

func (m *Model) switchMain() {
	next := m.sections[(m.currentSection()+1)%len(m.sections)].factory
	if err := m.zones.SetZoneContents(zoneMain, next); err != nil {
		log.Printf("switch main zone: %v", err)
	}
	m.zones.Render()
}

// openEditor shows the profile dialog. Saving is answered by a
// profileSavedMsg.
func (m *Model) openEditor() tea.Cmd {
	theme := m.env.pal.Theme()
	form := newProfileForm(m.profile.Attributes(), theme.Styles())
	styles := theme.ModalStyles()
	dialog, err := modal.New(form, modal.Options{Title: "Edit profile", Styles: &styles})
	if err != nil {
		log.Printf("open profile editor: %v", err)
		return nil
	}
	dialog.On(modal.Save, func(*modal.Modal) {
		m.pendingSave = form.Values()
	})
	dialog.On(modal.Hidden, func(d *modal.Modal) {
		if m.dialog == d {
			m.dialog = nil
		}
	})
	m.dialog = dialog
	return dialog.Show()
}

func (m *Model) saveProfile(attrs resource.Attributes) tea.Cmd {
	ctx, profile := m.env.ctx, m.profile
	return func() tea.Msg {
		return profileSavedMsg{err: profile.Save(ctx, attrs, resource.Options{})}
	}
}

func (m *Model) deleteProfile() tea.Cmd {
	if m.profile.Len() == 0 {
		m.notice.Set("No profile to delete", true)
		return nil
	}
	ctx, profile := m.env.ctx, m.profile
	return func() tea.Msg {
		return profileDeletedMsg{err: profile.Destroy(ctx, resource.Options{})}
	}
}

// flushPrefs persists preferences changed while handling the last key.
func (m *Model) flushPrefs() tea.Cmd {
	if !m.prefsDirty {
		return nil
	}
	m.prefsDirty = false
	path, p := m.prefsPath, m.prefs
	return func() tea.Msg {
		return prefsSavedMsg{err: prefs.Save(path, p)}
	}
}

func (m *Model) View() string {
	base := m.zones.Content()
	if m.dialog == nil || !m.dialog.Visible() {
		return base
	}
	width, height := m.env.pal.Width(), m.env.pal.Height()
	if width <= 0 || height <= 0 {
		return m.dialog.Content()
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, m.dialog.Content())
}

// close tears down the zones, which stops every stream and renderer.
func (m *Model) close() {
	if m.dialog != nil {
		m.dialog.Close()
		m.dialog = nil
	}
	m.zones.Close()
}

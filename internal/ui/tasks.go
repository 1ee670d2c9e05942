package ui

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/likipe/zonekit/internal/dropdown"
	"github.com/likipe/zonekit/internal/parse"
	"github.com/likipe/zonekit/internal/resource"
	"github.com/likipe/zonekit/internal/view"
	"github.com/likipe/zonekit/internal/zone"
)

const (
	tasksURL    = "/api/tasks"
	statusesURL = "/api/statuses"

	// sinceWindow bounds the task list to recently created tasks.
	sinceWindow = 30 * 24 * time.Hour

	filterWidth  = 24
	statusWidth  = 13
	filterRegion = "filter"
)

// taskFactory fills the main zone with the task list and its status filter.
// The task stream runs only while the list is displayed.
type taskFactory struct {
	zone.BaseFactory
	env      *env
	tasks    *resource.FilterableCollection
	statuses *resource.Collection
	onFilter func(status string)
	now      func() time.Time

	mu     sync.Mutex
	status string
}

var _ zone.Factory = (*taskFactory)(nil)

// newTaskFactory builds the task collection. Its status filter follows the
// dropdown selection and its since filter is recomputed on every fetch.
func newTaskFactory(e *env, statuses *resource.Collection, status string, onFilter func(string)) *taskFactory {
	f := &taskFactory{
		env:      e,
		statuses: statuses,
		onFilter: onFilter,
		now:      time.Now,
		status:   status,
	}
	f.tasks = resource.NewFilterableCollection(e.client, tasksURL, map[string]resource.Filter{
		"status": resource.Computed(f.Status),
		"since": resource.Computed(func() string {
			return parse.FormatDateTime(f.now().Add(-sinceWindow))
		}),
	})
	return f
}

// Status returns the selected status id, or "" for all.
func (f *taskFactory) Status() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *taskFactory) CreateZone() view.View {
	v := newTaskView(f)
	f.Refresh()
	return v
}

func (f *taskFactory) CloseZone() {
	f.tasks.Unstream()
}

// Refresh restarts the stream, which fetches immediately.
func (f *taskFactory) Refresh() {
	ok, fail := f.env.store.Callbacks("tasks")
	f.tasks.Stream(f.env.ctx, resource.StreamOptions{
		Options: resource.Options{
			Success: ok,
			Error: func(err error) {
				fail(err)
				log.Printf("tasks: %v", err)
				f.env.notify()
			},
		},
		Interval: f.env.interval,
	})
}

// selectStatus handles a dropdown change.
func (f *taskFactory) selectStatus(m *resource.Model) {
	status := ""
	if m != nil {
		status = m.ID()
	}
	f.mu.Lock()
	changed := f.status != status
	f.status = status
	f.mu.Unlock()

	if !changed {
		return
	}
	if f.onFilter != nil {
		f.onFilter(status)
	}
	if f.tasks.IsStreaming() {
		f.Refresh()
	}
}

// taskView lists tasks next to the status dropdown. While filtering, every
// key goes to the dropdown.
type taskView struct {
	view.Base
	f      *taskFactory
	filter *dropdown.Dropdown

	mu        sync.Mutex
	filtering bool
}

var (
	_ view.View     = (*taskView)(nil)
	_ view.Updater  = (*taskView)(nil)
	_ inputCapturer = (*taskView)(nil)
)

func newTaskView(f *taskFactory) *taskView {
	styles := f.env.pal.Theme().DropdownStyles()
	dd := dropdown.New(f.statuses, dropdown.Options{
		Title:      "Status",
		BlankLabel: "All",
		LabelFunc: func(m *resource.Model) string {
			return titleCase(m.GetString("name"))
		},
		Styles: &styles,
	})
	v := &taskView{f: f, filter: dd}
	v.restoreSelection()

	changed := func(*resource.Model) {
		v.Render()
		f.env.notify()
	}
	v.Bind(
		dd.On(dropdown.Change, f.selectStatus),
		f.statuses.On(resource.CollectionReset, func(*resource.Model) {
			v.restoreSelection()
			changed(nil)
		}),
		f.statuses.On(resource.CollectionChange, changed),
		f.tasks.On(resource.CollectionReset, changed),
		f.tasks.On(resource.CollectionAdd, changed),
		f.tasks.On(resource.CollectionRemove, changed),
		f.tasks.On(resource.CollectionChange, changed),
	)
	v.Assign(filterRegion, dd)
	v.Render()
	return v
}

// restoreSelection re-applies the remembered status, binding it to the
// freshly loaded option models.
func (v *taskView) restoreSelection() {
	status := v.f.Status()
	if status == "" {
		status = dropdown.BlankValue
	}
	v.filter.SetSelected(status, false)
}

// CapturingInput reports whether the dropdown has the keyboard.
func (v *taskView) CapturingInput() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filtering
}

// StartFilter hands the keyboard to the dropdown.
func (v *taskView) StartFilter() {
	v.setFiltering(true)
}

func (v *taskView) setFiltering(on bool) {
	v.mu.Lock()
	v.filtering = on
	v.mu.Unlock()
	v.Render()
}

func (v *taskView) Update(msg tea.Msg) tea.Cmd {
	k, ok := msg.(tea.KeyMsg)
	if !ok || !v.CapturingInput() {
		return nil
	}
	if k.Type == tea.KeyEsc && v.filter.Query() == "" {
		v.setFiltering(false)
		return nil
	}
	cmd := v.filter.Update(msg)
	if k.Type == tea.KeyEnter {
		v.setFiltering(false)
		return cmd
	}
	v.Render()
	return cmd
}

func (v *taskView) Render() string {
	if v.Closed() {
		return ""
	}
	theme := v.f.env.pal.Theme()
	styles := theme.Styles()

	border := theme.Border
	if v.CapturingInput() {
		border = theme.BorderFocus
	}
	filterBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Width(filterWidth).
		Render(v.RegionContent(filterRegion))

	listWidth := v.f.env.pal.Width() - filterWidth - 4
	list := renderTaskList(v.f.tasks.Models(), styles, listWidth, time.Now())

	return v.SetContent(lipgloss.JoinHorizontal(lipgloss.Top, filterBox, "  ", list))
}

func renderTaskList(tasks []*resource.Model, styles Styles, width int, now time.Time) string {
	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(fmt.Sprintf("Tasks (%d)", len(tasks))))
	if len(tasks) == 0 {
		b.WriteString("\n" + styles.MutedText.Render("No tasks"))
		return b.String()
	}

	titleWidth := width - statusWidth - 16
	if titleWidth < 10 {
		titleWidth = 10
	}
	for _, t := range tasks {
		status := t.GetString("status")
		badge := styles.StatusStyle(status).Render(padRight(truncate(titleCase(status), statusWidth-2), statusWidth-2))
		title := padRight(truncate(t.GetString("title"), titleWidth), titleWidth)

		age := ""
		if created, err := parse.ParseDateTimeStrict(t.GetString("created_at")); err == nil {
			age = humanize.RelTime(created, now, "ago", "from now")
		}

		b.WriteString("\n")
		b.WriteString(badge + " " + styles.Text.Render(title) + " " + styles.FaintText.Render(age))
	}
	return b.String()
}

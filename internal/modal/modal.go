package modal

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/likipe/zonekit/internal/events"
	"github.com/likipe/zonekit/internal/view"
)

// ErrNoView is returned by New when no child view is given.
var ErrNoView = errors.New("modal: child view is required")

// Event names the events a Modal publishes. The payload is the modal.
type Event string

const (
	Save   Event = "modal:save"
	Hidden Event = "modal:hidden"
	Shown  Event = "modal:shown"
)

const bodyRegion = "body"

// InputHolder is implemented by child views that contain text inputs. The
// first input is focused when the dialog is shown.
type InputHolder interface {
	Inputs() []*textinput.Model
}

// Options configure a Modal.
type Options struct {
	Title        string
	SaveButton   string
	CancelButton string
	KeyMap       *KeyMap
	Styles       *Styles
}

type focusTarget int

const (
	focusBody focusTarget = iota
	focusSave
	focusCancel
	focusTargets
)

// Modal wraps a child view in dialog chrome with save and cancel buttons.
//
// Saving disables the buttons and emits Save; the handler must answer with
// Hide or ShowError. Dismissal is refused while the buttons are disabled.
// Once hidden the modal emits Hidden and closes itself together with its
// child.
type Modal struct {
	view.Base

	child       view.View
	title       string
	saveLabel   string
	cancelLabel string
	keys        KeyMap
	styles      Styles

	mu       sync.Mutex
	visible  bool
	disabled bool
	errMsg   string
	focus    focusTarget

	events events.Emitter[Event, *Modal]
}

var (
	_ view.View    = (*Modal)(nil)
	_ view.Updater = (*Modal)(nil)
)

// New wraps child. Empty button labels default to "Save" and "Cancel".
func New(child view.View, opts Options) (*Modal, error) {
	if child == nil {
		return nil, ErrNoView
	}
	m := &Modal{
		child:       child,
		title:       opts.Title,
		saveLabel:   opts.SaveButton,
		cancelLabel: opts.CancelButton,
		keys:        DefaultKeyMap(),
		styles:      DefaultStyles(),
	}
	if m.saveLabel == "" {
		m.saveLabel = "Save"
	}
	if m.cancelLabel == "" {
		m.cancelLabel = "Cancel"
	}
	if opts.KeyMap != nil {
		m.keys = *opts.KeyMap
	}
	if opts.Styles != nil {
		m.styles = *opts.Styles
	}
	return m, nil
}

// On subscribes fn to event.
func (m *Modal) On(event Event, fn func(*Modal)) events.Subscription {
	return m.events.On(event, fn)
}

// Child returns the wrapped view.
func (m *Modal) Child() view.View {
	return m.child
}

// Render mounts the child in the body and draws the chrome. The first call
// makes the dialog visible, focuses the child's first text input and emits
// Shown.
func (m *Modal) Render() string {
	out, _ := m.render()
	return out
}

// Show renders the dialog and returns the command that starts the focused
// input's cursor blinking, if any.
func (m *Modal) Show() tea.Cmd {
	_, cmd := m.render()
	return cmd
}

func (m *Modal) render() (string, tea.Cmd) {
	if m.Closed() {
		return "", nil
	}
	body := m.Assign(bodyRegion, m.child)

	m.mu.Lock()
	shown := !m.visible
	m.visible = true
	m.mu.Unlock()

	var cmd tea.Cmd
	if shown {
		cmd = m.focusFirstInput()
		body = m.child.Render()
	}
	out := m.compose(body)
	if shown {
		m.events.Trigger(Shown, m)
	}
	return out, cmd
}

func (m *Modal) focusFirstInput() tea.Cmd {
	holder, ok := m.child.(InputHolder)
	if !ok {
		return nil
	}
	inputs := holder.Inputs()
	for _, in := range inputs {
		in.Blur()
	}
	if len(inputs) == 0 {
		return nil
	}
	m.mu.Lock()
	m.focus = focusBody
	m.mu.Unlock()
	return inputs[0].Focus()
}

func (m *Modal) compose(body string) string {
	m.mu.Lock()
	disabled, errMsg, focus := m.disabled, m.errMsg, m.focus
	m.mu.Unlock()

	button := func(label string, target focusTarget) string {
		switch {
		case disabled:
			return m.styles.ButtonDisabled.Render("[" + label + "]")
		case focus == target:
			return m.styles.ButtonFocused.Render("[" + label + "]")
		default:
			return m.styles.Button.Render("[" + label + "]")
		}
	}
	values := map[string]string{
		"title":         m.styles.Title.Render(m.title),
		"save_button":   button(m.saveLabel, focusSave),
		"cancel_button": button(m.cancelLabel, focusCancel),
		"body":          body,
	}
	if errMsg != "" {
		values["error"] = m.styles.Error.Render(errMsg)
	}
	out, err := renderChrome(values)
	if err != nil {
		out = fmt.Sprintf("modal: %v", err)
	}
	return m.SetContent(m.styles.Frame.Render(out))
}

// refresh redraws the chrome around the child's current content.
func (m *Modal) refresh() {
	if m.Closed() {
		return
	}
	m.compose(m.child.Content())
}

// Visible reports whether the dialog is shown.
func (m *Modal) Visible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible
}

// Disabled reports whether the buttons are disabled.
func (m *Modal) Disabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.disabled
}

// ErrorMessage returns the text in the error banner.
func (m *Modal) ErrorMessage() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errMsg
}

// Disable turns off the save and cancel buttons.
func (m *Modal) Disable() {
	m.setDisabled(true)
}

// Enable turns the buttons back on.
func (m *Modal) Enable() {
	m.setDisabled(false)
}

func (m *Modal) setDisabled(v bool) {
	m.mu.Lock()
	m.disabled = v
	m.mu.Unlock()
	m.refresh()
}

// Hide enables the buttons and dismisses the dialog.
func (m *Modal) Hide() {
	m.Enable()
	m.dismiss()
}

// ShowError enables the buttons and shows msg in the error banner.
func (m *Modal) ShowError(msg string) {
	m.mu.Lock()
	m.disabled = false
	m.errMsg = msg
	m.mu.Unlock()
	m.refresh()
}

// save disables the buttons and emits Save. It does nothing while disabled.
func (m *Modal) save() {
	m.mu.Lock()
	if m.disabled || !m.visible {
		m.mu.Unlock()
		return
	}
	m.disabled = true
	m.errMsg = ""
	m.mu.Unlock()
	m.refresh()
	m.events.Trigger(Save, m)
}

// dismiss hides the dialog unless the buttons are disabled. On success it
// emits Hidden and closes the modal. It reports whether the dialog was
// dismissed.
func (m *Modal) dismiss() bool {
	m.mu.Lock()
	if m.disabled || !m.visible {
		m.mu.Unlock()
		return false
	}
	m.visible = false
	m.mu.Unlock()

	m.events.Trigger(Hidden, m)
	m.Close()
	return true
}

// Cancel requests dismissal as the cancel button does. It reports false
// when the request was vetoed.
func (m *Modal) Cancel() bool {
	return m.dismiss()
}

// Update handles the dialog keys. Other messages, and keys while the body
// has focus, go to the child.
func (m *Modal) Update(msg tea.Msg) tea.Cmd {
	if !m.Visible() {
		return nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Save):
			m.save()
			return nil
		case key.Matches(k, m.keys.Cancel):
			m.dismiss()
			return nil
		case key.Matches(k, m.keys.Next):
			m.cycle(1)
			return nil
		case key.Matches(k, m.keys.Prev):
			m.cycle(-1)
			return nil
		case key.Matches(k, m.keys.Activate):
			switch m.focused() {
			case focusSave:
				m.save()
				return nil
			case focusCancel:
				m.dismiss()
				return nil
			}
		}
		if m.focused() != focusBody {
			return nil
		}
	}

	u, ok := m.child.(view.Updater)
	if !ok {
		return nil
	}
	cmd := u.Update(msg)
	if !m.Closed() {
		m.compose(m.child.Render())
	}
	return cmd
}

func (m *Modal) focused() focusTarget {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.focus
}

// cycle moves focus between the body and the buttons. Inputs lose focus
// while a button is selected.
func (m *Modal) cycle(delta int) {
	m.mu.Lock()
	m.focus = (m.focus + focusTarget(delta) + focusTargets) % focusTargets
	focus := m.focus
	m.mu.Unlock()

	if holder, ok := m.child.(InputHolder); ok {
		inputs := holder.Inputs()
		for _, in := range inputs {
			in.Blur()
		}
		if focus == focusBody && len(inputs) > 0 {
			inputs[0].Focus()
		}
	}
	m.refresh()
}

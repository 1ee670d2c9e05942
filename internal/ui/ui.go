package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/likipe/zonekit/internal/prefs"
	"github.com/likipe/zonekit/internal/resource"
	"github.com/likipe/zonekit/internal/state"
)

// Options configure the UI runtime.
type Options struct {
	Client    resource.Requester
	BaseURL   string
	Store     *state.Store
	Prefs     prefs.Prefs
	PrefsPath string // empty uses prefs.DefaultPath
	LogPath   string
	PollEvery time.Duration
}

const defaultPollInterval = 2 * time.Second

// env is what every factory and view shares.
type env struct {
	ctx      context.Context
	client   resource.Requester
	store    *state.Store
	pal      *palette
	interval time.Duration
	notify   func()
}

type (
	// repaintMsg asks the program to redraw after views changed off the
	// program loop.
	repaintMsg struct{}

	profileSavedMsg   struct{ err error }
	profileDeletedMsg struct{ err error }
	prefsSavedMsg     struct{ err error }
)

// repainter coalesces repaint requests from stream goroutines into a
// single pending message.
type repainter struct {
	ch chan struct{}
}

func newRepainter() *repainter {
	return &repainter{ch: make(chan struct{}, 1)}
}

// Notify never blocks; a request made while one is pending is dropped.
func (r *repainter) Notify() {
	select {
	case r.ch <- struct{}{}:
	default:
	}
}

func (r *repainter) wait(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-r.ch:
			return repaintMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

// Run builds the zones and blocks until ctx is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("ui requires a state store")
	}
	if opts.Client == nil {
		return fmt.Errorf("ui requires an api client")
	}

	m, err := newModel(ctx, opts)
	if err != nil {
		return err
	}
	defer m.close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// batch is tea.Batch that hands back a lone command unwrapped.
func batch(cmds ...tea.Cmd) tea.Cmd {
	var valid []tea.Cmd
	for _, c := range cmds {
		if c != nil {
			valid = append(valid, c)
		}
	}
	switch len(valid) {
	case 0:
		return nil
	case 1:
		return valid[0]
	default:
		return tea.Batch(valid...)
	}
}

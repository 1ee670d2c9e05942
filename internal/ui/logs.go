package ui

import (
	"strings"
	"sync"
	"time"

	"github.com/likipe/zonekit/internal/logtail"
	"github.com/likipe/zonekit/internal/view"
	"github.com/likipe/zonekit/internal/zone"
)

const (
	logPrefix         = "zonekit"
	logRenderInterval = time.Second
	minLogLines       = 10
)

// logFactory fills the main zone with the tail of zonekit's own log. The
// view re-reads the file every second while shown.
type logFactory struct {
	zone.BaseFactory
	env  *env
	path string

	mu       sync.Mutex
	renderer *view.PeriodicRenderer
}

var _ zone.Factory = (*logFactory)(nil)

func newLogFactory(e *env, path string) *logFactory {
	return &logFactory{env: e, path: path}
}

func (f *logFactory) CreateZone() view.View {
	v := &logView{env: f.env, path: f.path}
	v.Render()
	r := view.NewPeriodicRenderer(v, func(string) { f.env.notify() })
	r.Start(f.env.ctx, logRenderInterval)
	v.OnClose(r.Stop)

	f.mu.Lock()
	f.renderer = r
	f.mu.Unlock()
	return v
}

func (f *logFactory) CloseZone() {
	f.mu.Lock()
	r := f.renderer
	f.renderer = nil
	f.mu.Unlock()
	if r != nil {
		r.Stop()
	}
}

// logView renders the newest log lines that fit the screen.
type logView struct {
	view.Base
	env  *env
	path string
}

func (v *logView) Render() string {
	if v.Closed() {
		return ""
	}
	styles := v.env.pal.Theme().Styles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Log"))
	if v.path == "" {
		b.WriteString("\n" + styles.MutedText.Render("Logging to a file is disabled."))
		return v.SetContent(b.String())
	}
	b.WriteString(" " + styles.FaintText.Render(v.path))

	// Header, footer and the title line take three rows.
	limit := v.env.pal.Height() - 3
	if limit < minLogLines {
		limit = minLogLines
	}
	entries, err := logtail.TailEntries(v.path, limit, logPrefix)
	if err != nil {
		b.WriteString("\n" + styles.DangerText.Render(err.Error()))
		return v.SetContent(b.String())
	}
	if len(entries) == 0 {
		b.WriteString("\n" + styles.MutedText.Render("Nothing logged yet."))
		return v.SetContent(b.String())
	}

	width := v.env.pal.Width()
	for _, entry := range entries {
		b.WriteString("\n")
		if entry.Raw {
			b.WriteString(styles.MutedText.Render(truncate(entry.Message, width)))
			continue
		}
		msgStyle := styles.Text
		if entry.Failure {
			msgStyle = styles.DangerText
		}
		b.WriteString(styles.FaintText.Render(entry.Time.Format("15:04:05")))
		b.WriteString(" ")
		b.WriteString(msgStyle.Render(truncate(entry.Message, width-9)))
	}
	return v.SetContent(b.String())
}

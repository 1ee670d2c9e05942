package ui

import (
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/likipe/zonekit/internal/view"
	"github.com/likipe/zonekit/internal/zone"
)

const (
	footerRenderInterval = time.Second
	noticeTTL            = 5 * time.Second
)

// notice is a short-lived status message shown in the footer.
type notice struct {
	mu    sync.Mutex
	text  string
	isErr bool
	at    time.Time
}

func (n *notice) Set(text string, isErr bool) {
	n.mu.Lock()
	n.text, n.isErr, n.at = text, isErr, time.Now()
	n.mu.Unlock()
}

// Get returns the message unless it has expired.
func (n *notice) Get(now time.Time) (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.text == "" || now.Sub(n.at) > noticeTTL {
		return "", false
	}
	return n.text, n.isErr
}

// footerFactory fills the footer zone with a view re-rendered every second
// so relative sync times stay current.
type footerFactory struct {
	zone.BaseFactory
	env    *env
	keys   keyMap
	notice *notice

	mu       sync.Mutex
	renderer *view.PeriodicRenderer
}

var _ zone.Factory = (*footerFactory)(nil)

func newFooterFactory(e *env, keys keyMap, n *notice) *footerFactory {
	return &footerFactory{env: e, keys: keys, notice: n}
}

func (f *footerFactory) CreateZone() view.View {
	v := view.NewFunc(f.render)
	r := view.NewPeriodicRenderer(v, func(string) { f.env.notify() })
	r.Start(f.env.ctx, footerRenderInterval)
	v.OnClose(r.Stop)

	f.mu.Lock()
	f.renderer = r
	f.mu.Unlock()
	return v
}

func (f *footerFactory) CloseZone() {
	f.mu.Lock()
	r := f.renderer
	f.renderer = nil
	f.mu.Unlock()
	if r != nil {
		r.Stop()
	}
}

func (f *footerFactory) render() string {
	theme := f.env.pal.Theme()
	styles := theme.Styles().WithBackground(theme.Surface)
	bg := NewBgStyle(theme.Surface)
	now := time.Now()

	snap := f.env.store.Snapshot()
	var parts []string
	if last := snap.LastSuccess(); last.IsZero() {
		parts = append(parts, bg.Render("waiting for first sync", styles.WarningText))
	} else {
		parts = append(parts, bg.Render("synced "+humanize.RelTime(last, now, "ago", "from now"), styles.MutedText))
	}
	for _, name := range snap.Offline() {
		h := snap.Sources[name]
		msg := name + " offline"
		if h.LastError != nil {
			msg += ": " + truncate(h.LastError.Error(), 40)
		}
		parts = append(parts, bg.Render(msg, styles.DangerText))
	}
	if text, isErr := f.notice.Get(now); text != "" {
		style := styles.SuccessText
		if isErr {
			style = styles.DangerText
		}
		parts = append(parts, bg.Render(text, style))
	}

	hints := make([]string, 0, len(f.keys.ShortHelp()))
	for _, b := range f.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, bg.Render(h.Key, styles.AccentText)+bg.Spaces(1)+bg.Render(h.Desc, styles.FaintText))
	}
	parts = append(parts, bg.Join(hints, " "))

	return bg.FillLine(bg.Join(parts, "  "), f.env.pal.Width())
}

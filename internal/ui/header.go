package ui

import (
	"strings"

	"github.com/likipe/zonekit/internal/view"
	"github.com/likipe/zonekit/internal/zone"
)

// newHeaderFactory returns the factory for the header zone. section reports
// which main view is showing.
func newHeaderFactory(e *env, baseURL string, section func() string) *zone.FuncFactory {
	return zone.NewFuncFactory(func() view.View {
		return view.NewFunc(func() string {
			return renderHeader(e, baseURL, section())
		})
	}, nil)
}

func renderHeader(e *env, baseURL, section string) string {
	theme := e.pal.Theme()
	styles := theme.Styles().WithBackground(theme.Surface)
	bg := NewBgStyle(theme.Surface)

	parts := []string{
		bg.Render("zonekit", styles.Logo),
		bg.Render(section, styles.AccentText.Bold(true)),
	}
	if baseURL != "" {
		parts = append(parts, bg.Render(baseURL, styles.MutedText))
	}
	if offline := e.store.Snapshot().Offline(); len(offline) > 0 {
		parts = append(parts, bg.Render("OFFLINE "+strings.Join(offline, ","), styles.DangerText))
	}
	parts = append(parts, bg.Render(theme.Name, styles.FaintText))

	return bg.FillLine(bg.Join(parts, "  "), e.pal.Width())
}

package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/likipe/zonekit/internal/config"
	"github.com/likipe/zonekit/internal/prefs"
	"github.com/likipe/zonekit/internal/resource"
	"github.com/likipe/zonekit/internal/state"
	"github.com/likipe/zonekit/internal/ui"
)

// Options configure the zonekit application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/zonekit/prefs.toml
	PollEvery  int    // seconds; zero uses the config value
}

// Run boots the zonekit TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFile, err := openLog(cfg.LogPath())
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		log.Printf("load prefs: %v", err)
	}

	client, err := resource.NewClient(cfg.APIBind)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	log.Printf("zonekit starting against %s", client.BaseURL())
	return ui.Run(ctx, ui.Options{
		Client:    client,
		BaseURL:   client.BaseURL(),
		Store:     &state.Store{},
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		LogPath:   cfg.LogPath(),
		PollEvery: pollInterval(cfg, opts.PollEvery),
	})
}

// pollInterval prefers the command-line override over the config file.
func pollInterval(cfg config.Config, override int) time.Duration {
	if override > 0 {
		return time.Duration(override) * time.Second
	}
	return cfg.PollInterval()
}

// openLog redirects the standard logger to path while the TUI owns the
// terminal.
func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "zonekit")
	if err != nil {
		return nil, fmt.Errorf("open log %s: %w", path, err)
	}
	return f, nil
}

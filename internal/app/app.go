package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/exview/internal/clipboard"
	"github.com/five82/exview/internal/clock"
	"github.com/five82/exview/internal/config"
	"github.com/five82/exview/internal/logsapi"
	"github.com/five82/exview/internal/prefs"
	"github.com/five82/exview/internal/ui"
)

// Options configure the exview application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/exview/prefs.toml
	APIBase    string // beats EXVIEW_API_BASE and the config file
	LogFile    string // beats log_file from the config file
	Debug      bool
	Version    string
}

// Env is the resolved runtime shared by the TUI and the one-shot commands.
type Env struct {
	Config config.Config
	Client *logsapi.Client
	Logger *slog.Logger

	logCloser io.Closer
}

// Setup loads configuration, opens the log and builds the gateway client.
// Callers must Close the returned Env.
func Setup(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if base := strings.TrimSpace(opts.APIBase); base != "" {
		cfg.APIBase = base
	}
	if path := strings.TrimSpace(opts.LogFile); path != "" {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return nil, fmt.Errorf("resolve log file: %w", err)
		}
		cfg.LogFile = expanded
	}

	logger, closer, err := newLogger(cfg.LogFile, opts.Debug)
	if err != nil {
		return nil, err
	}
	for _, w := range cfg.Warnings {
		logger.Warn("config value ignored", "path", cfg.Path, "detail", w)
	}

	client, err := logsapi.NewClient(cfg.APIBase,
		logsapi.WithTimeout(cfg.RequestTimeout),
		logsapi.WithUserAgent(userAgent(opts.Version)),
	)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("init log service client: %w", err)
	}

	return &Env{
		Config:    cfg,
		Client:    client,
		Logger:    logger,
		logCloser: closer,
	}, nil
}

// Close releases the log file, if one was opened.
func (e *Env) Close() error {
	if e == nil || e.logCloser == nil {
		return nil
	}
	return e.logCloser.Close()
}

// Run boots the exview TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	userPrefs, _ := prefs.Load(opts.PrefsPath)
	cfg := env.Config

	env.Logger.Info("starting",
		"api_base", env.Client.BaseURL(),
		"clipboard", string(cfg.Clipboard),
		"debug", opts.Debug,
	)

	uiOpts := ui.Options{
		Context:    ctx,
		API:        env.Client,
		Clipboard:  clipboard.NewSystem(cfg.Clipboard, clipboard.WithHTMLPath(cfg.HTMLCopyPath)),
		Clock:      clock.System{},
		Logger:     env.Logger,
		APIBase:    env.Client.BaseURL(),
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
		TruncateAt: cfg.TruncateAt,
		CopyFade:   cfg.CopyFade,
		CopyReset:  cfg.CopyReset,
		Debug:      opts.Debug,
	}
	err = ui.Run(uiOpts,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if err != nil && ctx.Err() != nil {
		// Cancellation by signal is a normal exit.
		return nil
	}
	return err
}

func userAgent(version string) string {
	if strings.TrimSpace(version) == "" {
		version = "dev"
	}
	return "exview/" + version
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newLogger returns a text slog logger writing to path. The TUI owns the
// terminal, so without a path everything is discarded.
func newLogger(path string, debug bool) (*slog.Logger, io.Closer, error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	if path == "" {
		return slog.New(slog.DiscardHandler), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "exview")
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(handler), f, nil
}

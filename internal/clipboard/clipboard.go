package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Mode selects where the plain text representation goes.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeSystem Mode = "system"
	ModeOSC52  Mode = "osc52"
)

// ParseMode validates a configured mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeAuto, ModeSystem, ModeOSC52:
		return m, nil
	case "":
		return ModeAuto, nil
	default:
		return ModeAuto, fmt.Errorf("unknown clipboard mode %q", s)
	}
}

// ErrUnavailable is returned in system mode when no OS clipboard tool exists.
var ErrUnavailable = errors.New("system clipboard unavailable")

// Content is one copy payload in both representations.
type Content struct {
	HTML string
	Text string
}

// Writer commits Content to the clipboard.
type Writer interface {
	Write(Content) error
}

// System writes to the OS clipboard with an OSC 52 fallback.
type System struct {
	mode        Mode
	htmlPath    string
	term        io.Writer
	getenv      func(string) string
	writeAll    func(string) error
	unsupported func() bool
}

var _ Writer = (*System)(nil)

// Option configures a System writer.
type Option func(*System)

// WithTerminal sets where OSC 52 sequences are written. Defaults to stderr.
func WithTerminal(w io.Writer) Option {
	return func(s *System) {
		if w != nil {
			s.term = w
		}
	}
}

// WithHTMLPath writes the HTML representation to path on every copy.
func WithHTMLPath(path string) Option {
	return func(s *System) {
		s.htmlPath = strings.TrimSpace(path)
	}
}

// NewSystem returns a writer for the given mode.
func NewSystem(mode Mode, opts ...Option) *System {
	s := &System{
		mode:        mode,
		term:        os.Stderr,
		getenv:      os.Getenv,
		writeAll:    clipboard.WriteAll,
		unsupported: func() bool { return clipboard.Unsupported },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.mode == "" {
		s.mode = ModeAuto
	}
	return s
}

// Mode reports the configured mode.
func (s *System) Mode() Mode { return s.mode }

// Write commits every configured representation. It fails on the first
// representation that cannot be written.
func (s *System) Write(c Content) error {
	if s.htmlPath != "" {
		if err := writeHTML(s.htmlPath, c.HTML); err != nil {
			return err
		}
	}
	switch s.mode {
	case ModeOSC52:
		return s.writeOSC52(c.Text)
	case ModeSystem:
		if s.unsupported() {
			return ErrUnavailable
		}
		return s.writeSystem(c.Text)
	default:
		if s.unsupported() {
			return s.writeOSC52(c.Text)
		}
		return s.writeSystem(c.Text)
	}
}

func (s *System) writeSystem(text string) error {
	if err := s.writeAll(text); err != nil {
		return fmt.Errorf("write system clipboard: %w", err)
	}
	return nil
}

func (s *System) writeOSC52(text string) error {
	seq := osc52.New(text)
	switch {
	case s.getenv("TMUX") != "" || strings.HasPrefix(s.getenv("TERM"), "tmux"):
		seq = seq.Tmux()
	case strings.HasPrefix(s.getenv("TERM"), "screen"):
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(s.term); err != nil {
		return fmt.Errorf("write osc52 sequence: %w", err)
	}
	return nil
}

func writeHTML(path, html string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create html copy dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write html copy: %w", err)
	}
	return nil
}

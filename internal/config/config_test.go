package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/five82/exview/internal/clipboard"
	"github.com/five82/exview/internal/logsapi"
)

func init() {
	homedir.DisableCache = true
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvAPIBase, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if want := filepath.Join(home, ".config", "exview", "config.toml"); cfg.Path != want {
		t.Fatalf("Path = %q, want %q", cfg.Path, want)
	}
	if cfg.APIBase != logsapi.DefaultBase {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, logsapi.DefaultBase)
	}
	if cfg.TruncateAt != defaultTruncateAt {
		t.Fatalf("TruncateAt = %d, want %d", cfg.TruncateAt, defaultTruncateAt)
	}
	if cfg.Clipboard != clipboard.ModeAuto {
		t.Fatalf("Clipboard = %q, want auto", cfg.Clipboard)
	}
	if cfg.CopyFade != 50*time.Millisecond || cfg.CopyReset != 5050*time.Millisecond {
		t.Fatalf("copy timings = %v/%v, want 50ms/5.05s", cfg.CopyFade, cfg.CopyReset)
	}
	if cfg.RequestTimeout != 0 || cfg.LogFile != "" || cfg.HTMLCopyPath != "" {
		t.Fatalf("unexpected optional values: %+v", cfg)
	}
	if len(cfg.Warnings) != 0 {
		t.Fatalf("Warnings = %v, want none", cfg.Warnings)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvAPIBase, "")

	path := writeConfig(t, `
api_base = "  http://logs.internal:8080/api  "
request_timeout_seconds = 15
truncate_at = 120
clipboard = "osc52"
html_copy_path = "~/exview/copy.html"
log_file = "~/exview/exview.log"
copy_fade_ms = 100
copy_reset_ms = 3000
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != "http://logs.internal:8080/api" {
		t.Fatalf("APIBase = %q", cfg.APIBase)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("RequestTimeout = %v, want 15s", cfg.RequestTimeout)
	}
	if cfg.TruncateAt != 120 {
		t.Fatalf("TruncateAt = %d, want 120", cfg.TruncateAt)
	}
	if cfg.Clipboard != clipboard.ModeOSC52 {
		t.Fatalf("Clipboard = %q, want osc52", cfg.Clipboard)
	}
	if want := filepath.Join(home, "exview", "copy.html"); cfg.HTMLCopyPath != want {
		t.Fatalf("HTMLCopyPath = %q, want %q", cfg.HTMLCopyPath, want)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.CopyFade != 100*time.Millisecond || cfg.CopyReset != 3*time.Second {
		t.Fatalf("copy timings = %v/%v", cfg.CopyFade, cfg.CopyReset)
	}
}

func TestLoad_InvalidValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvAPIBase, "")

	cases := []struct {
		name  string
		body  string
		check func(t *testing.T, cfg Config)
	}{
		{
			name: "truncate",
			body: "truncate_at = 0\n",
			check: func(t *testing.T, cfg Config) {
				if cfg.TruncateAt != defaultTruncateAt {
					t.Fatalf("TruncateAt = %d, want %d", cfg.TruncateAt, defaultTruncateAt)
				}
			},
		},
		{
			name: "clipboard",
			body: "clipboard = \"carrier-pigeon\"\n",
			check: func(t *testing.T, cfg Config) {
				if cfg.Clipboard != clipboard.ModeAuto {
					t.Fatalf("Clipboard = %q, want auto", cfg.Clipboard)
				}
			},
		},
		{
			name: "reset before fade",
			body: "copy_fade_ms = 500\ncopy_reset_ms = 400\n",
			check: func(t *testing.T, cfg Config) {
				if cfg.CopyFade != 50*time.Millisecond || cfg.CopyReset != 5050*time.Millisecond {
					t.Fatalf("copy timings = %v/%v, want defaults", cfg.CopyFade, cfg.CopyReset)
				}
			},
		},
		{
			name: "negative timeout",
			body: "request_timeout_seconds = -3\n",
			check: func(t *testing.T, cfg Config) {
				if cfg.RequestTimeout != 0 {
					t.Fatalf("RequestTimeout = %v, want 0", cfg.RequestTimeout)
				}
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tc.body))
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			tc.check(t, cfg)
			if len(cfg.Warnings) != 1 {
				t.Fatalf("Warnings = %v, want exactly one", cfg.Warnings)
			}
		})
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvAPIBase, "")

	cfg, err := Load(writeConfig(t, `
api_base = "   "
log_file = ""
clipboard = ""
`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != logsapi.DefaultBase {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, logsapi.DefaultBase)
	}
	if cfg.LogFile != "" {
		t.Fatalf("LogFile = %q, want empty", cfg.LogFile)
	}
	if cfg.Clipboard != clipboard.ModeAuto {
		t.Fatalf("Clipboard = %q, want auto", cfg.Clipboard)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvAPIBase, "http://from-env:9000")

	cfg, err := Load(writeConfig(t, "api_base = \"http://from-file:4000\"\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != "http://from-env:9000" {
		t.Fatalf("APIBase = %q, want env value", cfg.APIBase)
	}
}

func TestLoad_InvalidTOMLReturnsError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := Load(writeConfig(t, "api_base = [\n"))
	if err == nil {
		t.Fatalf("Load returned nil error for invalid TOML")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("err = %v, want parse config error", err)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/logs/exview.log")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if want := filepath.Join(home, "logs", "exview.log"); got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
	if _, err := ExpandPath("   "); err == nil {
		t.Fatalf("ExpandPath of blank path returned nil error")
	}
}

package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/exview/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestSetup_FlagBeatsEnvAndFile(t *testing.T) {
	t.Setenv(config.EnvAPIBase, "http://env:1")
	path := writeConfig(t, `api_base = "http://file:2"`)

	env, err := Setup(Options{ConfigPath: path, APIBase: "http://flag:3"})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer func() { _ = env.Close() }()

	if got := env.Client.BaseURL(); got != "http://flag:3/" {
		t.Fatalf("BaseURL = %q, want %q", got, "http://flag:3/")
	}
}

func TestSetup_EnvBeatsFile(t *testing.T) {
	t.Setenv(config.EnvAPIBase, "http://env:1")
	path := writeConfig(t, `api_base = "http://file:2"`)

	env, err := Setup(Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer func() { _ = env.Close() }()

	if got := env.Config.APIBase; got != "http://env:1" {
		t.Fatalf("APIBase = %q, want %q", got, "http://env:1")
	}
}

func TestSetup_InvalidConfigFails(t *testing.T) {
	t.Setenv(config.EnvAPIBase, "")
	path := writeConfig(t, "api_base = [")

	if _, err := Setup(Options{ConfigPath: path}); err == nil {
		t.Fatal("expected error for unparsable config")
	}
}

func TestSetup_BadBaseURLFails(t *testing.T) {
	t.Setenv(config.EnvAPIBase, "")
	path := filepath.Join(t.TempDir(), "missing.toml")

	_, err := Setup(Options{ConfigPath: path, APIBase: "http://"})
	if err == nil {
		t.Fatal("expected error for base url without host")
	}
	if !strings.Contains(err.Error(), "init log service client") {
		t.Fatalf("err = %v, want init log service client prefix", err)
	}
}

func TestSetup_WarningsReachLogFile(t *testing.T) {
	t.Setenv(config.EnvAPIBase, "")
	logPath := filepath.Join(t.TempDir(), "logs", "exview.log")
	path := writeConfig(t, "truncate_at = 0\n")

	env, err := Setup(Options{ConfigPath: path, LogFile: logPath})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if err := env.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "config value ignored") {
		t.Fatalf("log = %q, want config warning", data)
	}
	if env.Config.TruncateAt != 80 {
		t.Fatalf("TruncateAt = %d, want 80", env.Config.TruncateAt)
	}
}

func TestNewLogger_DebugLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "exview.log")

	logger, closer, err := newLogger(logPath, true)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Debug("visible at debug")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "visible at debug") {
		t.Fatalf("log = %q, want debug line", data)
	}
}

func TestNewLogger_InfoLevelDropsDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "exview.log")

	logger, closer, err := newLogger(logPath, false)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("shown")
	_ = closer.Close()

	data, _ := os.ReadFile(logPath)
	if strings.Contains(string(data), "hidden") {
		t.Fatalf("log = %q, debug line should be dropped", data)
	}
	if !strings.Contains(string(data), "shown") {
		t.Fatalf("log = %q, want info line", data)
	}
}

func TestNewLogger_NoPathDiscards(t *testing.T) {
	logger, closer, err := newLogger("", true)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	if logger.Enabled(context.Background(), 0) {
		t.Fatal("discard logger should not be enabled")
	}
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestUserAgent(t *testing.T) {
	if got := userAgent(""); got != "exview/dev" {
		t.Fatalf("userAgent(\"\") = %q, want exview/dev", got)
	}
	if got := userAgent("1.2.3"); got != "exview/1.2.3" {
		t.Fatalf("userAgent(1.2.3) = %q, want exview/1.2.3", got)
	}
}

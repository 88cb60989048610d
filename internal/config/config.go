package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/exview/internal/clipboard"
	"github.com/five82/exview/internal/logsapi"
)

// Config holds the settings exview reads at startup.
type Config struct {
	// Path is the resolved config file location, whether or not it exists.
	Path string

	APIBase        string
	RequestTimeout time.Duration
	TruncateAt     int
	Clipboard      clipboard.Mode
	HTMLCopyPath   string
	LogFile        string
	CopyFade       time.Duration
	CopyReset      time.Duration

	// Warnings lists values that were rejected and replaced by defaults.
	Warnings []string
}

// EnvAPIBase overrides api_base from the config file.
const EnvAPIBase = "EXVIEW_API_BASE"

const (
	defaultConfigPath = "~/.config/exview/config.toml"
	defaultTruncateAt = 80
	defaultFadeMS     = 50
	defaultResetMS    = 5050
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIBase:    logsapi.DefaultBase,
		TruncateAt: defaultTruncateAt,
		Clipboard:  clipboard.ModeAuto,
		CopyFade:   defaultFadeMS * time.Millisecond,
		CopyReset:  defaultResetMS * time.Millisecond,
	}
}

type fileConfig struct {
	APIBase               *string `toml:"api_base"`
	RequestTimeoutSeconds *int    `toml:"request_timeout_seconds"`
	TruncateAt            *int    `toml:"truncate_at"`
	Clipboard             *string `toml:"clipboard"`
	HTMLCopyPath          *string `toml:"html_copy_path"`
	LogFile               *string `toml:"log_file"`
	CopyFadeMS            *int    `toml:"copy_fade_ms"`
	CopyResetMS           *int    `toml:"copy_reset_ms"`
}

// Load reads the config file at path (or the default location), applies
// the environment override and validates the result. A missing file yields
// the defaults; a file that cannot be parsed is an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	cfg.Path = resolved

	raw, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}
	if raw != nil {
		if err := cfg.apply(*raw); err != nil {
			return Config{}, err
		}
	}

	if env := strings.TrimSpace(os.Getenv(EnvAPIBase)); env != "" {
		cfg.APIBase = env
	}
	return cfg, nil
}

func readFile(path string) (*fileConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &raw, nil
}

func (c *Config) apply(raw fileConfig) error {
	if raw.APIBase != nil && strings.TrimSpace(*raw.APIBase) != "" {
		c.APIBase = strings.TrimSpace(*raw.APIBase)
	}
	if raw.RequestTimeoutSeconds != nil {
		if *raw.RequestTimeoutSeconds < 0 {
			c.warnf("request_timeout_seconds %d is negative; using no timeout", *raw.RequestTimeoutSeconds)
		} else {
			c.RequestTimeout = time.Duration(*raw.RequestTimeoutSeconds) * time.Second
		}
	}
	if raw.TruncateAt != nil {
		if *raw.TruncateAt <= 0 {
			c.warnf("truncate_at %d is not positive; using %d", *raw.TruncateAt, defaultTruncateAt)
		} else {
			c.TruncateAt = *raw.TruncateAt
		}
	}
	if raw.Clipboard != nil {
		mode, err := clipboard.ParseMode(*raw.Clipboard)
		if err != nil {
			c.warnf("%v; using %s", err, clipboard.ModeAuto)
		}
		c.Clipboard = mode
	}
	if raw.HTMLCopyPath != nil && strings.TrimSpace(*raw.HTMLCopyPath) != "" {
		expanded, err := expandPath(*raw.HTMLCopyPath)
		if err != nil {
			return fmt.Errorf("html_copy_path: %w", err)
		}
		c.HTMLCopyPath = expanded
	}
	if raw.LogFile != nil && strings.TrimSpace(*raw.LogFile) != "" {
		expanded, err := expandPath(*raw.LogFile)
		if err != nil {
			return fmt.Errorf("log_file: %w", err)
		}
		c.LogFile = expanded
	}

	fade, reset := c.CopyFade, c.CopyReset
	if raw.CopyFadeMS != nil {
		fade = time.Duration(*raw.CopyFadeMS) * time.Millisecond
	}
	if raw.CopyResetMS != nil {
		reset = time.Duration(*raw.CopyResetMS) * time.Millisecond
	}
	if fade <= 0 || reset <= fade {
		c.warnf("copy timings %v/%v are invalid; using %dms/%dms", fade, reset, defaultFadeMS, defaultResetMS)
		fade, reset = defaultFadeMS*time.Millisecond, defaultResetMS*time.Millisecond
	}
	c.CopyFade, c.CopyReset = fade, reset
	return nil
}

func (c *Config) warnf(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

// ExpandPath resolves ~ and relative paths to an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	expanded, err := homedir.Expand(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Abs(expanded)
}

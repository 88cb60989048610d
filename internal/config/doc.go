// Package config loads exview's TOML configuration.
//
// # Resolution
//
// Load reads ~/.config/exview/config.toml unless a path is given. A missing
// file is not an error: exview runs against the default gateway at
// http://localhost:4000 without any configuration. The EXVIEW_API_BASE
// environment variable overrides api_base; the --api flag, applied by the
// caller, overrides both.
//
// # TOML Format
//
//	api_base = "http://localhost:4000"
//	request_timeout_seconds = 0
//	truncate_at = 80
//	clipboard = "auto"        # auto | system | osc52
//	html_copy_path = ""
//	log_file = ""
//	copy_fade_ms = 50
//	copy_reset_ms = 5050
//
// Every field is optional. Paths accept a leading ~.
//
// # Validation
//
// Values that parse but make no sense (an unknown clipboard mode, a
// non-positive truncate_at, a reset delay not after the fade delay) are
// replaced by their defaults and reported in Config.Warnings so the caller
// can log them. Syntax errors in the file are returned from Load.
package config

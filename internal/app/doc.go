// Package app is the composition root for exview.
//
// # Overview
//
// Setup resolves everything a session needs before any UI exists:
//
//  1. Load ~/.config/exview/config.toml (missing file means defaults)
//  2. Apply command line overrides (--api, --log-file)
//  3. Open the log file and build a slog logger
//  4. Build the log service client
//
// Run then loads the saved theme, builds the clipboard writer and starts
// the Bubble Tea program with the alternate screen and mouse reporting.
// The one-shot commands in internal/cli call Setup directly and skip the UI.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()          Read exview config
//	       ├─────> newLogger()            tea.LogToFile + slog
//	       ├─────> logsapi.NewClient()    Create HTTP client
//	       ├─────> prefs.Load()           Saved theme
//	       ├─────> clipboard.NewSystem()  OS clipboard or OSC 52
//	       └─────> ui.Run()               Start TUI (blocks)
//
// # Error Handling
//
// Startup problems are returned from Setup and Run: an unparsable config
// file, a base URL without a host, a log file that cannot be opened.
// Rejected config values are not errors; they are logged as warnings and
// replaced by defaults. Once the UI is running, gateway and clipboard
// failures are shown as notices and never end the session.
//
// # Logging
//
// The TUI owns the terminal, so logs only go to a file. Without log_file
// or --log-file, the logger discards everything. --debug lowers the level
// to Debug.
package app

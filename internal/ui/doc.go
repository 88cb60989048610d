// Package ui provides the Bubble Tea terminal interface for exview.
//
// # Layout
//
// The screen has three parts:
//
//   - Header: title, instance picker, and the extraction control that
//     either offers "x  Extract today's log (YYYYMMDD)" or reports that
//     today's log has already been extracted
//   - Body: the extracted date list, or the exception list for one date
//   - Footer: the latest notice and short key help
//
// Opening an exception draws the detail overlay, a box covering 80% of the
// screen in each direction. It shows the context lines before the
// exception, the message and the stack trace, with Copy and Close buttons.
// Esc, the Close button and a click outside the box all close it.
//
// # State
//
// Model owns a state.Nav and a state.Copy and is the only code that
// changes them. Key presses and gateway responses become Nav transitions;
// the effects they return are turned into commands by runEffects. Gateway
// calls run as tea.Cmd goroutines and report back through messages that
// carry the instance and date they were issued for, so Nav can drop
// responses that arrive after the selection moved on.
//
// The copy button follows state.Copy. Each timer it hands out becomes a
// command that waits on either the timer or the cycle's Done channel, so
// closing the overlay stops pending transitions instead of ignoring them.
//
// # Lists
//
// Exception messages longer than the configured limit (80 runes by
// default) are cut in the list and marked with "...". The overlay always
// shows the full text.
package ui

// Package clipboard commits copied content to the user's clipboard.
//
// Content carries two representations of the same text. The plain text is
// written to the OS clipboard, or to the terminal as an OSC 52 sequence when
// no clipboard tool is installed. The HTML form is written to a file when a
// path is configured, since terminal clipboards have no rich-text channel.
package clipboard

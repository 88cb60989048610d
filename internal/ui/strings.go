package ui

import "strings"

// ellipsis marks text cut short in lists.
const ellipsis = "..."

// truncateMessage keeps the first limit runes of text and appends an
// ellipsis when anything was dropped. A non-positive limit disables it.
func truncateMessage(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + ellipsis
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// oneLine turns line breaks into spaces. Table rows are one line tall.
func oneLine(text string) string {
	return lineBreaks.Replace(text)
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(r))
}

// maxInt returns the larger of two integers.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Summary is the one-line list form of an exception message, cut to limit
// runes. The CLI tables use it too.
func Summary(message string, limit int) string {
	return truncateMessage(oneLine(message), limit)
}

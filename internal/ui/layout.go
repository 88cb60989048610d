package ui

import "time"

// Overlay geometry, as a percentage of the terminal.
const (
	OverlayWidthPercent  = 80
	OverlayHeightPercent = 80
)

// Fixed rows around the body.
const (
	headerRows = 3
	footerRows = 2
)

// Timing constants.
const (
	// NoticeTimeout is how long a notice stays in the footer.
	NoticeTimeout = 6 * time.Second

	// FadeFrame is the redraw interval while the copy button fades.
	FadeFrame = 50 * time.Millisecond
)

// DefaultTruncateAt is the list truncation threshold in runes.
const DefaultTruncateAt = 80

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/five82/exview/internal/state"
)

const (
	copyLabel   = "Copy"
	copiedLabel = "Copied"
	closeLabel  = "Close"
	buttonGap   = 2
)

// overlayLayout is the geometry of the detail box in screen cells. It is
// shared by rendering and mouse hit testing.
type overlayLayout struct {
	x, y          int
	width, height int
	innerWidth    int
	bodyHeight    int
	buttonsY      int
	copyX0        int
	copyX1        int
	closeX0       int
	closeX1       int
}

func (m Model) overlayLayout() overlayLayout {
	w := m.width * OverlayWidthPercent / 100
	h := m.height * OverlayHeightPercent / 100
	w = min(maxInt(w, 24), m.width)
	h = min(maxInt(h, 9), m.height)

	l := overlayLayout{
		x:      (m.width - w) / 2,
		y:      (m.height - h) / 2,
		width:  w,
		height: h,
	}
	// Border and horizontal padding.
	l.innerWidth = maxInt(w-4, 1)
	// Title, date line and rule above the body; a spacer and the buttons below.
	l.bodyHeight = maxInt(h-2-5, 1)
	l.buttonsY = l.y + h - 2

	l.copyX0 = l.x + 2
	l.copyX1 = l.copyX0 + buttonWidth(copiedLabel)
	l.closeX0 = l.copyX1 + buttonGap
	l.closeX1 = l.closeX0 + buttonWidth(closeLabel)
	return l
}

func (l overlayLayout) contains(x, y int) bool {
	return x >= l.x && x < l.x+l.width && y >= l.y && y < l.y+l.height
}

// buttonWidth is the rendered width of a button with the given label.
func buttonWidth(label string) int {
	return lipgloss.Width(buttonText(label))
}

func buttonText(label string) string {
	return "[ " + label + " ]"
}

// syncDetail refreshes the overlay body for the selected exception.
func (m *Model) syncDetail() {
	ex := m.nav.SelectedException
	if ex == nil {
		m.detailViewport.SetContent("")
		return
	}
	width := maxInt(m.detailViewport.Width, 1)
	body := wrap.String(wordwrap.String(detailText(*ex), width), width)
	m.detailViewport.SetContent(body)
}

// renderOverlay draws the detail box centered over the screen.
func (m Model) renderOverlay() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	l := m.overlayLayout()
	ex := m.nav.SelectedException

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Exception detail"))
	b.WriteString("\n")
	if ex != nil {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("Date: %s / Line: %d", m.nav.SelectedDate, ex.LineNo)))
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", l.innerWidth)))
	b.WriteString("\n")
	b.WriteString(m.detailViewport.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderButtons(styles))

	box := styles.Overlay.
		Width(l.width - 2).
		Height(l.height - 2).
		MaxHeight(l.height).
		Render(b.String())

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)),
	)
}

func (m Model) renderButtons(styles Styles) string {
	label := copyLabel
	if m.copy.ButtonDisabled() {
		label = copiedLabel
	}
	// Both labels occupy the same cells so the Close button never moves.
	copyBtn := padRight(buttonText(label), buttonWidth(copiedLabel))
	copyStyle := styles.ButtonStyle(m.copyButtonColor(), m.focusedButton == buttonCopy).Padding(0)
	closeStyle := styles.ButtonStyle(m.theme.Accent, m.focusedButton == buttonClose).Padding(0)

	return copyStyle.Render(copyBtn) +
		strings.Repeat(" ", buttonGap) +
		closeStyle.Render(buttonText(closeLabel))
}

// copyButtonColor follows the copy phase: success while idle, danger right
// after a copy, then a blend back to success while fading.
func (m Model) copyButtonColor() string {
	switch m.copy.Phase() {
	case state.PhaseCopied:
		return m.theme.Danger
	case state.PhaseFading:
		return blendHex(m.theme.Danger, m.theme.Success, m.copy.FadeProgress())
	default:
		return m.theme.Success
	}
}

// blendHex mixes two hex colors in Lab space. Unparsable input returns to.
func blendHex(from, to string, t float64) string {
	c1, err := colorful.Hex(from)
	if err != nil {
		return to
	}
	c2, err := colorful.Hex(to)
	if err != nil {
		return to
	}
	return c1.BlendLab(c2, t).Clamped().Hex()
}

// handleOverlayKey processes keys while the detail overlay is open.
func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		return m.closeDetail()

	case key.Matches(msg, m.keys.Copy):
		return m.copyDetail()

	case key.Matches(msg, m.keys.NextButton):
		if m.focusedButton == buttonCopy {
			m.focusedButton = buttonClose
		} else {
			m.focusedButton = buttonCopy
		}
		return m, nil

	case key.Matches(msg, m.keys.Press):
		if m.focusedButton == buttonClose {
			return m.closeDetail()
		}
		return m.copyDetail()
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

// handleMouse routes clicks while the overlay is open. Outside the
// overlay the mouse is ignored.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.nav.OverlayOpen {
		return m, nil
	}
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		l := m.overlayLayout()
		switch {
		case !l.contains(msg.X, msg.Y):
			return m.closeDetail()
		case msg.Y == l.buttonsY && msg.X >= l.copyX0 && msg.X < l.copyX1:
			m.focusedButton = buttonCopy
			return m.copyDetail()
		case msg.Y == l.buttonsY && msg.X >= l.closeX0 && msg.X < l.closeX1:
			return m.closeDetail()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

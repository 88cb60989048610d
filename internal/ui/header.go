package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/exview/internal/state"
)

// renderHeader renders the title bar, the instance picker and the
// extraction control.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	title := bg.Render("exview", styles.Logo)
	if m.apiBase != "" {
		title += bg.Spaces(2) + bg.Render(m.apiBase, styles.MutedText)
	}
	if m.nav.LoadingInstances() || m.nav.LoadingDates() || m.nav.LoadingExceptions() || m.nav.Extracting() {
		title += bg.Spaces(2) + bg.Render(m.spinner.View(), styles.AccentText)
	}

	lines := []string{
		bg.FillLine(title, m.width),
		bg.FillLine(m.renderInstancePicker(styles, bg), m.width),
		bg.FillLine(m.renderExtractionControl(styles, bg), m.width),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderInstancePicker(styles Styles, bg BgStyle) string {
	switch {
	case m.nav.LoadingInstances():
		return bg.Render("Loading instances...", styles.MutedText)
	case len(m.nav.Instances) == 0:
		return bg.Render("No instances", styles.MutedText)
	}

	parts := make([]string, 0, len(m.nav.Instances))
	for i, id := range m.nav.Instances {
		label := id
		if i < 9 {
			label = strconv.Itoa(i+1) + " " + id
		}
		if id == m.nav.SelectedInstance {
			parts = append(parts, styles.ActiveTab.Render(label))
			continue
		}
		parts = append(parts, styles.Tab.Render(label))
	}
	return bg.Join(parts, " ")
}

// renderExtractionControl shows either the extract action or the notice
// that today's log is already there.
func (m Model) renderExtractionControl(styles Styles, bg BgStyle) string {
	if m.nav.SelectedInstance == "" {
		return ""
	}
	if m.nav.HasTodayLog(m.today) {
		return bg.Render(fmt.Sprintf("Today's log (%s) has already been extracted.", m.today), styles.SuccessText)
	}
	control := bg.Render("x", styles.WarningText.Bold(true)) + bg.Spaces(2) +
		bg.Render(fmt.Sprintf("Extract today's log (%s)", m.today), styles.Text)
	if m.nav.Extracting() {
		control += bg.Spaces(2) + bg.Render("Extracting...", styles.MutedText)
	}
	return control
}

// renderFooter renders the notice line and the short key help.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	notice := ""
	if m.hasNotice {
		style := styles.InfoText
		if m.notice.Level == state.LevelError {
			style = styles.DangerText
		}
		notice = style.Render(m.notice.Text)
	}

	bindings := m.keys.ShortHelp()
	if m.nav.OverlayOpen {
		bindings = m.keys.overlayHelp()
	}
	return lipgloss.JoinVertical(lipgloss.Left, notice, m.help.ShortHelpView(bindings))
}

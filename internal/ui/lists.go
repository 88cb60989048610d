package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const lineNoWidth = 9

func newDateTable(km table.KeyMap) table.Model {
	return table.New(
		table.WithColumns([]table.Column{{Title: "Date (YYYYMMDD)", Width: 16}}),
		table.WithFocused(true),
		table.WithKeyMap(km),
	)
}

func newExceptionTable(km table.KeyMap) table.Model {
	return table.New(
		table.WithColumns([]table.Column{
			{Title: "Line No", Width: lineNoWidth},
			{Title: "Exception Message", Width: 40},
		}),
		table.WithFocused(true),
		table.WithKeyMap(km),
	)
}

// applyTableStyles recolors both tables for the current theme.
func (m *Model) applyTableStyles() {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		BorderBottom(true).
		Foreground(lipgloss.Color(m.theme.Accent)).
		Bold(true)
	s.Cell = s.Cell.Foreground(lipgloss.Color(m.theme.Text))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(m.theme.SelectionText)).
		Background(lipgloss.Color(m.theme.SelectionBg)).
		Bold(false)
	m.dateTable.SetStyles(s)
	m.exceptionTable.SetStyles(s)
}

// syncTables copies the navigation collections into the table rows.
func (m *Model) syncTables() {
	dateRows := make([]table.Row, 0, len(m.nav.Dates))
	for _, d := range m.nav.Dates {
		dateRows = append(dateRows, table.Row{d})
	}
	m.dateTable.SetRows(dateRows)

	msgWidth := maxInt(m.width-lineNoWidth-4, 10)
	m.exceptionTable.SetColumns([]table.Column{
		{Title: "Line No", Width: lineNoWidth},
		{Title: "Exception Message", Width: msgWidth},
	})
	rows := make([]table.Row, 0, len(m.nav.Exceptions))
	for _, ex := range m.nav.Exceptions {
		rows = append(rows, table.Row{
			strconv.Itoa(ex.LineNo),
			Summary(ex.ExceptionMessage, m.truncateAt),
		})
	}
	m.exceptionTable.SetRows(rows)

	// An empty table parks its cursor at -1 and keeps it there when rows
	// arrive later.
	for _, t := range []*table.Model{&m.dateTable, &m.exceptionTable} {
		if len(t.Rows()) > 0 && t.Cursor() < 0 {
			t.SetCursor(0)
		}
	}
}

// renderBody renders whichever list is active.
func (m Model) renderBody() string {
	styles := m.theme.Styles()
	var b strings.Builder

	if m.nav.SelectedDate != "" {
		title := fmt.Sprintf("[%s] %s exceptions", m.nav.SelectedInstance, m.nav.SelectedDate)
		b.WriteString(styles.AccentText.Bold(true).Render(title))
		b.WriteString("  ")
		b.WriteString(styles.FaintText.Render("b  Back to dates"))
		b.WriteString("\n")
		switch {
		case m.nav.LoadingExceptions() && len(m.nav.Exceptions) == 0:
			b.WriteString(m.spinner.View() + " " + styles.MutedText.Render("Loading exceptions..."))
		case len(m.nav.Exceptions) == 0:
			b.WriteString(styles.MutedText.Render("No exceptions on this date."))
		default:
			b.WriteString(m.exceptionTable.View())
		}
		return m.fitBody(b.String())
	}

	switch {
	case len(m.nav.Dates) == 0 && (m.nav.LoadingDates() || m.nav.LoadingInstances()):
		b.WriteString(m.spinner.View() + " " + styles.MutedText.Render("Loading..."))
	case len(m.nav.Dates) == 0:
		b.WriteString(styles.MutedText.Render("No logs have been extracted yet."))
	default:
		b.WriteString(styles.AccentText.Bold(true).Render("Extracted logs"))
		if m.nav.LoadingDates() {
			b.WriteString(" " + m.spinner.View())
		}
		b.WriteString("\n")
		b.WriteString(m.dateTable.View())
	}
	return m.fitBody(b.String())
}

// fitBody pads or clips the body to its allotted height so the footer
// stays on the last rows.
func (m Model) fitBody(body string) string {
	return lipgloss.NewStyle().
		Height(m.bodyHeight()).
		MaxHeight(m.bodyHeight()).
		Render(body)
}

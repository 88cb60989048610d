package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
)

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding

	// Instance picker
	PrevInstance key.Binding
	NextInstance key.Binding
	PickInstance key.Binding

	// Lists
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Select  key.Binding
	Back    key.Binding
	Extract key.Binding

	// Detail overlay
	Close      key.Binding
	Copy       key.Binding
	NextButton key.Binding
	Press      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q/ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),

		PrevInstance: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Previous instance"),
		),
		NextInstance: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Next instance"),
		),
		PickInstance: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "Pick instance"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "backspace", "esc"),
			key.WithHelp("b/esc", "Back to dates"),
		),
		Extract: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Extract today's log"),
		),

		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close detail"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c", "y"),
			key.WithHelp("c/y", "Copy detail"),
		),
		NextButton: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Switch button"),
		),
		Press: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "Press button"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Back, k.Extract, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view, one group per
// help section.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevInstance, k.NextInstance, k.PickInstance, k.Extract},
		{k.Down, k.Up, k.Top, k.Bottom, k.Select, k.Back},
		{k.Copy, k.NextButton, k.Press, k.Close},
		{k.CycleTheme, k.Help, k.Quit},
	}
}

// tableKeys drives list movement with the list bindings. Paging keeps the
// table defaults.
func (k keyMap) tableKeys() table.KeyMap {
	km := table.DefaultKeyMap()
	km.LineUp = k.Up
	km.LineDown = k.Down
	km.GotoTop = k.Top
	km.GotoBottom = k.Bottom
	return km
}

// overlayHelp is the footer help while the detail overlay is open.
func (k keyMap) overlayHelp() []key.Binding {
	return []key.Binding{k.Copy, k.NextButton, k.Close}
}

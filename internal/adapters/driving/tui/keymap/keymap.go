// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI. Printable keys go to the
// query input, so every binding here uses a non-printing key.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Clear empties the query, or closes the detail pane if open.
	Clear key.Binding

	// NextMode cycles to the next search mode.
	NextMode key.Binding

	// PrevMode cycles to the previous search mode.
	PrevMode key.Binding

	// Up moves the selection up.
	Up key.Binding

	// Down moves the selection down.
	Down key.Binding

	// NextPage shows the next result page.
	NextPage key.Binding

	// PrevPage shows the previous result page.
	PrevPage key.Binding

	// Detail toggles the detail pane for the selected unit.
	Detail key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev mode"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+k"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+j"),
			key.WithHelp("↓", "down"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+f"),
			key.WithHelp("pgdn", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("pgup", "ctrl+b"),
			key.WithHelp("pgup", "prev page"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
	}
}

// ShortHelp returns the bindings shown when there are no results.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextMode, k.Clear, k.Quit}
}

// ResultsHelp returns the bindings shown alongside results.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.NextMode, k.Down, k.NextPage, k.Detail, k.Quit}
}

// FullHelp returns all bindings grouped by purpose.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Detail},
		{k.NextPage, k.PrevPage},
		{k.NextMode, k.PrevMode, k.Clear, k.Quit},
	}
}

package cellview

import (
	"github.com/xqrs/cellview/i18n"
	"github.com/xqrs/cellview/keybind"
)

// ListKeyMap holds the key bindings of a [ListView].
type ListKeyMap struct {
	SelectPrevious keybind.Keybind
	SelectNext     keybind.Keybind
	FocusPrevious  keybind.Keybind
	FocusNext      keybind.Keybind
	First          keybind.Keybind
	Last           keybind.Keybind
	PageUp         keybind.Keybind
	PageDown       keybind.Keybind
	Activate       keybind.Keybind
}

// DefaultListKeyMap returns the default bindings with help texts in the active
// language.
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		SelectPrevious: keybind.NewKeybind(
			keybind.WithKeys("up", "k"),
			keybind.WithHelp("↑/k", i18n.T("keys.select_previous")),
		),
		SelectNext: keybind.NewKeybind(
			keybind.WithKeys("down", "j"),
			keybind.WithHelp("↓/j", i18n.T("keys.select_next")),
		),
		FocusPrevious: keybind.NewKeybind(
			keybind.WithKeys("ctrl+up"),
			keybind.WithHelp("ctrl+↑", i18n.T("keys.focus_previous")),
		),
		FocusNext: keybind.NewKeybind(
			keybind.WithKeys("ctrl+down"),
			keybind.WithHelp("ctrl+↓", i18n.T("keys.focus_next")),
		),
		First: keybind.NewKeybind(
			keybind.WithKeys("home"),
			keybind.WithHelp("home", i18n.T("keys.first")),
		),
		Last: keybind.NewKeybind(
			keybind.WithKeys("end"),
			keybind.WithHelp("end", i18n.T("keys.last")),
		),
		PageUp: keybind.NewKeybind(
			keybind.WithKeys("pgup"),
			keybind.WithHelp("pgup", i18n.T("keys.page_up")),
		),
		PageDown: keybind.NewKeybind(
			keybind.WithKeys("pgdn"),
			keybind.WithHelp("pgdn", i18n.T("keys.page_down")),
		),
		Activate: keybind.NewKeybind(
			keybind.WithKeys("enter"),
			keybind.WithHelp("enter", i18n.T("keys.activate")),
		),
	}
}

// ShortHelp returns the bindings shown in a single help line.
func (k ListKeyMap) ShortHelp() []keybind.Keybind {
	return []keybind.Keybind{k.SelectPrevious, k.SelectNext, k.PageUp, k.PageDown, k.Activate}
}

// FullHelp returns the bindings grouped in columns.
func (k ListKeyMap) FullHelp() [][]keybind.Keybind {
	return [][]keybind.Keybind{
		{k.SelectPrevious, k.SelectNext, k.FocusPrevious, k.FocusNext},
		{k.First, k.Last, k.PageUp, k.PageDown},
		{k.Activate},
	}
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the TUI key bindings. The form input receives every printable
// key, so single-letter bindings only apply while the list has focus.
type keyMap struct {
	Submit     key.Binding
	CancelEdit key.Binding
	NextFocus  key.Binding
	PrevFocus  key.Binding
	Up         key.Binding
	Down       key.Binding
	Edit       key.Binding
	Remove     key.Binding
	ClearAll   key.Binding
	Copy       key.Binding
	Filter     key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding

	ConfirmYes key.Binding
	ConfirmNo  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add / update"),
		),
		CancelEdit: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel edit"),
		),
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("e", "edit"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d", "x", "delete"),
			key.WithHelp("d", "remove"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear all"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		ConfirmYes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		ConfirmNo: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "no"),
		),
	}
}

// inputHelp is the footer while typing into the form or filter.
type inputHelp struct{ km keyMap }

func (h inputHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.km.Submit, h.km.CancelEdit, h.km.NextFocus, h.km.ForceQuit}
}

func (h inputHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }

// listHelp is the footer while the list has focus.
type listHelp struct{ km keyMap }

func (h listHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.km.Up, h.km.Down, h.km.Edit, h.km.Remove, h.km.Filter, h.km.Help, h.km.Quit}
}

func (h listHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.km.Up, h.km.Down, h.km.Edit, h.km.Remove},
		{h.km.ClearAll, h.km.Copy, h.km.Filter},
		{h.km.NextFocus, h.km.Help, h.km.Quit},
	}
}

// helpMarkdown is the body of the help overlay.
func helpMarkdown(km keyMap) string {
	var b strings.Builder
	b.WriteString("# listkeep\n\n")
	b.WriteString("Type an item and press `enter` to add it. Items are unique, ignoring case.\n\n")
	b.WriteString("## Keys\n\n")
	for _, kb := range []key.Binding{
		km.Submit, km.CancelEdit, km.NextFocus, km.Up, km.Down, km.Edit,
		km.Remove, km.ClearAll, km.Copy, km.Filter, km.Help, km.Quit, km.ForceQuit,
	} {
		h := kb.Help()
		fmt.Fprintf(&b, "- `%s` %s\n", h.Key, h.Desc)
	}
	b.WriteString("\nClick an item to edit it, or its remove mark to remove it.\n")
	return b.String()
}

package keys

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the bindings recognised by the controller.
type KeyMap struct {
	Select   key.Binding // space / enter
	Close    key.Binding // escape
	First    key.Binding // home
	Last     key.Binding // end
	Previous key.Binding // arrow up
	Next     key.Binding // arrow down
	Tab      key.Binding
}

var _ help.KeyMap = KeyMap{}

// DefaultKeyMap returns the standard menu bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Select: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("enter", "select"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		First: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "last"),
		),
		Previous: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "move focus"),
		),
	}
}

// Override replaces the keys of the named bindings. Names are select, close,
// first, last, previous, next and tab; unknown names are returned.
func (km *KeyMap) Override(overrides map[string][]string) (unknown []string) {
	for name, ks := range overrides {
		b := km.binding(name)
		if b == nil {
			unknown = append(unknown, name)
			continue
		}
		b.SetKeys(ks...)
	}
	return unknown
}

func (km *KeyMap) binding(name string) *key.Binding {
	switch name {
	case "select":
		return &km.Select
	case "close":
		return &km.Close
	case "first":
		return &km.First
	case "last":
		return &km.Last
	case "previous":
		return &km.Previous
	case "next":
		return &km.Next
	case "tab":
		return &km.Tab
	}
	return nil
}

// ShortHelp implements help.KeyMap.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Previous, km.Next, km.Select, km.Close}
}

// FullHelp implements help.KeyMap.
func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Previous, km.Next, km.First, km.Last},
		{km.Select, km.Close, km.Tab},
	}
}

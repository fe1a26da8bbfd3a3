package viewer

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the viewer key bindings.
type keyMap struct {
	ToggleAxis  key.Binding
	CycleFocus  key.Binding
	NarrowLo    key.Binding
	WidenLo     key.Binding
	NarrowHi    key.Binding
	WidenHi     key.Binding
	ClearFilter key.Binding
	ToggleScale key.Binding
	Reload      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ToggleAxis: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "toggle axis"),
		),
		CycleFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next hidden axis"),
		),
		WidenLo: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "filter lo -1"),
		),
		NarrowLo: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "filter lo +1"),
		),
		NarrowHi: key.NewBinding(
			key.WithKeys("{"),
			key.WithHelp("{", "filter hi -1"),
		),
		WidenHi: key.NewBinding(
			key.WithKeys("}"),
			key.WithHelp("}", "filter hi +1"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "clear filter"),
		),
		ToggleScale: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "linear/log"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleAxis, k.CycleFocus, k.Reload, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ToggleAxis, k.CycleFocus, k.ToggleScale},
		{k.WidenLo, k.NarrowLo, k.NarrowHi, k.WidenHi, k.ClearFilter},
		{k.Reload, k.Help, k.Quit},
	}
}

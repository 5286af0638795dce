package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the bindings shown in the footer
type keyMap struct {
	Search key.Binding
	Move   key.Binding
	Select key.Binding
	Map    key.Binding
	Area   key.Binding
	Locate key.Binding
	Page   key.Binding
	Facets key.Binding
	Info   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Move:   key.NewBinding(key.WithKeys("up", "down", "j", "k"), key.WithHelp("↑/↓", "move")),
		Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Map:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "map")),
		Area:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "search area")),
		Locate: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "near me")),
		Page:   key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[/]", "page")),
		Facets: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"), key.WithHelp("1-9/0", "facets")),
		Info:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "details")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Move, k.Select, k.Map, k.Area, k.Locate, k.Page, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Move, k.Select, k.Info},
		{k.Map, k.Area, k.Locate},
		{k.Page, k.Facets, k.Help, k.Quit},
	}
}

package categories

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add     key.Binding
	Rename  key.Binding
	Recolor key.Binding
}

var localKeys = keyMap{
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename"),
	),
	Recolor: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "new color"),
	),
}

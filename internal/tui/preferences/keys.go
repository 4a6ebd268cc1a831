package preferences

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Export key.Binding
	Import key.Binding
}

var localKeys = keyMap{
	Export: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "export"),
	),
	Import: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "import"),
	),
}

package notes

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Filter       key.Binding
	ClearFilters key.Binding
	Categories   key.Binding
	Settings     key.Binding
	Copy         key.Binding
	Raw          key.Binding
}

var localKeys = keyMap{
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "category filter"),
	),
	ClearFilters: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "clear filters"),
	),
	Categories: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "categories"),
	),
	Settings: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "settings"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy content"),
	),
	Raw: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "toggle raw"),
	),
}

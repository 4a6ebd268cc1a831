package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type global struct {
	Logs   key.Binding
	Escape key.Binding
	Quit   key.Binding
	Help   key.Binding
}

var Global = global{
	Logs: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "logs"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("^c", "exit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
}

type confirm struct {
	Yes key.Binding
	No  key.Binding
}

// Confirm keys answer a pending confirmation.
var Confirm = confirm{
	Yes: key.NewBinding(
		key.WithKeys("y", "enter"),
		key.WithHelp("y", "confirm"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n", "cancel"),
	),
}

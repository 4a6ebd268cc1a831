package top

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
)

func TestShortHelpView(t *testing.T) {
	tests := []struct {
		name     string
		bindings []key.Binding
		want     string
	}{
		{
			"single column",
			[]key.Binding{
				key.NewBinding(key.WithHelp("n", "new")),
				key.NewBinding(key.WithHelp("e", "edit")),
			},
			"n new \ne edit",
		},
		{
			"two columns",
			[]key.Binding{
				key.NewBinding(key.WithHelp("n", "new")),
				key.NewBinding(key.WithHelp("e", "edit")),
				key.NewBinding(key.WithHelp("d", "del")),
			},
			"n new    d del\ne edit        ",
		},
		{
			"three columns",
			[]key.Binding{
				key.NewBinding(key.WithHelp("n", "new")),
				key.NewBinding(key.WithHelp("e", "edit")),
				key.NewBinding(key.WithHelp("d", "del")),
				key.NewBinding(key.WithHelp("/", "find")),
				key.NewBinding(key.WithHelp("?", "help")),
			},
			"n new    d del    ? help\ne edit   / find         ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shortHelpView(tt.bindings, 30)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFullHelpView(t *testing.T) {
	got := fullHelpView(
		nil,
		[]key.Binding{key.NewBinding(key.WithHelp("?", "help"))},
		[]key.Binding{key.NewBinding(key.WithHelp("tab", "next field"))},
	)

	assert.NotContains(t, got, "PAGE")
	assert.Contains(t, got, "GENERAL")
	assert.Contains(t, got, "NAVIGATION")
	assert.Contains(t, got, "next field")
}

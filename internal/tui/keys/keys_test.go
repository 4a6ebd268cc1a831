package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
)

func Test_keyMapToSlice(t *testing.T) {
	got := KeyMapToSlice(Confirm)
	want := []key.Binding{
		key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "confirm"),
		),
		key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "cancel"),
		),
	}
	assert.Equal(t, want, got)
}

func Test_keyMapToSlice_NotStruct(t *testing.T) {
	assert.Nil(t, KeyMapToSlice("q"))
}

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leg100/notelist/internal/shortcut"
)

// NewKeyEvent converts a terminal key press into a key event for shortcut
// dispatch.
func NewKeyEvent(msg tea.KeyMsg, target shortcut.Target) *shortcut.KeyEvent {
	ev := &shortcut.KeyEvent{Key: msg.String(), Target: target}
	if k, ok := strings.CutPrefix(ev.Key, "ctrl+"); ok && k != "" {
		ev.Key = k
		ev.Ctrl = true
	}
	return ev
}

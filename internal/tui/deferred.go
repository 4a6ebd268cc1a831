package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Deferred collects commands queued by shortcut actions, which cannot return
// commands themselves. The top model drains it after dispatching each key.
type Deferred struct {
	mu   sync.Mutex
	cmds []tea.Cmd
}

// Queue adds a command. Nil commands are ignored.
func (d *Deferred) Queue(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cmds = append(d.cmds, cmd)
}

// Drain removes and batches the queued commands.
func (d *Deferred) Drain() tea.Cmd {
	d.mu.Lock()
	defer d.mu.Unlock()

	cmds := d.cmds
	d.cmds = nil
	return tea.Batch(cmds...)
}

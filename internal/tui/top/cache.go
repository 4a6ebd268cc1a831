package top

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leg100/notelist/internal/tui"
)

// page cache: retains memory of user actions, e.g. a user may move the cursor
// to a particular note, navigate away from the page and later return to the
// page, and they would expect the cursor to still be on the same note.
type cache struct {
	cache map[tui.Page]tui.Model
}

func newCache() *cache {
	return &cache{cache: make(map[tui.Page]tui.Model)}
}

func (c *cache) get(page tui.Page) tui.Model {
	return c.cache[page]
}

func (c *cache) put(page tui.Page, model tui.Model) {
	c.cache[page] = model
}

func (c *cache) remove(page tui.Page) {
	delete(c.cache, page)
}

// updateAll sends a message to every cached model. Models update themselves
// in place so the returned model is discarded.
func (c *cache) updateAll(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	for _, m := range c.cache {
		_, cmd := m.Update(msg)
		cmds = append(cmds, cmd)
	}
	return cmds
}

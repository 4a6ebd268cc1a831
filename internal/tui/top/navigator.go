package top

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leg100/notelist/internal/tui"
)

// navigator navigates the user from page to page, creating and caching
// corresponding models accordingly. Only the current page's shortcuts are
// active.
type navigator struct {
	// history tracks the pages a user has visited, in LIFO order.
	history []tui.Page
	// cache each unique page visited
	cache *cache
	// directory of model makers for each kind
	makers map[tui.Kind]tui.Maker
	// release deactivates the current page's shortcuts.
	release func()
	// navigator needs to know width and height when making a model
	width  int
	height int
}

func newNavigator(firstPage string, makers map[tui.Kind]tui.Maker, width, height int) (*navigator, error) {
	n := &navigator{
		makers: makers,
		cache:  newCache(),
		width:  width,
		height: height,
	}

	firstKind, err := tui.FirstPageKind(firstPage)
	if err != nil {
		return nil, err
	}

	// ignore returned init cmd; instead the main model should invoke it
	if _, err = n.setCurrent(tui.Page{Kind: firstKind}); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *navigator) currentPage() (tui.Page, bool) {
	if len(n.history) == 0 {
		return tui.Page{}, false
	}
	return n.history[len(n.history)-1], true
}

func (n *navigator) currentModel() tui.Model {
	page, ok := n.currentPage()
	if !ok {
		return nil
	}
	return n.cache.get(page)
}

// model retrieves the model for a page, making it if it is not cached. Pages
// of a kind that is not cached are dropped from the cache once popped from
// the history, so that visiting one again makes it afresh.
func (n *navigator) model(page tui.Page) (tui.Model, error) {
	if model := n.cache.get(page); model != nil {
		return model, nil
	}
	maker, ok := n.makers[page.Kind]
	if !ok {
		return nil, fmt.Errorf("no maker could be found for %s", page.Kind)
	}
	model, err := maker.Make(page, n.width, n.height)
	if err != nil {
		return nil, fmt.Errorf("making page: %w", err)
	}
	n.cache.put(page, model)
	return model, nil
}

func (n *navigator) setCurrent(page tui.Page) (tea.Cmd, error) {
	// Silently ignore the user's request to navigate again to the current page.
	if current, ok := n.currentPage(); ok && page == current {
		return nil, nil
	}
	model, err := n.model(page)
	if err != nil {
		return nil, err
	}
	n.close()
	// Push new current page to history
	n.history = append(n.history, page)
	n.release = model.Activate()
	return model.Init(), nil
}

func (n *navigator) goBack() (tea.Cmd, error) {
	if len(n.history) == 1 {
		// Silently refuse to go back further than first page.
		return nil, nil
	}
	n.close()
	// Pop current page from history, discarding its model if it is not to be
	// cached.
	if popped, _ := n.currentPage(); !popped.Kind.Cached() {
		n.cache.remove(popped)
	}
	n.history = n.history[:len(n.history)-1]
	page, _ := n.currentPage()
	model, err := n.model(page)
	if err != nil {
		return nil, err
	}
	n.release = model.Activate()
	return model.Init(), nil
}

// close deactivates the current page.
func (n *navigator) close() {
	if n.release != nil {
		n.release()
		n.release = nil
	}
}

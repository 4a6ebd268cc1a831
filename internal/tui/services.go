package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/leg100/notelist/internal/alert"
	"github.com/leg100/notelist/internal/draft"
	"github.com/leg100/notelist/internal/filter"
	"github.com/leg100/notelist/internal/logging"
	"github.com/leg100/notelist/internal/note"
	"github.com/leg100/notelist/internal/settings"
	"github.com/leg100/notelist/internal/shortcut"
	"github.com/leg100/notelist/internal/transfer"
)

// Services are the collaborators shared by every page.
type Services struct {
	Notes    *note.Service
	Alerts   *alert.Queue
	Settings *settings.Store
	Filter   *filter.Store
	Drafts   *draft.Autosaver
	Transfer *transfer.Service
	Logger   *logging.Logger

	// Keys is the key event source every page's dispatcher listens to.
	Keys *shortcut.Emitter
	// Deferred collects commands queued by shortcut actions.
	Deferred *Deferred
}

// NewDispatcher constructs a page's shortcut dispatcher.
func (s *Services) NewDispatcher() *shortcut.Dispatcher {
	return shortcut.NewDispatcher(s.Keys, s.Settings, s.Logger)
}

// Bindings maps chords to shortcut actions.
type Bindings map[shortcut.Chord]shortcut.Action

// Add binds each of the key binding's keys to the action.
func (b Bindings) Add(kb key.Binding, action shortcut.Action) Bindings {
	for _, k := range kb.Keys() {
		b[shortcut.MustParseChord(k)] = action
	}
	return b
}

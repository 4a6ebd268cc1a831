// Package tuitest provides helpers for testing page models against real
// services backed by a temporary database.
package tuitest

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leg100/notelist/internal/alert"
	"github.com/leg100/notelist/internal/bridge"
	"github.com/leg100/notelist/internal/draft"
	"github.com/leg100/notelist/internal/filter"
	"github.com/leg100/notelist/internal/localstore"
	"github.com/leg100/notelist/internal/logging"
	"github.com/leg100/notelist/internal/note"
	"github.com/leg100/notelist/internal/resource"
	"github.com/leg100/notelist/internal/settings"
	"github.com/leg100/notelist/internal/shortcut"
	"github.com/leg100/notelist/internal/store"
	"github.com/leg100/notelist/internal/transfer"
	"github.com/leg100/notelist/internal/tui"
	"github.com/stretchr/testify/require"
)

// NewServices constructs services using a database in a temporary
// directory.
func NewServices(t *testing.T) *tui.Services {
	t.Helper()

	dir := t.TempDir()
	db, err := store.Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := logging.NewLogger(logging.Options{Level: "debug"})
	backend := bridge.New(logger)
	bridge.Register(backend, db)
	notes := note.NewService(backend, logger)
	alerts := alert.NewQueue(logger)

	prefs := settings.NewStore(dir, logger)
	prefs.Load()

	kv := localstore.New(db.DB())
	return &tui.Services{
		Notes:    notes,
		Alerts:   alerts,
		Settings: prefs,
		Filter:   filter.NewStore(kv, logger),
		Drafts:   draft.NewAutosaver(kv, logger),
		Transfer: transfer.NewService(notes, alerts, logger, filepath.Join(dir, "exports")),
		Logger:   logger,
		Keys:     shortcut.NewEmitter(),
		Deferred: &tui.Deferred{},
	}
}

// Press routes a key press to a page the way the top model does: shortcuts
// first, then the page itself if no shortcut handled the key. Returns the
// resulting command.
func Press(s *tui.Services, m tui.Model, msg tea.KeyMsg) tea.Cmd {
	ev := s.Keys.Emit(tui.NewKeyEvent(msg, m.Focus()))
	if cmd := s.Deferred.Drain(); ev.DefaultPrevented() {
		return cmd
	}
	_, cmd := m.Update(msg)
	return cmd
}

// Type presses each character of text in turn.
func Type(s *tui.Services, m tui.Model, text string) {
	for _, r := range text {
		Press(s, m, Rune(r))
	}
}

// Rune returns the key press of a character.
func Rune(r rune) tea.KeyMsg {
	if r == ' ' {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// Key returns the key press of a special key.
func Key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// Resolve answers the oldest pending confirmation, draining any commands its
// callbacks queued. Returns the confirmation's title.
func Resolve(t *testing.T, s *tui.Services, confirmed bool) (string, tea.Cmd) {
	t.Helper()

	a, ok := s.Alerts.Pending()
	require.True(t, ok, "expected a pending confirmation")
	require.True(t, s.Alerts.Resolve(a.ID, confirmed))
	return a.Title, s.Deferred.Drain()
}

// Msg runs a command and returns its message, or nil if cmd is nil.
func Msg(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// Event returns an update event for a resource, as relayed to pages when the
// resource changes.
func Event[T any](payload T) resource.Event[T] {
	return resource.NewEvent(resource.UpdatedEvent, payload)
}

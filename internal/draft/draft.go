// Package draft autosaves the note editor's unsaved changes, so that they
// survive the editor being closed or the program exiting.
package draft

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/leg100/notelist/internal/logging"
	"github.com/leg100/notelist/internal/resource"
)

// StorageKey is the key under which the draft is persisted.
const StorageKey = "notelist_note_draft"

// DefaultDelay is how long after the last edit a draft is persisted.
const DefaultDelay = time.Second

// Draft is the editor's unsaved state.
type Draft struct {
	// NoteID is the id of the note being edited, or zero for a new note.
	NoteID      uint32   `json:"noteId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Img         string   `json:"img"`
	Categories  []string `json:"categories"`
	SavedAt     string   `json:"savedAt"`
}

// For reports whether the draft belongs to the note with the given id.
func (d Draft) For(noteID uint32) bool {
	return d.NoteID == noteID
}

// KV is local key-value storage.
type KV interface {
	Get(key string, v any) error
	Set(key string, v any) error
	Delete(key string) error
}

// Autosaver persists the latest draft once edits pause for the delay.
type Autosaver struct {
	kv     KV
	logger logging.Interface
	delay  time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending *Draft
	// digest of the last persisted draft, to skip writing an unchanged draft.
	digest    uint64
	hasDigest bool
}

func NewAutosaver(kv KV, logger logging.Interface) *Autosaver {
	return &Autosaver{kv: kv, logger: logger, delay: DefaultDelay}
}

// Touch records the latest draft, (re)starting the debounce timer.
func (a *Autosaver) Touch(d Draft) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.pending = &d
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, a.Flush)
}

// Pending reports whether there is a draft waiting to be persisted.
func (a *Autosaver) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.pending != nil
}

// Flush persists any pending draft immediately.
func (a *Autosaver) Flush() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if a.pending == nil {
		return
	}
	d := *a.pending
	a.pending = nil

	data, err := json.Marshal(d)
	if err != nil {
		a.logger.Error("encoding draft", "error", err)
		return
	}
	digest := xxhash.Sum64(data)
	if a.hasDigest && digest == a.digest {
		return
	}
	d.SavedAt = time.Now().UTC().Format(time.RFC3339)
	if err := a.kv.Set(StorageKey, d); err != nil {
		a.logger.Warn("saving draft", "error", err)
		return
	}
	a.digest, a.hasDigest = digest, true
	a.logger.Debug("saved draft", "note_id", d.NoteID)
}

// Load returns the persisted draft, if there is one.
func (a *Autosaver) Load() (Draft, bool) {
	var d Draft
	if err := a.kv.Get(StorageKey, &d); err != nil {
		if !errors.Is(err, resource.ErrNotFound) {
			a.logger.Warn("loading draft", "error", err)
		}
		return Draft{}, false
	}
	return d, true
}

// Clear cancels any pending draft and deletes the persisted draft. Call it
// once the note has been saved.
func (a *Autosaver) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.pending = nil
	a.hasDigest = false
	if err := a.kv.Delete(StorageKey); err != nil {
		a.logger.Warn("deleting draft", "error", err)
	}
}

// Discard is Clear for when the user abandons their changes.
func (a *Autosaver) Discard() {
	a.Clear()
	a.logger.Info("discarded draft")
}

// Package filter remembers the notes list's search and category filter
// between sessions.
package filter

import (
	"errors"
	"slices"
	"sync"

	"github.com/leg100/notelist/internal/logging"
	"github.com/leg100/notelist/internal/resource"
)

// StorageKey is the key under which the state is persisted.
const StorageKey = "notelist_filter_state"

// State is the notes list filter.
type State struct {
	SearchTerm         string   `json:"searchTerm"`
	SelectedCategories []string `json:"selectedCategories"`
	ShowCategoryFilter bool     `json:"showCategoryFilter"`
}

// Active reports whether the state filters anything out.
func (s State) Active() bool {
	return s.SearchTerm != "" || len(s.SelectedCategories) > 0
}

// Partial is a partial update of State; nil fields are left unchanged.
type Partial struct {
	SearchTerm         *string
	SelectedCategories []string
	ShowCategoryFilter *bool
}

// KV is local key-value storage.
type KV interface {
	Get(key string, v any) error
	Set(key string, v any) error
}

// Store holds the filter state, persisting every change. Storage failures
// are logged and otherwise ignored.
type Store struct {
	kv     KV
	logger logging.Interface

	mu    sync.Mutex
	state State
}

// NewStore constructs the store, loading any persisted state.
func NewStore(kv KV, logger logging.Interface) *Store {
	s := &Store{kv: kv, logger: logger, state: empty()}
	s.load()
	return s
}

func empty() State {
	return State{SelectedCategories: []string{}}
}

func (s *Store) load() {
	loaded := s.state
	if err := s.kv.Get(StorageKey, &loaded); err != nil {
		if !errors.Is(err, resource.ErrNotFound) {
			s.logger.Warn("loading filter state", "error", err)
		}
		return
	}
	if loaded.SelectedCategories == nil {
		loaded.SelectedCategories = []string{}
	}
	s.state = loaded
}

func (s *Store) save() {
	if err := s.kv.Set(StorageKey, s.state); err != nil {
		s.logger.Warn("saving filter state", "error", err)
	}
}

// Get returns a copy of the state.
func (s *Store) Get() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state
	state.SelectedCategories = slices.Clone(s.state.SelectedCategories)
	return state
}

// Set merges a partial update into the state.
func (s *Store) Set(p Partial) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.SearchTerm != nil {
		s.state.SearchTerm = *p.SearchTerm
	}
	if p.SelectedCategories != nil {
		s.state.SelectedCategories = slices.Clone(p.SelectedCategories)
	}
	if p.ShowCategoryFilter != nil {
		s.state.ShowCategoryFilter = *p.ShowCategoryFilter
	}
	s.save()
}

// Clear resets the state.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = empty()
	s.save()
}

func (s *Store) UpdateSearchTerm(term string) {
	s.Set(Partial{SearchTerm: &term})
}

func (s *Store) UpdateSelectedCategories(categories []string) {
	if categories == nil {
		categories = []string{}
	}
	s.Set(Partial{SelectedCategories: categories})
}

func (s *Store) UpdateShowCategoryFilter(show bool) {
	s.Set(Partial{ShowCategoryFilter: &show})
}

// ToggleCategory adds the category to the selection, or removes it if
// already selected.
func (s *Store) ToggleCategory(category string) {
	selected := s.Get().SelectedCategories
	if i := slices.Index(selected, category); i >= 0 {
		selected = slices.Delete(selected, i, i+1)
	} else {
		selected = append(selected, category)
	}
	s.UpdateSelectedCategories(selected)
}

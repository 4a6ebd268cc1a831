package filter

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/leg100/notelist/internal/logging"
	"github.com/leg100/notelist/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memKV is an in-memory KV that stores values as JSON.
type memKV struct {
	data    map[string][]byte
	failSet bool
}

func newMemKV() *memKV { return &memKV{data: make(map[string][]byte)} }

func (m *memKV) Get(key string, v any) error {
	data, ok := m.data[key]
	if !ok {
		return fmt.Errorf("%s: %w", key, resource.ErrNotFound)
	}
	return json.Unmarshal(data, v)
}

func (m *memKV) Set(key string, v any) error {
	if m.failSet {
		return errors.New("disk full")
	}
	data, err := json.Marshal(v)
	m.data[key] = data
	return err
}

func TestStore_Defaults(t *testing.T) {
	s := NewStore(newMemKV(), logging.Discard)

	assert.Equal(t, State{SelectedCategories: []string{}}, s.Get())
	assert.False(t, s.Get().Active())
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	kv := newMemKV()
	s := NewStore(kv, logging.Discard)

	s.UpdateSearchTerm("milk")
	s.UpdateSelectedCategories([]string{"home"})
	s.UpdateShowCategoryFilter(true)

	got := NewStore(kv, logging.Discard).Get()
	assert.Equal(t, State{
		SearchTerm:         "milk",
		SelectedCategories: []string{"home"},
		ShowCategoryFilter: true,
	}, got)
	assert.True(t, got.Active())
	assert.JSONEq(t, `{"searchTerm":"milk","selectedCategories":["home"],"showCategoryFilter":true}`, string(kv.data[StorageKey]))
}

func TestStore_Set(t *testing.T) {
	s := NewStore(newMemKV(), logging.Discard)
	s.UpdateSearchTerm("milk")

	show := true
	s.Set(Partial{ShowCategoryFilter: &show})

	got := s.Get()
	assert.Equal(t, "milk", got.SearchTerm)
	assert.True(t, got.ShowCategoryFilter)
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s := NewStore(newMemKV(), logging.Discard)
	s.UpdateSelectedCategories([]string{"a"})

	got := s.Get()
	got.SelectedCategories[0] = "b"

	assert.Equal(t, []string{"a"}, s.Get().SelectedCategories)
}

func TestStore_ToggleAndClear(t *testing.T) {
	s := NewStore(newMemKV(), logging.Discard)

	s.ToggleCategory("work")
	s.ToggleCategory("home")
	s.ToggleCategory("work")
	assert.Equal(t, []string{"home"}, s.Get().SelectedCategories)

	s.Clear()
	assert.Equal(t, State{SelectedCategories: []string{}}, s.Get())
}

func TestStore_StorageFailures(t *testing.T) {
	kv := newMemKV()
	kv.data[StorageKey] = []byte("{not json")

	s := NewStore(kv, logging.Discard)
	require.Equal(t, State{SelectedCategories: []string{}}, s.Get())

	kv.failSet = true
	s.UpdateSearchTerm("still works")
	assert.Equal(t, "still works", s.Get().SearchTerm)
}

package notes

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leg100/notelist/internal/note"
	"github.com/leg100/notelist/internal/shortcut"
	"github.com/leg100/notelist/internal/tui"
	"github.com/leg100/notelist/internal/tui/tuitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, s *tui.Services) {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, s.Notes.SaveCategory(ctx, note.Category{Name: "home", Color: "#FF9800"}))
	require.NoError(t, s.Notes.SaveCategory(ctx, note.Category{Name: "work", Color: "#2196F3"}))
	for _, n := range []note.Note{
		{ID: 1, Title: "Groceries", Description: "weekly shop", Categories: []string{"home"}, CreatedAt: "2024-03-01T09:30:00Z"},
		{ID: 2, Title: "Standup", Description: "daily notes", Categories: []string{"work"}, CreatedAt: "2024-03-02T09:30:00Z"},
		{ID: 3, Title: "Garden", Description: "plant bulbs", Categories: []string{}, CreatedAt: "2024-03-03T09:30:00Z"},
	} {
		require.NoError(t, s.Notes.Save(ctx, n))
	}
}

func setupList(t *testing.T) (*tui.Services, *list) {
	t.Helper()

	s := tuitest.NewServices(t)
	seed(t, s)

	mm := &ListMaker{Services: s}
	model, err := mm.Make(tui.Page{Kind: tui.NoteListKind}, 100, 20)
	require.NoError(t, err)
	m := model.(*list)
	t.Cleanup(m.Activate())
	return s, m
}

func titles(notes []note.Note) (got []string) {
	for _, n := range notes {
		got = append(got, n.Title)
	}
	return got
}

func TestList_Search(t *testing.T) {
	s, m := setupList(t)
	require.Len(t, m.visible, 3)

	tuitest.Press(s, m, tuitest.Rune('/'))
	assert.Equal(t, shortcut.TargetTextInput, m.Focus())

	// letters are typed rather than dispatched as shortcuts
	tuitest.Type(s, m, "GAR")
	assert.Equal(t, []string{"Garden"}, titles(m.visible))
	assert.Equal(t, "GAR", s.Filter.Get().SearchTerm)

	// matches description too
	tuitest.Press(s, m, tuitest.Key(tea.KeyEsc))
	assert.Equal(t, shortcut.TargetList, m.Focus())
	assert.Len(t, m.visible, 3)
	assert.Equal(t, "", s.Filter.Get().SearchTerm)

	tuitest.Press(s, m, tuitest.Rune('/'))
	tuitest.Type(s, m, "daily")
	assert.Equal(t, []string{"Standup"}, titles(m.visible))

	// enter leaves the search box, keeping the term
	tuitest.Press(s, m, tuitest.Key(tea.KeyEnter))
	assert.Equal(t, shortcut.TargetList, m.Focus())
	assert.Equal(t, "daily", s.Filter.Get().SearchTerm)
	assert.Contains(t, m.View(), `Filtered by search "daily"`)
}

func TestList_CategoryFilter(t *testing.T) {
	s, m := setupList(t)

	tuitest.Press(s, m, tuitest.Rune('f'))
	assert.True(t, s.Filter.Get().ShowCategoryFilter)

	// first category is home
	tuitest.Press(s, m, tuitest.Rune(' '))
	assert.Equal(t, []string{"home"}, s.Filter.Get().SelectedCategories)
	assert.Equal(t, []string{"Groceries"}, titles(m.visible))

	tuitest.Press(s, m, tuitest.Rune('j'))
	tuitest.Press(s, m, tuitest.Rune(' '))
	assert.Equal(t, []string{"Groceries", "Standup"}, titles(m.visible))

	tuitest.Press(s, m, tuitest.Key(tea.KeyEsc))
	tuitest.Press(s, m, tuitest.Rune('x'))
	assert.Empty(t, s.Filter.Get().SelectedCategories)
	assert.Len(t, m.visible, 3)
}

func TestList_ActiveFilterBannerHidden(t *testing.T) {
	s, m := setupList(t)

	prefs := s.Settings.Get()
	prefs.ShowActiveFilters = false
	require.NoError(t, s.Settings.Save(prefs))

	s.Filter.UpdateSearchTerm("gro")
	m.applyFilter()

	assert.NotContains(t, m.View(), "Filtered by")
	assert.Contains(t, m.View(), "Groceries")
}

func TestList_Navigation(t *testing.T) {
	s, m := setupList(t)

	tuitest.Press(s, m, tuitest.Rune('j'))
	assert.Equal(t, tui.NavigationMsg{Kind: tui.NoteKind, NoteID: 2}, tuitest.Msg(tuitest.Press(s, m, tuitest.Key(tea.KeyEnter))))
	assert.Equal(t, tui.NavigationMsg{Kind: tui.EditorKind, NoteID: 2}, tuitest.Msg(tuitest.Press(s, m, tuitest.Rune('e'))))
	assert.Equal(t, tui.NavigationMsg{Kind: tui.EditorKind}, tuitest.Msg(tuitest.Press(s, m, tuitest.Rune('n'))))
	assert.Equal(t, tui.NavigationMsg{Kind: tui.CategoriesKind}, tuitest.Msg(tuitest.Press(s, m, tuitest.Rune('c'))))
	assert.Equal(t, tui.NavigationMsg{Kind: tui.SettingsKind}, tuitest.Msg(tuitest.Press(s, m, tuitest.Rune('s'))))
	assert.Equal(t, tui.BackMsg{}, tuitest.Msg(tuitest.Press(s, m, tuitest.Key(tea.KeyEsc))))
}

func TestList_Delete(t *testing.T) {
	s, m := setupList(t)

	tuitest.Press(s, m, tuitest.Rune('d'))
	title, _ := tuitest.Resolve(t, s, true)
	assert.Equal(t, "Delete Note", title)

	assert.Nil(t, s.Notes.Get(context.Background(), 1))

	// the page reloads upon the deletion event
	m.Update(tuitest.Event(note.Note{ID: 1}))
	assert.Equal(t, []string{"Standup", "Garden"}, titles(m.visible))
}

func TestList_ShortcutsDisabled(t *testing.T) {
	s, m := setupList(t)

	prefs := s.Settings.Get()
	prefs.KeyboardShortcuts = false
	require.NoError(t, s.Settings.Save(prefs))

	assert.Nil(t, tuitest.Press(s, m, tuitest.Rune('n')))

	// the list itself still responds to navigation
	tuitest.Press(s, m, tuitest.Key(tea.KeyDown))
	assert.Equal(t, tui.NavigationMsg{Kind: tui.NoteKind, NoteID: 2}, tuitest.Msg(tuitest.Press(s, m, tuitest.Key(tea.KeyEnter))))
}

func TestList_Released(t *testing.T) {
	s := tuitest.NewServices(t)
	seed(t, s)

	model, err := (&ListMaker{Services: s}).Make(tui.Page{}, 100, 20)
	require.NoError(t, err)
	release := model.Activate()
	release()

	assert.Nil(t, tuitest.Press(s, model, tuitest.Rune('n')))
	assert.Equal(t, 0, s.Keys.Subscribers())
}

package store

import (
	"context"
	"testing"

	"github.com/leg100/notelist/internal/note"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *Store {
	t.Helper()

	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newNote(id uint32, title string, categories ...string) note.Note {
	if categories == nil {
		categories = []string{}
	}
	return note.Note{
		ID:         id,
		Title:      title,
		Content:    "content of " + title,
		Categories: categories,
		CreatedAt:  "2024-05-01T10:00:00Z",
	}
}

func TestOpen_Reopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, first.SaveNote(ctx, newNote(1, "persisted")))
	require.NoError(t, first.Close())

	// migrations are already applied
	second, err := Open(dir)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.ListNotes(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestNotes(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		got, err := s.ListNotes(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)

		next, err := s.NextNoteID(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint32(1), next)
	})

	img := "https://example.com/cat.png"
	withImg := newNote(5, "shopping", "home", "errands")
	withImg.Img = &img

	require.NoError(t, s.SaveNote(ctx, newNote(2, "ideas", "work")))
	require.NoError(t, s.SaveNote(ctx, withImg))
	require.NoError(t, s.SaveNote(ctx, newNote(3, "journal")))

	t.Run("list in insertion order", func(t *testing.T) {
		got, err := s.ListNotes(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []uint32{2, 5, 3}, []uint32{got[0].ID, got[1].ID, got[2].ID})
		assert.Equal(t, []string{"home", "errands"}, got[1].Categories)
		assert.Equal(t, img, *got[1].Img)
		assert.Nil(t, got[0].Img)
		assert.Equal(t, []string{}, got[2].Categories)
	})

	t.Run("next id", func(t *testing.T) {
		next, err := s.NextNoteID(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint32(6), next)
	})

	t.Run("get", func(t *testing.T) {
		got, err := s.GetNote(ctx, 5)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "shopping", got.Title)

		missing, err := s.GetNote(ctx, 99)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("update in place", func(t *testing.T) {
		updated := newNote(2, "better ideas", "work", "personal")
		require.NoError(t, s.SaveNote(ctx, updated))

		got, err := s.ListNotes(ctx)
		require.NoError(t, err)
		assert.Equal(t, "better ideas", got[0].Title)
		assert.Equal(t, []string{"work", "personal"}, got[0].Categories)
	})

	t.Run("category names", func(t *testing.T) {
		got, err := s.CategoryNames(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"errands", "home", "personal", "work"}, got)
	})

	t.Run("by categories", func(t *testing.T) {
		got, err := s.NotesByCategories(ctx, []string{"home", "personal"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, uint32(2), got[0].ID)
		assert.Equal(t, uint32(5), got[1].ID)

		all, err := s.NotesByCategories(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.DeleteNote(ctx, 5))
		// deleting again is not an error
		require.NoError(t, s.DeleteNote(ctx, 5))

		got, err := s.ListNotes(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 2)

		names, err := s.CategoryNames(ctx)
		require.NoError(t, err)
		assert.NotContains(t, names, "errands")
	})
}

func TestCategories(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	require.NoError(t, s.SaveCategory(ctx, note.Category{Name: "work", Color: "#4CAF50"}))
	require.NoError(t, s.SaveCategory(ctx, note.Category{Name: "home", Color: "#2196F3"}))
	require.NoError(t, s.SaveCategory(ctx, note.Category{Name: "work", Color: "#F44336"}))

	got, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []note.Category{
		{Name: "work", Color: "#F44336"},
		{Name: "home", Color: "#2196F3"},
	}, got)

	assert.Error(t, s.SaveCategory(ctx, note.Category{Name: "  "}))

	require.NoError(t, s.DeleteCategory(ctx, "work"))
	require.NoError(t, s.DeleteCategory(ctx, "missing"))

	got, err = s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []note.Category{{Name: "home", Color: "#2196F3"}}, got)
}

package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leg100/notelist/internal/note"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")

	app, err := New(Config{
		DataDir:   dataDir,
		ExportDir: t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(app.Cleanup)

	ctx := context.Background()
	err = app.Notes.Save(ctx, note.Note{ID: 1, Title: "hello", Categories: []string{}})
	require.NoError(t, err)
	assert.Len(t, app.Notes.List(ctx), 1)

	// services share the same database
	app.Filter.UpdateSearchTerm("hel")
	assert.Equal(t, "hel", app.Filter.Get().SearchTerm)

	assert.FileExists(t, filepath.Join(dataDir, LogFileName))
	assert.True(t, app.Settings.Get().KeyboardShortcuts)
}

func TestNew_PersistsAcrossRestarts(t *testing.T) {
	dataDir := t.TempDir()
	ctx := context.Background()

	first, err := New(Config{DataDir: dataDir})
	require.NoError(t, err)
	require.NoError(t, first.Notes.SaveCategory(ctx, note.Category{Name: "work", Color: "#4ecdc4"}))
	first.Filter.ToggleCategory("work")
	first.Cleanup()

	second, err := New(Config{DataDir: dataDir})
	require.NoError(t, err)
	t.Cleanup(second.Cleanup)

	assert.Equal(t, []note.Category{{Name: "work", Color: "#4ecdc4"}}, second.Notes.Categories(ctx))
	assert.Equal(t, []string{"work"}, second.Filter.Get().SelectedCategories)

	logs, err := os.ReadFile(filepath.Join(dataDir, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(logs), "started notelist")
}

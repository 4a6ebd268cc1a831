package transfer

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leg100/notelist/internal/alert"
	"github.com/leg100/notelist/internal/bridge"
	"github.com/leg100/notelist/internal/logging"
	"github.com/leg100/notelist/internal/note"
	"github.com/leg100/notelist/internal/resource"
	"github.com/leg100/notelist/internal/store"
	"github.com/otiai10/copy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc    *Service
	notes  *note.Service
	alerts *alert.Queue
	// dir holds a copy of the testdata fixtures.
	dir string
}

func setup(t *testing.T) *fixture {
	t.Helper()

	s, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	b := bridge.New(logging.Discard)
	bridge.Register(b, s)
	notes := note.NewService(b, logging.Discard)
	alerts := alert.NewQueue(logging.Discard)

	dir := t.TempDir()
	require.NoError(t, copy.Copy("testdata", dir))

	svc := NewService(notes, alerts, logging.Discard, filepath.Join(dir, "exports"))
	svc.now = func() time.Time {
		return time.Date(2024, 5, 17, 23, 0, 0, 0, time.UTC)
	}
	return &fixture{svc: svc, notes: notes, alerts: alerts, dir: dir}
}

// resolvePending resolves the oldest confirmation and returns its title.
func (f *fixture) resolvePending(t *testing.T, confirmed bool) string {
	t.Helper()

	a, ok := f.alerts.Pending()
	require.True(t, ok, "expected a pending confirmation")
	require.True(t, f.alerts.Resolve(a.ID, confirmed))
	return a.Title
}

func titles(alerts []alert.Alert) (got []string) {
	for _, a := range alerts {
		got = append(got, a.Title)
	}
	return got
}

func TestExportFileName(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	ts := time.Date(2024, 1, 2, 5, 0, 0, 0, loc)

	assert.Equal(t, "noteList_backup_2024-01-01.json", ExportFileName(ts))
}

func TestExport(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.notes.SaveCategory(ctx, note.Category{Name: "home", Color: "#ff6b6b"}))
	require.NoError(t, f.notes.Save(ctx, note.Note{
		ID:         1,
		Title:      "Groceries",
		Content:    "- milk",
		Categories: []string{"home"},
		CreatedAt:  "2024-03-01T09:30:00Z",
	}))

	path, err := f.svc.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, "noteList_backup_2024-05-17.json", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"notes\": [")

	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Notes, 1)
	assert.Equal(t, "Groceries", doc.Notes[0].Title)
	assert.Equal(t, []note.Category{{Name: "home", Color: "#ff6b6b"}}, doc.Categories)

	// the info alert is replaced by a success alert
	assert.Equal(t, []string{"Export Complete"}, titles(f.alerts.List()))
}

func TestExport_Failure(t *testing.T) {
	f := setup(t)

	// a file where the export directory should be
	blocker := filepath.Join(f.dir, "blocked")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	f.svc.dir = blocker

	_, err := f.svc.Export(context.Background())
	require.Error(t, err)

	alerts := f.alerts.List()
	require.Len(t, alerts, 1)
	assert.Equal(t, alert.Error, alerts[0].Type)
	assert.Equal(t, "Export Failed", alerts[0].Title)
}

func TestPreview(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.notes.SaveCategory(ctx, note.Category{Name: "a", Color: "#000000"}))
	require.NoError(t, f.notes.Save(ctx, note.Note{ID: 1, Title: "one", Categories: []string{}}))
	require.NoError(t, f.notes.Save(ctx, note.Note{ID: 2, Title: "two", Categories: []string{}}))

	assert.Equal(t, Preview{Notes: 2, Categories: 1}, f.svc.Preview(ctx))
}

func TestImport_Valid(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	reloaded, unsub := subscribeReloads(t, f.notes)
	defer unsub()

	require.NoError(t, f.svc.Import(ctx, filepath.Join(f.dir, "valid.json")))

	a, ok := f.alerts.Pending()
	require.True(t, ok)
	assert.Equal(t, "Import Data", a.Title)
	assert.Equal(t, "This will import:\n• 2 notes\n• 2 categories\n\nCurrent data will be replaced. Continue?", a.Message)

	f.resolvePending(t, true)

	notes := f.notes.List(ctx)
	require.Len(t, notes, 2)
	assert.Equal(t, "Groceries", notes[0].Title)
	assert.Equal(t, []string{"work", "home"}, notes[1].Categories)
	assert.Len(t, f.notes.Categories(ctx), 2)
	assert.Equal(t, []string{"Import Complete"}, titles(f.alerts.List()))

	select {
	case <-reloaded:
	case <-time.After(time.Second):
		t.Fatal("expected reload notification")
	}
}

func TestImport_Cancelled(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Import(ctx, filepath.Join(f.dir, "valid.json")))
	assert.Equal(t, "Import Data", f.resolvePending(t, false))

	assert.Empty(t, f.notes.List(ctx))
	assert.Empty(t, f.alerts.List())
}

func TestImport_Partial(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Import(ctx, filepath.Join(f.dir, "partial.json")))
	assert.Equal(t, "Import Data", f.resolvePending(t, true))

	notes := f.notes.List(ctx)
	require.Len(t, notes, 1)
	assert.Equal(t, "No content", notes[0].Title)
}

func TestImport_InvalidForced(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Import(ctx, filepath.Join(f.dir, "invalid.json")))

	a, ok := f.alerts.Pending()
	require.True(t, ok)
	assert.Equal(t, alert.StyleDanger, a.Style)

	assert.Equal(t, "Validation Failed", f.resolvePending(t, true))
	assert.Equal(t, "Import Data", f.resolvePending(t, true))

	assert.Empty(t, f.notes.List(ctx))
	assert.Equal(t, []note.Category{{Name: "stray", Color: "#000000"}}, f.notes.Categories(ctx))
}

func TestImport_InvalidRejected(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Import(ctx, filepath.Join(f.dir, "invalid.json")))
	f.resolvePending(t, false)

	alerts := f.alerts.List()
	require.Len(t, alerts, 1)
	assert.Equal(t, "Import Failed", alerts[0].Title)
	assert.Equal(t, "Failed to import data: invalid data structure in import file", alerts[0].Message)
	assert.Empty(t, f.notes.Categories(ctx))
}

func TestImport_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		want string
	}{
		{"malformed", "malformed.json", "Failed to import data: invalid JSON file format"},
		{"missing", "nonexistent.json", "Failed to import data: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			err := f.svc.Import(context.Background(), filepath.Join(f.dir, tt.file))
			require.Error(t, err)

			alerts := f.alerts.List()
			require.Len(t, alerts, 1)
			assert.Equal(t, "Import Failed", alerts[0].Title)
			assert.Contains(t, alerts[0].Message, tt.want)
		})
	}
}

func subscribeReloads(t *testing.T, notes *note.Service) (<-chan struct{}, func()) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	sub := notes.SubscribeNotes(ctx)
	reloaded := make(chan struct{}, 1)
	go func() {
		for ev := range sub {
			if ev.Type == resource.ReloadedEvent {
				select {
				case reloaded <- struct{}{}:
				default:
				}
			}
		}
	}()
	return reloaded, cancel
}

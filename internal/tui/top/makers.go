package top

import (
	"github.com/leg100/notelist/internal/tui"
	"github.com/leg100/notelist/internal/tui/categories"
	"github.com/leg100/notelist/internal/tui/editor"
	"github.com/leg100/notelist/internal/tui/logs"
	"github.com/leg100/notelist/internal/tui/notes"
	"github.com/leg100/notelist/internal/tui/preferences"
)

// makeMakers makes model makers for making models
func makeMakers(services *tui.Services) map[tui.Kind]tui.Maker {
	return map[tui.Kind]tui.Maker{
		tui.NoteListKind:   &notes.ListMaker{Services: services},
		tui.NoteKind:       &notes.DetailMaker{Services: services},
		tui.EditorKind:     &editor.Maker{Services: services},
		tui.CategoriesKind: &categories.Maker{Services: services},
		tui.SettingsKind:   &preferences.Maker{Services: services},
		tui.LogsKind:       &logs.Maker{Services: services},
	}
}

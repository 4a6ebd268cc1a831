package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leg100/notelist/internal/shortcut"
)

// Page identifies an instance of a model
type Page struct {
	// The model kind. Identifies the model maker to construct the page.
	Kind Kind
	// NoteID is the note shown or edited by the page. Zero for pages not
	// concerned with a particular note, and for the editor of a new note.
	NoteID uint32
}

// Maker makes new models
type Maker interface {
	Make(page Page, width, height int) (Model, error)
}

// Model is a page model. Page models are pointers, updating themselves in
// place.
type Model interface {
	tea.Model
	// Focus reports the kind of element currently focused within the page.
	Focus() shortcut.Target
	// Activate registers the page's shortcuts, returning a function that
	// unregisters them. Called when the page becomes current.
	Activate() (release func())
}

// ModelTitle is implemented by models that show a title
type ModelTitle interface {
	Title() string
}

// ModelHelpBindings is implemented by models that surface further help bindings
// specific to the model.
type ModelHelpBindings interface {
	HelpBindings() []key.Binding
}

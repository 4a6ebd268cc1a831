package tui

// Kind identifies a type of page.
type Kind int

const (
	NoteListKind Kind = iota
	NoteKind
	EditorKind
	CategoriesKind
	SettingsKind
	LogsKind
)

func (k Kind) String() string {
	switch k {
	case NoteListKind:
		return "notes"
	case NoteKind:
		return "note"
	case EditorKind:
		return "editor"
	case CategoriesKind:
		return "categories"
	case SettingsKind:
		return "settings"
	case LogsKind:
		return "logs"
	default:
		return "unknown"
	}
}

// Cached reports whether a page of this kind is kept when navigating away,
// retaining the user's position within it. Editor pages are always made
// afresh.
func (k Kind) Cached() bool {
	return k != EditorKind
}

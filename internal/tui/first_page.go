package tui

import (
	"fmt"
	"slices"

	"golang.org/x/exp/maps"
)

var firstPages = map[string]Kind{
	"notes":      NoteListKind,
	"categories": CategoriesKind,
	"settings":   SettingsKind,
	"logs":       LogsKind,
}

// FirstPageKind retrieves the model corresponding to the user requested first
// page.
func FirstPageKind(s string) (Kind, error) {
	if s == "" {
		return NoteListKind, nil
	}
	kind, ok := firstPages[s]
	if !ok {
		valid := maps.Keys(firstPages)
		slices.Sort(valid)
		return 0, fmt.Errorf("invalid first page, must be one of: %v", valid)
	}
	return kind, nil
}

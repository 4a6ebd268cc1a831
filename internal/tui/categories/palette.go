package categories

import (
	"math/rand"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/leg100/notelist/internal/note"
)

// Palette is the set of colors assigned to new categories.
var Palette = []string{
	"#4CAF50", "#2196F3", "#FF9800", "#9C27B0", "#F44336",
	"#607D8B", "#00BCD4", "#FFEB3B", "#8BC34A", "#E91E63",
	"#795548", "#FF5722", "#009688", "#3F51B5", "#FF6F00",
}

// randomColor picks a palette color other than the given one.
func randomColor(not string) string {
	for {
		c := Palette[rand.Intn(len(Palette))]
		if !strings.EqualFold(c, not) {
			return c
		}
	}
}

// similarTo returns the name of an existing category that differs from name
// by a single edit, ignoring case. Short names are never similar.
func similarTo(name string, existing []note.Category) (string, bool) {
	if len(name) < 4 {
		return "", false
	}
	for _, c := range existing {
		d := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(c.Name))
		if d == 1 {
			return c.Name, true
		}
	}
	return "", false
}

// find returns the existing category with the given name, ignoring case.
func find(name string, existing []note.Category) (note.Category, bool) {
	for _, c := range existing {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return note.Category{}, false
}

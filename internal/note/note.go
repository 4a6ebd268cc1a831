// Package note defines notes and categories and the client service used by
// the TUI to fetch and persist them through the bridge.
package note

import (
	"slices"
	"strings"
	"time"
)

// Note is a single note. Field names on the wire match the backend's records.
type Note struct {
	ID          uint32   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Img         *string  `json:"img,omitempty"`
	Categories  []string `json:"categories"`
	CreatedAt   string   `json:"created_at"`
}

// Category is a named, colored label that notes may carry.
type Category struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DefaultCategoryColor is used for a note's category that has no
// corresponding category record.
const DefaultCategoryColor = "#cccccc"

// DisplayTimeFormat is the layout used to show note timestamps.
const DisplayTimeFormat = "15:04 02-01-2006"

// Created parses the note's creation timestamp.
func (n Note) Created() (time.Time, error) {
	return time.Parse(time.RFC3339, n.CreatedAt)
}

// FormatCreated renders the creation timestamp for display, or the raw value
// if it cannot be parsed.
func (n Note) FormatCreated() string {
	t, err := n.Created()
	if err != nil {
		return n.CreatedAt
	}
	return t.Local().Format(DisplayTimeFormat)
}

// HasCategory reports whether the note carries the named category.
func (n Note) HasCategory(name string) bool {
	return slices.Contains(n.Categories, name)
}

// Matches reports whether the note's title or description contains the
// search term, ignoring case. An empty term matches everything.
func (n Note) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(n.Title), term) ||
		strings.Contains(strings.ToLower(n.Description), term)
}

// InAnyCategory reports whether the note carries at least one of the
// categories. An empty selection matches everything.
func (n Note) InAnyCategory(categories []string) bool {
	if len(categories) == 0 {
		return true
	}
	return slices.ContainsFunc(categories, n.HasCategory)
}

// ColorOf returns the color of the named category, or the default color.
func ColorOf(categories []Category, name string) string {
	for _, c := range categories {
		if c.Name == name {
			return c.Color
		}
	}
	return DefaultCategoryColor
}

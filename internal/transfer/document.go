// Package transfer exports all notes and categories to a JSON file and
// imports them back.
package transfer

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/leg100/notelist/internal/note"
	"github.com/tidwall/gjson"
)

// Document is the import/export file format.
type Document struct {
	Notes      []note.Note     `json:"notes"`
	Categories []note.Category `json:"categories"`
}

// Validity is the outcome of validating an import file.
type Validity int

const (
	// Invalid documents lack the notes or categories arrays.
	Invalid Validity = iota
	// Partial documents have both arrays but some records lack required
	// fields.
	Partial
	// Valid documents pass every check.
	Valid
)

var ErrInvalidJSON = errors.New("invalid JSON file format")

// Parse validates and decodes an import file. Records that cannot be decoded
// are skipped. A Partial or Invalid document is still returned, for the user
// to decide whether to import it anyway.
func Parse(data []byte) (Document, Validity, []string, error) {
	if !gjson.ValidBytes(data) {
		return Document{}, Invalid, nil, ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)

	problems := validate(root)
	validity := Valid
	if len(problems) > 0 {
		validity = Partial
		if !root.IsObject() || !root.Get("notes").IsArray() || !root.Get("categories").IsArray() {
			validity = Invalid
		}
	}

	doc := Document{Notes: []note.Note{}, Categories: []note.Category{}}
	for i, raw := range elements(root.Get("notes")) {
		var n note.Note
		if err := json.Unmarshal([]byte(raw.Raw), &n); err != nil {
			problems = append(problems, fmt.Sprintf("note %d: %s", i, err))
			continue
		}
		if n.Categories == nil {
			n.Categories = []string{}
		}
		doc.Notes = append(doc.Notes, n)
	}
	for i, raw := range elements(root.Get("categories")) {
		var c note.Category
		if err := json.Unmarshal([]byte(raw.Raw), &c); err != nil {
			problems = append(problems, fmt.Sprintf("category %d: %s", i, err))
			continue
		}
		doc.Categories = append(doc.Categories, c)
	}
	return doc, validity, problems, nil
}

// validate checks the document structure, returning a description of each
// problem found.
func validate(root gjson.Result) (problems []string) {
	if !root.IsObject() {
		return []string{"document is not an object"}
	}
	notes := root.Get("notes")
	if !notes.IsArray() {
		problems = append(problems, "notes is not an array")
	}
	categories := root.Get("categories")
	if !categories.IsArray() {
		problems = append(problems, "categories is not an array")
	}
	for i, n := range elements(notes) {
		switch {
		case !n.IsObject():
			problems = append(problems, fmt.Sprintf("note %d is not an object", i))
		case !present(n.Get("id")):
			problems = append(problems, fmt.Sprintf("note %d missing id", i))
		case !present(n.Get("title")):
			problems = append(problems, fmt.Sprintf("note %d missing title", i))
		case !present(n.Get("content")):
			problems = append(problems, fmt.Sprintf("note %d missing content", i))
		case !n.Get("categories").IsArray():
			problems = append(problems, fmt.Sprintf("note %d categories is not an array", i))
		}
	}
	for i, c := range elements(categories) {
		switch {
		case !c.IsObject():
			problems = append(problems, fmt.Sprintf("category %d is not an object", i))
		case !truthy(c.Get("name")):
			problems = append(problems, fmt.Sprintf("category %d missing name", i))
		case !truthy(c.Get("color")):
			problems = append(problems, fmt.Sprintf("category %d missing color", i))
		}
	}
	return problems
}

// elements returns the members of an array, or nil if r is not an array.
func elements(r gjson.Result) []gjson.Result {
	if !r.IsArray() {
		return nil
	}
	return r.Array()
}

func present(r gjson.Result) bool {
	return r.Exists() && r.Type != gjson.Null
}

// truthy reports whether a value is truthy in the JavaScript sense.
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.String:
		return r.Str != ""
	case gjson.Number:
		return r.Num != 0
	case gjson.True, gjson.JSON:
		return true
	default:
		return false
	}
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/leg100/notelist/internal/note"
)

// ListNotes returns all notes in the order they were first saved.
func (s *Store) ListNotes(ctx context.Context) ([]note.Note, error) {
	return s.queryNotes(ctx, `SELECT id, title, description, content, img, created_at FROM notes ORDER BY rowid`)
}

// GetNote returns the note with the given id, or nil if there is none.
func (s *Store) GetNote(ctx context.Context, id uint32) (*note.Note, error) {
	notes, err := s.queryNotes(ctx, `SELECT id, title, description, content, img, created_at FROM notes WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, nil
	}
	return &notes[0], nil
}

// NotesByCategories returns notes carrying at least one of the categories.
// No categories selects all notes.
func (s *Store) NotesByCategories(ctx context.Context, categories []string) ([]note.Note, error) {
	if len(categories) == 0 {
		return s.ListNotes(ctx)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(categories)), ",")
	args := make([]any, len(categories))
	for i, c := range categories {
		args[i] = c
	}
	q := fmt.Sprintf(`
SELECT id, title, description, content, img, created_at FROM notes
WHERE id IN (SELECT note_id FROM note_categories WHERE category IN (%s))
ORDER BY rowid`, placeholders)
	return s.queryNotes(ctx, q, args...)
}

// SaveNote inserts the note, or replaces the note with the same id in place.
func (s *Store) SaveNote(ctx context.Context, n note.Note) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
INSERT INTO notes (id, title, description, content, img, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    title = excluded.title,
    description = excluded.description,
    content = excluded.content,
    img = excluded.img,
    created_at = excluded.created_at`,
		n.ID, n.Title, n.Description, n.Content, nullString(n.Img), n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving note %d: %w", n.ID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM note_categories WHERE note_id = ?`, n.ID); err != nil {
		return err
	}
	seen := make(map[string]bool, len(n.Categories))
	for i, c := range n.Categories {
		if seen[c] {
			continue
		}
		seen[c] = true
		_, err := tx.ExecContext(ctx,
			`INSERT INTO note_categories (note_id, category, position) VALUES (?, ?, ?)`,
			n.ID, c, i,
		)
		if err != nil {
			return fmt.Errorf("saving category %q of note %d: %w", c, n.ID, err)
		}
	}
	return tx.Commit()
}

// DeleteNote deletes the note with the given id. Deleting a note that does
// not exist is not an error.
func (s *Store) DeleteNote(ctx context.Context, id uint32) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM note_categories WHERE note_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// NextNoteID returns one more than the highest note id, or 1 if there are no
// notes.
func (s *Store) NextNoteID(ctx context.Context) (uint32, error) {
	var highest sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(id) FROM notes`).Scan(&highest); err != nil {
		return 0, err
	}
	if !highest.Valid {
		return 1, nil
	}
	return uint32(highest.Int64) + 1, nil
}

// CategoryNames returns the distinct categories carried by notes, sorted.
func (s *Store) CategoryNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT category FROM note_categories ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Store) queryNotes(ctx context.Context, q string, args ...any) ([]note.Note, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []note.Note{}
	index := make(map[uint32]int)
	for rows.Next() {
		var (
			n   note.Note
			img sql.NullString
		)
		if err := rows.Scan(&n.ID, &n.Title, &n.Description, &n.Content, &img, &n.CreatedAt); err != nil {
			return nil, err
		}
		if img.Valid {
			n.Img = &img.String
		}
		n.Categories = []string{}
		index[n.ID] = len(notes)
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return notes, nil
	}
	if err := s.attachCategories(ctx, notes, index); err != nil {
		return nil, err
	}
	return notes, nil
}

func (s *Store) attachCategories(ctx context.Context, notes []note.Note, index map[uint32]int) error {
	rows, err := s.db.QueryContext(ctx, `SELECT note_id, category FROM note_categories ORDER BY note_id, position`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id       uint32
			category string
		)
		if err := rows.Scan(&id, &category); err != nil {
			return err
		}
		if i, ok := index[id]; ok {
			notes[i].Categories = append(notes[i].Categories, category)
		}
	}
	return rows.Err()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/leg100/notelist/internal/note"
)

var errEmptyName = errors.New("category name is empty")

// ListCategories returns all categories in the order they were first saved.
func (s *Store) ListCategories(ctx context.Context) ([]note.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, color FROM categories ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []note.Category{}
	for rows.Next() {
		var c note.Category
		if err := rows.Scan(&c.Name, &c.Color); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// SaveCategory inserts the category, or updates the color of the category
// with the same name in place.
func (s *Store) SaveCategory(ctx context.Context, c note.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return errEmptyName
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO categories (name, color) VALUES (?, ?)
ON CONFLICT(name) DO UPDATE SET color = excluded.color`,
		c.Name, c.Color,
	)
	if err != nil {
		return fmt.Errorf("saving category %q: %w", c.Name, err)
	}
	return nil
}

// DeleteCategory deletes the named category. Notes carrying the category are
// left untouched.
func (s *Store) DeleteCategory(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE name = ?`, name)
	return err
}

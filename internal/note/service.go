package note

import (
	"context"
	"slices"

	"github.com/leg100/notelist/internal/logging"
	"github.com/leg100/notelist/internal/pubsub"
	"github.com/leg100/notelist/internal/resource"
)

// Invoker calls a named backend command.
type Invoker interface {
	Invoke(ctx context.Context, name string, args, result any) error
}

// Service fetches and persists notes and categories via the backend.
//
// Reads never fail: errors are logged and an empty result returned. Writes
// log and return errors for the caller to surface.
type Service struct {
	invoker Invoker
	logger  logging.Interface

	notes      *pubsub.Broker[Note]
	categories *pubsub.Broker[Category]
}

func NewService(invoker Invoker, logger logging.Interface) *Service {
	return &Service{
		invoker:    invoker,
		logger:     logger,
		notes:      pubsub.NewBroker[Note](logger),
		categories: pubsub.NewBroker[Category](logger),
	}
}

// SubscribeNotes subscribes to changes to notes.
func (s *Service) SubscribeNotes(ctx context.Context) <-chan resource.Event[Note] {
	return s.notes.Subscribe(ctx)
}

// SubscribeCategories subscribes to changes to categories.
func (s *Service) SubscribeCategories(ctx context.Context) <-chan resource.Event[Category] {
	return s.categories.Subscribe(ctx)
}

// List returns all notes.
func (s *Service) List(ctx context.Context) []Note {
	var notes []Note
	if err := s.invoker.Invoke(ctx, CmdGetNotes, nil, &notes); err != nil {
		s.logger.Error("fetching notes", "error", err)
		return []Note{}
	}
	return notes
}

// Get returns the note with the given id, or nil if it doesn't exist or
// cannot be fetched.
func (s *Service) Get(ctx context.Context, id uint32) *Note {
	var n *Note
	if err := s.invoker.Invoke(ctx, CmdGetNoteByID, map[string]any{"id": id}, &n); err != nil {
		s.logger.Error("fetching note", "id", id, "error", err)
		return nil
	}
	return n
}

// NextID returns the id to assign to a new note. Falls back to 1.
func (s *Service) NextID(ctx context.Context) uint32 {
	var id uint32
	if err := s.invoker.Invoke(ctx, CmdGetNextNoteID, nil, &id); err != nil {
		s.logger.Error("fetching next note id", "error", err)
		return 1
	}
	return id
}

// ListByCategories returns notes carrying any of the categories.
func (s *Service) ListByCategories(ctx context.Context, categories []string) []Note {
	var notes []Note
	args := map[string]any{"categories": categories}
	if err := s.invoker.Invoke(ctx, CmdGetNotesByCategories, args, &notes); err != nil {
		s.logger.Error("fetching notes by categories", "categories", categories, "error", err)
		return []Note{}
	}
	return notes
}

// Save creates or updates a note.
func (s *Service) Save(ctx context.Context, n Note) error {
	if n.Categories == nil {
		n.Categories = []string{}
	}
	if err := s.invoker.Invoke(ctx, CmdSaveNote, map[string]any{"note": n}, nil); err != nil {
		s.logger.Error("saving note", "id", n.ID, "error", err)
		return err
	}
	s.logger.Info("saved note", "id", n.ID, "title", n.Title)
	s.notes.Publish(resource.UpdatedEvent, n)
	return nil
}

// Delete deletes a note.
func (s *Service) Delete(ctx context.Context, id uint32) error {
	if err := s.invoker.Invoke(ctx, CmdDeleteNote, map[string]any{"id": id}, nil); err != nil {
		s.logger.Error("deleting note", "id", id, "error", err)
		return err
	}
	s.logger.Info("deleted note", "id", id)
	s.notes.Publish(resource.DeletedEvent, Note{ID: id})
	return nil
}

// CategoryNames returns the distinct categories in use by notes.
func (s *Service) CategoryNames(ctx context.Context) []string {
	var names []string
	if err := s.invoker.Invoke(ctx, CmdGetAllCategories, nil, &names); err != nil {
		s.logger.Error("fetching category names", "error", err)
		return []string{}
	}
	return names
}

// Categories returns all categories with their colors.
func (s *Service) Categories(ctx context.Context) []Category {
	var categories []Category
	if err := s.invoker.Invoke(ctx, CmdGetCategories, nil, &categories); err != nil {
		s.logger.Error("fetching categories", "error", err)
		return []Category{}
	}
	return categories
}

// SaveCategory creates or updates a category.
func (s *Service) SaveCategory(ctx context.Context, c Category) error {
	if err := s.invoker.Invoke(ctx, CmdSaveCategory, map[string]any{"category": c}, nil); err != nil {
		s.logger.Error("saving category", "name", c.Name, "error", err)
		return err
	}
	s.logger.Info("saved category", "name", c.Name, "color", c.Color)
	s.categories.Publish(resource.UpdatedEvent, c)
	return nil
}

// DeleteCategory deletes a category. Notes carrying it are not modified; see
// RemoveCategoryFromNotes.
func (s *Service) DeleteCategory(ctx context.Context, name string) error {
	if err := s.invoker.Invoke(ctx, CmdDeleteCategory, map[string]any{"name": name}, nil); err != nil {
		s.logger.Error("deleting category", "name", name, "error", err)
		return err
	}
	s.logger.Info("deleted category", "name", name)
	s.categories.Publish(resource.DeletedEvent, Category{Name: name})
	return nil
}

// UpdateCategoryInNotes renames a category on every note carrying it,
// returning the number of notes updated.
func (s *Service) UpdateCategoryInNotes(ctx context.Context, oldName, newName string) (int, error) {
	return s.rewriteNotes(ctx, oldName, func(categories []string) []string {
		i := slices.Index(categories, oldName)
		categories[i] = newName
		return categories
	})
}

// RemoveCategoryFromNotes removes a category from every note carrying it,
// returning the number of notes updated.
func (s *Service) RemoveCategoryFromNotes(ctx context.Context, name string) (int, error) {
	return s.rewriteNotes(ctx, name, func(categories []string) []string {
		return slices.DeleteFunc(categories, func(c string) bool { return c == name })
	})
}

func (s *Service) rewriteNotes(ctx context.Context, category string, rewrite func([]string) []string) (int, error) {
	var notes []Note
	if err := s.invoker.Invoke(ctx, CmdGetNotes, nil, &notes); err != nil {
		s.logger.Error("rewriting category in notes", "category", category, "error", err)
		return 0, err
	}
	var updated int
	for _, n := range notes {
		if !n.HasCategory(category) {
			continue
		}
		n.Categories = rewrite(slices.Clone(n.Categories))
		if err := s.Save(ctx, n); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// Reloaded informs subscribers that notes and categories have been replaced
// wholesale.
func (s *Service) Reloaded() {
	s.notes.Publish(resource.ReloadedEvent, Note{})
	s.categories.Publish(resource.ReloadedEvent, Category{})
}

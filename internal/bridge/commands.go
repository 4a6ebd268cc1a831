package bridge

import (
	"context"

	"github.com/leg100/notelist/internal/note"
	"github.com/leg100/notelist/internal/store"
)

type (
	none   struct{}
	idArgs struct {
		ID uint32 `json:"id"`
	}
	noteArgs struct {
		Note note.Note `json:"note"`
	}
	nameArgs struct {
		Name string `json:"name"`
	}
	categoryArgs struct {
		Category note.Category `json:"category"`
	}
	categoriesArgs struct {
		Categories []string `json:"categories"`
	}
)

// Register registers the backend commands against the store.
func Register(b *Bridge, s *store.Store) {
	b.Handle(note.CmdGetNotes, Command(func(ctx context.Context, _ none) ([]note.Note, error) {
		return s.ListNotes(ctx)
	}))
	b.Handle(note.CmdGetNoteByID, Command(func(ctx context.Context, args idArgs) (*note.Note, error) {
		return s.GetNote(ctx, args.ID)
	}))
	b.Handle(note.CmdSaveNote, Command(func(ctx context.Context, args noteArgs) (NoResult, error) {
		return nil, s.SaveNote(ctx, args.Note)
	}))
	b.Handle(note.CmdDeleteNote, Command(func(ctx context.Context, args idArgs) (NoResult, error) {
		return nil, s.DeleteNote(ctx, args.ID)
	}))
	b.Handle(note.CmdGetNextNoteID, Command(func(ctx context.Context, _ none) (uint32, error) {
		return s.NextNoteID(ctx)
	}))
	b.Handle(note.CmdGetAllCategories, Command(func(ctx context.Context, _ none) ([]string, error) {
		return s.CategoryNames(ctx)
	}))
	b.Handle(note.CmdGetNotesByCategories, Command(func(ctx context.Context, args categoriesArgs) ([]note.Note, error) {
		return s.NotesByCategories(ctx, args.Categories)
	}))
	b.Handle(note.CmdGetCategories, Command(func(ctx context.Context, _ none) ([]note.Category, error) {
		return s.ListCategories(ctx)
	}))
	b.Handle(note.CmdSaveCategory, Command(func(ctx context.Context, args categoryArgs) (NoResult, error) {
		return nil, s.SaveCategory(ctx, args.Category)
	}))
	b.Handle(note.CmdDeleteCategory, Command(func(ctx context.Context, args nameArgs) (NoResult, error) {
		return nil, s.DeleteCategory(ctx, args.Name)
	}))
}

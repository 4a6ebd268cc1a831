package notes

import (
	"context"
	"fmt"

	"github.com/leg100/notelist/internal/alert"
	"github.com/leg100/notelist/internal/note"
	"github.com/leg100/notelist/internal/tui"
)

// confirmDelete asks the user to confirm deleting a note, calling after once
// the note is deleted.
func confirmDelete(s *tui.Services, n note.Note, after func()) {
	s.Alerts.Confirm(
		"Delete Note",
		fmt.Sprintf("Are you sure you want to delete %q?", n.Title),
		func() {
			if err := s.Notes.Delete(context.Background(), n.ID); err != nil {
				s.Alerts.Error("Error", "Error deleting note!")
				return
			}
			s.Alerts.Success("Note Deleted", fmt.Sprintf("Deleted %q", n.Title))
			if after != nil {
				after()
			}
		},
		nil,
		alert.StyleDanger,
	)
}

package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/leg100/notelist/internal/alert"
	"github.com/leg100/notelist/internal/logging"
	"github.com/leg100/notelist/internal/note"
)

// Notes is the subset of the note service used for transfers.
type Notes interface {
	List(ctx context.Context) []note.Note
	Categories(ctx context.Context) []note.Category
	Save(ctx context.Context, n note.Note) error
	SaveCategory(ctx context.Context, c note.Category) error
	Reloaded()
}

// Alerts is the subset of the alert queue used for transfers.
type Alerts interface {
	Info(title, message string) string
	Success(title, message string) string
	Error(title, message string) string
	Remove(id string)
	Confirm(title, message string, onConfirm, onCancel func(), style alert.Style) string
}

// Service exports and imports notes and categories, keeping the user
// informed via alerts.
type Service struct {
	notes  Notes
	alerts Alerts
	logger logging.Interface
	// dir is where exports are written.
	dir string
	now func() time.Time
}

func NewService(notes Notes, alerts Alerts, logger logging.Interface, exportDir string) *Service {
	return &Service{
		notes:  notes,
		alerts: alerts,
		logger: logger,
		dir:    exportDir,
		now:    time.Now,
	}
}

// Preview summarises what an export would contain.
type Preview struct {
	Notes       int
	Categories  int
	HasSettings bool
}

// Dir returns the directory exports are written to.
func (s *Service) Dir() string { return s.dir }

// Preview counts the notes and categories that would be exported.
func (s *Service) Preview(ctx context.Context) Preview {
	return Preview{
		Notes:      len(s.notes.List(ctx)),
		Categories: len(s.notes.Categories(ctx)),
	}
}

// ExportFileName returns the name of an export file written at the given
// time.
func ExportFileName(t time.Time) string {
	return fmt.Sprintf("noteList_backup_%s.json", t.UTC().Format("2006-01-02"))
}

// Export writes all notes and categories to a dated file in the export
// directory, returning its path.
func (s *Service) Export(ctx context.Context) (string, error) {
	infoID := s.alerts.Info("Export", "Preparing data for export...")

	doc := Document{
		Notes:      s.notes.List(ctx),
		Categories: s.notes.Categories(ctx),
	}
	path, err := s.write(doc)
	s.alerts.Remove(infoID)
	if err != nil {
		s.logger.Error("exporting data", "error", err)
		s.alerts.Error("Export Failed", "Failed to export data: "+err.Error())
		return "", err
	}
	s.logger.Info("exported data", "path", path, "notes", len(doc.Notes), "categories", len(doc.Categories))
	s.alerts.Success("Export Complete", "Data exported successfully to "+path)
	return path, nil
}

func (s *Service) write(doc Document) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, ExportFileName(s.now()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Import reads and validates an import file, then asks the user to confirm
// before saving its contents. A document failing validation outright
// requires a further confirmation to force the import. Failures are reported
// via alerts as well as returned.
func (s *Service) Import(ctx context.Context, path string) error {
	infoID := s.alerts.Info("Import", "Processing import file...")
	fail := func(err error) error {
		s.alerts.Remove(infoID)
		s.logger.Error("importing data", "path", path, "error", err)
		s.alerts.Error("Import Failed", "Failed to import data: "+err.Error())
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fail(err)
	}
	doc, validity, problems, err := Parse(data)
	if err != nil {
		return fail(err)
	}
	s.alerts.Remove(infoID)

	switch validity {
	case Partial:
		s.logger.Warn("importing with basic validation, some data might be missing fields", "problems", problems)
		s.confirmImport(ctx, doc)
	case Invalid:
		s.logger.Error("validating import file", "path", path, "problems", problems)
		s.alerts.Confirm(
			"Validation Failed",
			"The file does not have the expected structure. Force import anyway? (Check logs for details)",
			func() { s.confirmImport(ctx, doc) },
			func() {
				s.alerts.Error("Import Failed", "Failed to import data: invalid data structure in import file")
			},
			alert.StyleDanger,
		)
	default:
		s.confirmImport(ctx, doc)
	}
	return nil
}

func (s *Service) confirmImport(ctx context.Context, doc Document) {
	msg := fmt.Sprintf(
		"This will import:\n• %d notes\n• %d categories\n\nCurrent data will be replaced. Continue?",
		len(doc.Notes), len(doc.Categories),
	)
	s.alerts.Confirm("Import Data", msg, func() { s.perform(ctx, doc) }, nil, alert.StyleDefault)
}

// perform saves categories and then notes, stopping at the first failure.
func (s *Service) perform(ctx context.Context, doc Document) {
	infoID := s.alerts.Info("Import", "Importing data...")
	defer s.alerts.Remove(infoID)

	for _, c := range doc.Categories {
		if err := s.notes.SaveCategory(ctx, c); err != nil {
			s.alerts.Error("Import Failed", "Failed to import data: "+err.Error())
			return
		}
	}
	for _, n := range doc.Notes {
		if err := s.notes.Save(ctx, n); err != nil {
			s.alerts.Error("Import Failed", "Failed to import data: "+err.Error())
			return
		}
	}
	s.logger.Info("imported data", "notes", len(doc.Notes), "categories", len(doc.Categories))
	s.alerts.Success("Import Complete", "Data imported successfully!")
	s.notes.Reloaded()
}

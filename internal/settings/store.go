package settings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/leg100/notelist/internal/logging"
	"github.com/leg100/notelist/internal/pubsub"
	"github.com/leg100/notelist/internal/resource"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the settings file within the data directory.
const FileName = "settings.yaml"

// Store loads and saves settings to a YAML file, and publishes the settings
// whenever they are applied.
type Store struct {
	path   string
	logger logging.Interface
	broker *pubsub.Broker[Settings]

	mu      sync.RWMutex
	current Settings
}

func NewStore(dataDir string, logger logging.Interface) *Store {
	return &Store{
		path:    filepath.Join(dataDir, FileName),
		logger:  logger,
		broker:  pubsub.NewBroker[Settings](logger),
		current: Defaults(),
	}
}

// Path returns the path of the settings file.
func (s *Store) Path() string { return s.path }

// Load reads the settings file, merging it over the defaults, and applies the
// result. A missing file yields the defaults. Any other failure is logged and
// the defaults are returned without being applied.
func (s *Store) Load() Settings {
	loaded, err := s.read()
	if err != nil {
		s.logger.Error("loading settings", "path", s.path, "error", err)
		return Defaults()
	}
	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()

	s.apply(loaded)
	return loaded
}

func (s *Store) read() (Settings, error) {
	merged := Defaults()
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return merged, nil
	} else if err != nil {
		return Settings{}, err
	}
	if err := yaml.Unmarshal(data, &merged); err != nil {
		return Settings{}, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return merged, nil
}

// Save persists and applies new settings.
func (s *Store) Save(updated Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logChanges(s.current, updated)

	data, err := yaml.Marshal(updated)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.logger.Error("saving settings", "error", err)
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.logger.Error("saving settings", "error", err)
		return err
	}
	s.current = updated
	s.apply(updated)
	return nil
}

// Reset restores and saves the default settings.
func (s *Store) Reset() error {
	return s.Save(Defaults())
}

// Get returns a copy of the current settings.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.current
	if current.CustomColors != nil {
		colors := *current.CustomColors
		current.CustomColors = &colors
	}
	return current
}

// Colors returns the palette of the current theme.
func (s *Store) Colors() Colors {
	return s.Get().Palette()
}

// Subscribe to applied settings.
func (s *Store) Subscribe(ctx context.Context) <-chan resource.Event[Settings] {
	return s.broker.Subscribe(ctx)
}

func (s *Store) apply(applied Settings) {
	s.broker.Publish(resource.UpdatedEvent, applied)
	s.logger.Info("applied theme", "theme", applied.Theme, "font", FontFamily(applied.Font))
}

// logChanges logs changes to settings other than the theme.
func (s *Store) logChanges(before, after Settings) {
	if before.ShowActiveFilters != after.ShowActiveFilters {
		s.logger.Info("display setting changed", "show_active_filters", onOff(after.ShowActiveFilters, "on", "off"))
	}
	if before.Font != after.Font {
		s.logger.Info("font changed", "font", after.Font)
	}
	if before.KeyboardShortcuts != after.KeyboardShortcuts {
		s.logger.Info("keyboard shortcuts changed", "keyboard_shortcuts", onOff(after.KeyboardShortcuts, "enabled", "disabled"))
	}
}

func onOff(b bool, on, off string) string {
	if b {
		return on
	}
	return off
}

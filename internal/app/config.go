package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/leg100/notelist/internal/logging"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/peterbourgon/ff/v4/ffyaml"
)

type Config struct {
	DataDir   string
	ExportDir string
	FirstPage string
	Debug     bool
	Logging   logging.Options

	Version bool
}

// Parse sets config in order of precedence:
// 1. flags > 2. env vars > 3. config file
func Parse(stderr io.Writer, args []string) (Config, error) {
	var cfg Config

	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("retrieving user's home directory: %w", err)
	}
	defaultDataDir := filepath.Join(home, ".notelist")
	defaultExportDir := filepath.Join(home, "Downloads")
	defaultConfigFile := filepath.Join(home, ".notelist.yaml")

	fs := ff.NewFlagSet("notelist")
	fs.StringVar(&cfg.DataDir, 0, "data-dir", defaultDataDir, "Directory in which to store notes, settings and logs.")
	fs.StringVar(&cfg.ExportDir, 0, "export-dir", defaultExportDir, "Directory to which exports are written.")
	fs.StringEnumVar(&cfg.FirstPage, 'f', "first-page", "The first page to open on startup (valid: notes,categories,settings,logs).", "notes", "categories", "settings", "logs")
	fs.BoolVar(&cfg.Debug, 'd', "debug", "Log bubbletea messages to messages.log")
	fs.BoolVar(&cfg.Version, 'v', "version", "Print version.")
	_ = fs.String('c', "config", defaultConfigFile, "Path to config file.")

	{
		usage := fmt.Sprintf("Logging level (valid: %s).", strings.Join(logging.ValidLevels(), ","))
		fs.StringEnumVar(&cfg.Logging.Level, 'l', "log-level", usage, logging.ValidLevels()...)
	}

	err = ff.Parse(fs, args,
		ff.WithEnvVarPrefix("NOTELIST"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ffyaml.Parse),
		ff.WithConfigAllowMissingFile(),
	)
	if err != nil {
		// ff.Parse returns an error if there is an error or if -h/--help is
		// passed; in either case print flag usage in addition to error message.
		fmt.Fprintln(stderr, ffhelp.Flags(fs))
		return Config{}, err
	}
	return cfg, nil
}

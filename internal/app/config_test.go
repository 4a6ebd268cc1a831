package app

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leg100/notelist/internal/logging"
	"github.com/leg100/notelist/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	// Unset environment variables set on host computer
	t.Setenv("NOTELIST_DEBUG", "")
	t.Setenv("NOTELIST_FIRST_PAGE", "")
	t.Setenv("NOTELIST_LOG_LEVEL", "")
	t.Setenv("NOTELIST_DATA_DIR", "")
	t.Setenv("NOTELIST_EXPORT_DIR", "")
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name string
		file string
		args []string
		envs []string
		want func(t *testing.T, got Config)
	}{
		{
			"defaults",
			"",
			nil,
			nil,
			func(t *testing.T, got Config) {
				want := Config{
					DataDir:   filepath.Join(os.Getenv("HOME"), ".notelist"),
					ExportDir: filepath.Join(os.Getenv("HOME"), "Downloads"),
					FirstPage: "notes",
					Logging: logging.Options{
						Level: "info",
					},
				}
				assert.Equal(t, want, got)
			},
		},
		{
			"config file override default",
			"first-page: settings\n",
			nil,
			nil,
			func(t *testing.T, got Config) {
				assert.Equal(t, "settings", got.FirstPage)
			},
		},
		{
			"env var override default",
			"",
			nil,
			[]string{"NOTELIST_LOG_LEVEL=debug"},
			func(t *testing.T, got Config) {
				assert.Equal(t, "debug", got.Logging.Level)
			},
		},
		{
			"flag override default",
			"",
			[]string{"--data-dir", "/tmp/notes"},
			nil,
			func(t *testing.T, got Config) {
				assert.Equal(t, "/tmp/notes", got.DataDir)
			},
		},
		{
			"env var overrides config file",
			"export-dir: /srv/a\n",
			nil,
			[]string{"NOTELIST_EXPORT_DIR=/srv/b"},
			func(t *testing.T, got Config) {
				assert.Equal(t, "/srv/b", got.ExportDir)
			},
		},
		{
			"flag overrides env var",
			"",
			[]string{"--first-page", "logs"},
			[]string{"NOTELIST_FIRST_PAGE=categories"},
			func(t *testing.T, got Config) {
				assert.Equal(t, "logs", got.FirstPage)
			},
		},
		{
			"flag overrides both env var and config",
			"log-level: warn\n",
			[]string{"-l", "error"},
			[]string{"NOTELIST_LOG_LEVEL=debug"},
			func(t *testing.T, got Config) {
				assert.Equal(t, "error", got.Logging.Level)
			},
		},
		{
			"enable debug",
			"",
			[]string{"-d"},
			nil,
			func(t *testing.T, got Config) {
				assert.True(t, got.Debug)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// change into a temp dir in case the host computer has a config file
			testutils.ChTempDir(t, t.TempDir())

			// set env vars
			for _, ev := range tt.envs {
				name, val, _ := strings.Cut(ev, "=")
				t.Setenv(name, val)
			}

			// set config file
			if tt.file != "" {
				path := filepath.Join(os.Getenv("HOME"), ".notelist.yaml")
				err := os.WriteFile(path, []byte(tt.file), 0o644)
				require.NoError(t, err)
			}

			// and pass in flags
			got, err := Parse(io.Discard, tt.args)
			require.NoError(t, err)

			tt.want(t, got)
		})
	}
}

func TestConfig_InvalidFirstPage(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NOTELIST_FIRST_PAGE", "")

	_, err := Parse(io.Discard, []string{"--first-page", "workspaces"})
	assert.Error(t, err)
}

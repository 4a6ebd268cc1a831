package integration

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/exp/teatest"
	"github.com/leg100/notelist/internal/app"
	"github.com/leg100/notelist/internal/logging"
	"github.com/leg100/notelist/internal/tui/top"
)

type testModel struct {
	*teatest.TestModel

	app       *app.App
	exportDir string
}

// setup starts the TUI with its data and export directories in a temporary
// directory.
func setup(t *testing.T) *testModel {
	t.Helper()

	workdir := t.TempDir()

	cfg := app.Config{
		DataDir:   filepath.Join(workdir, "data"),
		ExportDir: filepath.Join(workdir, "exports"),
		Logging:   logging.Options{Level: "debug"},
	}
	tm, a := top.StartTest(t, cfg, 120, 40)
	return &testModel{TestModel: tm, app: a, exportDir: cfg.ExportDir}
}

func waitFor(t *testing.T, tm *testModel, cond func(s string) bool) {
	t.Helper()

	teatest.WaitFor(
		t,
		tm.Output(),
		func(b []byte) bool {
			return cond(string(b))
		},
		teatest.WithCheckInterval(time.Millisecond*100),
		teatest.WithDuration(time.Second*10),
	)
}

// waitForText waits for all of the given strings to be rendered.
func waitForText(t *testing.T, tm *testModel, want ...string) {
	t.Helper()

	waitFor(t, tm, func(s string) bool {
		for _, w := range want {
			if !strings.Contains(s, w) {
				return false
			}
		}
		return true
	})
}

package top

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/leg100/notelist/internal/app"
	"github.com/leg100/notelist/internal/resource"
	"github.com/leg100/notelist/internal/shortcut"
	"github.com/leg100/notelist/internal/tui"
	"github.com/leg100/notelist/internal/version"
	"github.com/stretchr/testify/require"
)

// Start parses the configuration, starts the TUI and blocks until the user
// exits.
func Start(stdout, stderr io.Writer, args []string) error {
	cfg, err := app.Parse(stderr, args)
	if err != nil {
		return err
	}
	if cfg.Version {
		fmt.Fprintln(stdout, "notelist", version.Version)
		return nil
	}

	app, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer app.Cleanup()

	services := newServices(app)
	m, err := New(Options{
		Services:  services,
		FirstPage: cfg.FirstPage,
		DataDir:   cfg.DataDir,
		Debug:     cfg.Debug,
	})
	if err != nil {
		return err
	}
	defer m.close()

	p := tea.NewProgram(m,
		// Use the full size of the terminal with its "alternate screen buffer"
		tea.WithAltScreen(),
	)

	ch, unsub := setupSubscriptions(app)
	defer unsub()

	// Relay events to model in background
	go func() {
		for msg := range ch {
			p.Send(msg)
		}
	}()

	// Blocks until user quits
	_, err = p.Run()
	return err
}

// StartTest starts the TUI and returns a test model for testing purposes.
func StartTest(t *testing.T, cfg app.Config, width, height int) (*teatest.TestModel, *app.App) {
	app, err := app.New(cfg)
	require.NoError(t, err)
	t.Cleanup(app.Cleanup)

	m, err := New(Options{
		Services:  newServices(app),
		FirstPage: cfg.FirstPage,
		DataDir:   cfg.DataDir,
		Debug:     cfg.Debug,
	})
	require.NoError(t, err)
	t.Cleanup(m.close)

	ch, unsub := setupSubscriptions(app)
	t.Cleanup(unsub)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(width, height))

	// Relay events to model in background
	go func() {
		for msg := range ch {
			tm.Send(msg)
		}
	}()

	t.Cleanup(func() {
		tm.Quit()
	})
	return tm, app
}

func newServices(app *app.App) *tui.Services {
	return &tui.Services{
		Notes:    app.Notes,
		Alerts:   app.Alerts,
		Settings: app.Settings,
		Filter:   app.Filter,
		Drafts:   app.Drafts,
		Transfer: app.Transfer,
		Logger:   app.Logger,
		Keys:     shortcut.NewEmitter(),
		Deferred: &tui.Deferred{},
	}
}

// relay forwards events from a subscription to the channel until the
// subscription is closed.
func relay[T any](wg *sync.WaitGroup, sub <-chan resource.Event[T], ch chan<- tea.Msg) {
	wg.Add(1)
	go func() {
		for ev := range sub {
			ch <- ev
		}
		wg.Done()
	}()
}

func setupSubscriptions(app *app.App) (chan tea.Msg, func()) {
	// Relay resource events to TUI. Deliberately set up subscriptions *before*
	// any events are triggered, to ensure the TUI receives all messages.
	ch := make(chan tea.Msg)
	wg := sync.WaitGroup{} // sync closure of subscriptions

	ctx, cancel := context.WithCancel(context.Background())

	relay(&wg, app.Logger.Subscribe(ctx), ch)
	relay(&wg, app.Notes.SubscribeNotes(ctx), ch)
	relay(&wg, app.Notes.SubscribeCategories(ctx), ch)
	relay(&wg, app.Alerts.Subscribe(ctx), ch)
	relay(&wg, app.Settings.Subscribe(ctx), ch)

	// cleanup function to be invoked when program is terminated.
	return ch, func() {
		cancel()
		// Wait for relays to finish before closing channel, to avoid sends
		// to a closed channel, which would result in a panic.
		wg.Wait()
		close(ch)
	}
}

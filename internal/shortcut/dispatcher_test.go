package shortcut

import (
	"testing"

	"github.com/leg100/notelist/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettings struct {
	enabled bool
	reads   int
}

func (f *fakeSettings) Get() settings.Settings {
	f.reads++
	return settings.Settings{KeyboardShortcuts: f.enabled}
}

func setup(t *testing.T) (*Dispatcher, *Emitter, *fakeSettings) {
	t.Helper()

	emitter := NewEmitter()
	cfg := &fakeSettings{enabled: true}
	return NewDispatcher(emitter, cfg, nil), emitter, cfg
}

// counter returns an action that counts its invocations.
func counter() (Action, *int) {
	var n int
	return func() { n++ }, &n
}

func TestDispatcher_CtrlChordOnButton(t *testing.T) {
	d, emitter, _ := setup(t)
	save, calls := counter()

	d.Register("ctrl+s", save)
	d.StartListening()

	ev := emitter.Emit(&KeyEvent{Key: "s", Ctrl: true, Target: TargetButton})

	assert.Equal(t, 1, *calls)
	assert.True(t, ev.DefaultPrevented())
}

func TestDispatcher_UnregisteredChord(t *testing.T) {
	d, emitter, _ := setup(t)
	d.StartListening()

	ev := emitter.Emit(&KeyEvent{Key: "q"})

	assert.False(t, ev.DefaultPrevented())
}

func TestDispatcher_LastWriteWins(t *testing.T) {
	d, emitter, _ := setup(t)
	first, firstCalls := counter()
	second, secondCalls := counter()

	d.Register("n", first)
	d.Register("n", second)
	d.StartListening()

	emitter.Emit(&KeyEvent{Key: "n"})

	assert.Equal(t, 0, *firstCalls)
	assert.Equal(t, 1, *secondCalls)
	assert.Equal(t, []Chord{"n"}, d.Chords())
}

func TestDispatcher_Unregister(t *testing.T) {
	d, emitter, _ := setup(t)
	action, calls := counter()

	d.Register("e", action)
	d.Unregister("e")
	// no-op
	d.Unregister("missing")
	d.StartListening()

	emitter.Emit(&KeyEvent{Key: "e"})

	assert.Equal(t, 0, *calls)
}

func TestDispatcher_ClearAll(t *testing.T) {
	d, emitter, _ := setup(t)
	action, calls := counter()

	for _, c := range []Chord{"a", "b", "ctrl+s", "escape"} {
		d.Register(c, action)
	}
	d.ClearAll()
	d.StartListening()

	for _, key := range []string{"a", "b", "esc"} {
		emitter.Emit(&KeyEvent{Key: key})
	}
	emitter.Emit(&KeyEvent{Key: "s", Ctrl: true})

	assert.Equal(t, 0, *calls)
	assert.Empty(t, d.Chords())
}

func TestDispatcher_Idle(t *testing.T) {
	d, emitter, _ := setup(t)
	action, calls := counter()
	d.Register("n", action)

	// never started
	emitter.Emit(&KeyEvent{Key: "n"})
	assert.Equal(t, 0, *calls)

	d.StartListening()
	d.StopListening()

	ev := emitter.Emit(&KeyEvent{Key: "n"})
	assert.Equal(t, 0, *calls)
	assert.False(t, ev.DefaultPrevented())
}

func TestDispatcher_Disabled(t *testing.T) {
	d, emitter, cfg := setup(t)
	action, calls := counter()
	d.Register("n", action)
	d.StartListening()

	cfg.enabled = false
	ev := emitter.Emit(&KeyEvent{Key: "n"})
	assert.Equal(t, 0, *calls)
	assert.False(t, ev.DefaultPrevented())

	// re-enabling takes effect on the very next event
	cfg.enabled = true
	emitter.Emit(&KeyEvent{Key: "n"})
	assert.Equal(t, 1, *calls)
	assert.Equal(t, 2, cfg.reads)
}

func TestDispatcher_TextEntrySuppression(t *testing.T) {
	tests := []struct {
		name   string
		chord  Chord
		event  KeyEvent
		invoke bool
	}{
		{
			name:   "escape in text input",
			chord:  "escape",
			event:  KeyEvent{Key: "esc", Target: TargetTextInput},
			invoke: true,
		},
		{
			name:   "enter in text area",
			chord:  "enter",
			event:  KeyEvent{Key: "enter", Target: TargetTextArea},
			invoke: true,
		},
		{
			name:   "slash in editable",
			chord:  "/",
			event:  KeyEvent{Key: "/", Target: TargetEditable},
			invoke: true,
		},
		{
			name:   "ctrl+escape in text input",
			chord:  "ctrl+escape",
			event:  KeyEvent{Key: "esc", Ctrl: true, Target: TargetTextInput},
			invoke: true,
		},
		{
			name:   "uppercase letter in text input",
			chord:  "n",
			event:  KeyEvent{Key: "N", Target: TargetTextInput},
			invoke: false,
		},
		{
			name:   "ctrl+s in text area",
			chord:  "ctrl+s",
			event:  KeyEvent{Key: "s", Ctrl: true, Target: TargetTextArea},
			invoke: false,
		},
		{
			name:   "uppercase letter outside text entry",
			chord:  "n",
			event:  KeyEvent{Key: "N", Target: TargetList},
			invoke: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, emitter, _ := setup(t)
			action, calls := counter()
			d.Register(tt.chord, action)
			d.StartListening()

			ev := tt.event
			emitter.Emit(&ev)

			if tt.invoke {
				assert.Equal(t, 1, *calls)
				assert.True(t, ev.DefaultPrevented())
			} else {
				assert.Equal(t, 0, *calls)
				assert.False(t, ev.DefaultPrevented())
			}
		})
	}
}

func TestDispatcher_IdempotentListening(t *testing.T) {
	d, emitter, _ := setup(t)
	action, calls := counter()
	d.Register("n", action)

	d.StartListening()
	d.StartListening()
	assert.Equal(t, 1, emitter.Subscribers())
	assert.True(t, d.Listening())

	emitter.Emit(&KeyEvent{Key: "n"})
	assert.Equal(t, 1, *calls, "action should fire once despite double start")

	d.StopListening()
	d.StopListening()
	assert.Equal(t, 0, emitter.Subscribers())
	assert.False(t, d.Listening())
}

func TestDispatcher_Activate(t *testing.T) {
	d, emitter, _ := setup(t)
	back, calls := counter()

	release := d.Activate(map[Chord]Action{"escape": back})
	require.True(t, d.Listening())

	emitter.Emit(&KeyEvent{Key: "esc"})
	assert.Equal(t, 1, *calls)

	release()
	release()

	assert.False(t, d.Listening())
	assert.Empty(t, d.Chords())

	emitter.Emit(&KeyEvent{Key: "esc"})
	assert.Equal(t, 1, *calls)
}

func TestDispatcher_PerViewIsolation(t *testing.T) {
	emitter := NewEmitter()
	cfg := &fakeSettings{enabled: true}
	list := NewDispatcher(emitter, cfg, nil)
	editor := NewDispatcher(emitter, cfg, nil)

	newNote, listCalls := counter()
	save, editorCalls := counter()

	releaseList := list.Activate(map[Chord]Action{"n": newNote})
	releaseList()
	releaseEditor := editor.Activate(map[Chord]Action{"ctrl+s": save})
	defer releaseEditor()

	emitter.Emit(&KeyEvent{Key: "n"})
	emitter.Emit(&KeyEvent{Key: "s", Ctrl: true})

	assert.Equal(t, 0, *listCalls)
	assert.Equal(t, 1, *editorCalls)
}

func TestDispatcher_PanickingAction(t *testing.T) {
	d, emitter, _ := setup(t)
	ok, calls := counter()

	d.Register("x", func() { panic("boom") })
	d.Register("y", ok)
	d.StartListening()

	ev := emitter.Emit(&KeyEvent{Key: "x"})
	assert.True(t, ev.DefaultPrevented())

	emitter.Emit(&KeyEvent{Key: "y"})
	assert.Equal(t, 1, *calls)
	assert.True(t, d.Listening())
}

func TestDispatcher_ActionMutatesRegistry(t *testing.T) {
	d, emitter, _ := setup(t)
	action, calls := counter()

	d.Register("c", func() {
		d.ClearAll()
		d.StopListening()
	})
	d.Register("n", action)
	d.StartListening()

	emitter.Emit(&KeyEvent{Key: "c"})
	emitter.Emit(&KeyEvent{Key: "n"})

	assert.Equal(t, 0, *calls)
	assert.False(t, d.Listening())
}

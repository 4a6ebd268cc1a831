package shortcut

import (
	"fmt"
	"slices"
	"sync"

	"github.com/leg100/notelist/internal/logging"
	"github.com/leg100/notelist/internal/settings"
)

// Action is invoked when its chord is pressed. It is owned by the view that
// registered it and handles its own errors.
type Action func()

// Settings is consulted on every key event to determine whether shortcuts
// are enabled.
type Settings interface {
	Get() settings.Settings
}

// textEntryAllowList holds the keys that still dispatch when focus is on a
// text-entry surface. Matched against the key name before the control prefix
// is applied.
//
// TODO: allow a binding to opt in to firing during text entry instead of
// relying on this fixed list.
var textEntryAllowList = map[string]bool{
	"/":      true,
	"enter":  true,
	"escape": true,
}

// Dispatcher maps chords to actions and invokes them in response to key
// events from its source. A dispatcher starts idle; events are only observed
// between StartListening and StopListening.
type Dispatcher struct {
	source   Source
	settings Settings
	logger   logging.Interface

	mu       sync.RWMutex
	bindings map[Chord]Action

	// guards unsubscribe; separate from mu so that an action may register or
	// clear bindings while being dispatched.
	listenMu    sync.Mutex
	unsubscribe func()
}

func NewDispatcher(source Source, settings Settings, logger logging.Interface) *Dispatcher {
	if logger == nil {
		logger = logging.Discard
	}
	return &Dispatcher{
		source:   source,
		settings: settings,
		logger:   logger,
		bindings: make(map[Chord]Action),
	}
}

// Register binds a chord to an action, replacing any existing binding for
// the chord.
func (d *Dispatcher) Register(chord Chord, action Action) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.bindings[chord] = action
}

// Unregister removes the binding for a chord, if there is one.
func (d *Dispatcher) Unregister(chord Chord) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.bindings, chord)
}

// ClearAll removes all bindings.
func (d *Dispatcher) ClearAll() {
	d.mu.Lock()
	defer d.mu.Unlock()

	clear(d.bindings)
}

// Chords returns the registered chords in sorted order.
func (d *Dispatcher) Chords() []Chord {
	d.mu.RLock()
	defer d.mu.RUnlock()

	chords := make([]Chord, 0, len(d.bindings))
	for c := range d.bindings {
		chords = append(chords, c)
	}
	slices.Sort(chords)
	return chords
}

// StartListening subscribes to the key event source. Calling it while
// already listening does nothing.
func (d *Dispatcher) StartListening() {
	d.listenMu.Lock()
	defer d.listenMu.Unlock()

	if d.unsubscribe != nil {
		return
	}
	d.unsubscribe = d.source.Subscribe(d.handle)
}

// StopListening unsubscribes from the key event source. Calling it while
// idle does nothing.
func (d *Dispatcher) StopListening() {
	d.listenMu.Lock()
	defer d.listenMu.Unlock()

	if d.unsubscribe == nil {
		return
	}
	d.unsubscribe()
	d.unsubscribe = nil
}

// Listening reports whether the dispatcher is subscribed to its source.
func (d *Dispatcher) Listening() bool {
	d.listenMu.Lock()
	defer d.listenMu.Unlock()

	return d.unsubscribe != nil
}

// Activate registers a view's bindings and starts listening. The returned
// release function clears all bindings and stops listening; it is safe to
// call more than once.
func (d *Dispatcher) Activate(bindings map[Chord]Action) (release func()) {
	for chord, action := range bindings {
		d.Register(chord, action)
	}
	d.StartListening()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.ClearAll()
			d.StopListening()
		})
	}
}

// handle is the source subscription callback.
func (d *Dispatcher) handle(ev *KeyEvent) {
	if !d.settings.Get().KeyboardShortcuts {
		return
	}
	if ev.Target.TextEntry() && !textEntryAllowList[normalizeKey(ev.Key)] {
		return
	}
	chord := NewChord(ev.Key, ev.Ctrl)

	d.mu.RLock()
	action, ok := d.bindings[chord]
	d.mu.RUnlock()
	if !ok {
		return
	}
	ev.PreventDefault()
	d.logger.Debug("dispatching shortcut", "chord", chord)
	d.invoke(chord, action)
}

// invoke runs the action, recovering from a panic so that one broken binding
// does not take the listener down with it.
func (d *Dispatcher) invoke(chord Chord, action Action) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("shortcut action panicked", "chord", chord, "panic", fmt.Sprint(r))
		}
	}()
	action()
}

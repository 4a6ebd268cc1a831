package shortcut

import (
	"sort"
	"sync"
)

// Target identifies the kind of element that has focus when a key is pressed.
type Target int

const (
	TargetNone Target = iota
	TargetButton
	TargetList
	TargetTextInput
	TargetTextArea
	TargetEditable
)

// TextEntry reports whether the target accepts direct character input.
func (t Target) TextEntry() bool {
	switch t {
	case TargetTextInput, TargetTextArea, TargetEditable:
		return true
	default:
		return false
	}
}

// KeyEvent is a single key-down notification.
type KeyEvent struct {
	// Key is the key name as reported by the terminal, e.g. "s", "N", "esc",
	// "enter", "/".
	Key string
	// Ctrl is true if the control modifier was held.
	Ctrl bool
	// Target is the kind of element with focus.
	Target Target

	defaultPrevented bool
}

// PreventDefault marks the event as handled, so that the source does not
// forward it to the focused element.
func (e *KeyEvent) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault has been called.
func (e *KeyEvent) DefaultPrevented() bool { return e.defaultPrevented }

// Handler receives key events from a Source.
type Handler func(*KeyEvent)

// Source is a stream of key events. Subscribe returns a function that
// cancels the subscription; calling it more than once is harmless.
type Source interface {
	Subscribe(h Handler) (unsubscribe func())
}

// Emitter is an in-process Source. Emit delivers an event to every
// subscriber, in subscription order, on the calling goroutine.
type Emitter struct {
	mu       sync.Mutex
	handlers map[uint64]Handler
	next     uint64
}

func NewEmitter() *Emitter {
	return &Emitter{handlers: make(map[uint64]Handler)}
}

func (e *Emitter) Subscribe(h Handler) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.next
	e.next++
	e.handlers[id] = h

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			delete(e.handlers, id)
		})
	}
}

// Emit delivers the event and returns it, so the caller can check
// DefaultPrevented.
func (e *Emitter) Emit(ev *KeyEvent) *KeyEvent {
	// Snapshot handlers so that a handler may unsubscribe (e.g. by navigating
	// away from a view) without deadlocking.
	e.mu.Lock()
	ids := make([]uint64, 0, len(e.handlers))
	for id := range e.handlers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	handlers := make([]Handler, len(ids))
	for i, id := range ids {
		handlers[i] = e.handlers[id]
	}
	e.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
	return ev
}

// Subscribers returns the number of current subscriptions.
func (e *Emitter) Subscribers() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers)
}

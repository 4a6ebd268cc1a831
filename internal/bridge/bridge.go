// Package bridge routes named remote procedure calls to backend handlers.
// Arguments and results cross the bridge JSON-encoded, so callers and
// handlers share nothing but the wire format.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/leg100/notelist/internal/logging"
)

var ErrUnknownCommand = errors.New("unknown command")

// HandlerFunc handles a command, given its JSON-encoded arguments, returning
// a result to be JSON-encoded.
type HandlerFunc func(ctx context.Context, args json.RawMessage) (any, error)

// Bridge is a registry of named command handlers.
type Bridge struct {
	logger logging.Interface

	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

func New(logger logging.Interface) *Bridge {
	return &Bridge{
		logger:   logger,
		handlers: make(map[string]HandlerFunc),
	}
}

// Handle registers the handler for a command, replacing any existing handler.
func (b *Bridge) Handle(name string, h HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[name] = h
}

// Commands lists the registered command names.
func (b *Bridge) Commands() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]string, 0, len(b.handlers))
	for name := range b.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke calls the named command with args, decoding its result into result.
// Either of args and result may be nil.
func (b *Bridge) Invoke(ctx context.Context, name string, args, result any) error {
	b.mu.RLock()
	h, ok := b.handlers[name]
	b.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrUnknownCommand)
	}

	encoded := json.RawMessage("{}")
	if args != nil {
		var err error
		if encoded, err = json.Marshal(args); err != nil {
			return fmt.Errorf("%s: encoding arguments: %w", name, err)
		}
	}
	b.logger.Debug("invoking command", "command", name)

	out, err := h(ctx, encoded)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if result == nil {
		return nil
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("%s: encoding result: %w", name, err)
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("%s: decoding result: %w", name, err)
	}
	return nil
}

// Command adapts a typed function into a HandlerFunc, decoding the arguments
// into A.
func Command[A, R any](fn func(context.Context, A) (R, error)) HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args A
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("decoding arguments: %w", err)
		}
		return fn(ctx, args)
	}
}

// NoResult is the result of commands that return nothing.
type NoResult = *struct{}

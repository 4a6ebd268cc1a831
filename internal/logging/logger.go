// Package logging provides the application logger: a slog text handler whose
// records are kept in memory and published as events, so the TUI can show
// them on the logs page.
package logging

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/leg100/notelist/internal/pubsub"
	"github.com/leg100/notelist/internal/resource"
	"golang.org/x/exp/maps"
)

const DefaultLevel = "info"

var levels = map[string]slog.Level{
	"debug":      slog.LevelDebug,
	DefaultLevel: slog.LevelInfo,
	"warn":       slog.LevelWarn,
	"error":      slog.LevelError,
}

// ValidLevels returns valid strings for choosing a log level. Returns the
// default log level first.
func ValidLevels() []string {
	keys := maps.Keys(levels)
	slices.SortFunc(keys, func(a, b string) int {
		switch {
		case a == DefaultLevel:
			return -1
		case b == DefaultLevel:
			return 1
		case a < b:
			return -1
		default:
			return 1
		}
	})
	return keys
}

// Interface is the logging interface accepted by services, permitting the use
// of Discard in tests.
type Interface interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type Options struct {
	// The log level of the logger
	Level string
	// Any additional writers the log handler should write to, e.g. the log
	// file in the data directory.
	AdditionalWriters []io.Writer
}

// Logger wraps slog, additionally keeping a history of records and emitting
// each record as an event.
type Logger struct {
	logger *slog.Logger
	writer *writer
	broker *pubsub.Broker[Message]
}

// NewLogger constructs Logger.
func NewLogger(opts Options) *Logger {
	broker := pubsub.NewBroker[Message](nil)
	w := &writer{broker: broker}

	level, ok := levels[opts.Level]
	if !ok {
		level = levels[DefaultLevel]
	}
	handler := slog.NewTextHandler(
		io.MultiWriter(append(opts.AdditionalWriters, w)...),
		&slog.HandlerOptions{Level: level},
	)
	return &Logger{
		logger: slog.New(handler),
		writer: w,
		broker: broker,
	}
}

func (l *Logger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// Slog returns the underlying slog logger, for use with slog.SetDefault.
func (l *Logger) Slog() *slog.Logger { return l.logger }

// Messages lists the log messages received thus far, oldest first.
func (l *Logger) Messages() []Message {
	return l.writer.list()
}

// Subscribe to log messages.
func (l *Logger) Subscribe(ctx context.Context) <-chan resource.Event[Message] {
	return l.broker.Subscribe(ctx)
}

type writer struct {
	mu       sync.Mutex
	messages []Message
	serial   uint
	broker   *pubsub.Broker[Message]
}

func (w *writer) list() []Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.messages)
}

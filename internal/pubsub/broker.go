// Package pubsub fans out events to in-process subscribers: the TUI, the
// settings applier, and anything else that needs to react to changes.
package pubsub

import (
	"context"
	"sync"

	"github.com/leg100/notelist/internal/resource"
)

// subBufferSize is the buffer size of the channel for each subscription.
const subBufferSize = 1024

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Broker allows clients to publish events and subscribe to events
type Broker[T any] struct {
	subs map[chan resource.Event[T]]struct{}
	mu   sync.Mutex

	// logger is optional: the logger itself is built on a broker and cannot
	// be handed to its own broker before it exists.
	logger Logger
}

func NewBroker[T any](logger Logger) *Broker[T] {
	return &Broker[T]{
		subs:   make(map[chan resource.Event[T]]struct{}),
		logger: logger,
	}
}

// Subscribe subscribes the caller to a stream of events. The subscription is
// closed when the context is canceled.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan resource.Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := make(chan resource.Event[T], subBufferSize)
	b.subs[sub] = struct{}{}

	go func() {
		<-ctx.Done()
		b.unsubscribe(sub)
	}()
	return sub
}

// Publish an event to subscribers. A subscriber whose buffer is full is
// unsubscribed, closing its channel.
func (b *Broker[T]) Publish(t resource.EventType, payload T) {
	var full []chan resource.Event[T]

	b.mu.Lock()
	for sub := range b.subs {
		select {
		case sub <- resource.NewEvent(t, payload):
		default:
			full = append(full, sub)
		}
	}
	b.mu.Unlock()

	for _, sub := range full {
		if b.logger != nil {
			b.logger.Error("unsubscribing full subscriber", "queue_length", subBufferSize)
		}
		b.unsubscribe(sub)
	}
}

// Subscribers returns the number of current subscriptions.
func (b *Broker[T]) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *Broker[T]) unsubscribe(sub chan resource.Event[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[sub]; !ok {
		// already unsubscribed
		return
	}
	close(sub)
	delete(b.subs, sub)
}

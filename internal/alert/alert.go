// Package alert is a queue of user-facing notifications and confirmation
// requests. Success alerts dismiss themselves; all others persist until
// removed or resolved.
package alert

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/leg100/notelist/internal/logging"
	"github.com/leg100/notelist/internal/pubsub"
	"github.com/leg100/notelist/internal/resource"
)

// Type is the kind of alert.
type Type string

const (
	Success Type = "success"
	Error   Type = "error"
	Warning Type = "warning"
	Info    Type = "info"
	Confirm Type = "confirm"
)

// Style affects how a confirmation is presented.
type Style string

const (
	StyleDefault Style = "default"
	// StyleDanger marks a confirmation of a destructive action.
	StyleDanger Style = "danger"
)

// SuccessTimeout is how long a success alert is shown for.
const SuccessTimeout = 1500 * time.Millisecond

// Alert is a notification or, if its type is Confirm, a request for the user
// to confirm or cancel.
type Alert struct {
	ID      string
	Type    Type
	Title   string
	Message string
	Style   Style

	onConfirm func()
	onCancel  func()
}

// Queue holds the alerts currently shown, oldest first.
type Queue struct {
	// successTimeout defaults to SuccessTimeout.
	successTimeout time.Duration

	logger logging.Interface
	broker *pubsub.Broker[Alert]

	mu     sync.Mutex
	alerts []Alert
	timers map[string]*time.Timer
}

func NewQueue(logger logging.Interface) *Queue {
	return &Queue{
		successTimeout: SuccessTimeout,
		logger:         logger,
		broker:         pubsub.NewBroker[Alert](logger),
		timers:         make(map[string]*time.Timer),
	}
}

// Subscribe to alerts being added and removed.
func (q *Queue) Subscribe(ctx context.Context) <-chan resource.Event[Alert] {
	return q.broker.Subscribe(ctx)
}

// Success adds an alert that is removed automatically after a short delay.
func (q *Queue) Success(title, message string) string {
	a := q.add(Alert{Type: Success, Title: title, Message: message})
	q.mu.Lock()
	q.timers[a.ID] = time.AfterFunc(q.successTimeout, func() { q.Remove(a.ID) })
	q.mu.Unlock()
	return a.ID
}

func (q *Queue) Error(title, message string) string {
	return q.add(Alert{Type: Error, Title: title, Message: message}).ID
}

func (q *Queue) Warning(title, message string) string {
	return q.add(Alert{Type: Warning, Title: title, Message: message}).ID
}

func (q *Queue) Info(title, message string) string {
	return q.add(Alert{Type: Info, Title: title, Message: message}).ID
}

// Confirm adds a confirmation request. Either callback may be nil.
func (q *Queue) Confirm(title, message string, onConfirm, onCancel func(), style Style) string {
	if style == "" {
		style = StyleDefault
	}
	return q.add(Alert{
		Type:      Confirm,
		Title:     title,
		Message:   message,
		Style:     style,
		onConfirm: onConfirm,
		onCancel:  onCancel,
	}).ID
}

func (q *Queue) add(a Alert) Alert {
	a.ID = uuid.NewString()

	q.mu.Lock()
	q.alerts = append(q.alerts, a)
	q.mu.Unlock()

	q.logger.Debug("added alert", "type", a.Type, "title", a.Title)
	q.broker.Publish(resource.CreatedEvent, a)
	return a
}

// List returns the current alerts, oldest first.
func (q *Queue) List() []Alert {
	q.mu.Lock()
	defer q.mu.Unlock()

	return slices.Clone(q.alerts)
}

// Pending returns the oldest unresolved confirmation, if any.
func (q *Queue) Pending() (Alert, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, a := range q.alerts {
		if a.Type == Confirm {
			return a, true
		}
	}
	return Alert{}, false
}

// Remove removes an alert. Removing an unknown alert does nothing.
func (q *Queue) Remove(id string) {
	if a, ok := q.take(id); ok {
		q.broker.Publish(resource.DeletedEvent, a)
	}
}

// Resolve removes a confirmation and invokes its confirm or cancel callback
// on the calling goroutine. Returns false if there is no such alert.
func (q *Queue) Resolve(id string, confirmed bool) bool {
	a, ok := q.take(id)
	if !ok {
		return false
	}
	q.broker.Publish(resource.DeletedEvent, a)
	q.logger.Debug("resolved alert", "title", a.Title, "confirmed", confirmed)

	switch {
	case confirmed && a.onConfirm != nil:
		a.onConfirm()
	case !confirmed && a.onCancel != nil:
		a.onCancel()
	}
	return true
}

// ClearAll removes all alerts without invoking any callbacks.
func (q *Queue) ClearAll() {
	q.mu.Lock()
	removed := q.alerts
	q.alerts = nil
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
	q.mu.Unlock()

	for _, a := range removed {
		q.broker.Publish(resource.DeletedEvent, a)
	}
}

func (q *Queue) take(id string) (Alert, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
	i := slices.IndexFunc(q.alerts, func(a Alert) bool { return a.ID == id })
	if i < 0 {
		return Alert{}, false
	}
	a := q.alerts[i]
	q.alerts = slices.Delete(q.alerts, i, i+1)
	return a, true
}

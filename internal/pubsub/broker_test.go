package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/leg100/notelist/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broker := NewBroker[string](nil)
	sub := broker.Subscribe(ctx)

	broker.Publish(resource.CreatedEvent, "hello")

	got := <-sub
	assert.Equal(t, resource.NewEvent(resource.CreatedEvent, "hello"), got)
}

func TestBroker_UnsubscribeOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	broker := NewBroker[int](nil)
	sub := broker.Subscribe(ctx)
	require.Equal(t, 1, broker.Subscribers())

	cancel()

	select {
	case _, ok := <-sub:
		assert.False(t, ok, "expected channel to be closed")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for subscription to close")
	}
	assert.Equal(t, 0, broker.Subscribers())
}

func TestBroker_UnsubscribeFullSubscriber(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broker := NewBroker[int](nil)
	_ = broker.Subscribe(ctx)

	for i := 0; i < subBufferSize+1; i++ {
		broker.Publish(resource.UpdatedEvent, i)
	}
	assert.Equal(t, 0, broker.Subscribers())
}

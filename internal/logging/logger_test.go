package logging

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/leg100/notelist/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidLevels(t *testing.T) {
	assert.Equal(t, []string{"info", "debug", "error", "warn"}, ValidLevels())
}

func TestLogger(t *testing.T) {
	var file bytes.Buffer
	logger := NewLogger(Options{Level: "info", AdditionalWriters: []io.Writer{&file}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := logger.Subscribe(ctx)

	logger.Debug("hidden")
	logger.Info("saved note", "id", 3)

	select {
	case ev := <-sub:
		assert.Equal(t, resource.CreatedEvent, ev.Type)
		assert.Equal(t, "saved note", ev.Payload.Message)
		assert.Equal(t, "INFO", ev.Payload.Level)
		assert.Equal(t, []Attr{{Key: "id", Value: "3"}}, ev.Payload.Attributes)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for log event")
	}

	msgs := logger.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, uint(0), msgs[0].Serial)
	assert.Contains(t, file.String(), `msg="saved note" id=3`)
}

func TestBySerialDesc(t *testing.T) {
	older := Message{Serial: 1}
	newer := Message{Serial: 2}

	assert.Equal(t, 1, BySerialDesc(older, newer))
	assert.Equal(t, -1, BySerialDesc(newer, older))
}

package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateRight(t *testing.T) {
	assert.Equal(t, "groc…", TruncateRight("groceries", 5, "…"))
	assert.Equal(t, "milk", TruncateRight("milk", 5, "…"))
	assert.Equal(t, "", TruncateRight("milk", 0, "…"))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "日本  ", PadRight("日本", 6))
}

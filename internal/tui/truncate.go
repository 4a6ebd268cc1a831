package tui

import (
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

// TruncateRight truncates s to the width w, appending the tail if truncated.
func TruncateRight(s string, w int, tail string) string {
	if w <= 0 {
		return ""
	}
	return truncate.StringWithTail(s, uint(w), tail)
}

// PadRight pads s with spaces to the width w.
func PadRight(s string, w int) string {
	return runewidth.FillRight(s, w)
}

// Package shortcut dispatches key events to actions registered against key
// chords. Each view owns its own Dispatcher, injected with the key event
// source it listens to and the settings it consults.
package shortcut

import (
	"errors"
	"fmt"
	"strings"
)

// ctrlPrefix is the only modifier prefix a chord can carry.
const ctrlPrefix = "ctrl+"

// Chord is a normalized key identifier: a lower-cased key name, optionally
// prefixed with "ctrl+".
type Chord string

// NewChord normalizes a key name and control modifier into a chord.
func NewChord(key string, ctrl bool) Chord {
	key = normalizeKey(key)
	if ctrl {
		return Chord(ctrlPrefix + key)
	}
	return Chord(key)
}

// MustParseChord is like ParseChord but panics on error. Intended for chords
// declared as literals.
func MustParseChord(s string) Chord {
	c, err := ParseChord(s)
	if err != nil {
		panic(err.Error())
	}
	return c
}

var ErrUnsupportedModifier = errors.New("unsupported modifier")

// ParseChord parses a human-readable chord such as "Ctrl+S", "escape" or "/".
// The control modifier may be written "ctrl" or "control", in any case. Other
// modifiers are rejected.
func ParseChord(s string) (Chord, error) {
	if s == " " {
		return NewChord(s, false), nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.New("empty chord")
	}
	// A lone "+" is a key in its own right.
	if s == "+" {
		return NewChord(s, false), nil
	}
	parts := strings.Split(s, "+")
	key := parts[len(parts)-1]
	if key == "" {
		// trailing "+", e.g. "ctrl++"
		key = "+"
		parts = parts[:len(parts)-1]
	}
	var ctrl bool
	for _, mod := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(mod)) {
		case "ctrl", "control":
			ctrl = true
		case "":
		default:
			return "", fmt.Errorf("parsing chord %q: %w: %s", s, ErrUnsupportedModifier, mod)
		}
	}
	return NewChord(key, ctrl), nil
}

// Ctrl reports whether the chord requires the control modifier.
func (c Chord) Ctrl() bool {
	return strings.HasPrefix(string(c), ctrlPrefix) && len(c) > len(ctrlPrefix)
}

// Key returns the key name without any modifier.
func (c Chord) Key() string {
	if c.Ctrl() {
		return string(c)[len(ctrlPrefix):]
	}
	return string(c)
}

func (c Chord) String() string { return string(c) }

// keyAliases maps terminal key names onto the canonical names used in chords.
var keyAliases = map[string]string{
	"esc":    "escape",
	"return": "enter",
	"space":  " ",
	"del":    "delete",
}

func normalizeKey(key string) string {
	if key == " " {
		return key
	}
	key = strings.ToLower(strings.TrimSpace(key))
	if alias, ok := keyAliases[key]; ok {
		return alias
	}
	return key
}

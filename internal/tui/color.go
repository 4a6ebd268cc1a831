package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/leg100/notelist/internal/settings"
)

const (
	Black     = lipgloss.Color("#000000")
	Red       = lipgloss.Color("#FF5353")
	Orange    = lipgloss.Color("214")
	Yellow    = lipgloss.Color("#DBBD70")
	Green     = lipgloss.Color("34")
	Blue      = lipgloss.Color("63")
	Grey      = lipgloss.Color("#737373")
	LightGrey = lipgloss.Color("245")
	White     = lipgloss.Color("#ffffff")
)

var (
	DebugLogLevel = Blue
	InfoLogLevel  = Green
	ErrorLogLevel = Red
	WarnLogLevel  = Yellow

	HelpKey = lipgloss.AdaptiveColor{
		Dark:  "ff",
		Light: "",
	}
	HelpDesc = lipgloss.AdaptiveColor{
		Dark:  "248",
		Light: "246",
	}
)

// Theme colors, set from the user's settings.
var (
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Text       lipgloss.Color

	// darkTheme is true if the theme has a dark background.
	darkTheme bool
)

func init() {
	SetTheme(settings.Defaults().Palette())
}

// SetTheme restyles the TUI with the given palette.
func SetTheme(c settings.Colors) {
	Primary = hexColor(c.Primary)
	Secondary = hexColor(c.Secondary)
	Background = hexColor(c.Background)
	Surface = hexColor(c.Surface)
	Text = hexColor(c.Text)
	darkTheme = luminance(c.Background) < 0.5
}

// DarkTheme reports whether the current theme has a dark background.
func DarkTheme() bool { return darkTheme }

// hexColor converts a CSS hex color into a terminal color, dropping any alpha
// channel.
func hexColor(s string) lipgloss.Color {
	if len(s) == 9 && strings.HasPrefix(s, "#") {
		s = s[:7]
	}
	return lipgloss.Color(s)
}

// luminance returns the relative luminance of a hex color between 0 and 1.
// Unparseable colors are treated as white.
func luminance(hex string) float64 {
	hex = strings.TrimPrefix(string(hexColor(hex)), "#")
	if len(hex) != 6 {
		return 1
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 1
	}
	r := float64(v>>16&0xff) / 255
	g := float64(v>>8&0xff) / 255
	b := float64(v&0xff) / 255
	return 0.2126*r + 0.7152*g + 0.0722*b
}

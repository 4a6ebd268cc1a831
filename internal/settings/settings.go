// Package settings persists user preferences: theme, font and feature
// toggles. Changes are published so that the TUI can restyle itself.
package settings

import "slices"

// Settings are the user's preferences.
type Settings struct {
	ShowActiveFilters bool    `yaml:"show_active_filters"`
	Font              string  `yaml:"font"`
	Theme             string  `yaml:"theme"`
	CustomColors      *Colors `yaml:"custom_colors,omitempty"`
	KeyboardShortcuts bool    `yaml:"keyboard_shortcuts"`
}

// Colors is a theme palette of hex colors.
type Colors struct {
	Primary    string `yaml:"primary"`
	Secondary  string `yaml:"secondary"`
	Background string `yaml:"background"`
	Surface    string `yaml:"surface"`
	Text       string `yaml:"text"`
}

const (
	DefaultFont  = "Lato"
	DefaultTheme = "light"
	CustomTheme  = "custom"
)

// Defaults returns the settings used when nothing has been saved.
func Defaults() Settings {
	return Settings{
		ShowActiveFilters: true,
		Font:              DefaultFont,
		Theme:             DefaultTheme,
		KeyboardShortcuts: true,
	}
}

var themes = map[string]Colors{
	"light": {
		Primary:    "#1976D2",
		Secondary:  "#FFC107",
		Background: "#FFFFFF",
		Surface:    "#F5F5F5",
		Text:       "#212121",
	},
	"dark": {
		Primary:    "#90CAF9",
		Secondary:  "#ffc71d",
		Background: "#121212",
		Surface:    "#1E1E1E",
		Text:       "#E0E0E0",
	},
	"nature": {
		Primary:    "#2E7D32",
		Secondary:  "#FFB300",
		Background: "#F1F8E9",
		Surface:    "#DCEDC8",
		Text:       "#33691E",
	},
	"pastel": {
		Primary:    "#F48FB1",
		Secondary:  "#81D4FA",
		Background: "#FFF8E1",
		Surface:    "#FFE0B2",
		Text:       "#6D4C41",
	},
	"moon": {
		Primary:    "#FF00FF",
		Secondary:  "#db8adbff",
		Background: "#0D0D0D",
		Surface:    "#1A1A1A",
		Text:       "#E6E6E6",
	},
}

// Themes lists the selectable theme names, ending with the custom theme.
func Themes() []string {
	return []string{"light", "dark", "nature", "pastel", "moon", CustomTheme}
}

// ThemeColors returns the palette for a named built-in theme.
func ThemeColors(theme string) (Colors, bool) {
	c, ok := themes[theme]
	return c, ok
}

var fonts = []struct {
	name   string
	family string
}{
	{"Lato", `"Lato", sans-serif`},
	{"Open Sans", `"Open Sans", sans-serif`},
	{"Roboto", `"Roboto", sans-serif`},
	{"SUSE Mono", `"SUSE Mono", monospace`},
	{"Playfair Display", `"Playfair Display", serif`},
	{"Montserrat", `"Montserrat", sans-serif`},
	{"Merriweather", `"Merriweather", serif`},
	{"Fira Code", `"Fira Code", monospace`},
	{"Pacifico", `"Pacifico", cursive`},
	{"Bebas Neue", `"Bebas Neue", sans-serif`},
	{"Crimson Pro", `"Crimson Pro", serif`},
	{"Indie Flower", `"Indie Flower", cursive`},
	{"Ubuntu", `"Ubuntu", sans-serif`},
}

// Fonts lists the selectable font names.
func Fonts() []string {
	names := make([]string, len(fonts))
	for i, f := range fonts {
		names[i] = f.name
	}
	return names
}

// FontFamily returns the font family declaration for a font name, falling
// back to the default font.
func FontFamily(font string) string {
	i := slices.IndexFunc(fonts, func(f struct{ name, family string }) bool {
		return f.name == font
	})
	if i < 0 {
		return fonts[0].family
	}
	return fonts[i].family
}

// Palette resolves the colors for the settings' theme. The custom theme uses
// the custom colors if set; unknown themes fall back to the light theme.
func (s Settings) Palette() Colors {
	if s.Theme == CustomTheme && s.CustomColors != nil {
		return *s.CustomColors
	}
	if c, ok := themes[s.Theme]; ok {
		return c
	}
	return themes[DefaultTheme]
}

// WithTheme returns a copy of the settings switched to another theme.
// Switching to the custom theme seeds the custom colors from the palette in
// use beforehand; switching away from it discards them.
func (s Settings) WithTheme(theme string) Settings {
	if theme == s.Theme {
		return s
	}
	if theme == CustomTheme {
		seed := s.Palette()
		s.CustomColors = &seed
	} else {
		s.CustomColors = nil
	}
	s.Theme = theme
	return s
}

// Equal reports whether two settings are identical, comparing custom colors
// by value.
func (s Settings) Equal(other Settings) bool {
	if (s.CustomColors == nil) != (other.CustomColors == nil) {
		return false
	}
	if s.CustomColors != nil && *s.CustomColors != *other.CustomColors {
		return false
	}
	s.CustomColors, other.CustomColors = nil, nil
	return s == other
}

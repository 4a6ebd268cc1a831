package tui

import "github.com/charmbracelet/lipgloss"

var (
	Regular = lipgloss.NewStyle()
	Bold    = Regular.Bold(true)
	Padded  = Regular.Padding(0, 1)
	Faint   = Regular.Foreground(LightGrey)

	Width  = lipgloss.Width
	Height = lipgloss.Height
)

// TitleStyle renders page titles in the theme's primary color.
func TitleStyle() lipgloss.Style {
	return Bold.Foreground(Primary)
}

// CurrentRowStyle renders the row under the cursor.
func CurrentRowStyle() lipgloss.Style {
	return Bold.Foreground(Text).Background(Surface)
}

// AccentStyle highlights text with the theme's secondary color.
func AccentStyle() lipgloss.Style {
	return Bold.Foreground(Secondary)
}

// Badge renders a category name on a background of the category's color.
func Badge(name, color string) string {
	return Regular.
		Padding(0, 1).
		Foreground(Black).
		Background(hexColor(color)).
		Render(name)
}

package top

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var (
	shortHelpKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "248",
		Dark:  "#626262",
	}).Bold(true).Margin(0, 1, 0, 0)

	shortHelpDescStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#B2B2B2",
		Dark:  "#4A4A4A",
	})
)

const shortHelpRows = 2

// shortHelpView renders help for key bindings within the header.
func shortHelpView(bindings []key.Binding, maxWidth int) string {
	// enumerate through each group of bindings, one per row, populating a
	// series of pairs of columns, one for keys, one for descriptions
	var (
		pairs []string
		width int
	)
	for i := 0; i < len(bindings); i += shortHelpRows {
		var (
			keys  []string
			descs []string
		)
		for j := i; j < min(i+shortHelpRows, len(bindings)); j++ {
			keys = append(keys, bindings[j].Help().Key)
			descs = append(descs, bindings[j].Help().Desc)
		}
		// Render pair of columns; beyond the first pair, render a three space
		// left margin, in order to visually separate the pairs.
		var cols []string
		if len(pairs) > 0 {
			cols = []string{"   "}
		}
		cols = append(cols,
			shortHelpKeyStyle.Render(strings.Join(keys, "\n")),
			shortHelpDescStyle.Render(strings.Join(descs, "\n")),
		)

		pair := lipgloss.JoinHorizontal(lipgloss.Left, cols...)
		// check whether it exceeds the maximum width avail
		width += lipgloss.Width(pair)
		if width > maxWidth {
			break
		}
		pairs = append(pairs, pair)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, pairs...)
}

var (
	longHelpHeadingStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#909090",
		Dark:  "#626262",
	}).Bold(true).Margin(0, 3, 0, 0)

	longHelpKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#909090",
		Dark:  "#626262",
	}).Bold(true).Margin(0, 1, 0, 0)

	longHelpDescStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#B2B2B2",
		Dark:  "#4A4A4A",
	}).Margin(0, 3, 0, 0)
)

// fullHelpView renders a table of columns describing the key bindings,
// categorised into page, general, and navigation keys. Empty categories are
// omitted.
func fullHelpView(page, general, navigation []key.Binding) string {
	var columns []string
	for _, group := range []struct {
		heading  string
		bindings []key.Binding
	}{
		{"PAGE", page},
		{"GENERAL", general},
		{"NAVIGATION", navigation},
	} {
		if len(group.bindings) == 0 {
			continue
		}
		keys := make([]string, len(group.bindings))
		descs := make([]string, len(group.bindings))
		for i, kb := range group.bindings {
			keys[i] = longHelpKeyStyle.Render(kb.Help().Key)
			descs[i] = longHelpDescStyle.Render(kb.Help().Desc)
		}
		columns = append(columns, lipgloss.JoinVertical(lipgloss.Top,
			longHelpHeadingStyle.Render(group.heading),
			lipgloss.JoinHorizontal(lipgloss.Left,
				strings.Join(keys, "\n"),
				strings.Join(descs, "\n"),
			),
		))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, columns...)
}

// Package preferences provides the settings page: appearance, feature
// toggles and data import and export.
package preferences

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leg100/notelist/internal/alert"
	"github.com/leg100/notelist/internal/note"
	"github.com/leg100/notelist/internal/resource"
	"github.com/leg100/notelist/internal/settings"
	"github.com/leg100/notelist/internal/shortcut"
	"github.com/leg100/notelist/internal/tui"
	"github.com/leg100/notelist/internal/tui/keys"
)

type rowKind int

const (
	rowTheme rowKind = iota
	rowColor
	rowFont
	rowActiveFilters
	rowShortcuts
	rowExport
	rowImport
	rowReset
)

type row struct {
	kind rowKind
	// color is the custom color edited by a color row.
	color colorField
}

type colorField int

const (
	colorPrimary colorField = iota
	colorSecondary
	colorBackground
	colorSurface
	colorText
)

var colorNames = []string{"Primary", "Secondary", "Background", "Surface", "Text"}

func (f colorField) get(c settings.Colors) string {
	return []string{c.Primary, c.Secondary, c.Background, c.Surface, c.Text}[f]
}

func (f colorField) set(c *settings.Colors, v string) {
	switch f {
	case colorPrimary:
		c.Primary = v
	case colorSecondary:
		c.Secondary = v
	case colorBackground:
		c.Background = v
	case colorSurface:
		c.Surface = v
	case colorText:
		c.Text = v
	}
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}([0-9a-fA-F]{2})?$`)

// exportedMsg reports the outcome of an export.
type exportedMsg struct {
	path string
	err  error
}

type Maker struct {
	*tui.Services
}

func (mm *Maker) Make(_ tui.Page, width, height int) (tui.Model, error) {
	m := &model{
		Services:   mm.Services,
		dispatcher: mm.NewDispatcher(),
		input:      textinput.New(),
		width:      width,
		height:     height,
	}
	m.reload()
	return m, nil
}

type model struct {
	*tui.Services

	dispatcher *shortcut.Dispatcher

	preview    transferPreview
	lastExport string
	cursor     int

	input textinput.Model
	// editing is the row the input belongs to, if the input is open.
	editing *row

	width  int
	height int
}

type transferPreview struct {
	notes      int
	categories int
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case resource.Event[note.Note], resource.Event[note.Category]:
		m.reload()
	case resource.Event[settings.Settings]:
		m.cursor = min(m.cursor, len(m.rows())-1)
	case exportedMsg:
		if msg.err == nil {
			m.lastExport = msg.path
		}
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	default:
		if m.editing != nil {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// handleKey handles keys not consumed by a shortcut. Every setting is
// reachable here, so that shortcuts can be re-enabled after being disabled.
func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.editing != nil {
		switch msg.Type {
		case tea.KeyEsc:
			m.closeInput()
			return nil
		case tea.KeyEnter:
			return m.submit()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
	rows := m.rows()
	switch {
	case key.Matches(msg, keys.Navigation.LineUp):
		m.cursor = max(0, m.cursor-1)
	case key.Matches(msg, keys.Navigation.LineDown):
		m.cursor = min(len(rows)-1, m.cursor+1)
	case key.Matches(msg, keys.Navigation.GotoTop):
		m.cursor = 0
	case key.Matches(msg, keys.Navigation.GotoBottom):
		m.cursor = len(rows) - 1
	case msg.Type == tea.KeyLeft:
		return m.cycle(rows[m.cursor], -1)
	case msg.Type == tea.KeyRight:
		return m.cycle(rows[m.cursor], 1)
	case key.Matches(msg, keys.Common.Open), key.Matches(msg, keys.Common.Toggle):
		return m.activate(rows[m.cursor])
	}
	return nil
}

func (m *model) Focus() shortcut.Target {
	if m.editing != nil {
		return shortcut.TargetTextInput
	}
	return shortcut.TargetList
}

func (m *model) Activate() func() {
	queue := m.Deferred.Queue
	bindings := tui.Bindings{}.
		Add(keys.Global.Escape, func() {
			if m.editing != nil {
				m.closeInput()
				return
			}
			queue(tui.GoBack())
		}).
		Add(localKeys.Export, func() { queue(m.export()) }).
		Add(localKeys.Import, func() { queue(m.openInput(row{kind: rowImport})) })
	return m.dispatcher.Activate(bindings)
}

func (m *model) reload() {
	p := m.Transfer.Preview(context.Background())
	m.preview = transferPreview{notes: p.Notes, categories: p.Categories}
}

// rows returns the rows shown for the current settings. Color rows are only
// shown for the custom theme.
func (m *model) rows() []row {
	rows := []row{{kind: rowTheme}}
	if m.Settings.Get().Theme == settings.CustomTheme {
		for f := range colorNames {
			rows = append(rows, row{kind: rowColor, color: colorField(f)})
		}
	}
	return append(rows,
		row{kind: rowFont},
		row{kind: rowActiveFilters},
		row{kind: rowShortcuts},
		row{kind: rowExport},
		row{kind: rowImport},
		row{kind: rowReset},
	)
}

func (m *model) save(updated settings.Settings) {
	if err := m.Settings.Save(updated); err != nil {
		m.Alerts.Error("Error", "Error saving settings!")
	}
}

// cycle steps a multiple-choice setting forwards or backwards.
func (m *model) cycle(r row, delta int) tea.Cmd {
	current := m.Settings.Get()
	switch r.kind {
	case rowTheme:
		m.save(current.WithTheme(step(settings.Themes(), current.Theme, delta)))
	case rowFont:
		current.Font = step(settings.Fonts(), current.Font, delta)
		m.save(current)
	case rowActiveFilters, rowShortcuts:
		return m.activate(r)
	}
	return nil
}

func step(choices []string, current string, delta int) string {
	i := slices.Index(choices, current)
	n := len(choices)
	return choices[((i+delta)%n+n)%n]
}

// activate performs a row's action.
func (m *model) activate(r row) tea.Cmd {
	current := m.Settings.Get()
	switch r.kind {
	case rowTheme, rowFont:
		return m.cycle(r, 1)
	case rowColor:
		return m.openInput(r)
	case rowActiveFilters:
		current.ShowActiveFilters = !current.ShowActiveFilters
		m.save(current)
	case rowShortcuts:
		current.KeyboardShortcuts = !current.KeyboardShortcuts
		m.save(current)
	case rowExport:
		return m.export()
	case rowImport:
		return m.openInput(r)
	case rowReset:
		m.confirmReset()
	}
	return nil
}

func (m *model) confirmReset() {
	m.Alerts.Confirm(
		"Reset Settings",
		"Are you sure you want to reset all settings to defaults? This action cannot be undone.",
		func() {
			if err := m.Settings.Reset(); err != nil {
				m.Alerts.Error("Error", "Error saving settings!")
				return
			}
			m.cursor = 0
			m.Alerts.Success("Success", "Settings reset to defaults successfully!")
		},
		nil,
		alert.StyleDanger,
	)
}

func (m *model) export() tea.Cmd {
	return func() tea.Msg {
		path, err := m.Transfer.Export(context.Background())
		return exportedMsg{path: path, err: err}
	}
}

func (m *model) openInput(r row) tea.Cmd {
	switch r.kind {
	case rowColor:
		m.input.Prompt = colorNames[r.color] + ": "
		m.input.Placeholder = "#RRGGBB"
		m.input.SetValue(r.color.get(m.Settings.Get().Palette()))
	case rowImport:
		m.input.Prompt = "Import file: "
		m.input.Placeholder = "path to a notelist backup"
		m.input.SetValue("")
	default:
		return nil
	}
	m.input.CursorEnd()
	m.editing = &r
	return m.input.Focus()
}

func (m *model) closeInput() {
	m.input.Blur()
	m.editing = nil
}

// submit completes the open input.
func (m *model) submit() tea.Cmd {
	value := strings.TrimSpace(m.input.Value())
	switch m.editing.kind {
	case rowColor:
		if !hexColor.MatchString(value) {
			m.Alerts.Warning("Invalid Color", "Colors must be hex values such as #1976D2.")
			return nil
		}
		current := m.Settings.Get()
		colors := current.Palette()
		m.editing.color.set(&colors, value)
		current.CustomColors = &colors
		m.closeInput()
		m.save(current)
		return nil
	case rowImport:
		if value == "" {
			m.Alerts.Warning("Missing File", "Enter the path of a file to import.")
			return nil
		}
		m.closeInput()
		path := expandHome(value)
		return func() tea.Msg {
			// failures are reported by alerts
			_ = m.Transfer.Import(context.Background(), path)
			return nil
		}
	}
	return nil
}

func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}

func (m *model) Title() string {
	return tui.TitleStyle().Render("Settings")
}

func (m *model) HelpBindings() []key.Binding {
	return []key.Binding{
		keys.Common.Open,
		keys.Common.Toggle,
		localKeys.Export,
		localKeys.Import,
	}
}

func (m *model) View() string {
	current := m.Settings.Get()
	palette := current.Palette()

	var lines []string
	for i, r := range m.rows() {
		label, value := m.describe(r, current, palette)
		line := fmt.Sprintf(" %s %s", tui.PadRight(label, 22), value)
		if i == m.cursor && m.editing == nil {
			line = tui.CurrentRowStyle().Width(m.width).Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "")
	if m.editing != nil {
		lines = append(lines, " "+m.input.View(), "")
	}
	lines = append(lines, tui.Faint.Render(fmt.Sprintf(
		" An export will contain %d notes and %d categories.",
		m.preview.notes, m.preview.categories,
	)))
	if m.lastExport != "" {
		lines = append(lines, tui.Faint.Render(" Last export: "+m.lastExport))
	}
	return strings.Join(lines, "\n")
}

func (m *model) describe(r row, current settings.Settings, palette settings.Colors) (string, string) {
	switch r.kind {
	case rowTheme:
		return "Theme", "‹ " + current.Theme + " ›"
	case rowColor:
		c := r.color.get(palette)
		return "  " + colorNames[r.color], tui.Badge("    ", c) + " " + c
	case rowFont:
		return "Font", "‹ " + current.Font + " ›"
	case rowActiveFilters:
		return "Show active filters", checkbox(current.ShowActiveFilters)
	case rowShortcuts:
		return "Keyboard shortcuts", checkbox(current.KeyboardShortcuts)
	case rowExport:
		return "Export data", tui.Faint.Render("write a backup to " + m.Transfer.Dir())
	case rowImport:
		return "Import data", tui.Faint.Render("restore from a backup file")
	case rowReset:
		return "Reset settings", tui.Faint.Render("restore the defaults")
	}
	return "", ""
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

// Package logs provides the page listing the program's log messages.
package logs

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leg100/notelist/internal/logging"
	"github.com/leg100/notelist/internal/resource"
	"github.com/leg100/notelist/internal/shortcut"
	"github.com/leg100/notelist/internal/tui"
	"github.com/leg100/notelist/internal/tui/keys"
)

const timeFormat = "2006-01-02T15:04:05.000"

// levelWidth is the width of the widest level, ERROR.
const levelWidth = 5

type Maker struct {
	*tui.Services
}

func (mm *Maker) Make(_ tui.Page, width, height int) (tui.Model, error) {
	m := &model{
		Services:   mm.Services,
		dispatcher: mm.NewDispatcher(),
		viewport:   viewport.New(width, height),
		width:      width,
	}
	m.messages = m.Logger.Messages()
	m.render()
	return m, nil
}

type model struct {
	*tui.Services

	dispatcher *shortcut.Dispatcher
	viewport   viewport.Model
	// messages oldest first
	messages []logging.Message
	width    int
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height
		m.render()
		return m, nil
	case resource.Event[logging.Message]:
		if msg.Type == resource.CreatedEvent {
			m.messages = append(m.messages, msg.Payload)
			m.render()
		}
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Navigation.GotoTop):
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, keys.Navigation.GotoBottom):
			m.viewport.GotoBottom()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) Focus() shortcut.Target {
	return shortcut.TargetList
}

func (m *model) Activate() func() {
	queue := m.Deferred.Queue
	bindings := tui.Bindings{}.
		Add(keys.Global.Escape, func() { queue(tui.GoBack()) })
	return m.dispatcher.Activate(bindings)
}

// render writes the messages to the viewport, newest first.
func (m *model) render() {
	sorted := slices.Clone(m.messages)
	slices.SortFunc(sorted, logging.BySerialDesc)

	lines := make([]string, len(sorted))
	for i, msg := range sorted {
		lines[i] = m.renderMessage(msg)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

func (m *model) renderMessage(msg logging.Message) string {
	var levelColor lipgloss.TerminalColor
	switch msg.Level {
	case "ERROR":
		levelColor = tui.ErrorLogLevel
	case "WARN":
		levelColor = tui.WarnLogLevel
	case "DEBUG":
		levelColor = tui.DebugLogLevel
	case "INFO":
		levelColor = tui.InfoLogLevel
	}

	// combine message and attributes, separated by spaces, with each
	// attribute key/value joined with a '='
	var b strings.Builder
	b.WriteString(msg.Message)
	for _, attr := range msg.Attributes {
		b.WriteRune(' ')
		b.WriteString(tui.Faint.Render(attr.Key + "="))
		b.WriteString(attr.Value)
	}

	line := fmt.Sprintf("%s %s %s",
		tui.Faint.Render(msg.Time.Format(timeFormat)),
		tui.Bold.Foreground(levelColor).Render(tui.PadRight(msg.Level, levelWidth)),
		b.String(),
	)
	return tui.TruncateRight(line, m.width, "…")
}

func (m *model) Title() string {
	return fmt.Sprintf("%s (%d)", tui.TitleStyle().Render("Logs"), len(m.messages))
}

func (m *model) View() string {
	if len(m.messages) == 0 {
		return tui.Faint.Padding(0, 1).Render("No log messages.")
	}
	return m.viewport.View()
}

func (m *model) HelpBindings() []key.Binding {
	return []key.Binding{
		keys.Navigation.GotoTop,
		keys.Navigation.GotoBottom,
	}
}

package top

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
	"github.com/leg100/notelist/internal/alert"
	"github.com/leg100/notelist/internal/note"
	"github.com/leg100/notelist/internal/resource"
	"github.com/leg100/notelist/internal/settings"
	"github.com/leg100/notelist/internal/tui"
	"github.com/leg100/notelist/internal/tui/keys"
	"github.com/leg100/notelist/internal/version"
)

// DumpFileName is the file to which messages are dumped in debug mode.
const DumpFileName = "messages.log"

type model struct {
	*navigator

	services *tui.Services

	width  int
	height int

	showHelp bool

	showQuitPrompt bool
	quitPrompt     textinput.Model

	// Either an error or an informational message is rendered in the footer.
	err  error
	info string

	// alerts currently shown, oldest first.
	alerts []alert.Alert
	// noteCount is the number of notes shown in the footer.
	noteCount int

	dump *os.File
}

type Options struct {
	Services  *tui.Services
	FirstPage string
	// DataDir is where the dump file is written in debug mode.
	DataDir string
	Debug   bool
}

// New constructs the top-level TUI model.
func New(opts Options) (model, error) {
	var dump *os.File
	if opts.Debug {
		var err error
		dump, err = os.OpenFile(filepath.Join(opts.DataDir, DumpFileName), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return model{}, err
		}
	}

	tui.SetTheme(opts.Services.Settings.Colors())

	navigator, err := newNavigator(opts.FirstPage, makeMakers(opts.Services), 0, 0)
	if err != nil {
		return model{}, err
	}

	m := model{
		navigator: navigator,
		services:  opts.Services,
		alerts:    opts.Services.Alerts.List(),
		noteCount: len(opts.Services.Notes.List(context.Background())),
		dump:      dump,
	}
	return m, nil
}

func (m model) Init() tea.Cmd {
	return m.currentModel().Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.dump != nil {
		spew.Fdump(m.dump, msg)
	}

	if m.showQuitPrompt {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch {
			case key.Matches(msg, keys.Global.Quit):
				// pressing ctrl-c again quits the app
				return m, tea.Quit
			case key.Matches(msg, localKeys.Yes):
				// 'y' quits the app
				return m, tea.Quit
			default:
				// any other key closes the prompt and returns to the app
				m.showQuitPrompt = false
				m.info = "canceled quitting notelist"
			}
			return m, nil
		}
	}

	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height

		// Inform navigator of new dimensions for when it builds new models
		m.navigator.width = m.viewWidth()
		m.navigator.height = m.viewHeight()

		// amend msg to account for header etc, and forward below to all cached
		// models.
		msg = tea.WindowSizeMsg{
			Height: m.viewHeight(),
			Width:  m.viewWidth(),
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tui.NavigationMsg:
		cmd, err := m.setCurrent(tui.Page(msg))
		if err != nil {
			return m, tui.ReportError(err, "opening %s page", msg.Kind)
		}
		cmds = append(cmds, cmd)
	case tui.BackMsg:
		cmd, err := m.goBack()
		if err != nil {
			return m, tui.ReportError(err, "returning to previous page")
		}
		cmds = append(cmds, cmd)
	case tui.ErrorMsg:
		if msg.Error != nil {
			err := msg.Error
			msg := fmt.Sprintf(msg.Message, msg.Args...)

			// Both print error in footer as well as log it.
			m.err = fmt.Errorf("%s: %w", msg, err)
			slog.Error(msg, "error", err)
		}
	case tui.InfoMsg:
		m.info = string(msg)
	case resource.Event[alert.Alert]:
		m.alerts = m.services.Alerts.List()
	case resource.Event[note.Note]:
		m.noteCount = len(m.services.Notes.List(context.Background()))
		cmds = append(cmds, m.cache.updateAll(msg)...)
	case resource.Event[settings.Settings]:
		// Restyle before pages render with the new settings.
		tui.SetTheme(msg.Payload.Palette())
		cmds = append(cmds, m.cache.updateAll(msg)...)
	default:
		// Send remaining msg types to all cached models
		cmds = append(cmds, m.cache.updateAll(msg)...)
	}
	return m, tea.Batch(cmds...)
}

// handleKey routes a key press. In order of precedence: the quit prompt, the
// help screen, any pending confirmation, the current page's shortcuts, global
// keys, and finally the current page itself.
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Pressing any key makes any info/error message in the footer disappear,
	// along with any notifications
	m.info = ""
	m.err = nil
	m.dismissAlerts()

	if key.Matches(msg, keys.Global.Quit) {
		// ctrl-c quits the app, but not before prompting the user for
		// confirmation.
		m.quitPrompt = textinput.New()
		m.quitPrompt.Prompt = ""
		m.quitPrompt.Focus()
		m.showQuitPrompt = true
		return m, textinput.Blink
	}

	if m.showHelp {
		if key.Matches(msg, keys.Global.Escape, keys.Global.Help) {
			m.showHelp = false
		}
		return m, nil
	}

	if pending, ok := m.services.Alerts.Pending(); ok {
		switch {
		case key.Matches(msg, keys.Confirm.Yes):
			m.services.Alerts.Resolve(pending.ID, true)
		case key.Matches(msg, keys.Confirm.No):
			m.services.Alerts.Resolve(pending.ID, false)
		default:
			// confirmation is modal
			return m, nil
		}
		m.alerts = m.services.Alerts.List()
		return m, m.services.Deferred.Drain()
	}

	current := m.currentModel()
	ev := m.services.Keys.Emit(tui.NewKeyEvent(msg, current.Focus()))
	cmd := m.services.Deferred.Drain()
	if ev.DefaultPrevented() {
		m.alerts = m.services.Alerts.List()
		return m, cmd
	}

	if !current.Focus().TextEntry() {
		switch {
		case key.Matches(msg, keys.Global.Help):
			// '?' toggles help
			m.showHelp = true
			return m, cmd
		case key.Matches(msg, keys.Global.Logs):
			// 'L' shows logs
			return m, tea.Batch(cmd, tui.NavigateTo(tui.LogsKind, 0))
		case key.Matches(msg, keys.Global.Escape):
			// <esc> goes back to last page
			return m, tea.Batch(cmd, tui.GoBack())
		}
	}

	// Send other keys to current model.
	_, pageCmd := current.Update(msg)
	m.alerts = m.services.Alerts.List()
	return m, tea.Batch(cmd, pageCmd)
}

// dismissAlerts removes notifications other than confirmations and success
// alerts, which expire on their own.
func (m *model) dismissAlerts() {
	for _, a := range m.alerts {
		switch a.Type {
		case alert.Confirm, alert.Success:
		default:
			m.services.Alerts.Remove(a.ID)
		}
	}
	m.alerts = m.services.Alerts.List()
}

var (
	logo = tui.Bold.
		Margin(0, 1).
		Render("✎ notelist")
	headerHeight         = 2
	titleHeight          = 1
	horizontalRuleHeight = 1
	messageFooterHeight  = 1
)

func (m model) View() string {
	var (
		content           string
		shortHelpBindings []key.Binding
	)

	var currentHelpBindings []key.Binding
	if bindings, ok := m.currentModel().(tui.ModelHelpBindings); ok {
		currentHelpBindings = bindings.HelpBindings()
	}

	if m.showHelp {
		content = lipgloss.NewStyle().
			Margin(1).
			Render(
				fullHelpView(
					currentHelpBindings,
					keys.KeyMapToSlice(keys.Global),
					keys.KeyMapToSlice(keys.Navigation),
				),
			)
		shortHelpBindings = []key.Binding{
			key.NewBinding(
				key.WithKeys("?"),
				key.WithHelp("?", "close help"),
			),
		}
	} else if m.showQuitPrompt {
		content = lipgloss.NewStyle().
			Margin(0, 1).
			Render(fmt.Sprintf("Quit notelist? (y/N): %s", m.quitPrompt.View()))
	} else {
		content = m.currentModel().View()
		shortHelpBindings = append(
			currentHelpBindings,
			keys.KeyMapToSlice(keys.Global)...,
		)
	}

	// Render logo and version in top left corner
	globalStatic := lipgloss.JoinVertical(lipgloss.Top,
		tui.TitleStyle().Render(logo),
		tui.Faint.Margin(0, 1).Render(version.Version),
	)

	// Render help bindings to the right of the logo, using the remaining
	// width.
	shortHelpWidth := m.width - tui.Width(globalStatic) - 6
	shortHelp := lipgloss.NewStyle().
		Margin(0, 2, 0, 4).
		Width(max(0, shortHelpWidth)).
		Render(shortHelpView(shortHelpBindings, shortHelpWidth))

	// Render page title line
	var pageTitle string
	if titled, ok := m.currentModel().(tui.ModelTitle); ok {
		pageTitle = tui.Regular.Margin(0, 1).Render(titled.Title())
	}

	// Render alerts over the bottom of the content
	alerts := m.alertsView()
	contentHeight := max(0, m.viewHeight()-tui.Height(alerts))
	if alerts == "" {
		contentHeight = m.viewHeight()
	}

	// Global-level info goes in the bottom right corner in the footer.
	metadata := tui.Padded.Render(m.metadata())

	// Render any info/error message to be shown in the bottom left corner in
	// the footer, using whatever space is remaining to the left of the
	// metadata.
	var footerMsg string
	if m.err != nil {
		footerMsg = tui.Padded.
			Foreground(tui.Red).
			Render("Error: " + m.err.Error())
	} else if m.info != "" {
		footerMsg = tui.Padded.
			Foreground(tui.Text).
			Render(m.info)
	}

	sections := []string{
		// header
		lipgloss.NewStyle().
			Height(headerHeight).
			Render(lipgloss.JoinHorizontal(lipgloss.Left, globalStatic, shortHelp)),
		// title
		lipgloss.NewStyle().
			// Prohibit overflowing title wrapping to another line.
			MaxHeight(titleHeight).
			Inline(true).
			Width(m.width).
			Render(pageTitle),
		// horizontal rule
		strings.Repeat("─", m.width),
		// content
		lipgloss.NewStyle().
			Height(contentHeight).
			MaxHeight(contentHeight).
			Render(content),
	}
	if alerts != "" {
		sections = append(sections, alerts)
	}
	return lipgloss.JoinVertical(
		lipgloss.Top,
		append(sections,
			// horizontal rule
			strings.Repeat("─", m.width),
			// footer
			lipgloss.JoinHorizontal(
				lipgloss.Top,
				// info/error message
				tui.Regular.
					Inline(true).
					MaxWidth(max(0, m.width-tui.Width(metadata))).
					Width(max(0, m.width-tui.Width(metadata))).
					Render(footerMsg),
				metadata,
			),
		)...,
	)
}

// metadata summarises global state for the footer.
func (m model) metadata() string {
	shortcuts := "off"
	if m.services.Settings.Get().KeyboardShortcuts {
		shortcuts = "on"
	}
	return fmt.Sprintf("%d notes · shortcuts %s", m.noteCount, shortcuts)
}

func (m model) alertsView() string {
	if len(m.alerts) == 0 {
		return ""
	}
	boxes := make([]string, len(m.alerts))
	for i, a := range m.alerts {
		boxes[i] = renderAlert(a, m.width)
	}
	return lipgloss.JoinVertical(lipgloss.Left, boxes...)
}

func renderAlert(a alert.Alert, width int) string {
	var (
		color lipgloss.TerminalColor
		icon  string
	)
	switch a.Type {
	case alert.Success:
		color, icon = tui.Green, "✔"
	case alert.Error:
		color, icon = tui.Red, "✖"
	case alert.Warning:
		color, icon = tui.Orange, "!"
	case alert.Info:
		color, icon = tui.Blue, "i"
	case alert.Confirm:
		color, icon = tui.Primary, "?"
		if a.Style == alert.StyleDanger {
			color = tui.Red
		}
	}
	body := tui.Bold.Foreground(color).Render(icon+" "+a.Title) + "\n" + a.Message
	if a.Type == alert.Confirm {
		body += "\n\n" + tui.Faint.Render("y/enter: confirm   n/esc: cancel")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(max(0, width-2)).
		Render(body)
}

// viewHeight retrieves the height available beneath the header and title,
// and above the message footer.
func (m model) viewHeight() int {
	// Take total terminal height and subtract the height of the header, the
	// title, the horizontal rule under the title, and then in the footer, the
	// horizontal rule and the message underneath.
	return max(0, m.height-headerHeight-titleHeight-2*horizontalRuleHeight-messageFooterHeight)
}

// viewWidth retrieves the width available within the main view
func (m model) viewWidth() int {
	return m.width
}

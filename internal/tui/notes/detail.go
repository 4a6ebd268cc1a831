package notes

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/hokaccha/go-prettyjson"
	"github.com/leg100/notelist/internal/note"
	"github.com/leg100/notelist/internal/resource"
	"github.com/leg100/notelist/internal/settings"
	"github.com/leg100/notelist/internal/shortcut"
	"github.com/leg100/notelist/internal/tui"
	"github.com/leg100/notelist/internal/tui/keys"
)

type DetailMaker struct {
	*tui.Services
}

func (mm *DetailMaker) Make(page tui.Page, width, height int) (tui.Model, error) {
	m := &detail{
		Services:   mm.Services,
		dispatcher: mm.NewDispatcher(),
		id:         page.NoteID,
		viewport:   viewport.New(width, height),
		width:      width,
		height:     height,
	}
	m.reload()
	return m, nil
}

// detail shows a single note, its content rendered as markdown.
type detail struct {
	*tui.Services

	dispatcher *shortcut.Dispatcher

	id         uint32
	note       *note.Note
	categories []note.Category
	raw        bool

	viewport viewport.Model
	width    int
	height   int
}

func (m *detail) Init() tea.Cmd {
	m.reload()
	return nil
}

func (m *detail) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.render()
		return m, nil
	case resource.Event[note.Note], resource.Event[note.Category]:
		m.reload()
		return m, nil
	case resource.Event[settings.Settings]:
		// restyle markdown for the new theme
		m.render()
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *detail) Focus() shortcut.Target { return shortcut.TargetNone }

func (m *detail) Activate() func() {
	queue := m.Deferred.Queue
	bindings := tui.Bindings{}.
		Add(localKeys.Copy, m.copyContent).
		Add(localKeys.Raw, func() {
			m.raw = !m.raw
			m.render()
		}).
		Add(keys.Common.Edit, func() {
			if m.note != nil {
				queue(tui.NavigateTo(tui.EditorKind, m.id))
			}
		}).
		Add(keys.Common.Delete, func() {
			if m.note != nil {
				confirmDelete(m.Services, *m.note, func() { queue(tui.GoBack()) })
			}
		})
	return m.dispatcher.Activate(bindings)
}

func (m *detail) reload() {
	ctx := context.Background()
	m.note = m.Notes.Get(ctx, m.id)
	m.categories = m.Notes.Categories(ctx)
	m.render()
}

func (m *detail) copyContent() {
	if m.note == nil {
		return
	}
	if err := clipboard.WriteAll(m.note.Content); err != nil {
		m.Logger.Error("copying note content", "error", err)
		m.Alerts.Error("Copy Failed", "Failed to copy to clipboard: "+err.Error())
		return
	}
	m.Alerts.Success("Copied", "Note content copied to clipboard")
}

// render refreshes the viewport's content.
func (m *detail) render() {
	m.viewport.Width = m.width
	m.viewport.Height = max(0, m.height-len(m.headerLines()))

	if m.note == nil {
		m.viewport.SetContent(tui.Faint.Padding(0, 1).Render("Note not found."))
		return
	}
	if m.raw {
		data, err := prettyjson.Marshal(m.note)
		if err != nil {
			m.Logger.Error("rendering note as JSON", "error", err)
		}
		m.viewport.SetContent(string(data))
		return
	}
	m.viewport.SetContent(m.markdown(m.note.Content))
}

// markdown renders content for the terminal, falling back to the raw content
// if it cannot be rendered.
func (m *detail) markdown(content string) string {
	style := "light"
	if tui.DarkTheme() {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(20, m.width-4)),
	)
	if err == nil {
		var out string
		if out, err = r.Render(content); err == nil {
			return out
		}
	}
	m.Logger.Warn("rendering markdown", "error", err)
	return content
}

func (m *detail) headerLines() []string {
	if m.note == nil {
		return nil
	}
	lines := []string{tui.TitleStyle().Padding(0, 1).Render(m.note.Title)}
	if m.note.Description != "" {
		lines = append(lines, tui.Faint.Padding(0, 1).Render(m.note.Description))
	}
	meta := []string{tui.Faint.Render("Created " + m.note.FormatCreated())}
	for _, name := range m.note.Categories {
		meta = append(meta, tui.Badge(name, note.ColorOf(m.categories, name)))
	}
	lines = append(lines, " "+strings.Join(meta, " "))
	if m.note.Img != nil && *m.note.Img != "" {
		lines = append(lines, tui.Faint.Padding(0, 1).Render("Image: "+*m.note.Img))
	}
	return append(lines, "")
}

func (m *detail) Title() string {
	if m.note == nil {
		return tui.TitleStyle().Render("Note")
	}
	title := tui.TitleStyle().Render("Note")
	if m.raw {
		title += " (raw)"
	}
	return fmt.Sprintf("%s #%d", title, m.note.ID)
}

func (m *detail) View() string {
	return strings.Join(append(m.headerLines(), m.viewport.View()), "\n")
}

func (m *detail) HelpBindings() []key.Binding {
	return []key.Binding{
		keys.Common.Edit,
		keys.Common.Delete,
		localKeys.Copy,
		localKeys.Raw,
	}
}

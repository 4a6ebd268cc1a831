package notes

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leg100/notelist/internal/note"
	"github.com/leg100/notelist/internal/resource"
	"github.com/leg100/notelist/internal/shortcut"
	"github.com/leg100/notelist/internal/tui"
	"github.com/leg100/notelist/internal/tui/keys"
)

type ListMaker struct {
	*tui.Services
}

func (mm *ListMaker) Make(_ tui.Page, width, height int) (tui.Model, error) {
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "title or description"
	search.SetValue(mm.Filter.Get().SearchTerm)

	m := &list{
		Services:   mm.Services,
		dispatcher: mm.NewDispatcher(),
		search:     search,
		width:      width,
		height:     height,
	}
	m.reload()
	return m, nil
}

type focus int

const (
	focusList focus = iota
	focusSearch
	focusCategories
)

type list struct {
	*tui.Services

	dispatcher *shortcut.Dispatcher

	notes      []note.Note
	categories []note.Category
	// visible are the notes passing the filter.
	visible []note.Note

	cursor         int
	offset         int
	categoryCursor int

	search textinput.Model
	focus  focus

	width  int
	height int
}

func (m *list) Init() tea.Cmd {
	m.reload()
	return nil
}

func (m *list) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case resource.Event[note.Note], resource.Event[note.Category]:
		m.reload()
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	default:
		if m.focus == focusSearch {
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// handleKey handles keys not consumed by a shortcut.
func (m *list) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.focus {
	case focusSearch:
		switch msg.Type {
		case tea.KeyEsc:
			m.closeSearch()
			return nil
		case tea.KeyEnter:
			m.blurSearch()
			return nil
		}
		var cmd tea.Cmd
		before := m.search.Value()
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != before {
			m.Filter.UpdateSearchTerm(m.search.Value())
			m.applyFilter()
		}
		return cmd
	case focusCategories:
		switch {
		case key.Matches(msg, keys.Navigation.LineUp):
			m.categoryCursor = max(0, m.categoryCursor-1)
		case key.Matches(msg, keys.Navigation.LineDown):
			m.categoryCursor = max(0, min(len(m.categories)-1, m.categoryCursor+1))
		case key.Matches(msg, keys.Common.Toggle), key.Matches(msg, keys.Common.Open):
			m.toggleCategory()
		case key.Matches(msg, keys.Navigation.NextField), msg.Type == tea.KeyEsc:
			m.focus = focusList
		}
		return nil
	}
	switch {
	case key.Matches(msg, keys.Navigation.LineUp):
		m.moveCursor(-1)
	case key.Matches(msg, keys.Navigation.LineDown):
		m.moveCursor(1)
	case key.Matches(msg, keys.Navigation.GotoTop):
		m.moveCursor(-len(m.visible))
	case key.Matches(msg, keys.Navigation.GotoBottom):
		m.moveCursor(len(m.visible))
	case key.Matches(msg, keys.Navigation.NextField):
		if m.Filter.Get().ShowCategoryFilter && len(m.categories) > 0 {
			m.focus = focusCategories
		}
	case key.Matches(msg, keys.Common.Open):
		return m.open()
	}
	return nil
}

func (m *list) Focus() shortcut.Target {
	if m.focus == focusSearch {
		return shortcut.TargetTextInput
	}
	return shortcut.TargetList
}

func (m *list) Activate() func() {
	queue := m.Deferred.Queue
	bindings := tui.Bindings{}.
		Add(keys.Common.Search, func() { queue(m.focusSearch()) }).
		Add(keys.Global.Escape, func() { queue(m.escape()) }).
		Add(keys.Common.Open, func() {
			switch m.focus {
			case focusSearch:
				m.blurSearch()
			case focusCategories:
				m.toggleCategory()
			default:
				queue(m.open())
			}
		}).
		Add(keys.Common.Toggle, func() {
			if m.focus == focusCategories {
				m.toggleCategory()
			}
		}).
		Add(localKeys.Filter, m.toggleFilterPanel).
		Add(localKeys.ClearFilters, func() { queue(m.clearFilters()) }).
		Add(keys.Common.New, func() { queue(tui.NavigateTo(tui.EditorKind, 0)) }).
		Add(keys.Common.Edit, func() {
			if n, ok := m.current(); ok {
				queue(tui.NavigateTo(tui.EditorKind, n.ID))
			}
		}).
		Add(keys.Common.Delete, func() {
			if n, ok := m.current(); ok {
				confirmDelete(m.Services, n, nil)
			}
		}).
		Add(localKeys.Categories, func() { queue(tui.NavigateTo(tui.CategoriesKind, 0)) }).
		Add(localKeys.Settings, func() { queue(tui.NavigateTo(tui.SettingsKind, 0)) })
	return m.dispatcher.Activate(bindings)
}

func (m *list) reload() {
	ctx := context.Background()
	m.notes = m.Notes.List(ctx)
	m.categories = m.Notes.Categories(ctx)
	m.categoryCursor = max(0, min(m.categoryCursor, len(m.categories)-1))
	m.applyFilter()
}

// applyFilter recomputes the visible notes: those matching the search term
// and carrying any of the selected categories.
func (m *list) applyFilter() {
	state := m.Filter.Get()
	m.visible = m.visible[:0]
	for _, n := range m.notes {
		if !n.Matches(state.SearchTerm) {
			continue
		}
		if len(state.SelectedCategories) > 0 && !n.InAnyCategory(state.SelectedCategories) {
			continue
		}
		m.visible = append(m.visible, n)
	}
	m.moveCursor(0)
}

func (m *list) moveCursor(delta int) {
	m.cursor = max(0, min(len(m.visible)-1, m.cursor+delta))
	rows := m.rowsHeight()
	switch {
	case m.cursor < m.offset:
		m.offset = m.cursor
	case rows > 0 && m.cursor >= m.offset+rows:
		m.offset = m.cursor - rows + 1
	}
}

func (m *list) current() (note.Note, bool) {
	if len(m.visible) == 0 {
		return note.Note{}, false
	}
	return m.visible[m.cursor], true
}

func (m *list) open() tea.Cmd {
	if n, ok := m.current(); ok {
		return tui.NavigateTo(tui.NoteKind, n.ID)
	}
	return nil
}

func (m *list) focusSearch() tea.Cmd {
	m.focus = focusSearch
	return m.search.Focus()
}

func (m *list) blurSearch() {
	m.search.Blur()
	m.focus = focusList
}

// closeSearch clears the search term and leaves the search box.
func (m *list) closeSearch() {
	m.search.SetValue("")
	m.Filter.UpdateSearchTerm("")
	m.applyFilter()
	m.blurSearch()
}

func (m *list) escape() tea.Cmd {
	switch m.focus {
	case focusSearch:
		m.closeSearch()
	case focusCategories:
		m.focus = focusList
	default:
		return tui.GoBack()
	}
	return nil
}

func (m *list) toggleFilterPanel() {
	show := !m.Filter.Get().ShowCategoryFilter
	m.Filter.UpdateShowCategoryFilter(show)
	switch {
	case show && len(m.categories) > 0:
		m.focus = focusCategories
	case !show && m.focus == focusCategories:
		m.focus = focusList
	}
}

func (m *list) toggleCategory() {
	if len(m.categories) == 0 {
		return
	}
	m.Filter.ToggleCategory(m.categories[m.categoryCursor].Name)
	m.applyFilter()
}

func (m *list) clearFilters() tea.Cmd {
	m.Filter.Clear()
	m.search.SetValue("")
	m.blurSearch()
	m.applyFilter()
	return tui.ReportInfo("cleared filters")
}

func (m *list) Title() string {
	title := tui.TitleStyle().Render("Notes")
	if len(m.visible) != len(m.notes) {
		return fmt.Sprintf("%s (%d/%d)", title, len(m.visible), len(m.notes))
	}
	return fmt.Sprintf("%s (%d)", title, len(m.notes))
}

func (m *list) HelpBindings() []key.Binding {
	return []key.Binding{
		keys.Common.New,
		keys.Common.Open,
		keys.Common.Edit,
		keys.Common.Delete,
		keys.Common.Search,
		localKeys.Filter,
		localKeys.ClearFilters,
		localKeys.Categories,
		localKeys.Settings,
	}
}

// header renders everything above the rows.
func (m *list) header() []string {
	var lines []string
	if m.focus == focusSearch || m.search.Value() != "" {
		lines = append(lines, m.search.View())
	}
	state := m.Filter.Get()
	if m.Settings.Get().ShowActiveFilters && state.Active() {
		var parts []string
		if state.SearchTerm != "" {
			parts = append(parts, fmt.Sprintf("search %q", state.SearchTerm))
		}
		if len(state.SelectedCategories) > 0 {
			parts = append(parts, "categories: "+strings.Join(state.SelectedCategories, ", "))
		}
		banner := "Filtered by " + strings.Join(parts, " · ") + "  (x to clear)"
		lines = append(lines, tui.AccentStyle().Render(tui.TruncateRight(banner, m.width, "…")))
	}
	if state.ShowCategoryFilter {
		lines = append(lines, m.categoryPanel(state.SelectedCategories))
	}
	return lines
}

func (m *list) categoryPanel(selected []string) string {
	if len(m.categories) == 0 {
		return tui.Faint.Render("No categories")
	}
	badges := make([]string, len(m.categories))
	for i, c := range m.categories {
		label := c.Name
		if slices.Contains(selected, c.Name) {
			label = "✓ " + label
		}
		badge := tui.Badge(label, c.Color)
		if m.focus == focusCategories && i == m.categoryCursor {
			badge = tui.Bold.Underline(true).Render("›") + badge
		} else {
			badge = " " + badge
		}
		badges[i] = badge
	}
	return lipgloss.NewStyle().Width(m.width).Render(strings.Join(badges, " "))
}

func (m *list) rowsHeight() int {
	return m.height - len(m.header())
}

func (m *list) View() string {
	lines := m.header()
	if len(m.visible) == 0 {
		msg := "No notes yet. Press n to create one."
		if len(m.notes) > 0 {
			msg = "No notes match the current filters."
		}
		lines = append(lines, tui.Faint.Padding(0, 1).Render(msg))
		return strings.Join(lines, "\n")
	}
	end := min(len(m.visible), m.offset+max(1, m.rowsHeight()))
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(m.visible[i], i == m.cursor))
	}
	return strings.Join(lines, "\n")
}

func (m *list) renderRow(n note.Note, current bool) string {
	var badges []string
	for _, name := range n.Categories {
		badges = append(badges, tui.Badge(name, note.ColorOf(m.categories, name)))
	}
	right := strings.Join(append(badges, tui.Faint.Render(n.FormatCreated())), " ")

	text := n.Title
	if n.Description != "" {
		text += " - " + n.Description
	}
	avail := max(0, m.width-tui.Width(right)-4)
	plain := tui.TruncateRight(text, avail, "…")
	left := tui.Bold.Render(plain)
	if rest, ok := strings.CutPrefix(plain, n.Title); ok && rest != "" {
		left = tui.Bold.Render(n.Title) + tui.Faint.Render(rest)
	}
	left += strings.Repeat(" ", max(0, avail-tui.Width(left)))

	row := " " + left + "  " + right + " "
	if current {
		return tui.CurrentRowStyle().Render(row)
	}
	return row
}

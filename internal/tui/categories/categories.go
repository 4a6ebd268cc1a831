// Package categories provides the page for managing note categories.
package categories

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leg100/notelist/internal/alert"
	"github.com/leg100/notelist/internal/note"
	"github.com/leg100/notelist/internal/resource"
	"github.com/leg100/notelist/internal/shortcut"
	"github.com/leg100/notelist/internal/tui"
	"github.com/leg100/notelist/internal/tui/keys"
)

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

// mode is what the text input is being used for, if anything.
type mode int

const (
	modeList mode = iota
	modeSearch
	modeAdd
	modeRename
)

type model struct {
	*tui.Services

	dispatcher *shortcut.Dispatcher

	categories []note.Category
	// counts is the number of notes in each category.
	counts map[string]int
	// visible are the categories matching the search term.
	visible []note.Category
	search  string

	cursor int
	offset int

	input textinput.Model
	mode  mode
	// renaming is the category being renamed.
	renaming note.Category

	width  int
	height int
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
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	default:
		if m.mode != modeList {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// handleKey handles keys not consumed by a shortcut.
func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.mode != modeList {
		switch msg.Type {
		case tea.KeyEsc:
			return m.escape()
		case tea.KeyEnter:
			return m.submit()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.mode == modeSearch {
			m.search = m.input.Value()
			m.applySearch()
		}
		return cmd
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
	case key.Matches(msg, keys.Common.Open):
		return m.open()
	}
	return nil
}

func (m *model) Focus() shortcut.Target {
	if m.mode != modeList {
		return shortcut.TargetTextInput
	}
	return shortcut.TargetList
}

func (m *model) Activate() func() {
	queue := m.Deferred.Queue
	bindings := tui.Bindings{}.
		Add(keys.Common.Search, func() { queue(m.startInput(modeSearch)) }).
		Add(keys.Global.Escape, func() { queue(m.escape()) }).
		Add(keys.Common.Open, func() {
			if m.mode != modeList {
				queue(m.submit())
			} else {
				queue(m.open())
			}
		}).
		Add(localKeys.Add, func() { queue(m.startInput(modeAdd)) }).
		Add(keys.Common.New, func() { queue(m.startInput(modeAdd)) }).
		Add(localKeys.Rename, func() { queue(m.startInput(modeRename)) }).
		Add(localKeys.Recolor, m.recolor).
		Add(keys.Common.Delete, m.confirmDelete)
	return m.dispatcher.Activate(bindings)
}

func (m *model) reload() {
	ctx := context.Background()
	m.categories = m.Notes.Categories(ctx)
	m.counts = make(map[string]int, len(m.categories))
	for _, n := range m.Notes.List(ctx) {
		for _, c := range n.Categories {
			m.counts[c]++
		}
	}
	m.applySearch()
}

func (m *model) applySearch() {
	term := strings.ToLower(strings.TrimSpace(m.search))
	m.visible = m.visible[:0]
	for _, c := range m.categories {
		if term == "" || strings.Contains(strings.ToLower(c.Name), term) {
			m.visible = append(m.visible, c)
		}
	}
	m.moveCursor(0)
}

func (m *model) moveCursor(delta int) {
	m.cursor = max(0, min(len(m.visible)-1, m.cursor+delta))
	rows := m.rowsHeight()
	switch {
	case m.cursor < m.offset:
		m.offset = m.cursor
	case rows > 0 && m.cursor >= m.offset+rows:
		m.offset = m.cursor - rows + 1
	}
}

func (m *model) current() (note.Category, bool) {
	if len(m.visible) == 0 {
		return note.Category{}, false
	}
	return m.visible[m.cursor], true
}

// open shows the notes in the current category.
func (m *model) open() tea.Cmd {
	c, ok := m.current()
	if !ok {
		return nil
	}
	m.Filter.Clear()
	m.Filter.UpdateSelectedCategories([]string{c.Name})
	return tui.NavigateTo(tui.NoteListKind, 0)
}

func (m *model) startInput(md mode) tea.Cmd {
	m.input.Placeholder = ""
	switch md {
	case modeSearch:
		m.input.Prompt = "Search: "
		m.input.SetValue(m.search)
	case modeAdd:
		m.input.Prompt = "New category: "
		m.input.Placeholder = "name"
		m.input.SetValue("")
	case modeRename:
		c, ok := m.current()
		if !ok {
			return nil
		}
		m.renaming = c
		m.input.Prompt = fmt.Sprintf("Rename %q to: ", c.Name)
		m.input.SetValue(c.Name)
	}
	m.input.CursorEnd()
	m.mode = md
	return m.input.Focus()
}

func (m *model) stopInput() {
	m.input.Blur()
	m.mode = modeList
}

func (m *model) escape() tea.Cmd {
	switch m.mode {
	case modeList:
		return tui.GoBack()
	case modeSearch:
		m.search = ""
		m.applySearch()
	}
	m.stopInput()
	return nil
}

// submit completes the current input.
func (m *model) submit() tea.Cmd {
	value := strings.TrimSpace(m.input.Value())
	switch m.mode {
	case modeSearch:
		m.stopInput()
	case modeAdd:
		if m.add(value) {
			m.stopInput()
		}
	case modeRename:
		if m.rename(m.renaming, value) {
			m.stopInput()
		}
	}
	return nil
}

// validate checks a new category name, alerting the user if it is unusable.
// A name only differing from the ignored category in case is permitted.
func (m *model) validate(name, ignore string) bool {
	if name == "" {
		m.Alerts.Warning("Missing Name", "Category name is required!")
		return false
	}
	if existing, ok := find(name, m.categories); ok && existing.Name != ignore {
		m.Alerts.Warning("Duplicate Category", "Category with this name already exists!")
		return false
	}
	others := slices.DeleteFunc(slices.Clone(m.categories), func(c note.Category) bool {
		return c.Name == ignore
	})
	if similar, ok := similarTo(name, others); ok {
		m.Alerts.Info("Similar Category", fmt.Sprintf("A similar category %q already exists.", similar))
	}
	return true
}

func (m *model) add(name string) bool {
	if !m.validate(name, "") {
		return false
	}
	c := note.Category{Name: name, Color: randomColor("")}
	if err := m.Notes.SaveCategory(context.Background(), c); err != nil {
		m.Alerts.Error("Error", "Error adding category!")
		return false
	}
	m.Alerts.Success("Category Added", fmt.Sprintf("Added %q", name))
	m.reload()
	m.selectByName(name)
	return true
}

// rename replaces a category with a newly named one of the same color, and
// renames it on every note carrying it.
func (m *model) rename(old note.Category, name string) bool {
	if name == old.Name {
		return true
	}
	if !m.validate(name, old.Name) {
		return false
	}
	ctx := context.Background()
	err := m.Notes.SaveCategory(ctx, note.Category{Name: name, Color: old.Color})
	if err == nil {
		err = m.Notes.DeleteCategory(ctx, old.Name)
	}
	if err == nil {
		_, err = m.Notes.UpdateCategoryInNotes(ctx, old.Name, name)
	}
	if err != nil {
		m.Alerts.Error("Error", "Error updating category!")
		return false
	}
	m.replaceInFilter(old.Name, name)
	m.Alerts.Success("Category Updated", fmt.Sprintf("Renamed %q to %q", old.Name, name))
	m.reload()
	m.selectByName(name)
	return true
}

func (m *model) recolor() {
	c, ok := m.current()
	if !ok {
		return
	}
	c.Color = randomColor(c.Color)
	if err := m.Notes.SaveCategory(context.Background(), c); err != nil {
		m.Alerts.Error("Error", "Error updating category!")
		return
	}
	m.reload()
}

func (m *model) confirmDelete() {
	c, ok := m.current()
	if !ok {
		return
	}
	msg := fmt.Sprintf("Are you sure you want to delete category %q?\n\nThis will remove the category from all notes that use it.", c.Name)
	m.Alerts.Confirm("Delete Category", msg, func() {
		ctx := context.Background()
		err := m.Notes.DeleteCategory(ctx, c.Name)
		if err == nil {
			_, err = m.Notes.RemoveCategoryFromNotes(ctx, c.Name)
		}
		if err != nil {
			m.Alerts.Error("Error", "Error deleting category!")
			return
		}
		m.replaceInFilter(c.Name, "")
		m.Alerts.Success("Category Deleted", fmt.Sprintf("Deleted %q", c.Name))
		m.reload()
	}, nil, alert.StyleDanger)
}

// replaceInFilter renames a category selected in the notes filter, or
// deselects it if name is empty.
func (m *model) replaceInFilter(old, name string) {
	selected := m.Filter.Get().SelectedCategories
	i := slices.Index(selected, old)
	if i < 0 {
		return
	}
	if name == "" {
		selected = slices.Delete(selected, i, i+1)
	} else {
		selected[i] = name
	}
	m.Filter.UpdateSelectedCategories(selected)
}

func (m *model) selectByName(name string) {
	i := slices.IndexFunc(m.visible, func(c note.Category) bool { return c.Name == name })
	if i >= 0 {
		m.cursor = i
		m.moveCursor(0)
	}
}

func (m *model) Title() string {
	return fmt.Sprintf("%s (%d)", tui.TitleStyle().Render("Categories"), len(m.categories))
}

func (m *model) HelpBindings() []key.Binding {
	return []key.Binding{
		localKeys.Add,
		localKeys.Rename,
		localKeys.Recolor,
		keys.Common.Delete,
		keys.Common.Search,
		keys.Common.Open,
	}
}

func (m *model) header() []string {
	if m.mode != modeList || m.search != "" {
		return []string{m.input.View()}
	}
	return nil
}

func (m *model) rowsHeight() int {
	return m.height - len(m.header())
}

func (m *model) View() string {
	lines := m.header()
	if len(m.visible) == 0 {
		msg := "No categories yet. Press a to add one."
		if len(m.categories) > 0 {
			msg = "No categories match the search."
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

func (m *model) renderRow(c note.Category, current bool) string {
	count := m.counts[c.Name]
	noun := "notes"
	if count == 1 {
		noun = "note"
	}
	right := tui.Faint.Render(fmt.Sprintf("%d %s  %s", count, noun, c.Color))
	left := tui.Badge(c.Name, c.Color)
	gap := max(1, m.width-tui.Width(left)-tui.Width(right)-2)
	row := " " + left + strings.Repeat(" ", gap) + right + " "
	if current {
		return tui.CurrentRowStyle().Render(row)
	}
	return row
}

// Package editor provides the page for creating and editing a note.
package editor

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leg100/notelist/internal/draft"
	"github.com/leg100/notelist/internal/note"
	"github.com/leg100/notelist/internal/resource"
	"github.com/leg100/notelist/internal/shortcut"
	"github.com/leg100/notelist/internal/tui"
	"github.com/leg100/notelist/internal/tui/keys"
)

type field int

const (
	fieldTitle field = iota
	fieldDescription
	fieldImage
	fieldContent
	fieldCategorySearch
	fieldSave
	fieldCancel

	numFields
)

// fixedHeight is the number of lines taken by everything other than the
// content textarea.
const fixedHeight = 9

type Maker struct {
	*tui.Services
}

func (mm *Maker) Make(page tui.Page, width, height int) (tui.Model, error) {
	ctx := context.Background()
	m := &editor{
		Services:       mm.Services,
		dispatcher:     mm.NewDispatcher(),
		draftID:        page.NoteID,
		title:          newInput("Title:       ", "required"),
		description:    newInput("Description: ", ""),
		img:            newInput("Image URL:   ", "https://"),
		categorySearch: newInput("Categories:  ", "search"),
		content:        textarea.New(),
		selected:       []string{},
		width:          width,
		height:         height,
	}
	m.content.Placeholder = "Write your note in markdown..."
	m.content.ShowLineNumbers = false
	m.content.CharLimit = 0
	m.content.MaxHeight = 0

	if page.NoteID != 0 {
		existing := m.Notes.Get(ctx, page.NoteID)
		if existing == nil {
			return nil, fmt.Errorf("editing note %d: %w", page.NoteID, resource.ErrNotFound)
		}
		m.id = existing.ID
		m.createdAt = existing.CreatedAt
		m.title.SetValue(existing.Title)
		m.description.SetValue(existing.Description)
		m.content.SetValue(existing.Content)
		if existing.Img != nil {
			m.img.SetValue(*existing.Img)
		}
		m.selected = slices.Clone(existing.Categories)
	} else {
		m.id = m.Notes.NextID(ctx)
	}
	m.categories = m.Notes.Categories(ctx)
	m.restoreDraft()
	m.resize()
	m.setFocus(fieldTitle)
	return m, nil
}

func newInput(prompt, placeholder string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = placeholder
	return input
}

type editor struct {
	*tui.Services

	dispatcher *shortcut.Dispatcher

	// id is the id the note is saved with.
	id uint32
	// draftID identifies the draft belonging to this editor: the note's id,
	// or zero for a new note.
	draftID   uint32
	createdAt string

	title          textinput.Model
	description    textinput.Model
	img            textinput.Model
	content        textarea.Model
	categorySearch textinput.Model

	categories     []note.Category
	selected       []string
	categoryCursor int

	focused field
	// draftSaved is when the draft was last touched.
	draftSaved time.Time

	width  int
	height int
}

func (m *editor) Init() tea.Cmd {
	return textinput.Blink
}

func (m *editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case resource.Event[note.Category]:
		m.categories = m.Notes.Categories(context.Background())
		m.clampCategoryCursor()
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, m.updateFocused(msg)
}

func (m *editor) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Navigation.NextField):
		return m.setFocus((m.focused + 1) % numFields)
	case key.Matches(msg, keys.Navigation.PrevField):
		return m.setFocus((m.focused + numFields - 1) % numFields)
	case msg.Type == tea.KeyEsc:
		return m.escape()
	}
	switch m.focused {
	case fieldTitle, fieldDescription, fieldImage:
		if msg.Type == tea.KeyEnter {
			return m.setFocus(m.focused + 1)
		}
	case fieldCategorySearch:
		switch msg.Type {
		case tea.KeyUp:
			m.categoryCursor--
			m.clampCategoryCursor()
			return nil
		case tea.KeyDown:
			m.categoryCursor++
			m.clampCategoryCursor()
			return nil
		case tea.KeyEnter:
			m.toggleCategory()
			return nil
		}
		before := m.categorySearch.Value()
		cmd := m.updateFocused(msg)
		if m.categorySearch.Value() != before {
			m.categoryCursor = 0
		}
		return cmd
	case fieldSave:
		if msg.Type == tea.KeyEnter {
			return m.save()
		}
		return nil
	case fieldCancel:
		if msg.Type == tea.KeyEnter {
			return m.cancel()
		}
		return nil
	}
	before := m.values()
	cmd := m.updateFocused(msg)
	if m.values() != before {
		m.touchDraft()
	}
	return cmd
}

// values joins the text of the editable fields, for detecting edits.
func (m *editor) values() string {
	return strings.Join([]string{
		m.title.Value(),
		m.description.Value(),
		m.img.Value(),
		m.content.Value(),
	}, "\x00")
}

// updateFocused forwards a message to the focused input.
func (m *editor) updateFocused(msg tea.Msg) (cmd tea.Cmd) {
	switch m.focused {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldDescription:
		m.description, cmd = m.description.Update(msg)
	case fieldImage:
		m.img, cmd = m.img.Update(msg)
	case fieldContent:
		m.content, cmd = m.content.Update(msg)
	case fieldCategorySearch:
		m.categorySearch, cmd = m.categorySearch.Update(msg)
	}
	return cmd
}

func (m *editor) setFocus(f field) tea.Cmd {
	m.title.Blur()
	m.description.Blur()
	m.img.Blur()
	m.content.Blur()
	m.categorySearch.Blur()

	m.focused = f
	switch f {
	case fieldTitle:
		return m.title.Focus()
	case fieldDescription:
		return m.description.Focus()
	case fieldImage:
		return m.img.Focus()
	case fieldContent:
		return m.content.Focus()
	case fieldCategorySearch:
		return m.categorySearch.Focus()
	}
	return nil
}

func (m *editor) Focus() shortcut.Target {
	switch m.focused {
	case fieldContent:
		return shortcut.TargetTextArea
	case fieldSave, fieldCancel:
		return shortcut.TargetButton
	default:
		return shortcut.TargetTextInput
	}
}

func (m *editor) Activate() func() {
	queue := m.Deferred.Queue
	bindings := tui.Bindings{}.
		Add(keys.Common.Save, func() { queue(m.save()) }).
		Add(keys.Common.Cancel, func() { queue(m.escape()) })
	return m.dispatcher.Activate(bindings)
}

// escape leaves a text field for the save button, or cancels editing if no
// text field has focus.
func (m *editor) escape() tea.Cmd {
	if m.Focus().TextEntry() {
		return m.setFocus(fieldSave)
	}
	return m.cancel()
}

func (m *editor) note() note.Note {
	n := note.Note{
		ID:          m.id,
		Title:       m.title.Value(),
		Description: m.description.Value(),
		Content:     m.content.Value(),
		Categories:  slices.Clone(m.selected),
		CreatedAt:   m.createdAt,
	}
	if img := m.img.Value(); img != "" {
		n.Img = &img
	}
	return n
}

func (m *editor) save() tea.Cmd {
	n := m.note()
	if strings.TrimSpace(n.Title) == "" {
		m.Alerts.Warning("Missing Title", "Title is required!")
		return m.setFocus(fieldTitle)
	}
	if n.CreatedAt == "" {
		n.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if err := m.Notes.Save(context.Background(), n); err != nil {
		m.Alerts.Error("Error", "Error saving note!")
		return nil
	}
	m.Drafts.Clear()
	m.Alerts.Success("Note Saved", fmt.Sprintf("Saved %q", n.Title))
	return tui.GoBack()
}

func (m *editor) cancel() tea.Cmd {
	if m.Drafts.Pending() || m.hasDraft() {
		m.Drafts.Discard()
	}
	return tui.GoBack()
}

func (m *editor) hasDraft() bool {
	d, ok := m.Drafts.Load()
	return ok && d.For(m.draftID)
}

func (m *editor) touchDraft() {
	n := m.note()
	img := ""
	if n.Img != nil {
		img = *n.Img
	}
	m.Drafts.Touch(draft.Draft{
		NoteID:      m.draftID,
		Title:       n.Title,
		Description: n.Description,
		Content:     n.Content,
		Img:         img,
		Categories:  n.Categories,
	})
	m.draftSaved = time.Now()
}

// restoreDraft populates the fields from a persisted draft belonging to this
// editor.
func (m *editor) restoreDraft() {
	d, ok := m.Drafts.Load()
	if !ok || !d.For(m.draftID) {
		return
	}
	m.title.SetValue(d.Title)
	m.title.CursorEnd()
	m.description.SetValue(d.Description)
	m.content.SetValue(d.Content)
	m.img.SetValue(d.Img)
	if d.Categories != nil {
		m.selected = slices.Clone(d.Categories)
	}
	msg := "Restored unsaved changes"
	if saved, err := time.Parse(time.RFC3339, d.SavedAt); err == nil {
		msg += " from " + tui.Ago(time.Now(), saved)
		m.draftSaved = saved
	}
	m.Alerts.Success("Draft Restored", msg)
}

// filtered returns the categories matching the category search term.
func (m *editor) filtered() []note.Category {
	term := strings.ToLower(strings.TrimSpace(m.categorySearch.Value()))
	if term == "" {
		return m.categories
	}
	var matches []note.Category
	for _, c := range m.categories {
		if strings.Contains(strings.ToLower(c.Name), term) {
			matches = append(matches, c)
		}
	}
	return matches
}

func (m *editor) clampCategoryCursor() {
	m.categoryCursor = max(0, min(m.categoryCursor, len(m.filtered())-1))
}

func (m *editor) toggleCategory() {
	filtered := m.filtered()
	if len(filtered) == 0 {
		return
	}
	name := filtered[m.categoryCursor].Name
	if i := slices.Index(m.selected, name); i >= 0 {
		m.selected = slices.Delete(m.selected, i, i+1)
	} else {
		m.selected = append(m.selected, name)
	}
	m.touchDraft()
}

func (m *editor) resize() {
	m.title.Width = max(10, m.width-20)
	m.description.Width = max(10, m.width-20)
	m.img.Width = max(10, m.width-20)
	m.categorySearch.Width = max(10, m.width-20)
	m.content.SetWidth(max(10, m.width-2))
	m.content.SetHeight(max(3, m.height-fixedHeight))
}

func (m *editor) Title() string {
	if m.draftID == 0 {
		return tui.TitleStyle().Render("New Note")
	}
	return fmt.Sprintf("%s #%d", tui.TitleStyle().Render("Edit Note"), m.id)
}

func (m *editor) View() string {
	lines := []string{
		" " + m.title.View(),
		" " + m.description.View(),
		" " + m.img.View(),
		tui.Faint.Render(" Content:"),
		m.content.View(),
		" " + m.categorySearch.View(),
		m.categoriesView(),
		"",
		m.buttonsView(),
	}
	return strings.Join(lines, "\n")
}

func (m *editor) categoriesView() string {
	filtered := m.filtered()
	if len(filtered) == 0 {
		return tui.Faint.Render("   No categories found")
	}
	items := make([]string, len(filtered))
	for i, c := range filtered {
		box := "☐"
		if slices.Contains(m.selected, c.Name) {
			box = "☑"
		}
		item := box + " " + tui.Badge(c.Name, c.Color)
		if m.focused == fieldCategorySearch && i == m.categoryCursor {
			item = tui.Bold.Render("›") + item
		} else {
			item = " " + item
		}
		items[i] = item
	}
	return tui.TruncateRight("  "+strings.Join(items, " "), m.width, "…")
}

func (m *editor) buttonsView() string {
	button := func(label string, f field) string {
		if m.focused == f {
			return tui.CurrentRowStyle().Padding(0, 1).Render(label)
		}
		return tui.Regular.Padding(0, 1).Render(label)
	}
	status := ""
	if !m.draftSaved.IsZero() {
		status = tui.Faint.Render("draft saved " + tui.Ago(time.Now(), m.draftSaved))
	}
	return " " + button("[ Save ]", fieldSave) + " " + button("[ Cancel ]", fieldCancel) + "  " + status
}

func (m *editor) HelpBindings() []key.Binding {
	return []key.Binding{
		keys.Common.Save,
		keys.Common.Cancel,
		keys.Navigation.NextField,
	}
}

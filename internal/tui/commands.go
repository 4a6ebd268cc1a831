package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// CmdHandler returns a command that returns the given message.
func CmdHandler(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

// NavigateTo sends an instruction to navigate to a page with the given model
// kind, and optionally for a particular note.
func NavigateTo(kind Kind, noteID uint32) tea.Cmd {
	return CmdHandler(NavigationMsg{Kind: kind, NoteID: noteID})
}

// GoBack sends an instruction to return to the previous page.
func GoBack() tea.Cmd {
	return CmdHandler(BackMsg{})
}

func ReportInfo(msg string, args ...any) tea.Cmd {
	return CmdHandler(InfoMsg(fmt.Sprintf(msg, args...)))
}

func ReportError(err error, msg string, args ...any) tea.Cmd {
	return CmdHandler(NewErrorMsg(err, msg, args...))
}

package tui

// NavigationMsg is an instruction to navigate to a page.
type NavigationMsg Page

// BackMsg is an instruction to return to the previous page.
type BackMsg struct{}

type InfoMsg string

type ErrorMsg struct {
	Error   error
	Message string
	Args    []any
}

func NewErrorMsg(err error, msg string, args ...any) ErrorMsg {
	return ErrorMsg{
		Error:   err,
		Message: msg,
		Args:    args,
	}
}

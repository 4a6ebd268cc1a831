package note

// Names of the backend commands.
const (
	CmdGetNotes             = "get_notes"
	CmdGetNoteByID          = "get_note_by_id"
	CmdSaveNote             = "save_note"
	CmdDeleteNote           = "delete_note"
	CmdGetNextNoteID        = "get_next_note_id"
	CmdGetAllCategories     = "get_all_categories"
	CmdGetNotesByCategories = "get_notes_by_categories"
	CmdGetCategories        = "get_categories"
	CmdSaveCategory         = "save_category"
	CmdDeleteCategory       = "delete_category"
)

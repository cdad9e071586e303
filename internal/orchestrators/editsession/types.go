package editsession

// Mode is the view/edit state of a session
type Mode string

// Session modes
const (
	ModeViewing Mode = "viewing"
	ModeEditing Mode = "editing"
)

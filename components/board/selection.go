package board

// ViewMode switches between the engineer (operator) and client
// presentations. It affects themes and edit affordances only; data flow is
// identical in both.
type ViewMode string

const (
	ModeEngineer ViewMode = "engineer"
	ModeClient   ViewMode = "client"
)

// Session holds per-viewer UI state that is never persisted with a
// dashboard: the presentation mode, the edit-mode flag, and the single
// active widget selection.
type Session struct {
	Mode     ViewMode
	EditMode bool
	selected string
}

// NewSession starts in client mode with editing off.
func NewSession() *Session {
	return &Session{Mode: ModeClient}
}

// Selected returns the selected widget id, empty when nothing is selected.
func (s *Session) Selected() string { return s.selected }

// Click feeds a widget click through the selection state machine and
// reports whether the widget is selected afterwards.
//
// Clicks outside edit mode never change selection. In edit mode a click
// selects the widget, a second click on the same widget toggles it off, and
// clicking another widget moves the selection.
func (s *Session) Click(widgetID string) bool {
	if !s.EditMode || widgetID == "" {
		return s.selected == widgetID && widgetID != ""
	}
	if s.selected == widgetID {
		s.selected = ""
		return false
	}
	s.selected = widgetID
	return true
}

// Deselect clears the selection explicitly.
func (s *Session) Deselect() { s.selected = "" }

// SetEditMode toggles editing. Leaving edit mode drops the selection since
// selection is edit-mode-only state.
func (s *Session) SetEditMode(enabled bool) {
	s.EditMode = enabled
	if !enabled {
		s.selected = ""
	}
}

package state

// Pane is the part of the screen that receives navigation keys
type Pane int

const (
	PaneList Pane = iota
	PaneMap
)

// AppState contains the terminal-only state that no service owns
type AppState struct {
	// UI state
	FocusedPane   Pane
	ShowInfo      bool
	InfoContent   string
	StatusMessage string // status bar message
	StatusIsError bool
	InPagerMode   bool // rendering paused while ov owns the terminal

	// Map zoom used when there is nothing to frame yet
	DefaultSpan float64 // degrees of latitude
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		FocusedPane: PaneList,
		DefaultSpan: 0.2,
	}
}

// SetStatus shows a status bar message
func (s *AppState) SetStatus(msg string) {
	s.StatusMessage = msg
	s.StatusIsError = false
}

// SetError shows an error in the status bar
func (s *AppState) SetError(msg string) {
	s.StatusMessage = msg
	s.StatusIsError = true
}

// ClearStatus removes the status bar message
func (s *AppState) ClearStatus() {
	s.StatusMessage = ""
	s.StatusIsError = false
}

// ToggleFocus switches key focus between list and map
func (s *AppState) ToggleFocus() Pane {
	if s.FocusedPane == PaneList {
		s.FocusedPane = PaneMap
	} else {
		s.FocusedPane = PaneList
	}
	return s.FocusedPane
}

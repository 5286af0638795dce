package selection

// State holds the selection shared by the result list and the map.
// Empty strings mean unset.
type State struct {
	SelectedID string
	FocusedID  string
	HoveredID  string
}

// IsZero reports whether nothing is selected, focused or hovered
func (s State) IsZero() bool {
	return s == State{}
}

// Source tells which surface changed the selection
type Source string

const (
	SourceList  Source = "list"
	SourceMap   Source = "map"
	SourceQuery Source = "query" // reset on a new result set
)

// Event types
type SelectionChangedEvent struct {
	Old    State
	New    State
	Source Source
}

type SelectionClearedEvent struct{}

package navigation

// State holds the scroll position of the result list
type State struct {
	ViewportOffset int
	ViewportHeight int
	Rows           int
}

// Event types for scroll changes
type ListScrolledEvent struct {
	Offset int
	Height int
}

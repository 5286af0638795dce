package searchbox

// Event types
type SearchSubmittedEvent struct {
	Input string
}

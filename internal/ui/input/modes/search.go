package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"locator/internal/ui/input/types"
)

// SearchMode edits the search box
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", ti),
	}
}

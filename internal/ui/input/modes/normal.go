package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"locator/internal/ui/input/types"
)

// NormalMode drives the result list
type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "list"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if actions, ok := sharedKey(msg, ctx); ok {
		return actions, true
	}

	switch msg.Type {
	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyEnter:
		if ctx.HasHovered() {
			return []types.Action{types.SelectAction{}}, true
		}
		return nil, false

	case tea.KeyTab:
		return []types.Action{types.ChangeModeAction{Mode: types.ModeMap}}, true
	}

	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case " ":
		if ctx.HasHovered() {
			return []types.Action{types.SelectAction{}}, true
		}
		return nil, true

	case "esc":
		if ctx.HasSelected() {
			return []types.Action{types.ClearSelectionAction{}}, true
		}
		return nil, true

	case "g":
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			// gg - go to top (within timeout)
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true

	case "G":
		m.lastKeyWasG = false
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	default:
		// Any other key cancels the 'g' prefix
		m.lastKeyWasG = false
	}

	return nil, false
}

// sharedKey handles keys that mean the same in list and map mode
func sharedKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true

	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.CurrentInput()}}, true

	case "a":
		if ctx.SearchAreaAvailable() {
			return []types.Action{types.AreaSearchAction{}}, true
		}
		return nil, true

	case "L":
		return []types.Action{types.GeolocateAction{}}, true

	case "]":
		return []types.Action{types.PageAction{Direction: "next"}}, true

	case "[":
		return []types.Action{types.PageAction{Direction: "prev"}}, true

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		index := int(msg.String()[0] - '1')
		if index < ctx.FacetCount() {
			return []types.Action{types.ToggleFacetAction{Index: index}}, true
		}
		return nil, true

	case "0":
		return []types.Action{types.ClearFacetsAction{}}, true

	case "i":
		if ctx.HasSelected() || ctx.HasHovered() {
			return []types.Action{types.ToggleInfoAction{}}, true
		}
		return nil, true

	case "y":
		return []types.Action{types.ShowLinkAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	}
	return nil, false
}

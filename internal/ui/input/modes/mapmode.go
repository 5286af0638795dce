package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"locator/internal/ui/input/types"
)

// panStep is the share of the visible span one key press moves the map
const panStep = 0.25

// MapMode pans and zooms the map and walks its markers
type MapMode struct{}

func NewMapMode() *MapMode {
	return &MapMode{}
}

func (m *MapMode) Name() string {
	return "map"
}

func (m *MapMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *MapMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *MapMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if actions, ok := sharedKey(msg, ctx); ok {
		return actions, true
	}

	switch msg.String() {
	case "up", "k":
		return []types.Action{types.PanAction{LatFrac: panStep}}, true
	case "down", "j":
		return []types.Action{types.PanAction{LatFrac: -panStep}}, true
	case "left", "h":
		return []types.Action{types.PanAction{LngFrac: -panStep}}, true
	case "right", "l":
		return []types.Action{types.PanAction{LngFrac: panStep}}, true
	case "+", "=":
		return []types.Action{types.ZoomAction{Factor: 0.5}}, true
	case "-", "_":
		return []types.Action{types.ZoomAction{Factor: 2}}, true
	case "n":
		return []types.Action{types.HoverMarkerAction{Step: 1}}, true
	case "N":
		return []types.Action{types.HoverMarkerAction{Step: -1}}, true
	case "enter", " ":
		if ctx.HasHovered() {
			return []types.Action{types.SelectAction{}}, true
		}
		return nil, true
	case "tab", "esc":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	}
	return nil, false
}

package viewmodels

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"locator/internal/config"
	"locator/internal/ui/coordinator"
	"locator/internal/ui/state"
	"locator/internal/ui/views"
)

// ViewModel transforms coordinator and application state into view-ready data
type ViewModel struct {
	coord    *coordinator.Coordinator
	state    *state.AppState
	settings config.LocatorSettings
	width    int
	height   int

	help      help.Model
	keys      help.KeyMap
	spinner   spinner.Model
	textInput textinput.Model
	modeName  string
	searching bool
}

// NewViewModel creates a new view model
func NewViewModel(coord *coordinator.Coordinator, appState *state.AppState, settings config.LocatorSettings) *ViewModel {
	return &ViewModel{
		coord:    coord,
		state:    appState,
		settings: settings,
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
}

// SetHelp sets the help model and the key map it renders
func (vm *ViewModel) SetHelp(helpModel help.Model, keys help.KeyMap) {
	vm.help = helpModel
	vm.keys = keys
}

// SetSpinner sets the spinner frame source
func (vm *ViewModel) SetSpinner(s spinner.Model) {
	vm.spinner = s
}

// SetInput sets the search box model and the current mode
func (vm *ViewModel) SetInput(ti textinput.Model, modeName string, searching bool) {
	vm.textInput = ti
	vm.modeName = modeName
	vm.searching = searching
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	result := vm.coord.Query.GetResult()
	sel := vm.coord.Selection.GetState()

	rows := make([]views.ResultRow, len(result.Results))
	for i, r := range result.Results {
		rows[i] = views.ResultRow{
			Number:        i + 1,
			ID:            r.ID,
			Name:          r.Name,
			Address:       r.Address,
			Category:      r.Category,
			Distance:      r.Distance,
			HasCoordinate: r.HasCoordinate(),
			Hovered:       r.ID == sel.HoveredID,
			Selected:      r.ID == sel.SelectedID,
		}
	}

	vs := views.ViewState{
		Width:          vm.width,
		Height:         vm.height,
		Title:          vm.settings.Title,
		Subtitle:       vm.settings.Subtitle,
		SearchBox:      vm.textInput.View(),
		SearchFocused:  vm.searching,
		ModeName:       vm.modeName,
		ActiveFilters:  vm.activeFilters(),
		Rows:           rows,
		ViewportOffset: vm.coord.Navigation.GetViewportOffset(),
		ViewportHeight: vm.coord.Navigation.GetViewportHeight(),
		ResultInfo:     vm.resultInfo(result.Total, len(result.Results)),
		Fallback:       result.Fallback,
		Map:            vm.buildMapView(sel.HoveredID, sel.SelectedID),
		Loading:        vm.coord.IsSpinning(),
		Spinner:        vm.spinner.View(),
		StatusMessage:  vm.state.StatusMessage,
		StatusIsError:  vm.state.StatusIsError,
		DeepLink:       vm.coord.DeepLink(),
		ShowInfo:       vm.state.ShowInfo,
		InfoContent:    vm.state.InfoContent,
	}
	if result.Err != nil {
		vs.Error = result.Err.Error()
	}
	if vm.keys != nil {
		vs.HelpView = vm.help.View(vm.keys)
	}

	for _, opt := range vm.coord.Facets.Options(result.Results) {
		vs.Facets = append(vs.Facets, views.FacetChip{
			Label:  opt.Value,
			Count:  opt.Count,
			Active: opt.Active,
		})
	}

	return vs
}

func (vm *ViewModel) activeFilters() []string {
	var names []string
	for _, f := range vm.coord.Query.State().Committed.Get().StaticFilters {
		if f.Selected {
			names = append(names, f.DisplayName)
		}
	}
	return names
}

func (vm *ViewModel) resultInfo(total, count int) string {
	if count == 0 {
		return ""
	}
	offset := vm.coord.Query.State().Committed.Get().Offset
	return fmt.Sprintf("Showing %d-%d of %d", offset+1, offset+count, total)
}

func (vm *ViewModel) buildMapView(hovered, selected string) views.MapView {
	mv := views.MapView{
		UserPanned:     vm.coord.Viewport.UserPanned(),
		ShowAreaButton: vm.coord.Area.Available(),
		Focused:        vm.state.FocusedPane == state.PaneMap,
	}
	mv.Bounds, mv.HasBounds = vm.coord.Framing()

	for _, m := range vm.coord.Markers() {
		mv.Markers = append(mv.Markers, views.MapMarker{
			Number:     m.Index,
			Coordinate: m.Coordinate,
			Hovered:    m.ID == hovered,
			Selected:   m.ID == selected,
		})
	}
	return mv
}

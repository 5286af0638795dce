package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Selection actions
type SelectAction struct{}

func (a SelectAction) Type() string { return "select" }

type ClearSelectionAction struct{}

func (a ClearSelectionAction) Type() string { return "clear_selection" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data string // Optional initial text
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Map actions
type PanAction struct {
	LatFrac float64 // fraction of the visible span, north positive
	LngFrac float64 // fraction of the visible span, east positive
}

func (a PanAction) Type() string { return "pan" }

type ZoomAction struct {
	Factor float64 // <1 zooms in
}

func (a ZoomAction) Type() string { return "zoom" }

type HoverMarkerAction struct {
	Step int
}

func (a HoverMarkerAction) Type() string { return "hover_marker" }

// Query actions
type AreaSearchAction struct{}

func (a AreaSearchAction) Type() string { return "area_search" }

type GeolocateAction struct{}

func (a GeolocateAction) Type() string { return "geolocate" }

type PageAction struct {
	Direction string // "next" or "prev"
}

func (a PageAction) Type() string { return "page" }

type ToggleFacetAction struct {
	Index int // 0-based position in the facet bar
}

func (a ToggleFacetAction) Type() string { return "toggle_facet" }

type ClearFacetsAction struct{}

func (a ClearFacetsAction) Type() string { return "clear_facets" }

// Other actions
type ToggleInfoAction struct{}

func (a ToggleInfoAction) Type() string { return "toggle_info" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type ShowLinkAction struct{}

func (a ShowLinkAction) Type() string { return "show_link" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }

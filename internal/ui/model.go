package ui

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"locator/internal/config"
	"locator/internal/domain"
	"locator/internal/eventbus"
	"locator/internal/ui/commands"
	"locator/internal/ui/coordinator"
	"locator/internal/ui/handlers"
	"locator/internal/ui/input"
	inputtypes "locator/internal/ui/input/types"
	"locator/internal/ui/services/events"
	"locator/internal/ui/services/initial"
	"locator/internal/ui/services/query"
	"locator/internal/ui/services/selection"
	"locator/internal/ui/state"
	"locator/internal/ui/viewmodels"
	"locator/internal/ui/views"
)

// initialParamsTimeout bounds how long the first query waits for its parameters
const initialParamsTimeout = 10 * time.Second

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState
	coord  *coordinator.Coordinator
	source initial.Source

	// UI-specific state not owned by a service
	width   int
	height  int
	help    help.Model
	keys    keyMap
	spinner spinner.Model

	// Handlers
	renderer     *views.Renderer
	eventHandler *handlers.EventHandler
	viewModel    *viewmodels.ViewModel
	inputHandler *input.Handler
	helpOps      *HelpOps
	executor     *commands.Executor

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. source supplies the initial parameters
// and may be nil.
func NewModel(bus eventbus.EventBus, cfg *config.Config, source initial.Source) *Model {
	uiBus := events.NewBus()
	settings := cfg.Locator

	coord := coordinator.NewCoordinator(uiBus, query.BusDispatcher{Bus: bus}, coordinator.Options{
		Query: query.Options{
			DisplayAllOnNoResults: settings.DisplayAllOnNoResults,
			AllResultsOnLoad:      settings.AllResultsOnLoad,
			VerticalLimit:         settings.VerticalLimit,
			AllResultsLimit:       settings.AllResultsLimit,
		},
		GeolocateRadius: settings.GeolocateRadius,
	})
	appState := state.NewAppState()
	executor := commands.NewExecutor(appState, bus)
	coord.SetLocateRequestFunction(func(seq uint64) {
		executor.ExecuteRequestLocate(seq)
	})

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := &Model{
		bus:          bus,
		config:       cfg,
		state:        appState,
		coord:        coord,
		source:       source,
		help:         help.New(),
		keys:         newKeyMap(),
		spinner:      s,
		renderer:     views.NewRenderer(),
		inputHandler: input.New(settings.Placeholder),
		executor:     executor,
	}

	m.eventHandler = handlers.NewEventHandler(appState, coord, uiBus)
	m.viewModel = viewmodels.NewViewModel(coord, appState, settings)
	m.viewModel.SetHelp(m.help, m.keys)

	return m
}

// SetProgram sets the program used to hand the terminal to the pager
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Coordinator exposes the coordination layer, mainly for tests
func (m *Model) Coordinator() *coordinator.Coordinator {
	return m.coord
}

// Init starts the spinner and loads the initial parameters
func (m *Model) Init() tea.Cmd {
	m.coord.Initial.Begin()
	return tea.Batch(m.spinner.Tick, m.executor.ExecuteLoadInitialParams(m.source, initialParamsTimeout))
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewModel.SetHelp(m.help, m.keys)
		m.coord.SetViewportHeight(views.ListCapacity(msg.Height))
		return m, nil

	case tea.KeyMsg:
		if m.state.ShowInfo {
			switch msg.String() {
			case "esc", "i", "q":
				m.state.ShowInfo = false
				m.state.InfoContent = ""
				return m, nil
			}
		}

		ctx := &input.ModelContext{Coordinator: m.coord}
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	default:
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			return m, cmd
		}
		return m.handleNonKeyboardMsg(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.state.InPagerMode {
		return ""
	}

	m.viewModel.SetDimensions(m.width, m.height)
	m.viewModel.SetSpinner(m.spinner)
	m.viewModel.SetInput(
		*m.inputHandler.TextInput(),
		m.inputHandler.ModeName(),
		m.inputHandler.CurrentMode() == inputtypes.ModeSearch,
	)

	return m.renderer.Render(m.viewModel.BuildViewState())
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.eventHandler.HandleEvent(msg.Event)

	case commands.InitialParamsLoadedMsg:
		m.coord.Initial.Complete(msg.Params, msg.Err)
		m.inputHandler.SetText(m.coord.Query.GetQuery().Input)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case helpPagerMsg:
		if msg.err != nil {
			log.Printf("Help pager failed: %v", msg.err)
		}
		return m, nil

	case pauseRenderingMsg:
		m.state.InPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.state.InPagerMode = false
		return m, nil

	case handlers.ClearStatusMsg:
		m.state.ClearStatus()
		return m, nil
	}
	return m, nil
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.SelectAction:
		m.selectHovered()

	case inputtypes.ClearSelectionAction:
		m.coord.Selection.SetSelected("", m.inputSource())
		m.coord.Selection.SetFocused("", m.inputSource())

	case inputtypes.ChangeModeAction:
		if a.Mode == inputtypes.ModeMap {
			m.state.FocusedPane = state.PaneMap
		} else {
			m.state.FocusedPane = state.PaneList
		}

	case inputtypes.UpdateTextAction:
		m.coord.Query.SetInput(a.Text)

	case inputtypes.CancelTextAction:
		committed := m.coord.Query.State().Committed.Get().Input
		m.coord.Query.SetInput(committed)
		m.inputHandler.SetText(committed)

	case inputtypes.SubmitTextAction:
		if err := m.coord.SearchBox.Submit(a.Text); err != nil {
			return m.showError(err)
		}

	case inputtypes.PanAction:
		prev := m.currentBounds()
		m.coord.Viewport.OnDragEnd(prev, prev.Shift(a.LatFrac, a.LngFrac))

	case inputtypes.ZoomAction:
		prev := m.currentBounds()
		m.coord.Viewport.OnDragEnd(prev, prev.Scale(a.Factor))

	case inputtypes.HoverMarkerAction:
		var ids []string
		for _, marker := range m.coord.Markers() {
			ids = append(ids, marker.ID)
		}
		if a.Step < 0 {
			m.coord.Selection.HoverPrev(ids, selection.SourceMap)
		} else {
			m.coord.Selection.HoverNext(ids, selection.SourceMap)
		}
		m.coord.Navigation.Follow(m.coord.Selection.HoveredIndex(m.coord.ResultIDs()))

	case inputtypes.AreaSearchAction:
		if _, err := m.coord.Area.CommitAreaSearch(); err != nil {
			return m.showError(err)
		}

	case inputtypes.GeolocateAction:
		m.coord.Geolocate.Begin()

	case inputtypes.PageAction:
		var err error
		if a.Direction == "next" {
			err = m.coord.Query.NextPage()
		} else {
			err = m.coord.Query.PrevPage()
		}
		if err != nil {
			return m.showError(err)
		}

	case inputtypes.ToggleFacetAction:
		options := m.coord.Facets.Options(m.coord.Results())
		if a.Index >= len(options) {
			return nil
		}
		opt := options[a.Index]
		if err := m.coord.Facets.Toggle(opt.FieldID, opt.Value); err != nil {
			return m.showError(err)
		}

	case inputtypes.ClearFacetsAction:
		if err := m.coord.Facets.Clear(); err != nil {
			return m.showError(err)
		}

	case inputtypes.ToggleInfoAction:
		r, ok := m.coord.SelectedResult()
		if !ok {
			r, ok = m.coord.HoveredResult()
		}
		if ok {
			m.state.InfoContent = buildResultInfo(r)
			m.state.ShowInfo = true
		}

	case inputtypes.ShowLinkAction:
		return m.executor.ExecuteShowLink(m.coord.DeepLink())

	case inputtypes.ToggleHelpAction:
		if m.program == nil {
			return nil
		}
		return m.fetchHelpPager(NewHelpRenderer().RenderHelpContentPlain(m.config.Locator.Title))

	case inputtypes.QuitAction:
		return tea.Quit
	}

	return nil
}

// inputSource tells which surface the keys currently drive
func (m *Model) inputSource() selection.Source {
	if m.state.FocusedPane == state.PaneMap {
		return selection.SourceMap
	}
	return selection.SourceList
}

func (m *Model) navigate(direction string) {
	ids := m.coord.ResultIDs()
	if len(ids) == 0 {
		return
	}

	switch direction {
	case "up":
		m.coord.MoveHover(-1)
		return
	case "down":
		m.coord.MoveHover(1)
		return
	}

	index := m.coord.Selection.HoveredIndex(ids)
	page := m.coord.Navigation.GetViewportHeight()
	switch direction {
	case "pageup":
		index -= page
	case "pagedown":
		index += page
	case "home":
		index = 0
	case "end":
		index = len(ids) - 1
	}
	if index < 0 {
		index = 0
	}
	if index >= len(ids) {
		index = len(ids) - 1
	}
	m.coord.Selection.SetHovered(ids[index], selection.SourceList)
	m.coord.Navigation.Follow(index)
}

func (m *Model) selectHovered() {
	id := m.coord.Selection.Hovered()
	if id == "" {
		return
	}
	m.coord.Selection.SetSelected(id, m.inputSource())
	m.coord.Selection.SetFocused(id, m.inputSource())
}

// currentBounds returns what the map shows now, falling back to the
// configured position when nothing has been framed yet
func (m *Model) currentBounds() domain.GeoBounds {
	if b, ok := m.coord.Framing(); ok {
		return views.Padded(b)
	}
	geo := m.config.Geolocation
	half := m.state.DefaultSpan / 2
	return domain.GeoBounds{
		NE: domain.Coordinate{Latitude: geo.Latitude + half, Longitude: geo.Longitude + half},
		SW: domain.Coordinate{Latitude: geo.Latitude - half, Longitude: geo.Longitude - half},
	}
}

func (m *Model) showError(err error) tea.Cmd {
	log.Printf("ui: %v", err)
	m.state.SetError(err.Error())
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return handlers.ClearStatusMsg{} })
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

// buildResultInfo renders the details popup for a result
func buildResultInfo(r domain.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", r.Name)
	if r.Address != "" {
		fmt.Fprintf(&b, "Address:  %s\n", r.Address)
	}
	if r.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", r.Category)
	}
	if r.HasCoordinate() {
		fmt.Fprintf(&b, "Position: %.5f, %.5f\n", r.Coordinate.Latitude, r.Coordinate.Longitude)
	} else {
		b.WriteString("Position: unknown\n")
	}
	if r.Distance > 0 {
		fmt.Fprintf(&b, "Distance: %s\n", views.FormatDistance(r.Distance))
	}

	keys := make([]string, 0, len(r.Fields))
	for k := range r.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", k, r.Fields[k])
	}
	b.WriteString("\nPress Esc to close")
	return b.String()
}

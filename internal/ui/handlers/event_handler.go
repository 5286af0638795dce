package handlers

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"locator/internal/eventbus"
	"locator/internal/geolocation"
	"locator/internal/ui/coordinator"
	"locator/internal/ui/services/area"
	"locator/internal/ui/services/events"
	"locator/internal/ui/services/geolocate"
	"locator/internal/ui/services/initial"
	"locator/internal/ui/services/query"
	"locator/internal/ui/state"
)

// statusTTL is how long a status message stays on screen
const statusTTL = 3 * time.Second

// ClearStatusMsg removes the status message
type ClearStatusMsg struct{}

// EventHandler handles domain events and UI service events and updates state
type EventHandler struct {
	state *state.AppState
	coord *coordinator.Coordinator
}

// NewEventHandler creates a new event handler and subscribes it to the UI bus
func NewEventHandler(appState *state.AppState, coord *coordinator.Coordinator, bus events.EventBus) *EventHandler {
	h := &EventHandler{
		state: appState,
		coord: coord,
	}
	h.subscribe(bus)
	return h
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.QueryCompletedEvent, eventbus.QueryFailedEvent, eventbus.LocateCompletedEvent:
		if err := h.coord.HandleDomainEvent(e); err != nil {
			h.state.SetError(err.Error())
			return clearStatusLater()
		}

	case eventbus.ErrorEvent:
		h.state.SetError(fmt.Sprintf("Error: %s", e.Message))
		return clearStatusLater()
	}

	return nil
}

// subscribe turns UI service events into status messages
func (h *EventHandler) subscribe(bus events.EventBus) {
	bus.Subscribe(events.TypeOf(query.QueryFailedEvent{}), func(e interface{}) {
		// The list shows the error itself
		h.state.ClearStatus()
	})

	bus.Subscribe(events.TypeOf(query.AllLocationsLoadedEvent{}), func(e interface{}) {
		ev := e.(query.AllLocationsLoadedEvent)
		h.state.SetStatus(fmt.Sprintf("All %d locations loaded", ev.Count))
	})

	bus.Subscribe(events.TypeOf(area.AreaSearchCommittedEvent{}), func(e interface{}) {
		ev := e.(area.AreaSearchCommittedEvent)
		h.state.SetStatus(fmt.Sprintf("Searching within %.1f km of the map center", ev.Radius/1000))
	})

	bus.Subscribe(events.TypeOf(geolocate.GeolocateStartedEvent{}), func(e interface{}) {
		h.state.SetStatus("Locating...")
	})

	bus.Subscribe(events.TypeOf(geolocate.GeolocateSucceededEvent{}), func(e interface{}) {
		h.state.SetStatus("Showing locations near you")
	})

	bus.Subscribe(events.TypeOf(geolocate.GeolocateFailedEvent{}), func(e interface{}) {
		ev := e.(geolocate.GeolocateFailedEvent)
		if errors.Is(ev.Err, geolocation.ErrNoPosition) {
			h.state.SetError("Your location is not available")
			return
		}
		h.state.SetError(fmt.Sprintf("Could not find your location: %v", ev.Err))
	})

	bus.Subscribe(events.TypeOf(initial.InitialParamsLoadedEvent{}), func(e interface{}) {
		ev := e.(initial.InitialParamsLoadedEvent)
		if ev.Err != nil {
			h.state.SetError("Ignoring invalid link: " + ev.Err.Error())
		}
	})
}

func clearStatusLater() tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return ClearStatusMsg{} })
}

package coordinator

import (
	"log"

	"locator/internal/deeplink"
	"locator/internal/domain"
	"locator/internal/eventbus"
	"locator/internal/ui/services/area"
	"locator/internal/ui/services/events"
	"locator/internal/ui/services/facets"
	"locator/internal/ui/services/geolocate"
	"locator/internal/ui/services/initial"
	"locator/internal/ui/services/navigation"
	"locator/internal/ui/services/query"
	"locator/internal/ui/services/searchbox"
	"locator/internal/ui/services/selection"
	"locator/internal/ui/services/viewport"
)

// Options configure the services the coordinator creates
type Options struct {
	Query           query.Options
	GeolocateRadius float64 // meters
}

// Coordinator manages all UI services and their interactions
type Coordinator struct {
	// Services
	Initial    *initial.Service
	Query      *query.Service
	Viewport   *viewport.Service
	Area       *area.Service
	Selection  *selection.Service
	SearchBox  *searchbox.Service
	Geolocate  *geolocate.Service
	Facets     *facets.Service
	Navigation *navigation.Service

	// Dependencies
	bus events.EventBus

	link string // deep link of the last committed query
}

// NewCoordinator creates a new coordinator with all services
func NewCoordinator(bus events.EventBus, dispatcher query.Dispatcher, opts Options) *Coordinator {
	c := &Coordinator{
		Initial:    initial.NewService(bus),
		Query:      query.NewService(bus, dispatcher, opts.Query),
		Viewport:   viewport.NewService(bus),
		Area:       area.NewService(bus),
		Selection:  selection.NewService(bus),
		SearchBox:  searchbox.NewService(bus),
		Geolocate:  geolocate.NewService(bus, opts.GeolocateRadius),
		Facets:     facets.NewService(bus),
		Navigation: navigation.NewService(bus),
		bus:        bus,
	}

	// Wire up service dependencies
	c.wireServices()

	// Subscribe to state changes
	c.subscribeToState()

	return c
}

// wireServices connects services with their dependencies
func (c *Coordinator) wireServices() {
	// No execution before initial parameters are in
	c.Query.SetReadyFunction(c.Initial.Loaded)

	c.Initial.SetSeedFunction(c.Query.Seed)
	c.Initial.SetCompletionFunction(func() {
		if err := c.Query.ExecuteQuery(); err != nil {
			log.Printf("coordinator: first query: %v", err)
		}
	})

	// Edits are refused up front so a refused action leaves no trace in the query
	c.Area.SetReadyFunction(c.Query.CheckReady)
	c.SearchBox.SetReadyFunction(c.Query.CheckReady)
	c.Geolocate.SetReadyFunction(c.Query.CheckReady)
	c.Facets.SetReadyFunction(c.Query.CheckReady)

	// Only a pan after a committed query offers an area search
	c.Viewport.SetCommittedFunction(c.Query.HasExecuted)

	c.Area.SetViewportFunctions(
		c.Viewport.GetViewport,
		c.Viewport.SearchAreaAvailable,
		c.Viewport.ConsumeSearchArea,
	)
	c.Area.SetQueryFunctions(c.Query.SetStaticFilters, c.Query.SetOffset, c.Query.ExecuteQuery)

	c.SearchBox.SetQueryFunctions(
		c.Query.RemoveGeoFilter,
		c.Query.SetInput,
		c.Query.SetOffset,
		c.Query.ResetFacets,
		c.Query.ExecuteQuery,
	)

	c.Geolocate.SetQueryFunctions(c.Query.ReplaceGeoFilter, c.Query.SetOffset, c.Query.ExecuteQuery)

	c.Facets.SetQueryFunctions(
		func() []domain.FacetFilter { return c.Query.GetQuery().FacetFilters },
		c.Query.SetFacetFilters,
		c.Query.SetOffset,
		c.Query.ExecuteQuery,
	)
}

// subscribeToState sets up the cross-service reactions
func (c *Coordinator) subscribeToState() {
	// Runs before the new result is visible to anyone else
	c.Query.OnQueryIDChanged(func(oldID, newID string) {
		c.Selection.Reset()
		c.Viewport.RevertFraming()
		c.Navigation.Reset()
	})

	c.Query.State().Committed.Subscribe(func(_, committed domain.QueryState) {
		c.Viewport.RevertFraming()
		if c.Initial.Loaded() {
			c.link = deeplink.Encode(committed)
		}
	})

	c.Query.State().Result.Subscribe(func(_, result query.Result) {
		c.Navigation.SetRowCount(len(result.Results))
	})
}

// SetLocateRequestFunction sets how position requests reach the locator
func (c *Coordinator) SetLocateRequestFunction(fn func(seq uint64)) {
	c.Geolocate.SetRequestFunction(fn)
}

// HandleDomainEvent applies an event coming back from a worker.
// It must be called on the UI loop.
func (c *Coordinator) HandleDomainEvent(e eventbus.DomainEvent) error {
	switch event := e.(type) {
	case eventbus.QueryCompletedEvent:
		c.Query.Resolve(event.Outcome)
	case eventbus.QueryFailedEvent:
		c.Query.Resolve(event.Outcome)
	case eventbus.LocateCompletedEvent:
		return c.Geolocate.Complete(event.Seq, event.Coordinate, event.Err)
	}
	return nil
}

// DeepLink returns the link that reproduces the last committed query
func (c *Coordinator) DeepLink() string {
	return c.link
}

// Results returns the committed results
func (c *Coordinator) Results() []domain.Result {
	return c.Query.GetResult().Results
}

// ResultIDs returns the ids of the committed results in list order
func (c *Coordinator) ResultIDs() []string {
	results := c.Results()
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.ID
	}
	return ids
}

// HoveredResult returns the hovered result, if it is in the current set
func (c *Coordinator) HoveredResult() (domain.Result, bool) {
	return c.find(c.Selection.Hovered())
}

// SelectedResult returns the selected result, if it is in the current set
func (c *Coordinator) SelectedResult() (domain.Result, bool) {
	return c.find(c.Selection.Selected())
}

func (c *Coordinator) find(id string) (domain.Result, bool) {
	if id == "" {
		return domain.Result{}, false
	}
	for _, r := range c.Results() {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Result{}, false
}

// MoveHover moves the list hover and keeps it on screen
func (c *Coordinator) MoveHover(step int) {
	ids := c.ResultIDs()
	if step < 0 {
		c.Selection.HoverPrev(ids, selection.SourceList)
	} else {
		c.Selection.HoverNext(ids, selection.SourceList)
	}
	c.Navigation.Follow(c.Selection.HoveredIndex(ids))
}

// Framing returns the bounds the map should show for the current results
func (c *Coordinator) Framing() (domain.GeoBounds, bool) {
	return c.Viewport.Framing(c.Results())
}

// Markers returns the map markers for the current results
func (c *Coordinator) Markers() []viewport.Marker {
	return c.Viewport.Markers(c.Results())
}

// IsSpinning reports whether the loading indicator should show
func (c *Coordinator) IsSpinning() bool {
	if !c.Initial.Loaded() || c.Query.IsLoading() {
		return true
	}
	return c.Query.Options().AllResultsOnLoad && !c.Query.AllLocationsLoaded()
}

// SetViewportHeight updates how many result rows fit on screen
func (c *Coordinator) SetViewportHeight(rows int) {
	c.Navigation.SetViewportHeight(rows)
}

package viewport

import (
	"locator/internal/domain"
	"locator/internal/ui/services/events"
	"locator/internal/ui/state"
)

// Service tracks the map viewport and decides how the map is framed
type Service struct {
	state *state.Cell[State]
	bus   events.EventBus

	committedFn func() bool
}

// NewService creates a new viewport service
func NewService(bus events.EventBus) *Service {
	return &Service{
		state: state.NewCell(State{}, func(a, b State) bool { return a == b }),
		bus:   bus,
	}
}

// Subscribe registers fn for viewport state changes
func (s *Service) Subscribe(fn func(old, new State)) func() {
	return s.state.Subscribe(fn)
}

// SetCommittedFunction sets how the tracker learns a query has been committed.
// Without one, every pan offers an area search.
func (s *Service) SetCommittedFunction(fn func() bool) {
	s.committedFn = fn
}

// GetState returns the current viewport state
func (s *Service) GetState() State {
	return s.state.Get()
}

// GetViewport returns the last user-panned viewport
func (s *Service) GetViewport() (domain.Viewport, bool) {
	st := s.state.Get()
	return st.Viewport, st.HasViewport
}

// SearchAreaAvailable reports whether an area search is on offer
func (s *Service) SearchAreaAvailable() bool {
	return s.state.Get().SearchAreaAvailable
}

// UserPanned reports whether framing follows the user's viewport
func (s *Service) UserPanned() bool {
	return s.state.Get().UserPanned
}

// OnDragEnd records a confirmed user pan. It never runs a query.
// The area search is offered only once a query has been committed.
func (s *Service) OnDragEnd(previous, current domain.GeoBounds) {
	old := s.state.Get()
	offer := s.committedFn == nil || s.committedFn()
	s.state.Set(State{
		Viewport: domain.Viewport{
			Center: current.Center(),
			Bounds: current,
		},
		HasViewport:         true,
		SearchAreaAvailable: old.SearchAreaAvailable || offer,
		UserPanned:          true,
	})

	s.bus.Publish(ViewportChangedEvent{
		Previous: previous,
		Current:  current,
		Center:   current.Center(),
	})
	if !old.SearchAreaAvailable && offer {
		s.bus.Publish(SearchAreaAvailabilityChangedEvent{Available: true})
	}
}

// ConsumeSearchArea clears the area-search offer after a commit
func (s *Service) ConsumeSearchArea() {
	if !s.state.Get().SearchAreaAvailable {
		return
	}
	s.state.Update(func(st State) State {
		st.SearchAreaAvailable = false
		return st
	})
	s.bus.Publish(SearchAreaAvailabilityChangedEvent{Available: false})
}

// RevertFraming makes the map follow the result set again
func (s *Service) RevertFraming() {
	s.state.Update(func(st State) State {
		st.UserPanned = false
		return st
	})
}

// BoundsForResults returns the bounds of results that have a coordinate
func (s *Service) BoundsForResults(results []domain.Result) (domain.GeoBounds, bool) {
	coords := make([]domain.Coordinate, 0, len(results))
	for _, r := range results {
		if r.HasCoordinate() {
			coords = append(coords, *r.Coordinate)
		}
	}
	return domain.BoundsOf(coords)
}

// Framing returns the bounds the map should show.
// The user's viewport wins while they have panned; otherwise the results are fitted.
func (s *Service) Framing(results []domain.Result) (domain.GeoBounds, bool) {
	st := s.state.Get()
	if st.UserPanned && st.HasViewport {
		return st.Viewport.Bounds, true
	}
	if b, ok := s.BoundsForResults(results); ok {
		return b, true
	}
	if st.HasViewport {
		return st.Viewport.Bounds, true
	}
	return domain.GeoBounds{}, false
}

// Markers returns map markers for results with a coordinate
func (s *Service) Markers(results []domain.Result) []Marker {
	var markers []Marker
	for i, r := range results {
		if !r.HasCoordinate() {
			continue
		}
		markers = append(markers, Marker{
			Index:      i + 1,
			ID:         r.ID,
			Coordinate: *r.Coordinate,
		})
	}
	return markers
}

package geolocate

import (
	"fmt"

	"locator/internal/domain"
	"locator/internal/ui/services/events"
)

// Service drives the "use my location" button
type Service struct {
	state  *State
	bus    events.EventBus
	radius float64 // meters

	readyFn      func() error
	requestFn    func(seq uint64)
	replaceGeoFn func(domain.SelectableFilter)
	setOffsetFn  func(int)
	executeFn    func() error
}

// NewService creates a new geolocation service with the default search radius in meters
func NewService(bus events.EventBus, radius float64) *Service {
	return &Service{
		state:  &State{},
		bus:    bus,
		radius: radius,
	}
}

// SetRequestFunction sets how a position request leaves the UI loop
func (s *Service) SetRequestFunction(fn func(seq uint64)) {
	s.requestFn = fn
}

// SetReadyFunction sets the check that must pass before the query is touched
func (s *Service) SetReadyFunction(fn func() error) {
	s.readyFn = fn
}

// SetQueryFunctions sets the query operations a located position runs through
func (s *Service) SetQueryFunctions(replaceGeo func(domain.SelectableFilter), setOffset func(int), execute func() error) {
	s.replaceGeoFn = replaceGeo
	s.setOffsetFn = setOffset
	s.executeFn = execute
}

// InFlight reports whether a position request is outstanding
func (s *Service) InFlight() bool {
	return s.state.InFlight
}

// Begin requests the current position. ok is false while one is outstanding.
func (s *Service) Begin() (seq uint64, ok bool) {
	if s.state.InFlight {
		return s.state.Seq, false
	}
	s.state.Seq++
	s.state.InFlight = true

	s.bus.Publish(GeolocateStartedEvent{Seq: s.state.Seq})
	if s.requestFn != nil {
		s.requestFn(s.state.Seq)
	}
	return s.state.Seq, true
}

// FilterFor builds the current-location filter around c
func FilterFor(c domain.Coordinate, radius float64) domain.SelectableFilter {
	return domain.SelectableFilter{
		Selected:    true,
		DisplayName: domain.CurrentLocationName,
		Filter: domain.Filter{
			FieldID: domain.LocationFieldID,
			Matcher: domain.MatcherNear,
			Geo:     &domain.GeoValue{Lat: c.Latitude, Lng: c.Longitude, Radius: radius},
		},
	}
}

// Complete applies the answer to request seq. Answers to older requests are ignored.
func (s *Service) Complete(seq uint64, c domain.Coordinate, err error) error {
	if !s.state.InFlight || seq != s.state.Seq {
		return nil
	}
	s.state.InFlight = false

	if err != nil {
		s.bus.Publish(GeolocateFailedEvent{Err: err})
		return nil
	}

	if s.readyFn != nil {
		if err := s.readyFn(); err != nil {
			return fmt.Errorf("geolocate: %w", err)
		}
	}

	s.replaceGeoFn(FilterFor(c, s.radius))
	s.setOffsetFn(0)
	if err := s.executeFn(); err != nil {
		return fmt.Errorf("geolocate: %w", err)
	}

	s.bus.Publish(GeolocateSucceededEvent{Coordinate: c, Radius: s.radius})
	return nil
}

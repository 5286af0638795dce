package area

import (
	"fmt"

	"locator/internal/domain"
	"locator/internal/ui/services/events"
)

// Service turns a post-search pan into a geo-radius search
type Service struct {
	bus events.EventBus

	readyFn     func() error
	viewportFn  func() (domain.Viewport, bool)
	availableFn func() bool
	consumeFn   func()

	setFiltersFn func([]domain.SelectableFilter)
	setOffsetFn  func(int)
	executeFn    func() error
}

// NewService creates a new area search service
func NewService(bus events.EventBus) *Service {
	return &Service{bus: bus}
}

// SetViewportFunctions sets how the tracked viewport is read and the offer consumed
func (s *Service) SetViewportFunctions(viewport func() (domain.Viewport, bool), available func() bool, consume func()) {
	s.viewportFn = viewport
	s.availableFn = available
	s.consumeFn = consume
}

// SetReadyFunction sets the check that must pass before the query is touched
func (s *Service) SetReadyFunction(fn func() error) {
	s.readyFn = fn
}

// SetQueryFunctions sets how the committed query is changed and executed
func (s *Service) SetQueryFunctions(setFilters func([]domain.SelectableFilter), setOffset func(int), execute func() error) {
	s.setFiltersFn = setFilters
	s.setOffsetFn = setOffset
	s.executeFn = execute
}

// Available reports whether "search this area" is on offer
func (s *Service) Available() bool {
	return s.availableFn != nil && s.availableFn()
}

// FilterForViewport builds the geo-radius filter covering vp.
// The radius is the distance from the north-east corner to the center.
func FilterForViewport(vp domain.Viewport) domain.SelectableFilter {
	radius := domain.DistanceMiles(vp.Bounds.NE, vp.Center) * domain.MetersPerMile
	return domain.SelectableFilter{
		Selected:    true,
		DisplayName: domain.MapAreaName,
		Filter: domain.Filter{
			FieldID: domain.LocationFieldID,
			Matcher: domain.MatcherNear,
			Geo: &domain.GeoValue{
				Lat:    vp.Center.Latitude,
				Lng:    vp.Center.Longitude,
				Radius: radius,
			},
		},
	}
}

// CommitAreaSearch replaces the static filters with the map area and executes.
// It returns false without doing anything when no pan happened since the last commit.
func (s *Service) CommitAreaSearch() (bool, error) {
	if !s.Available() {
		return false, nil
	}
	vp, ok := s.viewportFn()
	if !ok {
		return false, nil
	}
	if s.readyFn != nil {
		if err := s.readyFn(); err != nil {
			return false, fmt.Errorf("area search: %w", err)
		}
	}

	f := FilterForViewport(vp)
	s.setFiltersFn([]domain.SelectableFilter{f})
	s.setOffsetFn(0)
	if err := s.executeFn(); err != nil {
		return false, fmt.Errorf("area search: %w", err)
	}
	s.consumeFn()

	s.bus.Publish(AreaSearchCommittedEvent{
		Center: vp.Center,
		Radius: f.Filter.Geo.Radius,
	})
	return true, nil
}

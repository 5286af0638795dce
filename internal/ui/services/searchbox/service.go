package searchbox

import (
	"fmt"
	"strings"

	"locator/internal/domain"
	"locator/internal/ui/services/events"
)

// Service commits the text typed into the search box
type Service struct {
	bus events.EventBus

	readyFn       func() error
	removeGeoFn   func(displayName string)
	setInputFn    func(string)
	setOffsetFn   func(int)
	resetFacetsFn func()
	executeFn     func() error
}

// NewService creates a new search box service
func NewService(bus events.EventBus) *Service {
	return &Service{bus: bus}
}

// SetReadyFunction sets the check that must pass before the query is touched
func (s *Service) SetReadyFunction(fn func() error) {
	s.readyFn = fn
}

// SetQueryFunctions sets the query operations a submit runs through
func (s *Service) SetQueryFunctions(removeGeo func(string), setInput func(string), setOffset func(int), resetFacets func(), execute func() error) {
	s.removeGeoFn = removeGeo
	s.setInputFn = setInput
	s.setOffsetFn = setOffset
	s.resetFacetsFn = resetFacets
	s.executeFn = execute
}

// Submit runs a new text search from the first page.
// A current-location filter does not survive a new text search.
func (s *Service) Submit(text string) error {
	text = strings.TrimSpace(text)
	if s.readyFn != nil {
		if err := s.readyFn(); err != nil {
			return fmt.Errorf("search: %w", err)
		}
	}

	s.removeGeoFn(domain.CurrentLocationName)
	s.setInputFn(text)
	s.setOffsetFn(0)
	s.resetFacetsFn()
	if err := s.executeFn(); err != nil {
		return fmt.Errorf("search: %w", err)
	}

	s.bus.Publish(SearchSubmittedEvent{Input: text})
	return nil
}

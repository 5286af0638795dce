package facets

import (
	"fmt"
	"sort"

	"locator/internal/domain"
	"locator/internal/ui/services/events"
)

// Service offers facet refinements and applies them to the query
type Service struct {
	bus events.EventBus

	readyFn     func() error
	getFacetsFn func() []domain.FacetFilter
	setFacetsFn func([]domain.FacetFilter)
	setOffsetFn func(int)
	executeFn   func() error
}

// NewService creates a new facet service
func NewService(bus events.EventBus) *Service {
	return &Service{bus: bus}
}

// SetReadyFunction sets the check that must pass before the query is touched
func (s *Service) SetReadyFunction(fn func() error) {
	s.readyFn = fn
}

// SetQueryFunctions sets how facet filters are read, written and executed
func (s *Service) SetQueryFunctions(get func() []domain.FacetFilter, set func([]domain.FacetFilter), setOffset func(int), execute func() error) {
	s.getFacetsFn = get
	s.setFacetsFn = set
	s.setOffsetFn = setOffset
	s.executeFn = execute
}

// Options lists the category values present in results, plus any active facet
func (s *Service) Options(results []domain.Result) []Option {
	counts := make(map[string]int)
	for _, r := range results {
		if r.Category != "" {
			counts[r.Category]++
		}
	}

	active := make(map[string]bool)
	if s.getFacetsFn != nil {
		for _, f := range s.getFacetsFn() {
			if f.FieldID == CategoryField {
				active[f.Value] = true
				if _, ok := counts[f.Value]; !ok {
					counts[f.Value] = 0
				}
			}
		}
	}

	options := make([]Option, 0, len(counts))
	for value, count := range counts {
		options = append(options, Option{
			FieldID: CategoryField,
			Value:   value,
			Count:   count,
			Active:  active[value],
		})
	}
	sort.Slice(options, func(i, j int) bool {
		return options[i].Value < options[j].Value
	})
	return options
}

// Toggle adds or removes a facet and re-runs the query from the first page
func (s *Service) Toggle(fieldID, value string) error {
	if err := s.ready(); err != nil {
		return fmt.Errorf("facet %s=%s: %w", fieldID, value, err)
	}
	current := s.getFacetsFn()
	next := make([]domain.FacetFilter, 0, len(current)+1)
	removed := false
	for _, f := range current {
		if f.FieldID == fieldID && f.Value == value {
			removed = true
			continue
		}
		next = append(next, f)
	}
	if !removed {
		next = append(next, domain.FacetFilter{FieldID: fieldID, Value: value})
	}

	s.setFacetsFn(next)
	s.setOffsetFn(0)
	if err := s.executeFn(); err != nil {
		return fmt.Errorf("facet %s=%s: %w", fieldID, value, err)
	}

	s.bus.Publish(FacetToggledEvent{FieldID: fieldID, Value: value, Active: !removed})
	return nil
}

// Clear removes every facet and re-runs the query
func (s *Service) Clear() error {
	if len(s.getFacetsFn()) == 0 {
		return nil
	}
	if err := s.ready(); err != nil {
		return fmt.Errorf("clear facets: %w", err)
	}
	s.setFacetsFn(nil)
	s.setOffsetFn(0)
	if err := s.executeFn(); err != nil {
		return fmt.Errorf("clear facets: %w", err)
	}

	s.bus.Publish(FacetsClearedEvent{})
	return nil
}

func (s *Service) ready() error {
	if s.readyFn == nil {
		return nil
	}
	return s.readyFn()
}

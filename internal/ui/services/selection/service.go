package selection

import (
	"locator/internal/ui/services/events"
	"locator/internal/ui/state"
)

// Service owns hover, focus and selection for list and map alike
type Service struct {
	state *state.Cell[State]
	bus   events.EventBus
}

// NewService creates a new selection service
func NewService(bus events.EventBus) *Service {
	return &Service{
		state: state.NewCell(State{}, func(a, b State) bool { return a == b }),
		bus:   bus,
	}
}

// Subscribe registers fn for selection changes
func (s *Service) Subscribe(fn func(old, new State)) func() {
	return s.state.Subscribe(fn)
}

// GetState returns the current selection
func (s *Service) GetState() State {
	return s.state.Get()
}

func (s *Service) Selected() string { return s.state.Get().SelectedID }
func (s *Service) Focused() string  { return s.state.Get().FocusedID }
func (s *Service) Hovered() string  { return s.state.Get().HoveredID }

// SetSelected selects id from the given surface
func (s *Service) SetSelected(id string, from Source) {
	s.update(from, func(st State) State {
		st.SelectedID = id
		return st
	})
}

// SetFocused focuses id from the given surface
func (s *Service) SetFocused(id string, from Source) {
	s.update(from, func(st State) State {
		st.FocusedID = id
		return st
	})
}

// SetHovered hovers id from the given surface
func (s *Service) SetHovered(id string, from Source) {
	s.update(from, func(st State) State {
		st.HoveredID = id
		return st
	})
}

// HoverNext moves the hover to the next id in the list
func (s *Service) HoverNext(ids []string, from Source) {
	s.moveHover(ids, 1, from)
}

// HoverPrev moves the hover to the previous id in the list
func (s *Service) HoverPrev(ids []string, from Source) {
	s.moveHover(ids, -1, from)
}

func (s *Service) moveHover(ids []string, step int, from Source) {
	if len(ids) == 0 {
		return
	}
	current := s.Hovered()
	next := 0
	if step < 0 {
		next = len(ids) - 1
	}
	for i, id := range ids {
		if id == current {
			next = i + step
			break
		}
	}
	if next < 0 {
		next = 0
	}
	if next >= len(ids) {
		next = len(ids) - 1
	}
	s.SetHovered(ids[next], from)
}

// HoveredIndex returns the position of the hovered id in ids, or -1
func (s *Service) HoveredIndex(ids []string) int {
	current := s.Hovered()
	if current == "" {
		return -1
	}
	for i, id := range ids {
		if id == current {
			return i
		}
	}
	return -1
}

// Reset clears selection, focus and hover
func (s *Service) Reset() {
	if s.state.Get().IsZero() {
		return
	}
	s.update(SourceQuery, func(State) State { return State{} })
	s.bus.Publish(SelectionClearedEvent{})
}

func (s *Service) update(from Source, fn func(State) State) {
	old := s.state.Get()
	next := fn(old)
	if next == old {
		return
	}
	s.state.Set(next)
	s.bus.Publish(SelectionChangedEvent{Old: old, New: next, Source: from})
}

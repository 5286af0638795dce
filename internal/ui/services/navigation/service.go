package navigation

import (
	"locator/internal/ui/services/events"
)

// Service keeps the hovered result row inside the visible part of the list
type Service struct {
	state *State
	bus   events.EventBus
}

// NewService creates a new list navigation service
func NewService(bus events.EventBus) *Service {
	return &Service{
		state: &State{
			ViewportHeight: 10, // Default, updated on resize
		},
		bus: bus,
	}
}

// GetViewportOffset returns the first visible row
func (s *Service) GetViewportOffset() int {
	return s.state.ViewportOffset
}

// GetViewportHeight returns the number of visible rows
func (s *Service) GetViewportHeight() int {
	return s.state.ViewportHeight
}

// SetViewportHeight updates how many rows fit on screen
func (s *Service) SetViewportHeight(rows int) {
	if rows < 1 {
		rows = 1
	}
	s.state.ViewportHeight = rows
	s.clamp()
}

// SetRowCount updates the number of rows in the list
func (s *Service) SetRowCount(rows int) {
	s.state.Rows = rows
	s.clamp()
}

// VisibleRange returns the half-open row range on screen
func (s *Service) VisibleRange() (start, end int) {
	start = s.state.ViewportOffset
	end = start + s.state.ViewportHeight
	if end > s.state.Rows {
		end = s.state.Rows
	}
	return start, end
}

// Follow scrolls so that row index is visible
func (s *Service) Follow(index int) {
	if index < 0 {
		return
	}
	old := s.state.ViewportOffset
	if index < s.state.ViewportOffset {
		s.state.ViewportOffset = index
	} else if index >= s.state.ViewportOffset+s.state.ViewportHeight {
		s.state.ViewportOffset = index - s.state.ViewportHeight + 1
	}
	s.publishIfMoved(old)
}

// Reset scrolls back to the top
func (s *Service) Reset() {
	old := s.state.ViewportOffset
	s.state.ViewportOffset = 0
	s.publishIfMoved(old)
}

func (s *Service) clamp() {
	old := s.state.ViewportOffset
	maxOffset := s.state.Rows - s.state.ViewportHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.state.ViewportOffset > maxOffset {
		s.state.ViewportOffset = maxOffset
	}
	s.publishIfMoved(old)
}

func (s *Service) publishIfMoved(old int) {
	if old == s.state.ViewportOffset {
		return
	}
	s.bus.Publish(ListScrolledEvent{
		Offset: s.state.ViewportOffset,
		Height: s.state.ViewportHeight,
	})
}

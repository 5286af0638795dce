package viewport

import "locator/internal/domain"

// State holds the user-driven map viewport
type State struct {
	Viewport            domain.Viewport
	HasViewport         bool // a drag end has been recorded
	SearchAreaAvailable bool // a pan happened since the last area commit
	UserPanned          bool // framing follows Viewport instead of the results
}

// Marker is a result placed on the map
type Marker struct {
	Index      int // 1-based position in the result list
	ID         string
	Coordinate domain.Coordinate
}

// Event types
type ViewportChangedEvent struct {
	Previous domain.GeoBounds
	Current  domain.GeoBounds
	Center   domain.Coordinate
}

type SearchAreaAvailabilityChangedEvent struct {
	Available bool
}

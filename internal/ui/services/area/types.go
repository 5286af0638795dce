package area

import "locator/internal/domain"

// Event types
type AreaSearchCommittedEvent struct {
	Center domain.Coordinate
	Radius float64 // meters
}

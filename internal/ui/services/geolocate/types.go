package geolocate

import "locator/internal/domain"

// State tracks the in-flight locate request
type State struct {
	Seq      uint64 // last issued request
	InFlight bool
}

// Event types
type GeolocateStartedEvent struct {
	Seq uint64
}

type GeolocateSucceededEvent struct {
	Coordinate domain.Coordinate
	Radius     float64
}

type GeolocateFailedEvent struct {
	Err error
}

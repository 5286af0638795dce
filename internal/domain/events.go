package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventQueryRequested  EventType = "QueryRequested"
	EventQueryCompleted  EventType = "QueryCompleted"
	EventQueryFailed     EventType = "QueryFailed"
	EventLocateRequested EventType = "LocateRequested"
	EventLocateCompleted EventType = "LocateCompleted"
	EventError           EventType = "Error"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// QueryRequestedEvent is emitted when the UI commits a query to the backend
type QueryRequestedEvent struct {
	Request QueryRequest
}

func (e QueryRequestedEvent) Type() EventType { return EventQueryRequested }

// QueryCompletedEvent is emitted when the backend answers a request
type QueryCompletedEvent struct {
	Outcome QueryOutcome
}

func (e QueryCompletedEvent) Type() EventType { return EventQueryCompleted }

// QueryFailedEvent is emitted when the backend rejects a request
type QueryFailedEvent struct {
	Outcome QueryOutcome
}

func (e QueryFailedEvent) Type() EventType { return EventQueryFailed }

// LocateRequestedEvent is emitted when the geolocation button is pressed
type LocateRequestedEvent struct {
	Seq uint64
}

func (e LocateRequestedEvent) Type() EventType { return EventLocateRequested }

// LocateCompletedEvent carries the position (or failure) for a locate request
type LocateCompletedEvent struct {
	Seq        uint64
	Coordinate Coordinate
	Err        error
}

func (e LocateCompletedEvent) Type() EventType { return EventLocateCompleted }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

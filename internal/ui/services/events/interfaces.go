package events

// EventBus is a simple interface for publishing events
type EventBus interface {
	Publish(event interface{})
	Subscribe(eventType string, handler func(interface{}))
}

// NullBus is a no-op implementation of EventBus
type NullBus struct{}

func (n *NullBus) Publish(event interface{})                             {}
func (n *NullBus) Subscribe(eventType string, handler func(interface{})) {}

// Recorder is an EventBus that keeps every published event, for tests
type Recorder struct {
	*Bus
	Events []interface{}
}

// NewRecorder creates a recording bus that still dispatches to subscribers
func NewRecorder() *Recorder {
	return &Recorder{Bus: NewBus()}
}

// Publish records the event, then dispatches it
func (r *Recorder) Publish(event interface{}) {
	r.Events = append(r.Events, event)
	r.Bus.Publish(event)
}

// Recorded returns the recorded events of type T in publish order
func Recorded[T any](r *Recorder) []T {
	var out []T
	for _, e := range r.Events {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

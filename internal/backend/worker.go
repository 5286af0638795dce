package backend

import (
	"context"
	"log"
	"time"

	"locator/internal/domain"
	"locator/internal/eventbus"
)

// Worker executes QueryRequestedEvents off the UI loop and publishes the outcome
type Worker struct {
	bus     eventbus.EventBus
	client  Client
	timeout time.Duration
	unsub   func()
}

// NewWorker creates a worker and subscribes it to query requests
func NewWorker(bus eventbus.EventBus, client Client, timeout time.Duration) *Worker {
	w := &Worker{
		bus:     bus,
		client:  client,
		timeout: timeout,
	}
	w.unsub = bus.Subscribe(eventbus.EventQueryRequested, w.handle)
	return w
}

// Close stops the worker from receiving new requests
func (w *Worker) Close() {
	if w.unsub != nil {
		w.unsub()
	}
}

func (w *Worker) handle(e eventbus.DomainEvent) {
	event, ok := e.(eventbus.QueryRequestedEvent)
	if !ok {
		return
	}
	w.bus.Publish(w.Execute(context.Background(), event.Request))
}

// Execute runs one request and returns the event describing its outcome
func (w *Worker) Execute(ctx context.Context, req domain.QueryRequest) eventbus.DomainEvent {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := w.client.ExecuteVerticalQuery(ctx, req)
	outcome := domain.QueryOutcome{
		Seq:       req.Seq,
		Purpose:   req.Purpose,
		AllOnLoad: req.AllOnLoad,
		Response:  resp,
		Err:       err,
	}

	if err != nil {
		log.Printf("backend: query %d (%s) failed after %s: %v", req.Seq, req.Purpose, time.Since(start), err)
		return eventbus.QueryFailedEvent{Outcome: outcome}
	}
	log.Printf("backend: query %d (%s) returned %d/%d results in %s", req.Seq, req.Purpose, len(resp.Results), resp.Total, time.Since(start))
	return eventbus.QueryCompletedEvent{Outcome: outcome}
}

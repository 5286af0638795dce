// Package geolocation answers position requests from the UI off the UI loop.
package geolocation

import (
	"context"
	"errors"
	"log"
	"time"

	"locator/internal/config"
	"locator/internal/domain"
	"locator/internal/eventbus"
)

// ErrNoPosition is returned when no position is configured
var ErrNoPosition = errors.New("geolocation: no position available")

// Locator resolves the user's current position
type Locator interface {
	Locate(ctx context.Context) (domain.Coordinate, error)
}

// StaticLocator returns a fixed position
type StaticLocator struct {
	Position domain.Coordinate
	Known    bool
}

// NewStaticLocator creates a locator from the configured position
func NewStaticLocator(cfg config.GeolocationConfig) StaticLocator {
	known := cfg.Latitude != 0 || cfg.Longitude != 0
	return StaticLocator{
		Position: domain.Coordinate{Latitude: cfg.Latitude, Longitude: cfg.Longitude},
		Known:    known,
	}
}

// Locate returns the configured position
func (l StaticLocator) Locate(ctx context.Context) (domain.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinate{}, err
	}
	if !l.Known {
		return domain.Coordinate{}, ErrNoPosition
	}
	return l.Position, nil
}

// Worker answers LocateRequestedEvents with LocateCompletedEvents
type Worker struct {
	bus     eventbus.EventBus
	locator Locator
	timeout time.Duration
	unsub   func()
}

// NewWorker creates a worker and subscribes it to locate requests
func NewWorker(bus eventbus.EventBus, locator Locator, timeout time.Duration) *Worker {
	w := &Worker{
		bus:     bus,
		locator: locator,
		timeout: timeout,
	}
	w.unsub = bus.Subscribe(eventbus.EventLocateRequested, w.handle)
	return w
}

// Close stops the worker from receiving new requests
func (w *Worker) Close() {
	if w.unsub != nil {
		w.unsub()
	}
}

func (w *Worker) handle(e eventbus.DomainEvent) {
	event, ok := e.(eventbus.LocateRequestedEvent)
	if !ok {
		return
	}

	ctx := context.Background()
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	c, err := w.locator.Locate(ctx)
	if err != nil {
		log.Printf("geolocation: request %d failed: %v", event.Seq, err)
	}
	w.bus.Publish(eventbus.LocateCompletedEvent{Seq: event.Seq, Coordinate: c, Err: err})
}

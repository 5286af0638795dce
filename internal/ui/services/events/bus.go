package events

import (
	"fmt"
	"log"
	"runtime/debug"
)

// Bus is a synchronous event bus for UI services.
// Handlers run on the publisher's goroutine in subscription order, so a
// subscriber's effects are visible before Publish returns.
type Bus struct {
	listeners map[string][]func(interface{})
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[string][]func(interface{})),
	}
}

// Subscribe registers a listener for an event type
func (b *Bus) Subscribe(eventType string, handler func(interface{})) {
	b.listeners[eventType] = append(b.listeners[eventType], handler)
}

// Publish sends an event to all listeners
func (b *Bus) Publish(event interface{}) {
	eventType := TypeOf(event)

	handlers := append([]func(interface{}){}, b.listeners[eventType]...)
	for _, handler := range handlers {
		b.call(eventType, handler, event)
	}
}

func (b *Bus) call(eventType string, handler func(interface{}), event interface{}) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("UI event handler panic for %s: %v\nStack: %s", eventType, r, debug.Stack())
		}
	}()
	handler(event)
}

// TypeOf returns the key events of this type are published under
func TypeOf(event interface{}) string {
	return fmt.Sprintf("%T", event)
}

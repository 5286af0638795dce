package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func waitFor(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for handlers")
	}
}

func TestPublishReachesSubscribers(t *testing.T) {
	bus := New()
	defer bus.Close()

	var wg sync.WaitGroup
	wg.Add(2)

	var mu sync.Mutex
	var got []string
	handler := func(name string) EventHandler {
		return func(e DomainEvent) {
			defer wg.Done()
			mu.Lock()
			got = append(got, name+":"+e.(ErrorEvent).Message)
			mu.Unlock()
		}
	}
	bus.Subscribe(EventError, handler("a"))
	bus.Subscribe(EventError, handler("b"))
	bus.Subscribe(EventConfigLoaded, func(DomainEvent) { t.Error("wrong event type delivered") })

	bus.Publish(ErrorEvent{Message: "boom"})
	waitFor(t, &wg)

	assert.ElementsMatch(t, []string{"a:boom", "b:boom"}, got)
}

func TestUnsubscribe(t *testing.T) {
	bus := New()
	defer bus.Close()

	var wg sync.WaitGroup
	wg.Add(1)

	unsub := bus.Subscribe(EventError, func(DomainEvent) { t.Error("unsubscribed handler called") })
	bus.Subscribe(EventError, func(DomainEvent) { wg.Done() })
	unsub()

	bus.Publish(ErrorEvent{Message: "x"})
	waitFor(t, &wg)
}

func TestPanickingHandlerDoesNotStopOthers(t *testing.T) {
	bus := New()
	defer bus.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	bus.Subscribe(EventError, func(DomainEvent) { panic("handler bug") })
	bus.Subscribe(EventError, func(DomainEvent) { wg.Done() })

	bus.Publish(ErrorEvent{Message: "x"})
	waitFor(t, &wg)
}

func TestCloseIsIdempotent(t *testing.T) {
	bus := New()
	bus.Close()
	assert.NotPanics(t, bus.Close)
}

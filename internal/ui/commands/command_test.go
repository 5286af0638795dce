package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locator/internal/domain"
	"locator/internal/eventbus"
	"locator/internal/ui/services/initial"
	"locator/internal/ui/state"
)

func TestLoadInitialParams(t *testing.T) {
	e := NewExecutor(state.NewAppState(), nil)

	cmd := e.ExecuteLoadInitialParams(initial.SourceFunc(func(ctx context.Context) (domain.InitialParams, error) {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return domain.InitialParams{Input: "tea"}, nil
	}), time.Second)
	require.NotNil(t, cmd)

	msg, ok := cmd().(InitialParamsLoadedMsg)
	require.True(t, ok)
	assert.Equal(t, "tea", msg.Params.Input)
	assert.NoError(t, msg.Err)
}

func TestLoadInitialParamsNilSource(t *testing.T) {
	e := NewExecutor(state.NewAppState(), nil)
	msg := e.ExecuteLoadInitialParams(nil, 0)()
	assert.Equal(t, InitialParamsLoadedMsg{}, msg)
}

func TestLoadInitialParamsError(t *testing.T) {
	e := NewExecutor(state.NewAppState(), nil)
	boom := errors.New("bad link")

	msg := e.ExecuteLoadInitialParams(initial.SourceFunc(func(context.Context) (domain.InitialParams, error) {
		return domain.InitialParams{}, boom
	}), 0)().(InitialParamsLoadedMsg)

	assert.ErrorIs(t, msg.Err, boom)
}

func TestRequestLocatePublishes(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	got := make(chan uint64, 1)
	bus.Subscribe(eventbus.EventLocateRequested, func(e eventbus.DomainEvent) {
		got <- e.(eventbus.LocateRequestedEvent).Seq
	})

	assert.Nil(t, NewExecutor(state.NewAppState(), bus).ExecuteRequestLocate(7))

	select {
	case seq := <-got:
		assert.Equal(t, uint64(7), seq)
	case <-time.After(2 * time.Second):
		t.Fatal("no LocateRequestedEvent")
	}
}

func TestShowLink(t *testing.T) {
	s := state.NewAppState()
	e := NewExecutor(s, nil)

	e.ExecuteShowLink("q=tea")
	assert.Equal(t, "Link: ?q=tea", s.StatusMessage)

	e.ExecuteShowLink("")
	assert.Equal(t, "Link: (no filters)", s.StatusMessage)
	assert.False(t, s.StatusIsError)
}

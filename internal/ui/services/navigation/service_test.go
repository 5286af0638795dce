package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locator/internal/ui/services/events"
)

func TestFollowScrollsHoveredRowIntoView(t *testing.T) {
	bus := events.NewRecorder()
	svc := NewService(bus)
	svc.SetViewportHeight(5)
	svc.SetRowCount(20)

	svc.Follow(3)
	assert.Equal(t, 0, svc.GetViewportOffset())

	svc.Follow(7)
	assert.Equal(t, 3, svc.GetViewportOffset())
	start, end := svc.VisibleRange()
	assert.Equal(t, 3, start)
	assert.Equal(t, 8, end)

	svc.Follow(1)
	assert.Equal(t, 1, svc.GetViewportOffset())

	scrolled := events.Recorded[ListScrolledEvent](bus)
	require.Len(t, scrolled, 2)
	assert.Equal(t, 3, scrolled[0].Offset)
	assert.Equal(t, 5, scrolled[0].Height)
}

func TestShrinkingListClampsOffset(t *testing.T) {
	svc := NewService(&events.NullBus{})
	svc.SetViewportHeight(5)
	svc.SetRowCount(20)
	svc.Follow(19)
	assert.Equal(t, 15, svc.GetViewportOffset())

	svc.SetRowCount(7)
	assert.Equal(t, 2, svc.GetViewportOffset())

	svc.SetRowCount(3)
	assert.Equal(t, 0, svc.GetViewportOffset())
	start, end := svc.VisibleRange()
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)
}

func TestResetAndHeightFloor(t *testing.T) {
	svc := NewService(&events.NullBus{})
	svc.SetRowCount(30)
	svc.Follow(25)
	svc.Reset()
	assert.Equal(t, 0, svc.GetViewportOffset())

	svc.SetViewportHeight(0)
	assert.Equal(t, 1, svc.GetViewportHeight())
	svc.Follow(-1)
	assert.Equal(t, 0, svc.GetViewportOffset())
}

package geolocate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locator/internal/domain"
	"locator/internal/ui/services/events"
)

type fakeQuery struct {
	geo      []domain.SelectableFilter
	offset   int
	executed int
	err      error
}

func (f *fakeQuery) replaceGeo(sf domain.SelectableFilter) { f.geo = append(f.geo, sf) }
func (f *fakeQuery) setOffset(o int)                       { f.offset = o }
func (f *fakeQuery) execute() error {
	f.executed++
	return f.err
}

func setup() (*Service, *fakeQuery, *[]uint64, *events.Recorder) {
	bus := events.NewRecorder()
	q := &fakeQuery{offset: 20}
	var requested []uint64

	svc := NewService(bus, 5000)
	svc.SetRequestFunction(func(seq uint64) { requested = append(requested, seq) })
	svc.SetQueryFunctions(q.replaceGeo, q.setOffset, q.execute)
	return svc, q, &requested, bus
}

var station = domain.Coordinate{Latitude: 35.6812, Longitude: 139.7671}

func TestBeginIsSingleFlight(t *testing.T) {
	svc, _, requested, bus := setup()

	seq, ok := svc.Begin()
	require.True(t, ok)
	assert.Equal(t, uint64(1), seq)
	assert.True(t, svc.InFlight())

	_, ok = svc.Begin()
	assert.False(t, ok)
	assert.Equal(t, []uint64{1}, *requested)
	assert.Len(t, events.Recorded[GeolocateStartedEvent](bus), 1)
}

func TestCompleteAppliesCurrentLocation(t *testing.T) {
	svc, q, _, bus := setup()

	seq, _ := svc.Begin()
	require.NoError(t, svc.Complete(seq, station, nil))

	assert.False(t, svc.InFlight())
	require.Len(t, q.geo, 1)
	f := q.geo[0]
	assert.Equal(t, domain.CurrentLocationName, f.DisplayName)
	assert.True(t, f.Filter.IsGeo())
	assert.Equal(t, station.Latitude, f.Filter.Geo.Lat)
	assert.Equal(t, station.Longitude, f.Filter.Geo.Lng)
	assert.Equal(t, 5000.0, f.Filter.Geo.Radius)
	assert.Equal(t, 0, q.offset)
	assert.Equal(t, 1, q.executed)

	ok := events.Recorded[GeolocateSucceededEvent](bus)
	require.Len(t, ok, 1)
	assert.Equal(t, station, ok[0].Coordinate)
}

func TestCompleteIgnoresStaleAnswers(t *testing.T) {
	svc, q, _, _ := setup()

	seq, _ := svc.Begin()
	require.NoError(t, svc.Complete(seq+1, station, nil))
	assert.True(t, svc.InFlight())
	assert.Empty(t, q.geo)

	require.NoError(t, svc.Complete(seq, station, nil))
	require.NoError(t, svc.Complete(seq, station, nil))
	assert.Equal(t, 1, q.executed)
}

func TestCompleteFailure(t *testing.T) {
	svc, q, _, bus := setup()

	seq, _ := svc.Begin()
	denied := errors.New("denied")
	require.NoError(t, svc.Complete(seq, domain.Coordinate{}, denied))

	assert.False(t, svc.InFlight())
	assert.Empty(t, q.geo)
	assert.Equal(t, 20, q.offset)

	failed := events.Recorded[GeolocateFailedEvent](bus)
	require.Len(t, failed, 1)
	assert.ErrorIs(t, failed[0].Err, denied)

	// The button works again after a failure
	_, ok := svc.Begin()
	assert.True(t, ok)
}

func TestCompleteExecuteError(t *testing.T) {
	svc, q, _, bus := setup()
	q.err = errors.New("not ready")

	seq, _ := svc.Begin()
	err := svc.Complete(seq, station, nil)

	assert.ErrorIs(t, err, q.err)
	assert.Empty(t, events.Recorded[GeolocateSucceededEvent](bus))
}

func TestCompleteNotReadyKeepsGeoSlot(t *testing.T) {
	svc, q, _, bus := setup()
	notReady := errors.New("not ready")
	svc.SetReadyFunction(func() error { return notReady })

	seq, ok := svc.Begin()
	require.True(t, ok)

	err := svc.Complete(seq, station, nil)
	assert.ErrorIs(t, err, notReady)
	assert.Empty(t, q.geo)
	assert.Equal(t, 20, q.offset)
	assert.Zero(t, q.executed)
	assert.False(t, svc.InFlight())
	assert.Empty(t, events.Recorded[GeolocateSucceededEvent](bus))
}

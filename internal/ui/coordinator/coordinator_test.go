package coordinator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locator/internal/domain"
	"locator/internal/eventbus"
	"locator/internal/ui/services/events"
	"locator/internal/ui/services/query"
	"locator/internal/ui/services/selection"
)

type capture struct {
	requests []domain.QueryRequest
}

func (c *capture) Dispatch(req domain.QueryRequest) {
	c.requests = append(c.requests, req)
}

func (c *capture) last() domain.QueryRequest {
	return c.requests[len(c.requests)-1]
}

func newTestCoordinator(opts Options) (*Coordinator, *capture, *events.Recorder) {
	bus := events.NewRecorder()
	c := &capture{}
	return NewCoordinator(bus, c, opts), c, bus
}

func complete(t *testing.T, coord *Coordinator, req domain.QueryRequest, id string, results ...domain.Result) {
	t.Helper()
	require.NoError(t, coord.HandleDomainEvent(eventbus.QueryCompletedEvent{Outcome: domain.QueryOutcome{
		Seq:       req.Seq,
		Purpose:   req.Purpose,
		AllOnLoad: req.AllOnLoad,
		Response:  domain.QueryResponse{QueryID: id, Results: results, Total: len(results)},
	}}))
}

func at(id string, lat, lng float64) domain.Result {
	return domain.Result{ID: id, Name: id, Coordinate: &domain.Coordinate{Latitude: lat, Longitude: lng}}
}

var (
	start = domain.GeoBounds{
		NE: domain.Coordinate{Latitude: 35.70, Longitude: 139.80},
		SW: domain.Coordinate{Latitude: 35.66, Longitude: 139.74},
	}
	panned = domain.GeoBounds{
		NE: domain.Coordinate{Latitude: 35.67, Longitude: 139.71},
		SW: domain.Coordinate{Latitude: 35.65, Longitude: 139.69},
	}
)

func TestNothingRunsBeforeInitialParams(t *testing.T) {
	coord, c, _ := newTestCoordinator(Options{})

	err := coord.SearchBox.Submit("coffee")
	assert.ErrorIs(t, err, query.ErrNotReady)
	assert.Empty(t, c.requests)
	assert.True(t, coord.IsSpinning())
	assert.Empty(t, coord.DeepLink())

	coord.Initial.Complete(domain.InitialParams{
		Input:        "bakery",
		FacetFilters: []domain.FacetFilter{{FieldID: "category", Value: "bakery"}},
	}, nil)

	require.Len(t, c.requests, 1, "first query runs once loaded")
	req := c.last()
	assert.Equal(t, "bakery", req.State.Input)
	assert.Equal(t, []domain.FacetFilter{{FieldID: "category", Value: "bakery"}}, req.State.FacetFilters)
	assert.Contains(t, coord.DeepLink(), "q=bakery")
	assert.Contains(t, coord.DeepLink(), "facet=category%3Abakery")

	complete(t, coord, req, "q-1", at("loc-1", 35.68, 139.77))
	assert.False(t, coord.IsSpinning())
	assert.Equal(t, []string{"loc-1"}, coord.ResultIDs())
}

func TestBrokenInitialSourceStillRunsEmptyQuery(t *testing.T) {
	coord, c, _ := newTestCoordinator(Options{})

	coord.Initial.Complete(domain.InitialParams{Input: "ignored"}, errors.New("malformed"))

	require.Len(t, c.requests, 1)
	assert.Equal(t, domain.QueryState{}, c.last().State)
}

// Actions refused while the initial parameters load leave nothing behind
// that could ride along on the first query.
func TestRefusedActionsBeforeLoadLeaveNoTrace(t *testing.T) {
	coord, c, _ := newTestCoordinator(Options{})
	coord.Initial.Begin()

	coord.Viewport.OnDragEnd(start, panned)
	assert.False(t, coord.Area.Available())
	committed, err := coord.Area.CommitAreaSearch()
	require.NoError(t, err)
	assert.False(t, committed)

	assert.ErrorIs(t, coord.SearchBox.Submit("coffee"), query.ErrNotReady)
	assert.ErrorIs(t, coord.Facets.Toggle("category", "cafe"), query.ErrNotReady)

	seq, ok := coord.Geolocate.Begin()
	require.True(t, ok)
	err = coord.HandleDomainEvent(eventbus.LocateCompletedEvent{
		Seq:        seq,
		Coordinate: domain.Coordinate{Latitude: 35.68, Longitude: 139.76},
	})
	assert.ErrorIs(t, err, query.ErrNotReady)

	coord.Initial.Complete(domain.InitialParams{}, nil)

	require.Len(t, c.requests, 1)
	assert.Equal(t, domain.QueryState{}, c.last().State)
}

// A pan after a search offers an area search, and committing it replaces
// the static filters with a radius filter around the viewport center.
func TestSearchThisArea(t *testing.T) {
	coord, c, _ := newTestCoordinator(Options{})
	coord.Initial.Complete(domain.InitialParams{
		StaticFilters: []domain.SelectableFilter{{
			Selected:    true,
			DisplayName: "cafe",
			Filter:      domain.Filter{FieldID: "category", Matcher: domain.MatcherEquals, Text: "cafe"},
		}},
		Offset: 20,
	}, nil)
	complete(t, coord, c.last(), "q-1", at("loc-1", 35.68, 139.77))

	assert.False(t, coord.Area.Available())
	coord.Viewport.OnDragEnd(start, panned)
	assert.True(t, coord.Area.Available())
	assert.Len(t, c.requests, 1, "panning never searches by itself")

	framing, ok := coord.Framing()
	require.True(t, ok)
	assert.Equal(t, panned, framing)

	committed, err := coord.Area.CommitAreaSearch()
	require.NoError(t, err)
	require.True(t, committed)

	require.Len(t, c.requests, 2)
	req := c.last()
	require.Len(t, req.State.StaticFilters, 1)
	geo := req.State.StaticFilters[0]
	assert.Equal(t, domain.MapAreaName, geo.DisplayName)
	assert.Equal(t, domain.LocationFieldID, geo.Filter.FieldID)
	assert.Equal(t, domain.MatcherNear, geo.Filter.Matcher)
	assert.InDelta(t, 35.66, geo.Filter.Geo.Lat, 1e-9)
	assert.InDelta(t, 139.70, geo.Filter.Geo.Lng, 1e-9)
	assert.InDelta(t, domain.DistanceMiles(panned.NE, panned.Center())*1609, geo.Filter.Geo.Radius, 1e-6)
	assert.Equal(t, 0, req.State.Offset)

	assert.False(t, coord.Area.Available())
	assert.False(t, coord.Viewport.UserPanned())

	// Committing again without a new pan does nothing
	committed, err = coord.Area.CommitAreaSearch()
	require.NoError(t, err)
	assert.False(t, committed)
	assert.Len(t, c.requests, 2)
}

// Hover state from one result set never leaks into the next, even when
// the same location appears in both.
func TestNewResultSetClearsSelection(t *testing.T) {
	coord, c, _ := newTestCoordinator(Options{})
	coord.Initial.Complete(domain.InitialParams{}, nil)
	complete(t, coord, c.last(), "q-1", at("loc-7", 35.6, 139.6), at("loc-42", 35.7, 139.7))

	coord.Selection.SetHovered("loc-42", selection.SourceMap)
	coord.Selection.SetSelected("loc-42", selection.SourceMap)
	hovered, ok := coord.HoveredResult()
	require.True(t, ok)
	assert.Equal(t, "loc-42", hovered.ID)

	var hoverAtRender string
	coord.Query.State().Result.Subscribe(func(_, r query.Result) {
		hoverAtRender = coord.Selection.Hovered()
	})

	require.NoError(t, coord.SearchBox.Submit("tower"))
	complete(t, coord, c.last(), "q-2", at("loc-42", 35.7, 139.7))

	assert.Empty(t, hoverAtRender, "cleared before the new results are visible")
	assert.True(t, coord.Selection.GetState().IsZero())
	_, ok = coord.HoveredResult()
	assert.False(t, ok)
}

func TestFailedQueryKeepsSelection(t *testing.T) {
	coord, c, _ := newTestCoordinator(Options{})
	coord.Initial.Complete(domain.InitialParams{}, nil)
	complete(t, coord, c.last(), "q-1", at("loc-1", 35.6, 139.6))
	coord.Selection.SetSelected("loc-1", selection.SourceList)

	require.NoError(t, coord.Query.ExecuteQuery())
	require.NoError(t, coord.HandleDomainEvent(eventbus.QueryFailedEvent{Outcome: domain.QueryOutcome{
		Seq: c.last().Seq,
		Err: errors.New("timeout"),
	}}))

	assert.Equal(t, "loc-1", coord.Selection.Selected())
	assert.Error(t, coord.Query.GetResult().Err)
	assert.False(t, coord.IsSpinning())
}

func TestAllResultsOnLoadSpinsUntilLoaded(t *testing.T) {
	coord, c, _ := newTestCoordinator(Options{Query: query.Options{
		AllResultsOnLoad: true,
		VerticalLimit:    10,
		AllResultsLimit:  200,
	}})
	coord.Initial.Complete(domain.InitialParams{}, nil)

	req := c.last()
	assert.Equal(t, 200, req.Limit)
	assert.True(t, coord.IsSpinning())

	complete(t, coord, req, "q-all", at("loc-1", 35.6, 139.6), at("loc-2", 35.7, 139.7))
	assert.False(t, coord.IsSpinning())
	assert.Len(t, coord.Markers(), 2)
}

func TestGeolocateReplacesGeoSlot(t *testing.T) {
	coord, c, _ := newTestCoordinator(Options{GeolocateRadius: 3000})
	var locateRequests []uint64
	coord.SetLocateRequestFunction(func(seq uint64) { locateRequests = append(locateRequests, seq) })
	coord.Initial.Complete(domain.InitialParams{}, nil)
	complete(t, coord, c.last(), "q-1")

	coord.Viewport.OnDragEnd(start, panned)
	_, err := coord.Area.CommitAreaSearch()
	require.NoError(t, err)

	seq, ok := coord.Geolocate.Begin()
	require.True(t, ok)
	assert.Equal(t, []uint64{seq}, locateRequests)

	here := domain.Coordinate{Latitude: 35.6812, Longitude: 139.7671}
	require.NoError(t, coord.HandleDomainEvent(eventbus.LocateCompletedEvent{Seq: seq, Coordinate: here}))

	filters := c.last().State.StaticFilters
	require.Len(t, filters, 1)
	assert.Equal(t, domain.CurrentLocationName, filters[0].DisplayName)
	assert.Equal(t, 3000.0, filters[0].Filter.Geo.Radius)

	// A new text search drops the current-location filter
	require.NoError(t, coord.SearchBox.Submit("museum"))
	assert.Empty(t, c.last().State.StaticFilters)
	assert.Equal(t, "museum", c.last().State.Input)
}

func TestMoveHoverFollowsList(t *testing.T) {
	coord, c, _ := newTestCoordinator(Options{})
	coord.SetViewportHeight(2)
	coord.Initial.Complete(domain.InitialParams{}, nil)
	complete(t, coord, c.last(), "q-1",
		at("a", 1, 1), at("b", 2, 2), at("c", 3, 3), at("d", 4, 4))

	coord.MoveHover(1)
	coord.MoveHover(1)
	coord.MoveHover(1)

	assert.Equal(t, "c", coord.Selection.Hovered())
	assert.Equal(t, 1, coord.Navigation.GetViewportOffset())

	coord.MoveHover(-1)
	coord.MoveHover(-1)
	assert.Equal(t, "a", coord.Selection.Hovered())
	assert.Equal(t, 0, coord.Navigation.GetViewportOffset())
}

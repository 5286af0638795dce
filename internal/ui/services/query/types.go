package query

import (
	"errors"

	"locator/internal/domain"
	"locator/internal/ui/state"
)

// ErrNotReady is returned by ExecuteQuery before initial parameters are loaded
var ErrNotReady = errors.New("query: initial parameters not loaded")

// Result is the committed result set as shown to the user
type Result struct {
	QueryID  string
	Results  []domain.Result
	Total    int
	Fallback bool  // results come from a broadened query
	Err      error // last execution failure, cleared by the next success
}

// State holds everything the query lifecycle owns
type State struct {
	Query     *state.Cell[domain.QueryState] // uncommitted, edited by the UI
	Committed *state.Cell[domain.QueryState] // last state sent to the backend
	Result    *state.Cell[Result]

	IsLoading          bool
	AllLocationsLoaded bool
}

// Options are the result-count policies
type Options struct {
	DisplayAllOnNoResults bool
	AllResultsOnLoad      bool
	VerticalLimit         int
	AllResultsLimit       int
}

// Dispatcher sends a request to the backend without blocking
type Dispatcher interface {
	Dispatch(req domain.QueryRequest)
}

// DispatcherFunc adapts a function to Dispatcher
type DispatcherFunc func(req domain.QueryRequest)

func (f DispatcherFunc) Dispatch(req domain.QueryRequest) { f(req) }

// Event types
type QueryIssuedEvent struct {
	Seq     uint64
	Purpose domain.QueryPurpose
	Limit   int
}

type ResultsChangedEvent struct {
	QueryID  string
	Count    int
	Total    int
	Fallback bool
}

type QueryFailedEvent struct {
	Seq uint64
	Err error
}

type StaleResolutionDroppedEvent struct {
	Seq    uint64
	Latest uint64
}

type AllLocationsLoadedEvent struct {
	Count int
}

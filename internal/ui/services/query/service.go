package query

import (
	"log"

	"locator/internal/domain"
	"locator/internal/eventbus"
	"locator/internal/ui/services/events"
	"locator/internal/ui/state"
)

// Service owns the query state and its lifecycle against the backend
type Service struct {
	state      *State
	bus        events.EventBus
	dispatcher Dispatcher
	opts       Options

	readyFn func() bool
	hooks   []func(oldID, newID string)

	seq       uint64 // last issued request
	lastLimit int    // limit of the last issued request
	pageLimit int    // limit of the request behind the shown result
	executed  bool   // first execution has happened
}

// NewService creates a new query service
func NewService(bus events.EventBus, dispatcher Dispatcher, opts Options) *Service {
	if opts.VerticalLimit <= 0 {
		opts.VerticalLimit = 20
	}
	if opts.AllResultsLimit < opts.VerticalLimit {
		opts.AllResultsLimit = opts.VerticalLimit
	}
	return &Service{
		state: &State{
			Query:     state.NewCell(domain.QueryState{}, nil),
			Committed: state.NewCell(domain.QueryState{}, nil),
			Result:    state.NewCell(Result{}, nil),
		},
		bus:        bus,
		dispatcher: dispatcher,
		opts:       opts,
	}
}

// SetReadyFunction sets the gate that must pass before any execution
func (s *Service) SetReadyFunction(fn func() bool) {
	s.readyFn = fn
}

// OnQueryIDChanged registers a hook run when a new result identity is committed.
// Hooks run before Result subscribers are notified.
func (s *Service) OnQueryIDChanged(fn func(oldID, newID string)) {
	s.hooks = append(s.hooks, fn)
}

// State returns the owned state for read access
func (s *Service) State() *State {
	return s.state
}

// GetQuery returns a copy of the uncommitted query state
func (s *Service) GetQuery() domain.QueryState {
	return s.state.Query.Get().Clone()
}

// GetResult returns the committed result
func (s *Service) GetResult() Result {
	return s.state.Result.Get()
}

// IsLoading reports whether the latest request is in flight
func (s *Service) IsLoading() bool {
	return s.state.IsLoading
}

// AllLocationsLoaded reports whether the all-results-on-load execution resolved
func (s *Service) AllLocationsLoaded() bool {
	return s.state.AllLocationsLoaded
}

// Options returns the result-count policies in effect
func (s *Service) Options() Options {
	return s.opts
}

// Seed merges initial parameters into the query state
func (s *Service) Seed(params domain.InitialParams) {
	s.state.Query.Update(func(q domain.QueryState) domain.QueryState {
		if params.Input != "" {
			q.Input = params.Input
		}
		if len(params.StaticFilters) > 0 {
			q.StaticFilters = append([]domain.SelectableFilter(nil), params.StaticFilters...)
		}
		if len(params.FacetFilters) > 0 {
			q.FacetFilters = append([]domain.FacetFilter(nil), params.FacetFilters...)
		}
		if params.Offset > 0 {
			q.Offset = params.Offset
		}
		return q.Clone()
	})
}

// SetInput sets the free-text input
func (s *Service) SetInput(input string) {
	s.state.Query.Update(func(q domain.QueryState) domain.QueryState {
		q.Input = input
		return q
	})
}

// SetStaticFilters replaces the static filter list
func (s *Service) SetStaticFilters(filters []domain.SelectableFilter) {
	s.state.Query.Update(func(q domain.QueryState) domain.QueryState {
		q.StaticFilters = append([]domain.SelectableFilter(nil), filters...)
		return q
	})
}

// ReplaceGeoFilter puts f in the geo slot, dropping any other geo filter
func (s *Service) ReplaceGeoFilter(f domain.SelectableFilter) {
	s.state.Query.Update(func(q domain.QueryState) domain.QueryState {
		filters := make([]domain.SelectableFilter, 0, len(q.StaticFilters)+1)
		for _, existing := range q.StaticFilters {
			if !existing.Filter.IsGeo() {
				filters = append(filters, existing)
			}
		}
		q.StaticFilters = append(filters, f)
		return q
	})
}

// RemoveGeoFilter drops geo filters with the given display name
func (s *Service) RemoveGeoFilter(displayName string) {
	s.state.Query.Update(func(q domain.QueryState) domain.QueryState {
		filters := make([]domain.SelectableFilter, 0, len(q.StaticFilters))
		for _, existing := range q.StaticFilters {
			if existing.Filter.IsGeo() && existing.DisplayName == displayName {
				continue
			}
			filters = append(filters, existing)
		}
		q.StaticFilters = filters
		return q
	})
}

// SetFacetFilters replaces the facet filter list
func (s *Service) SetFacetFilters(facets []domain.FacetFilter) {
	s.state.Query.Update(func(q domain.QueryState) domain.QueryState {
		q.FacetFilters = append([]domain.FacetFilter(nil), facets...)
		return q
	})
}

// ResetFacets clears all facet filters
func (s *Service) ResetFacets() {
	s.SetFacetFilters(nil)
}

// SetOffset sets the pagination offset
func (s *Service) SetOffset(offset int) {
	if offset < 0 {
		offset = 0
	}
	s.state.Query.Update(func(q domain.QueryState) domain.QueryState {
		q.Offset = offset
		return q
	})
}

// CanPage reports whether the shown result can be paged.
// A broadened fallback does not belong to the user's query, so it cannot.
func (s *Service) CanPage() bool {
	r := s.state.Result.Get()
	return r.QueryID != "" && !r.Fallback
}

// NextPage moves past the rows on screen and executes
func (s *Service) NextPage() error {
	if !s.CanPage() {
		return nil
	}
	if err := s.CheckReady(); err != nil {
		return err
	}
	step := s.pageLimit
	if step <= 0 {
		step = s.opts.VerticalLimit
	}
	q := s.state.Committed.Get()
	if q.Offset+step >= s.state.Result.Get().Total {
		return nil
	}
	s.SetOffset(q.Offset + step)
	return s.ExecuteQuery()
}

// PrevPage moves back one page and executes
func (s *Service) PrevPage() error {
	if !s.CanPage() {
		return nil
	}
	if err := s.CheckReady(); err != nil {
		return err
	}
	q := s.state.Committed.Get()
	if q.Offset == 0 {
		return nil
	}
	s.SetOffset(q.Offset - s.opts.VerticalLimit)
	return s.ExecuteQuery()
}

// CheckReady returns ErrNotReady until a query may be executed
func (s *Service) CheckReady() error {
	if s.readyFn != nil && !s.readyFn() {
		return ErrNotReady
	}
	return nil
}

// HasExecuted reports whether any query has been committed
func (s *Service) HasExecuted() bool {
	return s.executed
}

// ExecuteQuery commits the current query state and sends it to the backend
func (s *Service) ExecuteQuery() error {
	if err := s.CheckReady(); err != nil {
		return err
	}

	req := domain.QueryRequest{
		Limit:   s.opts.VerticalLimit,
		Purpose: domain.PurposeSearch,
	}
	if s.opts.AllResultsOnLoad && !s.executed {
		req.Limit = s.opts.AllResultsLimit
		req.Purpose = domain.PurposeAllOnLoad
		req.AllOnLoad = true
	}
	s.executed = true

	committed := s.state.Query.Get().Clone()
	req.State = committed
	s.state.Committed.Set(committed)
	s.dispatch(req)
	return nil
}

func (s *Service) dispatch(req domain.QueryRequest) {
	s.seq++
	req.Seq = s.seq
	s.lastLimit = req.Limit
	s.state.IsLoading = true

	s.bus.Publish(QueryIssuedEvent{Seq: req.Seq, Purpose: req.Purpose, Limit: req.Limit})
	s.dispatcher.Dispatch(req)
}

// Resolve applies a backend outcome. Only the latest issued request may change the result.
func (s *Service) Resolve(o domain.QueryOutcome) {
	if o.Seq != s.seq {
		log.Printf("query: dropping stale resolution %d (latest %d)", o.Seq, s.seq)
		s.bus.Publish(StaleResolutionDroppedEvent{Seq: o.Seq, Latest: s.seq})
		if o.AllOnLoad {
			s.markAllLoaded()
		}
		return
	}

	if o.Err != nil {
		s.state.IsLoading = false
		prev := s.state.Result.Get()
		s.state.Result.Set(Result{QueryID: prev.QueryID, Err: o.Err})
		s.bus.Publish(QueryFailedEvent{Seq: o.Seq, Err: o.Err})
		if o.AllOnLoad {
			s.markAllLoaded()
		}
		return
	}

	if len(o.Response.Results) == 0 && s.opts.DisplayAllOnNoResults && o.Purpose != domain.PurposeFallback {
		log.Printf("query: request %d returned no results, broadening", o.Seq)
		s.dispatch(domain.QueryRequest{
			State:     domain.QueryState{},
			Limit:     s.lastLimit,
			Purpose:   domain.PurposeFallback,
			AllOnLoad: o.AllOnLoad,
		})
		return
	}

	s.state.IsLoading = false
	s.pageLimit = s.lastLimit
	next := Result{
		QueryID:  o.Response.QueryID,
		Results:  o.Response.Results,
		Total:    o.Response.Total,
		Fallback: o.Purpose == domain.PurposeFallback,
	}
	prev := s.state.Result.Get()
	if next.QueryID != prev.QueryID {
		for _, hook := range s.hooks {
			hook(prev.QueryID, next.QueryID)
		}
	}
	s.state.Result.Set(next)
	s.bus.Publish(ResultsChangedEvent{
		QueryID:  next.QueryID,
		Count:    len(next.Results),
		Total:    next.Total,
		Fallback: next.Fallback,
	})

	if o.AllOnLoad {
		s.markAllLoaded()
	}
}

func (s *Service) markAllLoaded() {
	if s.state.AllLocationsLoaded {
		return
	}
	s.state.AllLocationsLoaded = true
	s.bus.Publish(AllLocationsLoadedEvent{Count: len(s.state.Result.Get().Results)})
}

// BusDispatcher publishes requests on the domain event bus for a backend worker
type BusDispatcher struct {
	Bus eventbus.EventBus
}

// Dispatch publishes a QueryRequestedEvent
func (d BusDispatcher) Dispatch(req domain.QueryRequest) {
	d.Bus.Publish(eventbus.QueryRequestedEvent{Request: req})
}

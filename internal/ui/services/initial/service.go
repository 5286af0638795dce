package initial

import (
	"context"
	"log"

	"locator/internal/domain"
	"locator/internal/ui/services/events"
)

// Service reconciles initial parameters into the query before the first execution
type Service struct {
	phase Phase
	bus   events.EventBus

	seedFn       func(domain.InitialParams)
	onCompleteFn func()
}

// NewService creates a new initial state loader
func NewService(bus events.EventBus) *Service {
	return &Service{bus: bus}
}

// SetSeedFunction sets how parameters are merged into the query state
func (s *Service) SetSeedFunction(fn func(domain.InitialParams)) {
	s.seedFn = fn
}

// SetCompletionFunction sets the callback fired once on reaching Loaded
func (s *Service) SetCompletionFunction(fn func()) {
	s.onCompleteFn = fn
}

// Phase returns the current phase
func (s *Service) Phase() Phase {
	return s.phase
}

// Loaded reports whether the one-shot load has completed. It never reverts.
func (s *Service) Loaded() bool {
	return s.phase == Loaded
}

// Begin moves from NotStarted to Loading
func (s *Service) Begin() {
	if s.phase == NotStarted {
		s.phase = Loading
	}
}

// Complete seeds params, or an empty query when err is set, and fires the
// completion callback. Only the first call has any effect.
func (s *Service) Complete(params domain.InitialParams, err error) {
	if s.phase == Loaded {
		return
	}

	if err != nil {
		log.Printf("initial: discarding initial parameters: %v", err)
		params = domain.InitialParams{}
	}
	if s.seedFn != nil {
		s.seedFn(params)
	}

	s.phase = Loaded
	s.bus.Publish(InitialParamsLoadedEvent{Params: params, Err: err})

	if s.onCompleteFn != nil {
		s.onCompleteFn()
	}
}

// Load reads src and completes. Use Begin and Complete for sources that
// resolve off the UI loop.
func (s *Service) Load(ctx context.Context, src Source) {
	if s.phase == Loaded {
		return
	}
	s.Begin()
	if src == nil {
		s.Complete(domain.InitialParams{}, nil)
		return
	}
	params, err := src.Params(ctx)
	s.Complete(params, err)
}

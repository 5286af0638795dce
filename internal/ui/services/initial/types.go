package initial

import (
	"context"

	"locator/internal/domain"
)

// Phase is the loader's position in its one-shot lifecycle
type Phase int

const (
	NotStarted Phase = iota
	Loading
	Loaded
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not-started"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	}
	return "unknown"
}

// Source supplies externally parsed parameters, such as a deep link
type Source interface {
	Params(ctx context.Context) (domain.InitialParams, error)
}

// SourceFunc adapts a function to Source
type SourceFunc func(ctx context.Context) (domain.InitialParams, error)

func (f SourceFunc) Params(ctx context.Context) (domain.InitialParams, error) { return f(ctx) }

// Event types
type InitialParamsLoadedEvent struct {
	Params domain.InitialParams
	Err    error // set when the parameters were discarded
}

// Package backend executes locator queries against a search engine.
//
// Every implementation satisfies Client. Decorators (Cache, Throttle) wrap
// another Client, and Worker connects a Client to the domain event bus so
// the UI never blocks on a query.
package backend

import (
	"context"
	"errors"

	"locator/internal/domain"
)

// ErrUnavailable is returned when the search engine cannot be reached
var ErrUnavailable = errors.New("search backend unavailable")

// Client executes one vertical query
type Client interface {
	ExecuteVerticalQuery(ctx context.Context, req domain.QueryRequest) (domain.QueryResponse, error)
}

// ClientFunc adapts a function to Client
type ClientFunc func(ctx context.Context, req domain.QueryRequest) (domain.QueryResponse, error)

// ExecuteVerticalQuery calls f
func (f ClientFunc) ExecuteVerticalQuery(ctx context.Context, req domain.QueryRequest) (domain.QueryResponse, error) {
	return f(ctx, req)
}

// page applies offset and limit to an already filtered slice
func page(results []domain.Result, offset, limit int) []domain.Result {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(results) {
		return []domain.Result{}
	}
	end := len(results)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]domain.Result, end-offset)
	copy(out, results[offset:end])
	return out
}

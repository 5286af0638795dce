package backend

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"locator/internal/domain"
)

// Throttle limits how often queries reach the wrapped client
type Throttle struct {
	next    Client
	limiter *rate.Limiter
}

// NewThrottle allows perSecond queries with the given burst
func NewThrottle(next Client, perSecond float64, burst int) *Throttle {
	if burst < 1 {
		burst = 1
	}
	return &Throttle{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// ExecuteVerticalQuery waits for a token, then delegates
func (t *Throttle) ExecuteVerticalQuery(ctx context.Context, req domain.QueryRequest) (domain.QueryResponse, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return domain.QueryResponse{}, fmt.Errorf("rate limit: %w", err)
	}
	return t.next.ExecuteVerticalQuery(ctx, req)
}

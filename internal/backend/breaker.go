package backend

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/vmelnikov/kinosovetnik/internal/logging"
)

// BreakerClient wraps a Sender with a circuit breaker so a dead backend is
// skipped quickly instead of burning the full HTTP timeout on every turn.
// Rejected calls surface as TransportError and land in the same local
// fallback path; the breaker never retries on its own.
type BreakerClient struct {
	inner Sender
	cb    *gobreaker.CircuitBreaker[ChatResponse]
}

func NewBreakerClient(inner Sender) *BreakerClient {
	cb := gobreaker.NewCircuitBreaker[ChatResponse](gobreaker.Settings{
		Name:        "recommendation-backend",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("backend circuit breaker state change")
		},
	})
	return &BreakerClient{inner: inner, cb: cb}
}

func (b *BreakerClient) Send(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	resp, err := b.cb.Execute(func() (ChatResponse, error) {
		return b.inner.Send(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return ChatResponse{}, &TransportError{Err: err}
		}
		return ChatResponse{}, err
	}
	return resp, nil
}

package restclient

import (
	"context"
	"time"

	"github.com/sony/gobreaker"

	"github.com/qxf2/cars-api-test-harness/framework"
)

// BreakerTransport wraps another Transport with a circuit breaker, so that a run
// against an unreachable deployment fails fast instead of waiting out every timeout.
// It is optional and off by default; the CLI enables it with -breaker.
type BreakerTransport struct {
	base Transport
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerTransport creates a BreakerTransport. The breaker opens after five
// consecutive transport-level failures and probes again after ten seconds. HTTP
// error statuses do not trip the breaker; those are outcomes, not failures.
func NewBreakerTransport(base Transport, name string, logger framework.Logger) *BreakerTransport {
	if logger == nil {
		logger = framework.NullLogger()
	}
	settings := gobreaker.Settings{
		Name:    name,
		Timeout: 10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Printf("circuit breaker %q: %s -> %s", name, from, to)
		},
	}
	return &BreakerTransport{
		base: base,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

func (b *BreakerTransport) Do(ctx context.Context, req RequestDescriptor) (ResponseOutcome, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.base.Do(ctx, req)
	})
	if err != nil {
		if IsTransportError(err) {
			return ResponseOutcome{}, err
		}
		// breaker is open or half-open limit exceeded; report it as a transport
		// failure so the retry policy treats it like any other connection problem
		return ResponseOutcome{}, &TransportError{Method: req.Method, URL: req.URL, Err: err}
	}
	return result.(ResponseOutcome), nil
}

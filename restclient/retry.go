package restclient

import (
	"context"
	"time"

	"golang.org/x/exp/slices"

	"github.com/qxf2/cars-api-test-harness/framework"
)

// Default retry behavior: three attempts with a constant one-second delay, retrying
// only transport errors and the transient server statuses.
const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = time.Second
)

// DefaultTransientStatuses are the status codes that are worth retrying because they
// are expected to resolve without caller intervention.
func DefaultTransientStatuses() []int {
	return []int{429, 502, 503, 504}
}

// Operation is one attempt at an API call, normally a closure over an endpoint caller.
type Operation func(ctx context.Context) (ResponseOutcome, error)

// RetryPolicy re-issues an Operation up to MaxAttempts times when it fails in a
// transient way. Deterministic failures - any response status outside the transient
// set, including client errors like 401 and 404 - are never retried. A transport
// error on the final attempt is surfaced as the terminal error rather than being
// converted to a failed outcome.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// Delay is the pause between attempts. The default strategy is a constant delay;
	// if Backoff is set, attempt N waits N*Delay instead.
	Delay   time.Duration
	Backoff bool

	// TransientStatuses overrides DefaultTransientStatuses when non-nil.
	TransientStatuses []int

	// Logger, if set, receives a line per retried attempt.
	Logger framework.Logger
}

// DefaultRetryPolicy returns the policy used when a client does not configure one.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: DefaultMaxAttempts, Delay: DefaultRetryDelay}
}

func (p RetryPolicy) maxAttempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

func (p RetryPolicy) logger() framework.Logger {
	if p.Logger == nil {
		return framework.NullLogger()
	}
	return p.Logger
}

// IsTransientStatus tests whether a status code is in this policy's transient set.
func (p RetryPolicy) IsTransientStatus(status int) bool {
	if p.TransientStatuses != nil {
		return slices.Contains(p.TransientStatuses, status)
	}
	return slices.Contains(DefaultTransientStatuses(), status)
}

// Execute runs the operation under this policy. It returns the outcome of the last
// attempt, or the transport error if the last attempt never produced a response.
// Retry state lives only for the duration of this call and is never shared.
func (p RetryPolicy) Execute(ctx context.Context, op Operation) (ResponseOutcome, error) {
	attempts := p.maxAttempts()
	var outcome ResponseOutcome
	var err error
	for attempt := 1; ; attempt++ {
		outcome, err = op(ctx)
		if err == nil && !p.IsTransientStatus(outcome.StatusCode) {
			return outcome, nil
		}
		if attempt == attempts {
			break
		}
		if err != nil {
			p.logger().Printf("attempt %d of %d failed (%s), retrying", attempt, attempts, err)
		} else {
			p.logger().Printf("attempt %d of %d returned transient status %d, retrying",
				attempt, attempts, outcome.StatusCode)
		}
		if sleepErr := p.sleep(ctx, attempt); sleepErr != nil {
			return ResponseOutcome{}, sleepErr
		}
	}
	if err != nil {
		// transport error on the final attempt is terminal
		return ResponseOutcome{}, err
	}
	return outcome, nil
}

// sleep pauses between attempts. It suspends only the calling goroutine, and ends
// early if the context is cancelled.
func (p RetryPolicy) sleep(ctx context.Context, attempt int) error {
	delay := p.Delay
	if p.Backoff {
		delay = time.Duration(attempt) * p.Delay
	}
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

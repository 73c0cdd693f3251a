package restclient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedOperation returns an Operation that replays the given results in order,
// repeating the last one if it is called again, and counts its invocations.
func scriptedOperation(calls *int, results ...func() (ResponseOutcome, error)) Operation {
	return func(ctx context.Context) (ResponseOutcome, error) {
		i := *calls
		*calls++
		if i >= len(results) {
			i = len(results) - 1
		}
		return results[i]()
	}
}

func status(code int) func() (ResponseOutcome, error) {
	return func() (ResponseOutcome, error) {
		return ResponseOutcome{StatusCode: code}, nil
	}
}

func transportFailure(err error) func() (ResponseOutcome, error) {
	return func() (ResponseOutcome, error) {
		return ResponseOutcome{}, &TransportError{Method: "GET", URL: "http://fake/cars", Err: err}
	}
}

func TestRetryStopsOnFirstSuccess(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3}
	calls := 0
	outcome, err := policy.Execute(context.Background(), scriptedOperation(&calls, status(200)))
	require.NoError(t, err)
	assert.Equal(t, 200, outcome.StatusCode)
	assert.Equal(t, 1, calls)
}

func TestRetryExhaustsAttemptsOnPersistentTransportError(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3}
	calls := 0
	_, err := policy.Execute(context.Background(),
		scriptedOperation(&calls, transportFailure(errors.New("connection refused"))))
	require.Error(t, err)
	assert.True(t, IsTransportError(err))
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, 3, calls)
}

func TestRetryRecoversFromTransientStatuses(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3}
	calls := 0
	outcome, err := policy.Execute(context.Background(),
		scriptedOperation(&calls, status(503), status(503), status(200)))
	require.NoError(t, err)
	assert.Equal(t, 200, outcome.StatusCode)
	assert.True(t, Classify(outcome).Success)
	assert.Equal(t, 3, calls)
}

func TestRetryNeverRetriesDeterministicClientErrors(t *testing.T) {
	for _, code := range []int{400, 401, 403, 404} {
		policy := RetryPolicy{MaxAttempts: 3}
		calls := 0
		outcome, err := policy.Execute(context.Background(), scriptedOperation(&calls, status(code)))
		require.NoError(t, err)
		assert.Equal(t, code, outcome.StatusCode)
		assert.Equal(t, 1, calls, "status %d should not be retried", code)
	}
}

func TestRetryReturnsLastTransientOutcomeAfterExhaustion(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3}
	calls := 0
	outcome, err := policy.Execute(context.Background(), scriptedOperation(&calls, status(429)))
	require.NoError(t, err)
	assert.Equal(t, 429, outcome.StatusCode)
	assert.False(t, Classify(outcome).Success)
	assert.Equal(t, 3, calls)
}

func TestRetryTransportErrorAfterTransientStatusesIsTerminal(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 2}
	calls := 0
	_, err := policy.Execute(context.Background(),
		scriptedOperation(&calls, status(502), transportFailure(errors.New("timeout"))))
	require.Error(t, err)
	assert.True(t, IsTransportError(err))
	assert.Equal(t, 2, calls)
}

func TestRetryCustomTransientStatusSet(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 2, TransientStatuses: []int{500}}
	calls := 0
	outcome, err := policy.Execute(context.Background(),
		scriptedOperation(&calls, status(500), status(200)))
	require.NoError(t, err)
	assert.Equal(t, 200, outcome.StatusCode)
	assert.Equal(t, 2, calls)

	// 503 is not in the custom set, so it is terminal on the first attempt
	calls = 0
	outcome, err = policy.Execute(context.Background(), scriptedOperation(&calls, status(503)))
	require.NoError(t, err)
	assert.Equal(t, 503, outcome.StatusCode)
	assert.Equal(t, 1, calls)
}

func TestRetryDelayRespectsContextCancellation(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, Delay: time.Minute}
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	done := make(chan error, 1)
	go func() {
		_, err := policy.Execute(ctx, scriptedOperation(&calls, status(503)))
		done <- err
	}()
	// give the first attempt time to happen, then cancel during the delay
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	case <-time.After(5 * time.Second):
		t.Fatal("Execute did not return after context cancellation")
	}
}

func TestRetryDefaultPolicyValues(t *testing.T) {
	policy := DefaultRetryPolicy()
	assert.Equal(t, 3, policy.MaxAttempts)
	assert.Equal(t, time.Second, policy.Delay)
	assert.False(t, policy.Backoff)
	for _, code := range DefaultTransientStatuses() {
		assert.True(t, policy.IsTransientStatus(code))
	}
	assert.False(t, policy.IsTransientStatus(500))
	assert.False(t, policy.IsTransientStatus(404))
}

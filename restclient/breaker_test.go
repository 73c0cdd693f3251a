package restclient

import (
	"context"
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTransport struct {
	calls   int
	outcome ResponseOutcome
	err     error
}

func (s *stubTransport) Do(ctx context.Context, req RequestDescriptor) (ResponseOutcome, error) {
	s.calls++
	return s.outcome, s.err
}

func TestBreakerPassesThroughSuccesses(t *testing.T) {
	base := &stubTransport{outcome: ResponseOutcome{StatusCode: 200}}
	breaker := NewBreakerTransport(base, "cars-api", nil)

	outcome, err := breaker.Do(context.Background(), RequestDescriptor{Method: "GET", URL: "http://fake/cars"})
	require.NoError(t, err)
	assert.Equal(t, 200, outcome.StatusCode)
	assert.Equal(t, 1, base.calls)
}

func TestBreakerDoesNotTripOnHTTPErrorStatuses(t *testing.T) {
	base := &stubTransport{outcome: ResponseOutcome{StatusCode: 500}}
	breaker := NewBreakerTransport(base, "cars-api", nil)

	for i := 0; i < 10; i++ {
		outcome, err := breaker.Do(context.Background(), RequestDescriptor{Method: "GET", URL: "http://fake/cars"})
		require.NoError(t, err)
		assert.Equal(t, 500, outcome.StatusCode)
	}
	assert.Equal(t, 10, base.calls)
}

func TestBreakerOpensAfterConsecutiveTransportFailures(t *testing.T) {
	base := &stubTransport{err: &TransportError{Method: "GET", URL: "http://fake/cars", Err: errors.New("connection refused")}}
	breaker := NewBreakerTransport(base, "cars-api", nil)

	req := RequestDescriptor{Method: "GET", URL: "http://fake/cars"}
	for i := 0; i < 5; i++ {
		_, err := breaker.Do(context.Background(), req)
		require.Error(t, err)
		assert.True(t, IsTransportError(err))
	}
	assert.Equal(t, 5, base.calls)

	// breaker is now open: the base transport is not invoked again
	_, err := breaker.Do(context.Background(), req)
	require.Error(t, err)
	assert.True(t, IsTransportError(err))
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 5, base.calls)
}

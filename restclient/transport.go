package restclient

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/qxf2/cars-api-test-harness/framework"
)

// DefaultRequestTimeout is the per-attempt time limit used when a RequestDescriptor
// does not specify one.
const DefaultRequestTimeout = time.Second * 30

// Transport is the capability of performing one HTTP exchange. The production
// implementation is HTTPTransport; tests substitute their own.
type Transport interface {
	// Do performs the request and returns the outcome. The returned error is non-nil
	// only for transport-level failures (*TransportError); any well-formed HTTP
	// response, successful or not, is returned as a ResponseOutcome.
	Do(ctx context.Context, req RequestDescriptor) (ResponseOutcome, error)
}

// HTTPTransport is a Transport over a pooled net/http client.
type HTTPTransport struct {
	client *http.Client
	logger framework.Logger
}

// NewHTTPTransport creates an HTTPTransport that logs each exchange to the given
// logger. A nil logger discards the output.
func NewHTTPTransport(logger framework.Logger) *HTTPTransport {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &HTTPTransport{
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
			},
		},
		logger: logger,
	}
}

// SetLogger replaces the logger used for subsequent exchanges.
func (t *HTTPTransport) SetLogger(logger framework.Logger) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	t.logger = logger
}

func (t *HTTPTransport) Do(ctx context.Context, req RequestDescriptor) (ResponseOutcome, error) {
	timeout := req.Timeout
	if timeout == 0 {
		timeout = DefaultRequestTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var bodyReader io.Reader
	if !req.Body.IsNull() {
		bodyReader = strings.NewReader(req.Body.JSONString())
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return ResponseOutcome{}, &TransportError{Method: req.Method, URL: req.URL, Err: err}
	}
	if bodyReader != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := t.client.Do(httpReq)
	elapsed := time.Since(start)
	if err != nil {
		t.logger.Printf("%s %s failed after %s: %s", req.Method, req.URL, elapsed, err)
		return ResponseOutcome{}, &TransportError{Method: req.Method, URL: req.URL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		t.logger.Printf("%s %s: error reading response body: %s", req.Method, req.URL, err)
		return ResponseOutcome{}, &TransportError{Method: req.Method, URL: req.URL, Err: err}
	}

	t.logger.Printf("%s %s -> %d (%s)", req.Method, req.URL, resp.StatusCode, elapsed)

	return ResponseOutcome{
		StatusCode: resp.StatusCode,
		Body:       parseBody(respData),
		Elapsed:    elapsed,
	}, nil
}

func parseBody(data []byte) ldvalue.Value {
	if len(data) == 0 {
		return ldvalue.Null()
	}
	// ldvalue.Parse returns Null for anything that isn't valid JSON
	return ldvalue.Parse(data)
}

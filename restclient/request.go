package restclient

import (
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// RequestDescriptor describes one HTTP request to be made through a Transport.
// Values of this type are treated as immutable once built.
type RequestDescriptor struct {
	// Method is the HTTP method: GET, POST, PUT, or DELETE.
	Method string

	// URL is the complete request URL including any query string.
	URL string

	// Headers contains the request headers. A nil map means no extra headers.
	Headers map[string]string

	// Body is an optional JSON request body. ldvalue.Null() means no body.
	Body ldvalue.Value

	// Timeout is the per-attempt time limit. Zero means DefaultRequestTimeout.
	Timeout time.Duration
}

// ResponseOutcome describes the result of one completed HTTP exchange. It is produced
// once per attempt and never mutated.
type ResponseOutcome struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Body is the response body parsed as JSON, or ldvalue.Null() if the body was
	// empty or not valid JSON. An unparsable body is not an error at this level;
	// callers that care about body shape layer their own checks on top.
	Body ldvalue.Value

	// Elapsed is how long the exchange took.
	Elapsed time.Duration
}

// IsSuccess returns true if the status code is in the 2xx range.
func (o ResponseOutcome) IsSuccess() bool {
	return o.StatusCode >= 200 && o.StatusCode <= 299
}

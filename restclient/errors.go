package restclient

import (
	"errors"
	"fmt"
)

// TransportError means the request never produced a well-formed HTTP response:
// connection refused, DNS failure, timeout, or a dropped connection. It is a
// different kind of failure from an unsuccessful HTTP status, which is reported
// through ResponseOutcome and classified by Classify.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransportError tests whether err is (or wraps) a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

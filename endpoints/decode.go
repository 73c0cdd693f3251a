package endpoints

import (
	"encoding/json"
	"fmt"

	"github.com/qxf2/cars-api-test-harness/restclient"
)

// MismatchError indicates that a request succeeded at the HTTP level but the
// response body did not have the expected shape. These are never retried.
type MismatchError struct {
	Operation string
	Detail    string
}

func (e MismatchError) Error() string {
	return fmt.Sprintf("%s: unexpected response body: %s", e.Operation, e.Detail)
}

// decodeBody unmarshals a successful response body into out. It should only be
// called after checking outcome.IsSuccess().
func decodeBody(operation string, outcome restclient.ResponseOutcome, out interface{}) error {
	if outcome.Body.IsNull() {
		return MismatchError{Operation: operation, Detail: "response had no JSON body"}
	}
	if err := json.Unmarshal([]byte(outcome.Body.JSONString()), out); err != nil {
		return MismatchError{Operation: operation, Detail: err.Error()}
	}
	return nil
}

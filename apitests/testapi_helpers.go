package apitests

import (
	"github.com/qxf2/cars-api-test-harness/framework/apitest"
	"github.com/qxf2/cars-api-test-harness/restclient"
)

// requireSuccess fails the test immediately unless the request completed with a
// success status. Transport errors that survived the retry policy are reported
// with the underlying error text; HTTP failures are reported with the
// classification message.
func requireSuccess(t *apitest.T, outcome restclient.ResponseOutcome, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("request did not complete: %s", err)
		t.FailNow()
	}
	if v := restclient.Classify(outcome); !v.Success {
		t.Errorf("request failed: %s", v.Message)
		t.FailNow()
	}
}

// requireStatus fails the test immediately unless the request completed with the
// given status, and returns its classification.
func requireStatus(t *apitest.T, outcome restclient.ResponseOutcome, err error, status int) restclient.ValidationResult {
	t.Helper()
	if err != nil {
		t.Errorf("request did not complete: %s", err)
		t.FailNow()
	}
	if outcome.StatusCode != status {
		t.Errorf("expected status %d but got %d (%s)", status, outcome.StatusCode,
			restclient.Classify(outcome).Message)
		t.FailNow()
	}
	return restclient.Classify(outcome)
}

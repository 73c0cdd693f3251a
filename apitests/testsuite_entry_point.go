package apitests

import (
	"context"
	"fmt"
	"os"

	"github.com/qxf2/cars-api-test-harness/config"
	"github.com/qxf2/cars-api-test-harness/framework"
	"github.com/qxf2/cars-api-test-harness/framework/apitest"
	"github.com/qxf2/cars-api-test-harness/restclient"
)

// SuiteParams configures one run of the Cars API test suite.
type SuiteParams struct {
	// Environment is the deployment to run against.
	Environment config.Environment

	// EnvironmentName is the name the environment was selected by, used only for output.
	EnvironmentName string

	// RetryPolicy applies to every request made by the suite.
	RetryPolicy restclient.RetryPolicy

	// Filters selects which tests to run.
	Filters apitest.RegexFilters

	// TestLogger receives per-test status output.
	TestLogger apitest.TestLogger

	// Tracker, if non-nil, receives a pass/fail record for every completed test.
	Tracker *apitest.Tracker

	// NewTransport, if non-nil, overrides how the suite builds its HTTP transport.
	// The CLI uses this to interpose the circuit breaker.
	NewTransport func(framework.Logger) restclient.Transport
}

// RunCarsAPITestSuite runs every test against the configured deployment and returns
// the aggregated results. Whatever state the tests created is removed at the end by
// resetting the server.
func RunCarsAPITestSuite(params SuiteParams) apitest.Results {
	fmt.Printf("Running Cars API test suite against %s (%s)\n\n",
		params.EnvironmentName, params.Environment.BaseURL)
	params.Filters.Describe(os.Stdout)

	testConfig := apitest.TestConfiguration{
		Filter:     params.Filters.Match,
		TestLogger: params.TestLogger,
		Tracker:    params.Tracker,
		Context: SuiteContext{
			environment:  params.Environment,
			retry:        params.RetryPolicy,
			newTransport: params.NewTransport,
		},
	}

	return apitest.Run(testConfig, func(t *apitest.T) {
		t.Defer(func() { resetServerState(t) })

		t.Run("cars", doCarsTests)
		t.Run("registration", doRegistrationTests)
		t.Run("users", doUsersTests)
		t.Run("auth", doAuthTests)
	})
}

func resetServerState(t *apitest.T) {
	client := NewAPIClient(t)
	if _, err := client.Reset(context.Background(), adminHeaders(t)); err != nil {
		t.DebugLogger().Printf("Could not reset server state: %s", err)
	}
}

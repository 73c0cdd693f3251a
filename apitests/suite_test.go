package apitests

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qxf2/cars-api-test-harness/config"
	"github.com/qxf2/cars-api-test-harness/framework"
	"github.com/qxf2/cars-api-test-harness/framework/apitest"
	"github.com/qxf2/cars-api-test-harness/mockcars"
	"github.com/qxf2/cars-api-test-harness/restclient"
)

func startMockDeployment(t *testing.T) (*mockcars.Service, SuiteParams) {
	service := mockcars.NewService(framework.NullLogger())
	server := httptest.NewServer(service)
	t.Cleanup(server.Close)

	retry := restclient.DefaultRetryPolicy()
	retry.Delay = time.Millisecond

	params := SuiteParams{
		Environment: config.Environment{
			BaseURL:  server.URL,
			Admin:    config.Credentials{Username: "qxf2", Password: "qxf2"},
			NonAdmin: config.Credentials{Username: "eric", Password: "testqxf2"},
		},
		EnvironmentName: "mock",
		RetryPolicy:     retry,
		Tracker:         apitest.NewTracker(framework.NullLogger()),
	}
	return service, params
}

func TestSuitePassesAgainstMockDeployment(t *testing.T) {
	_, params := startMockDeployment(t)

	results := RunCarsAPITestSuite(params)

	assert.True(t, results.OK(), "unexpected failures: %+v", results.Failures)
	assert.Empty(t, results.Failures)

	tally := params.Tracker.Summary()
	assert.Equal(t, tally.Total, tally.Passed)
	assert.Zero(t, tally.FailCount())
	// 15 leaf tests plus the 4 group scopes
	assert.Equal(t, 19, tally.Total)
}

func TestSuiteRecoversFromTransientFailures(t *testing.T) {
	service, params := startMockDeployment(t)
	service.EnqueueStatus(http.StatusServiceUnavailable, http.StatusBadGateway)

	results := RunCarsAPITestSuite(params)

	assert.True(t, results.OK(),
		"transient failures should have been retried, got: %+v", results.Failures)
	tally := params.Tracker.Summary()
	assert.Zero(t, tally.FailCount())
}

func TestSuiteReportsDeterministicFailure(t *testing.T) {
	service, params := startMockDeployment(t)
	service.EnqueueStatus(http.StatusInternalServerError)

	results := RunCarsAPITestSuite(params)

	require.False(t, results.OK())
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "cars/add car", results.Failures[0].TestID.String())

	tally := params.Tracker.Summary()
	assert.Equal(t, 1, tally.FailCount())
	assert.Equal(t, tally.Total, tally.Passed+tally.FailCount())
	require.NotEmpty(t, tally.Failures)
	assert.Contains(t, tally.Failures[0], "500 Internal Server Error")
}

func TestSuiteHonorsRunFilter(t *testing.T) {
	_, params := startMockDeployment(t)

	pattern, err := apitest.ParseTestIDPattern("cars/add car")
	require.NoError(t, err)
	params.Filters.MustMatch = apitest.TestIDPatternList{pattern}

	results := RunCarsAPITestSuite(params)

	assert.True(t, results.OK())
	tally := params.Tracker.Summary()
	// the one matching leaf plus its enclosing group
	assert.Equal(t, 2, tally.Total)
}

package apitests

import (
	"github.com/qxf2/cars-api-test-harness/config"
	"github.com/qxf2/cars-api-test-harness/endpoints"
	"github.com/qxf2/cars-api-test-harness/framework"
	"github.com/qxf2/cars-api-test-harness/framework/apitest"
	"github.com/qxf2/cars-api-test-harness/restclient"
)

// SuiteContext carries the deployment-specific state that every test in the suite
// needs: which environment we are targeting, the retry policy, and how to build
// a transport. It is stored in the global test configuration.
type SuiteContext struct {
	environment  config.Environment
	retry        restclient.RetryPolicy
	newTransport func(framework.Logger) restclient.Transport
}

func requireContext(t *apitest.T) SuiteContext {
	if c, ok := t.Context().(SuiteContext); ok {
		return c
	}
	panic("SuiteContext was not included in the global test configuration!" +
		" This is a basic mistake in the initialization logic.")
}

// NewAPIClient creates an endpoints.Client for the current test scope. Request
// and retry logging goes to the scope's debug log, so it only appears in the
// output for tests that fail (or with -debug).
func NewAPIClient(t *apitest.T) *endpoints.Client {
	c := requireContext(t)
	logger := t.DebugLogger()
	cc := endpoints.ClientConfig{
		BaseURL: c.environment.BaseURL,
		Retry:   &c.retry,
		Logger:  logger,
	}
	if c.newTransport != nil {
		cc.Transport = c.newTransport(logger)
	}
	client, err := endpoints.NewClient(cc)
	if err != nil {
		t.Errorf("could not create API client: %s", err)
		t.FailNow()
	}
	return client
}

func adminHeaders(t *apitest.T) map[string]string {
	creds := requireContext(t).environment.Admin
	return endpoints.BasicAuthHeaders(creds.Username, creds.Password)
}

func nonAdminHeaders(t *apitest.T) map[string]string {
	creds := requireContext(t).environment.NonAdmin
	return endpoints.BasicAuthHeaders(creds.Username, creds.Password)
}

func invalidAuthHeaders() map[string]string {
	creds := config.InvalidCredentials()
	return endpoints.BasicAuthHeaders(creds.Username, creds.Password)
}

package endpoints

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/qxf2/cars-api-test-harness/framework"
	"github.com/qxf2/cars-api-test-harness/restclient"
)

// Client is the shared entry point for all endpoint callers. It owns the transport,
// the retry policy, and the logger, so individual callers only describe requests.
type Client struct {
	baseURL   string
	transport restclient.Transport
	retry     restclient.RetryPolicy
	timeout   time.Duration
	logger    framework.Logger
}

// ClientConfig contains the options for NewClient. Only BaseURL is required.
type ClientConfig struct {
	// BaseURL is the root URL of the deployment under test, without a trailing slash.
	BaseURL string

	// Transport overrides the default HTTP transport. Tests use this, and the CLI
	// uses it to interpose the circuit breaker.
	Transport restclient.Transport

	// Retry overrides restclient.DefaultRetryPolicy().
	Retry *restclient.RetryPolicy

	// Timeout is the per-attempt time limit, defaulting to
	// restclient.DefaultRequestTimeout.
	Timeout time.Duration

	// Logger receives a line per request and per retried attempt. Nil discards them.
	Logger framework.Logger
}

// NewClient creates a Client for one deployment of the Cars API.
func NewClient(cc ClientConfig) (*Client, error) {
	if cc.BaseURL == "" {
		return nil, errors.New("client requires a base URL")
	}
	logger := cc.Logger
	if logger == nil {
		logger = framework.NullLogger()
	}
	transport := cc.Transport
	if transport == nil {
		transport = restclient.NewHTTPTransport(logger)
	}
	retry := restclient.DefaultRetryPolicy()
	if cc.Retry != nil {
		retry = *cc.Retry
	}
	if retry.Logger == nil {
		retry.Logger = logger
	}
	return &Client{
		baseURL:   strings.TrimRight(cc.BaseURL, "/"),
		transport: transport,
		retry:     retry,
		timeout:   cc.Timeout,
		logger:    logger,
	}, nil
}

// BaseURL returns the deployment root URL the client was configured with.
func (c *Client) BaseURL() string { return c.baseURL }

// Cars returns the caller for the /cars resource.
func (c *Client) Cars() CarsAPI { return CarsAPI{c} }

// Users returns the caller for the /users resource.
func (c *Client) Users() UsersAPI { return UsersAPI{c} }

// Registration returns the caller for the /register resource.
func (c *Client) Registration() RegistrationAPI { return RegistrationAPI{c} }

// do submits one logical operation through the retry policy. The outcome is that of
// the final attempt; a transport error that survives every attempt is returned as
// the terminal error.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	query url.Values,
	headers map[string]string,
	body ldvalue.Value,
) (restclient.ResponseOutcome, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}
	req := restclient.RequestDescriptor{
		Method:  method,
		URL:     requestURL,
		Headers: headers,
		Body:    body,
		Timeout: c.timeout,
	}
	return c.retry.Execute(ctx, func(ctx context.Context) (restclient.ResponseOutcome, error) {
		return c.transport.Do(ctx, req)
	})
}

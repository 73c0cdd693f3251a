package endpoints_test

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qxf2/cars-api-test-harness/endpoints"
	"github.com/qxf2/cars-api-test-harness/restclient"
)

func newTestClient(t *testing.T, handler http.Handler) *endpoints.Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	retry := restclient.DefaultRetryPolicy()
	retry.Delay = time.Millisecond
	client, err := endpoints.NewClient(endpoints.ClientConfig{
		BaseURL: server.URL,
		Retry:   &retry,
	})
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := endpoints.NewClient(endpoints.ClientConfig{})
	assert.Error(t, err)
}

func TestBasicAuthHeaders(t *testing.T) {
	headers := endpoints.BasicAuthHeaders("qxf2", "qxf2")
	expected := "Basic " + base64.StdEncoding.EncodeToString([]byte("qxf2:qxf2"))
	assert.Equal(t, expected, headers["Authorization"])
}

func TestCarsListSendsExpectedRequest(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(
		httphelpers.HandlerWithJSONResponse(map[string]interface{}{
			"cars_list": []map[string]interface{}{
				{"name": "Swift", "brand": "Maruti", "price_range": "3-5 lacs", "car_type": "hatchback"},
			},
			"successful": true,
		}, nil))
	client := newTestClient(t, handler)

	cars, outcome, err := client.Cars().List(context.Background(),
		endpoints.BasicAuthHeaders("qxf2", "qxf2"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, outcome.StatusCode)
	require.Len(t, cars, 1)
	assert.Equal(t, "Swift", cars[0].Name)
	assert.Equal(t, "hatchback", cars[0].CarType)

	info := <-requests
	assert.Equal(t, "GET", info.Request.Method)
	assert.Equal(t, "/cars", info.Request.URL.Path)
	assert.NotEmpty(t, info.Request.Header.Get("Authorization"))
}

func TestCarsFindEncodesQueryParameters(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(
		httphelpers.HandlerWithJSONResponse(map[string]interface{}{
			"response":   map[string]interface{}{"name": "figo", "brand": "Ford"},
			"successful": true,
		}, nil))
	client := newTestClient(t, handler)

	car, _, err := client.Cars().Find(context.Background(), nil, "figo", "Ford")
	require.NoError(t, err)
	assert.Equal(t, "figo", car.Name)

	info := <-requests
	assert.Equal(t, "figo", info.Request.URL.Query().Get("car_name"))
	assert.Equal(t, "Ford", info.Request.URL.Query().Get("brand"))
}

func TestCarsAddSendsJSONBody(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(
		httphelpers.HandlerWithJSONResponse(map[string]interface{}{"successful": true}, nil))
	client := newTestClient(t, handler)

	car := endpoints.CarDetails{Name: "figo", Brand: "Ford", PriceRange: "2-3 lacs", CarType: "hatchback"}
	_, err := client.Cars().Add(context.Background(), nil, car)
	require.NoError(t, err)

	info := <-requests
	assert.Equal(t, "POST", info.Request.Method)
	assert.Equal(t, "/cars/add", info.Request.URL.Path)
	assert.JSONEq(t,
		`{"name": "figo", "brand": "Ford", "price_range": "2-3 lacs", "car_type": "hatchback"}`,
		string(info.Body))
}

func TestCarsUpdateAndRemoveUseNameInPath(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(
		httphelpers.HandlerWithJSONResponse(map[string]interface{}{"successful": true}, nil))
	client := newTestClient(t, handler)

	_, err := client.Cars().Update(context.Background(), nil, "figo", endpoints.CarDetails{Name: "figo"})
	require.NoError(t, err)
	info := <-requests
	assert.Equal(t, "PUT", info.Request.Method)
	assert.Equal(t, "/cars/update/figo", info.Request.URL.Path)

	_, err = client.Cars().Remove(context.Background(), nil, "figo")
	require.NoError(t, err)
	info = <-requests
	assert.Equal(t, "DELETE", info.Request.Method)
	assert.Equal(t, "/cars/remove/figo", info.Request.URL.Path)
}

func TestRegisterCarSendsCustomerDetailsAndQuery(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(
		httphelpers.HandlerWithJSONResponse(map[string]interface{}{
			"registered_car": map[string]interface{}{"successful": true},
		}, nil))
	client := newTestClient(t, handler)

	customer := endpoints.CustomerDetails{CustomerName: "Rohit", City: "BLR"}
	outcome, err := client.Registration().RegisterCar(context.Background(), nil, "Swift", "Maruti", customer)
	require.NoError(t, err)
	assert.True(t, outcome.Body.GetByKey("registered_car").GetByKey("successful").BoolValue())

	info := <-requests
	assert.Equal(t, "/register/car", info.Request.URL.Path)
	assert.Equal(t, "Swift", info.Request.URL.Query().Get("car_name"))
	assert.JSONEq(t, `{"customer_name": "Rohit", "city": "BLR"}`, string(info.Body))
}

func TestErrorStatusIsReturnedAsOutcomeNotError(t *testing.T) {
	client := newTestClient(t, httphelpers.HandlerWithStatus(http.StatusUnauthorized))

	cars, outcome, err := client.Cars().List(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, cars)
	assert.Equal(t, http.StatusUnauthorized, outcome.StatusCode)
}

func TestMalformedSuccessBodyIsMismatchError(t *testing.T) {
	handler := httphelpers.HandlerWithJSONResponse(map[string]interface{}{
		"cars_list": "not-an-array",
	}, nil)
	client := newTestClient(t, handler)

	_, _, err := client.Cars().List(context.Background(), nil)
	require.Error(t, err)
	var mismatch endpoints.MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Contains(t, mismatch.Error(), "GET /cars")
}

func TestClientRetriesTransientStatuses(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(httphelpers.SequentialHandler(
		httphelpers.HandlerWithStatus(http.StatusServiceUnavailable),
		httphelpers.HandlerWithJSONResponse(map[string]interface{}{
			"cars_list":  []interface{}{},
			"successful": true,
		}, nil),
	))
	client := newTestClient(t, handler)

	_, outcome, err := client.Cars().List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, outcome.StatusCode)
	assert.Len(t, requests, 2)
}

func TestClientSurfacesTransportErrorAfterRetries(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(http.StatusOK))
	server.Close() // deliberately unreachable

	retry := restclient.DefaultRetryPolicy()
	retry.Delay = time.Millisecond
	client, err := endpoints.NewClient(endpoints.ClientConfig{BaseURL: server.URL, Retry: &retry})
	require.NoError(t, err)

	_, _, err = client.Cars().List(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, restclient.IsTransportError(err))
}

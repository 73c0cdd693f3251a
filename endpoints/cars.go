package endpoints

import (
	"context"
	"net/http"
	"net/url"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/qxf2/cars-api-test-harness/framework/helpers"
	"github.com/qxf2/cars-api-test-harness/restclient"
)

// CarsAPI is the endpoint caller for the /cars resource.
type CarsAPI struct {
	client *Client
}

type carsListResponse struct {
	CarsList   []CarDetails `json:"cars_list"`
	Successful bool         `json:"successful"`
}

type carResponse struct {
	Response   CarDetails `json:"response"`
	Successful bool       `json:"successful"`
}

type countResponse struct {
	Count      int  `json:"count"`
	Successful bool `json:"successful"`
}

// List fetches every car known to the server. The returned slice is only
// populated when the outcome is a success.
func (a CarsAPI) List(ctx context.Context, headers map[string]string) ([]CarDetails, restclient.ResponseOutcome, error) {
	outcome, err := a.client.do(ctx, http.MethodGet, "/cars", nil, headers, ldvalue.Null())
	if err != nil || !outcome.IsSuccess() {
		return nil, outcome, err
	}
	var parsed carsListResponse
	if err := decodeBody("GET /cars", outcome, &parsed); err != nil {
		return nil, outcome, err
	}
	return parsed.CarsList, outcome, nil
}

// Find looks up one car by name and brand.
func (a CarsAPI) Find(ctx context.Context, headers map[string]string, name, brand string) (CarDetails, restclient.ResponseOutcome, error) {
	query := url.Values{}
	query.Set("car_name", name)
	query.Set("brand", brand)
	outcome, err := a.client.do(ctx, http.MethodGet, "/cars/find", query, headers, ldvalue.Null())
	if err != nil || !outcome.IsSuccess() {
		return CarDetails{}, outcome, err
	}
	var parsed carResponse
	if err := decodeBody("GET /cars/find", outcome, &parsed); err != nil {
		return CarDetails{}, outcome, err
	}
	return parsed.Response, outcome, nil
}

// Add creates a new car.
func (a CarsAPI) Add(ctx context.Context, headers map[string]string, car CarDetails) (restclient.ResponseOutcome, error) {
	return a.client.do(ctx, http.MethodPost, "/cars/add", nil, headers, helpers.AsJSONValue(car))
}

// Update replaces the details of the car with the given name.
func (a CarsAPI) Update(ctx context.Context, headers map[string]string, name string, car CarDetails) (restclient.ResponseOutcome, error) {
	return a.client.do(ctx, http.MethodPut, "/cars/update/"+url.PathEscape(name), nil, headers, helpers.AsJSONValue(car))
}

// Remove deletes the car with the given name.
func (a CarsAPI) Remove(ctx context.Context, headers map[string]string, name string) (restclient.ResponseOutcome, error) {
	return a.client.do(ctx, http.MethodDelete, "/cars/remove/"+url.PathEscape(name), nil, headers, ldvalue.Null())
}

// InitialCount returns the number of cars the server was seeded with.
func (a CarsAPI) InitialCount(ctx context.Context, headers map[string]string) (int, restclient.ResponseOutcome, error) {
	outcome, err := a.client.do(ctx, http.MethodGet, "/initial-count", nil, headers, ldvalue.Null())
	if err != nil || !outcome.IsSuccess() {
		return 0, outcome, err
	}
	var parsed countResponse
	if err := decodeBody("GET /initial-count", outcome, &parsed); err != nil {
		return 0, outcome, err
	}
	return parsed.Count, outcome, nil
}

// Reset restores the server's data to its seeded state. Test suites call this
// during cleanup so runs do not contaminate each other.
func (c *Client) Reset(ctx context.Context, headers map[string]string) (restclient.ResponseOutcome, error) {
	return c.do(ctx, http.MethodPost, "/reset", nil, headers, ldvalue.Null())
}

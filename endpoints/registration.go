package endpoints

import (
	"context"
	"net/http"
	"net/url"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/qxf2/cars-api-test-harness/framework/helpers"
	"github.com/qxf2/cars-api-test-harness/restclient"
)

// RegistrationAPI is the endpoint caller for the /register resource.
type RegistrationAPI struct {
	client *Client
}

type registeredListResponse struct {
	Registered []RegisteredCar `json:"registered"`
	Successful bool            `json:"successful"`
}

// RegisterCar records a registration of the named car to a customer. The car is
// identified by query parameters and the customer details go in the body.
func (a RegistrationAPI) RegisterCar(
	ctx context.Context,
	headers map[string]string,
	carName, brand string,
	customer CustomerDetails,
) (restclient.ResponseOutcome, error) {
	query := url.Values{}
	query.Set("car_name", carName)
	query.Set("brand", brand)
	return a.client.do(ctx, http.MethodPost, "/register/car", query, headers, helpers.AsJSONValue(customer))
}

// ListRegistered fetches all current registrations.
func (a RegistrationAPI) ListRegistered(ctx context.Context, headers map[string]string) ([]RegisteredCar, restclient.ResponseOutcome, error) {
	outcome, err := a.client.do(ctx, http.MethodGet, "/register", nil, headers, ldvalue.Null())
	if err != nil || !outcome.IsSuccess() {
		return nil, outcome, err
	}
	var parsed registeredListResponse
	if err := decodeBody("GET /register", outcome, &parsed); err != nil {
		return nil, outcome, err
	}
	return parsed.Registered, outcome, nil
}

// CountRegistered fetches the registrations and returns how many there are.
func (a RegistrationAPI) CountRegistered(ctx context.Context, headers map[string]string) (int, restclient.ResponseOutcome, error) {
	registered, outcome, err := a.ListRegistered(ctx, headers)
	return len(registered), outcome, err
}

// DeleteRegistered removes the oldest registration.
func (a RegistrationAPI) DeleteRegistered(ctx context.Context, headers map[string]string) (restclient.ResponseOutcome, error) {
	return a.client.do(ctx, http.MethodDelete, "/register/car/delete", nil, headers, ldvalue.Null())
}

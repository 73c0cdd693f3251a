package endpoints

import (
	"context"
	"net/http"
	"strconv"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/qxf2/cars-api-test-harness/framework/helpers"
	"github.com/qxf2/cars-api-test-harness/restclient"
)

// UsersAPI is the endpoint caller for the /users resource. Every operation here
// requires admin credentials; non-admin callers get a 403.
type UsersAPI struct {
	client *Client
}

type userListResponse struct {
	UserList   []UserDetails `json:"user_list"`
	Successful bool          `json:"successful"`
}

// List fetches all users.
func (a UsersAPI) List(ctx context.Context, headers map[string]string) ([]UserDetails, restclient.ResponseOutcome, error) {
	outcome, err := a.client.do(ctx, http.MethodGet, "/users", nil, headers, ldvalue.Null())
	if err != nil || !outcome.IsSuccess() {
		return nil, outcome, err
	}
	var parsed userListResponse
	if err := decodeBody("GET /users", outcome, &parsed); err != nil {
		return nil, outcome, err
	}
	return parsed.UserList, outcome, nil
}

// Add creates a user. The server assigns the ID.
func (a UsersAPI) Add(ctx context.Context, headers map[string]string, user UserDetails) (restclient.ResponseOutcome, error) {
	return a.client.do(ctx, http.MethodPost, "/users/add", nil, headers, helpers.AsJSONValue(user))
}

// Update replaces the details of the user with the given ID.
func (a UsersAPI) Update(ctx context.Context, headers map[string]string, id int, user UserDetails) (restclient.ResponseOutcome, error) {
	return a.client.do(ctx, http.MethodPut, "/users/update/"+strconv.Itoa(id), nil, headers, helpers.AsJSONValue(user))
}

// Delete removes the user with the given ID.
func (a UsersAPI) Delete(ctx context.Context, headers map[string]string, id int) (restclient.ResponseOutcome, error) {
	return a.client.do(ctx, http.MethodDelete, "/users/delete/"+strconv.Itoa(id), nil, headers, ldvalue.Null())
}

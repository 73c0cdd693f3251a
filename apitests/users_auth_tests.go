package apitests

import (
	"context"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qxf2/cars-api-test-harness/endpoints"
	"github.com/qxf2/cars-api-test-harness/framework/apitest"
)

func doUsersTests(t *apitest.T) {
	t.Run("list users as admin", listUsersTest)
	t.Run("add and delete user", addDeleteUserTest)
	t.Run("update user", updateUserTest)
}

func doAuthTests(t *apitest.T) {
	t.Run("non-admin cannot list users", nonAdminUsersTest)
	t.Run("missing auth is rejected", missingAuthTest)
	t.Run("invalid auth is rejected", invalidAuthTest)
}

func listUsersTest(t *apitest.T) {
	client := NewAPIClient(t)

	users, outcome, err := client.Users().List(context.Background(), adminHeaders(t))
	requireSuccess(t, outcome, err)
	assert.NotEmpty(t, users, "seeded deployment should have at least one user")
	for _, user := range users {
		assert.NotZero(t, user.ID)
		assert.NotEmpty(t, user.Name)
	}
}

func addDeleteUserTest(t *apitest.T) {
	client := NewAPIClient(t)
	ctx := context.Background()
	headers := adminHeaders(t)

	user := endpoints.UserDetails{Name: "Asha", Email: "asha@dummy.com", Contact: "4029357925", City: "Pune"}
	outcome, err := client.Users().Add(ctx, headers, user)
	requireSuccess(t, outcome, err)
	id := int(outcome.Body.GetByKey("user").GetByKey("id").IntValue())
	require.NotZero(t, id, "server should assign an ID to the new user")

	outcome, err = client.Users().Delete(ctx, headers, id)
	requireSuccess(t, outcome, err)

	users, outcome, err := client.Users().List(ctx, headers)
	requireSuccess(t, outcome, err)
	for _, u := range users {
		assert.NotEqual(t, id, u.ID, "deleted user should not appear in the user list")
	}
}

func updateUserTest(t *apitest.T) {
	client := NewAPIClient(t)
	ctx := context.Background()
	headers := adminHeaders(t)

	user := endpoints.UserDetails{Name: "Vikram", Email: "vikram@dummy.com", Contact: "4029357926", City: "Delhi"}
	outcome, err := client.Users().Add(ctx, headers, user)
	requireSuccess(t, outcome, err)
	id := int(outcome.Body.GetByKey("user").GetByKey("id").IntValue())
	require.NotZero(t, id)
	t.Defer(func() {
		_, _ = client.Users().Delete(ctx, headers, id)
	})

	user.City = "Hyderabad"
	outcome, err = client.Users().Update(ctx, headers, id, user)
	requireSuccess(t, outcome, err)

	users, outcome, err := client.Users().List(ctx, headers)
	requireSuccess(t, outcome, err)
	for _, u := range users {
		if u.ID == id {
			assert.Equal(t, "Hyderabad", u.City, "update should be visible in the user list")
			return
		}
	}
	t.Errorf("updated user %d not found in the user list", id)
}

func nonAdminUsersTest(t *apitest.T) {
	client := NewAPIClient(t)

	_, outcome, err := client.Users().List(context.Background(), nonAdminHeaders(t))
	result := requireStatus(t, outcome, err, 403)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "403 Forbidden")
}

func missingAuthTest(t *apitest.T) {
	client := NewAPIClient(t)

	_, outcome, err := client.Cars().List(context.Background(), nil)
	result := requireStatus(t, outcome, err, 401)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "401 Unauthorized")
}

func invalidAuthTest(t *apitest.T) {
	client := NewAPIClient(t)

	_, outcome, err := client.Cars().List(context.Background(), invalidAuthHeaders())
	result := requireStatus(t, outcome, err, 401)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "401 Unauthorized")
}

package apitests

import (
	"context"

	"github.com/stretchr/testify/assert"

	"github.com/qxf2/cars-api-test-harness/endpoints"
	"github.com/qxf2/cars-api-test-harness/framework/apitest"
)

func doRegistrationTests(t *apitest.T) {
	t.Run("register car", registerCarTest)
	t.Run("registration count", registrationCountTest)
	t.Run("delete registered car", deleteRegisteredCarTest)
	t.Run("register unknown car", registerUnknownCarTest)
}

var testCustomer = endpoints.CustomerDetails{CustomerName: "Rohit", City: "BLR"}

func registerCarTest(t *apitest.T) {
	client := NewAPIClient(t)
	ctx := context.Background()
	headers := adminHeaders(t)

	outcome, err := client.Registration().RegisterCar(ctx, headers, "Swift", "Maruti", testCustomer)
	requireSuccess(t, outcome, err)
	assert.True(t, outcome.Body.GetByKey("registered_car").GetByKey("successful").BoolValue(),
		"registration response should indicate success")

	registered, outcome, err := client.Registration().ListRegistered(ctx, headers)
	requireSuccess(t, outcome, err)
	found := false
	for _, r := range registered {
		if r.Car.Name == "Swift" && r.Customer == testCustomer {
			found = true
		}
	}
	assert.True(t, found, "registration should appear in the registered list")
}

func registrationCountTest(t *apitest.T) {
	client := NewAPIClient(t)
	ctx := context.Background()
	headers := adminHeaders(t)

	before, outcome, err := client.Registration().CountRegistered(ctx, headers)
	requireSuccess(t, outcome, err)

	outcome, err = client.Registration().RegisterCar(ctx, headers, "City", "Honda", testCustomer)
	requireSuccess(t, outcome, err)

	after, outcome, err := client.Registration().CountRegistered(ctx, headers)
	requireSuccess(t, outcome, err)
	assert.Equal(t, before+1, after, "registration count should increase by one")
}

func deleteRegisteredCarTest(t *apitest.T) {
	client := NewAPIClient(t)
	ctx := context.Background()
	headers := adminHeaders(t)

	outcome, err := client.Registration().RegisterCar(ctx, headers, "Vento", "Volkswagen", testCustomer)
	requireSuccess(t, outcome, err)

	before, outcome, err := client.Registration().CountRegistered(ctx, headers)
	requireSuccess(t, outcome, err)

	outcome, err = client.Registration().DeleteRegistered(ctx, headers)
	requireSuccess(t, outcome, err)
	assert.True(t, outcome.Body.GetByKey("successful").BoolValue(),
		"deletion response should indicate success")

	after, outcome, err := client.Registration().CountRegistered(ctx, headers)
	requireSuccess(t, outcome, err)
	assert.Equal(t, before-1, after, "registration count should decrease by one")
}

func registerUnknownCarTest(t *apitest.T) {
	client := NewAPIClient(t)

	outcome, err := client.Registration().RegisterCar(context.Background(), adminHeaders(t),
		"NoSuchCar", "NoSuchBrand", testCustomer)
	result := requireStatus(t, outcome, err, 404)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "404 Not Found")
}

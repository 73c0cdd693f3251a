package apitests

import (
	"context"

	"github.com/stretchr/testify/assert"

	"github.com/qxf2/cars-api-test-harness/endpoints"
	"github.com/qxf2/cars-api-test-harness/framework/apitest"
)

func doCarsTests(t *apitest.T) {
	t.Run("add car", addCarTest)
	t.Run("car count increases after add", carCountTest)
	t.Run("get car details", getCarDetailsTest)
	t.Run("update car", updateCarTest)
	t.Run("remove car", removeCarTest)
}

func addCarTest(t *apitest.T) {
	client := NewAPIClient(t)
	ctx := context.Background()
	headers := adminHeaders(t)

	car := endpoints.CarDetails{Name: "figo", Brand: "Ford", PriceRange: "2-3 lacs", CarType: "hatchback"}
	outcome, err := client.Cars().Add(ctx, headers, car)
	requireSuccess(t, outcome, err)
	assert.True(t, outcome.Body.GetByKey("successful").BoolValue(),
		"add response should indicate success")

	cars, outcome, err := client.Cars().List(ctx, headers)
	requireSuccess(t, outcome, err)
	assert.Contains(t, cars, car, "added car should appear in the car list")
}

func carCountTest(t *apitest.T) {
	client := NewAPIClient(t)
	ctx := context.Background()
	headers := adminHeaders(t)

	// earlier tests may have added cars, so start from a known state
	outcome, err := client.Reset(ctx, headers)
	requireSuccess(t, outcome, err)

	baseline, outcome, err := client.Cars().InitialCount(ctx, headers)
	requireSuccess(t, outcome, err)

	cars, outcome, err := client.Cars().List(ctx, headers)
	requireSuccess(t, outcome, err)
	assert.Equal(t, baseline, len(cars), "car count should match the seeded baseline")

	car := endpoints.CarDetails{Name: "i10", Brand: "Hyundai", PriceRange: "3-5 lacs", CarType: "hatchback"}
	outcome, err = client.Cars().Add(ctx, headers, car)
	requireSuccess(t, outcome, err)

	cars, outcome, err = client.Cars().List(ctx, headers)
	requireSuccess(t, outcome, err)
	assert.Equal(t, baseline+1, len(cars), "car count should be the baseline plus one")
}

func getCarDetailsTest(t *apitest.T) {
	client := NewAPIClient(t)

	car, outcome, err := client.Cars().Find(context.Background(), adminHeaders(t), "Swift", "Maruti")
	requireSuccess(t, outcome, err)
	assert.Equal(t, "Swift", car.Name)
	assert.Equal(t, "Maruti", car.Brand)
	assert.NotEmpty(t, car.PriceRange)
	assert.NotEmpty(t, car.CarType)
}

func updateCarTest(t *apitest.T) {
	client := NewAPIClient(t)
	ctx := context.Background()
	headers := adminHeaders(t)

	original := endpoints.CarDetails{Name: "Punto", Brand: "Fiat", PriceRange: "4-6 lacs", CarType: "hatchback"}
	outcome, err := client.Cars().Add(ctx, headers, original)
	requireSuccess(t, outcome, err)

	updated := original
	updated.PriceRange = "5-7 lacs"
	outcome, err = client.Cars().Update(ctx, headers, original.Name, updated)
	requireSuccess(t, outcome, err)

	car, outcome, err := client.Cars().Find(ctx, headers, original.Name, original.Brand)
	requireSuccess(t, outcome, err)
	assert.Equal(t, updated, car, "updated details should be returned on lookup")
}

func removeCarTest(t *apitest.T) {
	client := NewAPIClient(t)
	ctx := context.Background()
	headers := adminHeaders(t)

	car := endpoints.CarDetails{Name: "Nano", Brand: "Tata", PriceRange: "1-2 lacs", CarType: "hatchback"}
	outcome, err := client.Cars().Add(ctx, headers, car)
	requireSuccess(t, outcome, err)

	outcome, err = client.Cars().Remove(ctx, headers, car.Name)
	requireSuccess(t, outcome, err)
	assert.True(t, outcome.Body.GetByKey("successful").BoolValue(),
		"remove response should indicate success")

	_, outcome, err = client.Cars().Find(ctx, headers, car.Name, car.Brand)
	result := requireStatus(t, outcome, err, 404)
	assert.Contains(t, result.Message, "404 Not Found")
}

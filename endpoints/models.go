package endpoints

// CarDetails is the representation of a car in request and response bodies.
type CarDetails struct {
	Name       string `json:"name"`
	Brand      string `json:"brand"`
	PriceRange string `json:"price_range"`
	CarType    string `json:"car_type"`
}

// CustomerDetails identifies the customer in a car registration.
type CustomerDetails struct {
	CustomerName string `json:"customer_name"`
	City         string `json:"city"`
}

// RegisteredCar is one entry in the registration list: the car plus the
// customer it was registered to.
type RegisteredCar struct {
	Car      CarDetails      `json:"car"`
	Customer CustomerDetails `json:"customer_details"`
}

// UserDetails is one entry in the user list returned by GET /users. ID is assigned
// by the server and is zero in add requests.
type UserDetails struct {
	ID      int    `json:"id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
	City    string `json:"city"`
}

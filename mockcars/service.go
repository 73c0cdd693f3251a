// Package mockcars provides an in-process imitation of the Cars API server,
// used both by the test suite's own tests and by the CLI's -mock option.
package mockcars

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"

	"github.com/qxf2/cars-api-test-harness/endpoints"
	"github.com/qxf2/cars-api-test-harness/framework"
	"github.com/qxf2/cars-api-test-harness/framework/helpers"
)

type account struct {
	password string
	admin    bool
}

// Service is a mock Cars API server. It serves the same routes, response shapes,
// and auth behavior as the real deployment, against in-memory state that POST /reset
// restores to the seed data. It also supports fault injection for exercising retry
// behavior: statuses enqueued with EnqueueStatus are returned, one per request, before
// normal handling resumes.
type Service struct {
	handler       http.Handler
	cars          []endpoints.CarDetails
	registered    []endpoints.RegisteredCar
	users         []endpoints.UserDetails
	nextUserID    int
	faultStatuses []int
	debugLogger   framework.Logger
	lock          sync.Mutex
}

var seedAccounts = map[string]account{
	"qxf2":  {password: "qxf2", admin: true},
	"admin": {password: "admin123", admin: true},
	"eric":  {password: "testqxf2", admin: false},
	"dev":   {password: "dev123", admin: false},
}

func seedCars() []endpoints.CarDetails {
	return []endpoints.CarDetails{
		{Name: "Swift", Brand: "Maruti", PriceRange: "3-5 lacs", CarType: "hatchback"},
		{Name: "Creta", Brand: "Hyundai", PriceRange: "8-14 lacs", CarType: "hatchback"},
		{Name: "City", Brand: "Honda", PriceRange: "3-6 lacs", CarType: "sedan"},
		{Name: "Vento", Brand: "Volkswagen", PriceRange: "7-10 lacs", CarType: "sedan"},
	}
}

func seedUsers() []endpoints.UserDetails {
	return []endpoints.UserDetails{
		{ID: 1, Name: "Michael", Email: "michael@dummy.com", Contact: "4029357923", City: "Bangalore"},
		{ID: 2, Name: "Sarah", Email: "sarah@dummy.com", Contact: "4029357924", City: "Chennai"},
	}
}

// NewService creates a Service with the seed data loaded. A nil logger discards
// the debug output.
func NewService(debugLogger framework.Logger) *Service {
	if debugLogger == nil {
		debugLogger = framework.NullLogger()
	}
	s := &Service{debugLogger: debugLogger}
	s.resetState()

	router := mux.NewRouter()
	router.HandleFunc("/cars", s.requireAuth(s.listCars)).Methods("GET")
	router.HandleFunc("/cars/find", s.requireAuth(s.findCar)).Methods("GET")
	router.HandleFunc("/cars/add", s.requireAuth(s.addCar)).Methods("POST")
	router.HandleFunc("/cars/update/{name}", s.requireAuth(s.updateCar)).Methods("PUT")
	router.HandleFunc("/cars/remove/{name}", s.requireAuth(s.removeCar)).Methods("DELETE")
	router.HandleFunc("/register/car", s.requireAuth(s.registerCar)).Methods("POST")
	router.HandleFunc("/register", s.requireAuth(s.listRegistered)).Methods("GET")
	router.HandleFunc("/register/car/delete", s.requireAuth(s.deleteRegistered)).Methods("DELETE")
	router.HandleFunc("/users", s.requireAdmin(s.listUsers)).Methods("GET")
	router.HandleFunc("/users/add", s.requireAdmin(s.addUser)).Methods("POST")
	router.HandleFunc("/users/update/{id}", s.requireAdmin(s.updateUser)).Methods("PUT")
	router.HandleFunc("/users/delete/{id}", s.requireAdmin(s.deleteUser)).Methods("DELETE")
	router.HandleFunc("/initial-count", s.requireAuth(s.initialCount)).Methods("GET")
	router.HandleFunc("/reset", s.requireAuth(s.reset)).Methods("POST")
	s.handler = router

	return s
}

func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if status, injected := s.takeFaultStatus(); injected {
		s.debugLogger.Printf("Injecting status %d for %s %s", status, r.Method, r.URL.Path)
		writeJSON(w, status, map[string]interface{}{"message": http.StatusText(status)})
		return
	}
	s.handler.ServeHTTP(w, r)
}

// EnqueueStatus schedules statuses to be returned, in order, for the next requests
// regardless of their route. Normal handling resumes once the queue is drained.
func (s *Service) EnqueueStatus(statuses ...int) {
	s.lock.Lock()
	s.faultStatuses = append(s.faultStatuses, statuses...)
	s.lock.Unlock()
}

func (s *Service) takeFaultStatus() (int, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if len(s.faultStatuses) == 0 {
		return 0, false
	}
	status := s.faultStatuses[0]
	s.faultStatuses = s.faultStatuses[1:]
	return status, true
}

func (s *Service) resetState() {
	s.cars = seedCars()
	s.registered = nil
	s.users = seedUsers()
	s.nextUserID = len(s.users) + 1
}

func (s *Service) requireAuth(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.authenticate(r); !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"message": "Authenticate with proper credentials or provide a basic auth header",
			})
			return
		}
		handler(w, r)
	}
}

func (s *Service) requireAdmin(handler http.HandlerFunc) http.HandlerFunc {
	return s.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		acct, _ := s.authenticate(r)
		if !acct.admin {
			writeJSON(w, http.StatusForbidden, map[string]interface{}{
				"message": "You are not permitted to access this resource",
			})
			return
		}
		handler(w, r)
	})
}

func (s *Service) authenticate(r *http.Request) (account, bool) {
	username, password, ok := r.BasicAuth()
	if !ok {
		return account{}, false
	}
	acct, found := seedAccounts[username]
	if !found || acct.password != password {
		return account{}, false
	}
	return acct, true
}

func (s *Service) listCars(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	cars := append([]endpoints.CarDetails(nil), s.cars...)
	s.lock.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{"cars_list": cars, "successful": true})
}

func (s *Service) findCar(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("car_name")
	brand := r.URL.Query().Get("brand")
	s.lock.Lock()
	defer s.lock.Unlock()
	for _, car := range s.cars {
		if car.Name == name && car.Brand == brand {
			writeJSON(w, http.StatusOK, map[string]interface{}{"response": car, "successful": true})
			return
		}
	}
	writeNotFound(w)
}

func (s *Service) addCar(w http.ResponseWriter, r *http.Request) {
	var car endpoints.CarDetails
	if !readJSONBody(w, r, &car) {
		return
	}
	s.lock.Lock()
	s.cars = append(s.cars, car)
	s.lock.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{"car": car, "successful": true})
}

func (s *Service) updateCar(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	var car endpoints.CarDetails
	if !readJSONBody(w, r, &car) {
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	for i := range s.cars {
		if s.cars[i].Name == name {
			s.cars[i] = car
			writeJSON(w, http.StatusOK, map[string]interface{}{"response": car, "successful": true})
			return
		}
	}
	writeNotFound(w)
}

func (s *Service) removeCar(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	s.lock.Lock()
	defer s.lock.Unlock()
	for i, car := range s.cars {
		if car.Name == name {
			s.cars = append(s.cars[:i], s.cars[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]interface{}{"car": car, "successful": true})
			return
		}
	}
	writeNotFound(w)
}

func (s *Service) registerCar(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("car_name")
	brand := r.URL.Query().Get("brand")
	var customer endpoints.CustomerDetails
	if !readJSONBody(w, r, &customer) {
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	for _, car := range s.cars {
		if car.Name == name && car.Brand == brand {
			s.registered = append(s.registered, endpoints.RegisteredCar{Car: car, Customer: customer})
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"registered_car": map[string]interface{}{
					"car":              car,
					"customer_details": customer,
					"successful":       true,
				},
			})
			return
		}
	}
	writeNotFound(w)
}

func (s *Service) listRegistered(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	registered := append([]endpoints.RegisteredCar(nil), s.registered...)
	s.lock.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{"registered": registered, "successful": true})
}

func (s *Service) deleteRegistered(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if len(s.registered) == 0 {
		writeNotFound(w)
		return
	}
	s.registered = s.registered[1:]
	writeJSON(w, http.StatusOK, map[string]interface{}{"successful": true})
}

func (s *Service) listUsers(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	users := append([]endpoints.UserDetails(nil), s.users...)
	s.lock.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{"user_list": users, "successful": true})
}

func (s *Service) addUser(w http.ResponseWriter, r *http.Request) {
	var user endpoints.UserDetails
	if !readJSONBody(w, r, &user) {
		return
	}
	s.lock.Lock()
	user.ID = s.nextUserID
	s.nextUserID++
	s.users = append(s.users, user)
	s.lock.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user, "successful": true})
}

func (s *Service) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeNotFound(w)
		return
	}
	var user endpoints.UserDetails
	if !readJSONBody(w, r, &user) {
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			user.ID = id
			s.users[i] = user
			writeJSON(w, http.StatusOK, map[string]interface{}{"user": user, "successful": true})
			return
		}
	}
	writeNotFound(w)
}

func (s *Service) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeNotFound(w)
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]interface{}{"successful": true})
			return
		}
	}
	writeNotFound(w)
}

func (s *Service) initialCount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"count": len(seedCars()), "successful": true})
}

func (s *Service) reset(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	s.resetState()
	s.lock.Unlock()
	s.debugLogger.Printf("State reset to seed data")
	writeJSON(w, http.StatusOK, map[string]interface{}{"successful": true})
}

func readJSONBody(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"message": "Invalid JSON body"})
		return false
	}
	return true
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]interface{}{"message": "Resource not found"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(helpers.AsJSON(body))
}

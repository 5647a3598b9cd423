// Package integration provides helpers and integration tests for the trip
// simulation system. Integration tests verify that components work together
// correctly, including HTTP handlers, the flow use case, and mock providers.
package integration

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	triphttp "github.com/trip-sim/trip-simulation-and-aggregation-system/internal/adapter/http"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/domain"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/infrastructure/logger"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/tours"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/usecase"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/test/mock"
)

// TestSecret signs and verifies bearer tokens in integration tests.
const TestSecret = "integration-secret"

// TestOwner is the default authenticated user.
const TestOwner = "user-1"

// Deps carries the doubles wired into a test server. Nil fields get
// defaults with sample data.
type Deps struct {
	Flights []domain.FlightProvider
	Hotels  domain.HotelProvider
	Places  domain.PlaceProvider
	Store   *mock.Store
}

// TestServer wraps an Echo instance with the full application wired on
// mock providers, and provides helper methods for integration testing.
type TestServer struct {
	Echo     *echo.Echo
	Flow     usecase.TripFlowUseCase
	Sessions *usecase.Registry
	Store    *mock.Store
}

// NewTestServer creates a test server. Missing dependencies are replaced
// with sample-data doubles.
func NewTestServer(deps Deps) *TestServer {
	if deps.Flights == nil {
		deps.Flights = []domain.FlightProvider{
			mock.NewFlightProvider("mock-flights").WithOptions(mock.SampleFlightOptions("mock-flights", 3)),
		}
	}
	if deps.Hotels == nil {
		deps.Hotels = mock.NewHotelProvider("mock-hotels").WithOptions(mock.SampleHotelOptions(2))
	}
	if deps.Places == nil {
		deps.Places = mock.NewPlaceProvider().
			WithCities(mock.SamplePlaces(3)).
			WithNearby(mock.SamplePlaces(5))
	}
	if deps.Store == nil {
		deps.Store = mock.NewStore()
	}

	flow := usecase.NewTripFlow(
		deps.Flights,
		deps.Hotels,
		deps.Places,
		deps.Store,
		tours.NewGenerator(tours.WithRandSource(rand.NewSource(1))),
		&usecase.Config{SearchTimeout: 5 * time.Second},
		logger.Nop(),
	)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	sessions := usecase.NewRegistry()
	handler := triphttp.NewTripHandler(flow, sessions)
	triphttp.RegisterRoutes(e, handler, TestSecret)

	return &TestServer{
		Echo:     e,
		Flow:     flow,
		Sessions: sessions,
		Store:    deps.Store,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method string
	Path   string
	Body   interface{}

	// User overrides the authenticated user; empty means TestOwner.
	User string

	// NoAuth omits the Authorization header entirely.
	NoAuth bool
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	if req.Body != nil {
		bodyBytes, _ := json.Marshal(req.Body)
		bodyReader = bytes.NewReader(bodyBytes)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)
	if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if !req.NoAuth {
		user := req.User
		if user == "" {
			user = TestOwner
		}
		httpReq.Header.Set(echo.HeaderAuthorization, "Bearer "+signToken(user))
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// Decode unmarshals the response body into out.
func (r *Response) Decode(out interface{}) error {
	return json.Unmarshal(r.Body, out)
}

// DefaultSearchBody returns a valid search request body for testing.
func DefaultSearchBody() map[string]interface{} {
	return map[string]interface{}{
		"origin": map[string]interface{}{
			"display":    "São Paulo, São Paulo",
			"geoname_id": 3448439,
			"lat":        -23.54,
			"lng":        -46.63,
		},
		"destination": map[string]interface{}{
			"display":    "Rio de Janeiro, Rio de Janeiro",
			"geoname_id": 3451190,
			"lat":        -22.9,
			"lng":        -43.2,
		},
		"start_date": "2025-07-10",
		"end_date":   "2025-07-13",
		"adults":     2,
		"children":   0,
	}
}

// DefaultSearchParams returns valid flow-level search parameters.
func DefaultSearchParams() usecase.SearchParams {
	return usecase.SearchParams{
		Origin:      domain.PlaceRef{Display: "São Paulo, São Paulo", GeonameID: 3448439, Lat: -23.54, Lng: -46.63},
		Destination: domain.PlaceRef{Display: "Rio de Janeiro, Rio de Janeiro", GeonameID: 3451190, Lat: -22.9, Lng: -43.2},
		StartDate:   "2025-07-10",
		EndDate:     "2025-07-13",
		Adults:      2,
	}
}

func signToken(userID string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(TestSecret))
	if err != nil {
		panic(err)
	}
	return signed
}

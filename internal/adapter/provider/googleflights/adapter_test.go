package googleflights

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/domain"
)

// TestAdapter_Name tests the Name method.
func TestAdapter_Name(t *testing.T) {
	adapter := NewAdapter("http://example.com", "key", time.Second)
	assert.Equal(t, "googleflights", adapter.Name())
}

// TestAdapter_ImplementsInterface ensures Adapter implements FlightProvider.
func TestAdapter_ImplementsInterface(t *testing.T) {
	var _ domain.FlightProvider = (*Adapter)(nil)
}

// TestAdapter_Search tests the Search method against a stub upstream.
func TestAdapter_Search(t *testing.T) {
	query := domain.FlightQuery{
		OriginCode:      "GRU",
		DestinationCode: "GIG",
		DepartureDate:   "2025-07-10",
		Adults:          2,
		Children:        1,
	}

	tests := []struct {
		name          string
		status        int
		body          string
		wantFlights   int
		wantErr       error
		wantRetryable bool
	}{
		{
			name:   "successful search",
			status: http.StatusOK,
			body: `{"best_flights": [
				{"departure_token": "tok-1", "price": 980.50, "flights": [
					{"departure_airport": {"id": "GRU", "time": "2025-07-10 08:15"},
					 "arrival_airport": {"id": "GIG", "time": "2025-07-10 09:20"},
					 "duration": 65, "airline": "GOL", "flight_number": "G3 1045"}
				]}
			]}`,
			wantFlights: 1,
		},
		{
			name:    "empty results",
			status:  http.StatusOK,
			body:    `{"best_flights": []}`,
			wantErr: domain.ErrNoResults,
		},
		{
			name:    "unauthorized maps to authentication error",
			status:  http.StatusUnauthorized,
			body:    `{}`,
			wantErr: domain.ErrAuthentication,
		},
		{
			name:    "rate limited maps to rate limit error",
			status:  http.StatusTooManyRequests,
			body:    `{}`,
			wantErr: domain.ErrRateLimited,
		},
		{
			name:    "bad request maps to invalid search",
			status:  http.StatusBadRequest,
			body:    `{}`,
			wantErr: domain.ErrInvalidSearch,
		},
		{
			name:          "server error maps to retryable unavailability",
			status:        http.StatusInternalServerError,
			body:          `{}`,
			wantErr:       domain.ErrProviderUnavailable,
			wantRetryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQuery map[string]string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/search.json", r.URL.Path)
				gotQuery = map[string]string{}
				for k := range r.URL.Query() {
					gotQuery[k] = r.URL.Query().Get(k)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			adapter := NewAdapter(server.URL, "test-key", 2*time.Second)
			flights, err := adapter.Search(context.Background(), query)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.wantRetryable, domain.IsRetryable(err))
				return
			}

			require.NoError(t, err)
			assert.Len(t, flights, tt.wantFlights)
			assert.Equal(t, "google_flights", gotQuery["engine"])
			assert.Equal(t, "GRU", gotQuery["departure_id"])
			assert.Equal(t, "GIG", gotQuery["arrival_id"])
			assert.Equal(t, "2025-07-10", gotQuery["outbound_date"])
			assert.Equal(t, "2", gotQuery["adults"])
			assert.Equal(t, "1", gotQuery["children"])
			assert.Equal(t, "BRL", gotQuery["currency"])
			assert.Equal(t, "test-key", gotQuery["api_key"])
		})
	}
}

// TestAdapter_Search_InBandError covers the in-band error envelope.
func TestAdapter_Search_InBandError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": {"message": "invalid route"}}`))
	}))
	defer server.Close()

	adapter := NewAdapter(server.URL, "test-key", 2*time.Second)
	_, err := adapter.Search(context.Background(), domain.FlightQuery{OriginCode: "GRU", DestinationCode: "GIG"})

	require.Error(t, err)
	var provErr *domain.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, ProviderName, provErr.Provider)
	assert.Contains(t, err.Error(), "invalid route")
}

// TestAdapter_Search_RetriesTransientFailures verifies a transient 503 is
// retried and eventually succeeds.
func TestAdapter_Search_RetriesTransientFailures(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"best_flights": [{"departure_token": "tok-1", "price": 100}]}`))
	}))
	defer server.Close()

	adapter := NewAdapter(server.URL, "test-key", 2*time.Second)
	flights, err := adapter.Search(context.Background(), domain.FlightQuery{OriginCode: "GRU", DestinationCode: "GIG"})

	require.NoError(t, err)
	assert.Len(t, flights, 1)
	assert.GreaterOrEqual(t, attempts, 2)
}

// TestAdapter_Search_DoesNotRetryAuthFailures verifies a 401 fails fast.
func TestAdapter_Search_DoesNotRetryAuthFailures(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	adapter := NewAdapter(server.URL, "bad-key", 2*time.Second)
	_, err := adapter.Search(context.Background(), domain.FlightQuery{OriginCode: "GRU", DestinationCode: "GIG"})

	assert.ErrorIs(t, err, domain.ErrAuthentication)
	assert.Equal(t, 1, attempts)
}

package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/domain"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/test/mock"
)

// sequencedProvider answers its first call slowly with one candidate set
// and subsequent calls immediately with another. It lets a test overlap two
// searches so the slow, superseded results arrive last.
type sequencedProvider struct {
	mu         sync.Mutex
	calls      int
	first      []domain.FlightOption
	rest       []domain.FlightOption
	firstDelay time.Duration
}

func (p *sequencedProvider) Name() string { return "sequenced" }

func (p *sequencedProvider) Search(ctx context.Context, q domain.FlightQuery) ([]domain.FlightOption, error) {
	p.mu.Lock()
	p.calls++
	call := p.calls
	p.mu.Unlock()

	if call == 1 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.firstDelay):
		}
		return p.first, nil
	}
	return p.rest, nil
}

// TestSupersededSearchResultsAreDiscarded overlaps two searches on one
// session and verifies only the later search's candidates survive.
func TestSupersededSearchResultsAreDiscarded(t *testing.T) {
	provider := &sequencedProvider{
		first:      mock.SampleFlightOptions("stale", 2),
		rest:       mock.SampleFlightOptions("fresh", 3),
		firstDelay: 300 * time.Millisecond,
	}

	ts := NewTestServer(Deps{Flights: []domain.FlightProvider{provider}})
	session := ts.Sessions.Create(TestOwner)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		// First search; its flight results arrive after the second search
		// has already settled.
		_, _ = ts.Flow.StartSearch(ctx, session, DefaultSearchParams())
	}()

	time.Sleep(50 * time.Millisecond)

	params := DefaultSearchParams()
	params.StartDate = "2025-08-01"
	params.EndDate = "2025-08-04"
	snap, err := ts.Flow.StartSearch(ctx, session, params)
	require.NoError(t, err)
	require.Len(t, snap.FlightCandidates, 3)

	wg.Wait()

	// After the slow search returns, the fresh candidates still stand.
	final := session.Snapshot()
	assert.Equal(t, "selecting", string(final.Phase))
	require.Len(t, final.FlightCandidates, 3)
	for _, option := range final.FlightCandidates {
		assert.Equal(t, "fresh", option.Provider)
	}
	assert.Equal(t, "2025-08-01", final.Selection.StartDate)
}

// TestConcurrentSnapshotsDuringSearch hammers Snapshot while a search is in
// flight to exercise the session lock.
func TestConcurrentSnapshotsDuringSearch(t *testing.T) {
	slow := mock.NewFlightProvider("slow").
		WithOptions(mock.SampleFlightOptions("slow", 2)).
		WithDelay(100 * time.Millisecond)

	ts := NewTestServer(Deps{Flights: []domain.FlightProvider{slow}})
	session := ts.Sessions.Create(TestOwner)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = ts.Flow.StartSearch(context.Background(), session, DefaultSearchParams())
	}()

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_ = session.Snapshot()
			}
		}()
	}

	wg.Wait()

	snap := session.Snapshot()
	assert.True(t, snap.FlightSettled)
	assert.Len(t, snap.FlightCandidates, 2)
}

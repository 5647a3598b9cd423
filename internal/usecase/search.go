package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/domain"
)

// Candidate list caps. Provider lists stay small so every downstream pass
// can afford a full recompute.
const (
	MaxFlightCandidates = 10
)

// beginSearch replaces the selection and arms both candidate slots with a
// fresh generation. Any result still in flight from an earlier search will
// carry the old generation and be discarded on commit.
func (s *Session) beginSearch(sel *domain.TripSelection) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.searchGen++
	gen := s.searchGen

	s.selection = sel
	s.phase = PhaseSearching
	s.flightSlot = FlightSlot{SearchSlot: SearchSlot{Generation: gen}}
	s.hotelSlot = HotelSlot{SearchSlot: SearchSlot{Generation: gen}}
	s.tourCandidates = nil
	return gen
}

// commitFlights settles the flight slot. The result is discarded when the
// session has moved past searching or a newer search superseded this one.
func (s *Session) commitFlights(gen uint64, candidates []domain.FlightOption, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseSearching || s.flightSlot.Generation != gen {
		return false
	}
	s.flightSlot.Settled = true
	s.flightSlot.Candidates = candidates
	s.flightSlot.Err = err
	s.maybeFinishSearchLocked()
	return true
}

// commitHotels settles the hotel slot under the same guards.
func (s *Session) commitHotels(gen uint64, candidates []domain.HotelOption, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseSearching || s.hotelSlot.Generation != gen {
		return false
	}
	s.hotelSlot.Settled = true
	s.hotelSlot.Candidates = candidates
	s.hotelSlot.Err = err
	s.maybeFinishSearchLocked()
	return true
}

// maybeFinishSearchLocked advances to selecting once both slots settle.
// A failed or empty slot still settles; the per-slot error is what renders
// the difference.
func (s *Session) maybeFinishSearchLocked() {
	if s.flightSlot.Settled && s.hotelSlot.Settled {
		s.phase = PhaseSelecting
	}
}

// flightResult holds one provider's contribution to the flight slot.
type flightResult struct {
	provider string
	flights  []domain.FlightOption
	err      error
}

// searchFlights fans out to every flight provider, merges their options and
// commits the slot. One provider failing does not sink the slot as long as
// another returns data; every provider failing surfaces the first failure.
func (uc *tripFlow) searchFlights(ctx context.Context, session *Session, gen uint64, query domain.FlightQuery) {
	ctx, cancel := context.WithTimeout(ctx, uc.searchTimeout)
	defer cancel()

	resultsChan := make(chan flightResult, len(uc.flightProviders))
	var wg sync.WaitGroup

	for _, provider := range uc.flightProviders {
		wg.Add(1)
		go func(p domain.FlightProvider) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					resultsChan <- flightResult{provider: p.Name(), err: fmt.Errorf("provider panic: %v", r)}
				}
			}()
			flights, err := p.Search(ctx, query)
			resultsChan <- flightResult{provider: p.Name(), flights: flights, err: err}
		}(provider)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	var merged []domain.FlightOption
	var firstErr error
	failures := 0

	for result := range resultsChan {
		if result.err != nil {
			if domain.IsNoResults(result.err) {
				continue
			}
			failures++
			if firstErr == nil {
				firstErr = result.err
			}
			uc.log.WithProvider(result.provider).Warn().Err(result.err).Msg("Flight provider failed")
			continue
		}
		merged = append(merged, result.flights...)
	}

	if len(merged) > MaxFlightCandidates {
		merged = merged[:MaxFlightCandidates]
	}

	var slotErr error
	if len(merged) == 0 && failures == len(uc.flightProviders) {
		slotErr = firstErr
	}
	if !session.commitFlights(gen, merged, slotErr) {
		uc.log.WithSession(session.ID()).Debug().Uint64("generation", gen).Msg("Discarding stale flight results")
	}
}

// searchHotels queries the hotel provider and commits the slot. An empty
// result settles the slot with no error and no candidates.
func (uc *tripFlow) searchHotels(ctx context.Context, session *Session, gen uint64, query domain.HotelQuery) {
	ctx, cancel := context.WithTimeout(ctx, uc.searchTimeout)
	defer cancel()

	start := time.Now()
	hotels, err := uc.hotelProvider.Search(ctx, query)
	if err != nil {
		if domain.IsNoResults(err) {
			err = nil
		} else {
			uc.log.WithProvider(uc.hotelProvider.Name()).Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("Hotel provider failed")
		}
		hotels = nil
	}

	if !session.commitHotels(gen, hotels, err) {
		uc.log.WithSession(session.ID()).Debug().Uint64("generation", gen).Msg("Discarding stale hotel results")
	}
}

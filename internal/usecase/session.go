package usecase

import (
	"sync"

	"github.com/google/uuid"

	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/domain"
)

// Phase is a stage of the simulation flow. Transitions are linear with one
// legal back edge (tour selection to selecting); every mutating operation
// checks the phase before committing.
type Phase string

const (
	// PhaseEmpty is the initial state, before any search parameters.
	PhaseEmpty Phase = "empty"

	// PhaseSearching means candidate searches have been issued and at
	// least one slot has not returned yet.
	PhaseSearching Phase = "searching"

	// PhaseSelecting means both candidate lists have settled and the user
	// is choosing a flight and a hotel.
	PhaseSelecting Phase = "selecting"

	// PhaseTourSelection means flight and hotel are chosen and tour
	// candidates are available for toggling.
	PhaseTourSelection Phase = "tour_selection"

	// PhaseSummarizing is the read-only costed view; the only mutation
	// left is save.
	PhaseSummarizing Phase = "summarizing"

	// PhasePersisted is terminal; the selection has been saved and the
	// in-memory state cleared.
	PhasePersisted Phase = "persisted"
)

// SearchSlot holds the settled outcome of one candidate search. An empty
// Err with zero results means a valid empty result, which renders
// differently from a failure.
type SearchSlot struct {
	// Generation identifies which search issue this outcome belongs to.
	// Results carrying an older generation are discarded on commit.
	Generation uint64

	// Settled reports whether the slot's search has returned.
	Settled bool

	// Err is the surfaced search failure, nil on success or no-results.
	Err error
}

// FlightSlot is the flight candidate slot.
type FlightSlot struct {
	SearchSlot
	Candidates []domain.FlightOption
}

// HotelSlot is the hotel candidate slot.
type HotelSlot struct {
	SearchSlot
	Candidates []domain.HotelOption
}

// Session is one user's simulation flow state. All access goes through the
// mutex; provider goroutines commit results only after re-checking phase
// and generation under the lock.
type Session struct {
	mu sync.Mutex

	id      string
	ownerID string

	phase     Phase
	selection *domain.TripSelection
	searchGen uint64

	flightSlot FlightSlot
	hotelSlot  HotelSlot

	tourCandidates []domain.TourOption
}

// NewSession creates an empty session for the given owner.
func NewSession(ownerID string) *Session {
	return &Session{
		id:        uuid.New().String(),
		ownerID:   ownerID,
		phase:     PhaseEmpty,
		selection: domain.NewTripSelection(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// OwnerID returns the owning user's identifier.
func (s *Session) OwnerID() string { return s.ownerID }

// Snapshot is a consistent copy of the session state for rendering.
type Snapshot struct {
	ID        string
	Phase     Phase
	Selection domain.TripSelection

	FlightCandidates []domain.FlightOption
	FlightSettled    bool
	FlightErr        error

	HotelCandidates []domain.HotelOption
	HotelSettled    bool
	HotelErr        error

	TourCandidates []domain.TourOption
}

// Snapshot returns a copy of the current state taken under the lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:             s.id,
		Phase:          s.phase,
		FlightSettled:  s.flightSlot.Settled,
		FlightErr:      s.flightSlot.Err,
		HotelSettled:   s.hotelSlot.Settled,
		HotelErr:       s.hotelSlot.Err,
		TourCandidates: append([]domain.TourOption(nil), s.tourCandidates...),
	}
	snap.FlightCandidates = append([]domain.FlightOption(nil), s.flightSlot.Candidates...)
	snap.HotelCandidates = append([]domain.HotelOption(nil), s.hotelSlot.Candidates...)
	if s.selection != nil {
		snap.Selection = s.selection.Clone()
	}
	return snap
}

// Registry is the in-memory session store, keyed by session id and scoped
// to the owning user.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Create registers a new session for the owner.
func (r *Registry) Create(ownerID string) *Session {
	session := NewSession(ownerID)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID()] = session
	return session
}

// Get returns the owner's session, or ErrSessionNotFound when the id is
// unknown or belongs to a different owner.
func (r *Registry) Get(ownerID, id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok || session.OwnerID() != ownerID {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// Remove drops the owner's session. Removing an unknown id is a no-op.
func (r *Registry) Remove(ownerID, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[id]; ok && session.OwnerID() == ownerID {
		delete(r.sessions, id)
	}
}

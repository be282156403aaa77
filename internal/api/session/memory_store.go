package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps session state in process memory; idle sessions expire after ttl.
type MemoryStore struct {
	mu     sync.Mutex
	states *cache.Cache
}

type memoryEntry struct {
	plan  *types.TravelPlan
	err   *string
	token string
}

// NewMemoryStore creates a store. A cleanupInterval <= 0 disables the background janitor.
func NewMemoryStore(ttl, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{states: cache.New(ttl, cleanupInterval)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID uuid.UUID) (types.PlanState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.load(sessionID)
	return types.PlanState{Plan: e.plan, Error: e.err, IsLoading: e.token != ""}, nil
}

func (s *MemoryStore) BeginGeneration(_ context.Context, sessionID uuid.UUID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.load(sessionID)
	if e.token != "" {
		return "", ErrGenerationInProgress
	}
	e.token = uuid.NewString()
	e.err = nil
	s.save(sessionID, e)
	return e.token, nil
}

func (s *MemoryStore) FinishGeneration(_ context.Context, sessionID uuid.UUID, token string) error {
	return s.update(sessionID, func(e *memoryEntry) {
		if e.token == token {
			e.token = ""
		}
	})
}

func (s *MemoryStore) SetPlan(_ context.Context, sessionID uuid.UUID, plan types.TravelPlan) error {
	return s.update(sessionID, func(e *memoryEntry) {
		e.plan = &plan
		e.err = nil
	})
}

func (s *MemoryStore) SetError(_ context.Context, sessionID uuid.UUID, message string) error {
	return s.update(sessionID, func(e *memoryEntry) {
		e.err = &message
	})
}

func (s *MemoryStore) Clear(_ context.Context, sessionID uuid.UUID) error {
	return s.update(sessionID, func(e *memoryEntry) {
		e.plan = nil
		e.err = nil
	})
}

func (s *MemoryStore) update(sessionID uuid.UUID, fn func(*memoryEntry)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.load(sessionID)
	fn(&e)
	s.save(sessionID, e)
	return nil
}

func (s *MemoryStore) load(sessionID uuid.UUID) memoryEntry {
	if v, ok := s.states.Get(sessionID.String()); ok {
		return v.(memoryEntry)
	}
	return memoryEntry{}
}

func (s *MemoryStore) save(sessionID uuid.UUID, e memoryEntry) {
	s.states.Set(sessionID.String(), e, cache.DefaultExpiration)
}

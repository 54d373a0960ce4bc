package completion

import (
	"context"
	"sync"

	"tutela/internal/training/models"
	id "tutela/pkg/domain"
)

type progressKey struct {
	userID id.UserID
	orgID  id.OrgID
}

// InMemoryStore is a map-backed Store for tests and single-process dev runs.
type InMemoryStore struct {
	mu   sync.RWMutex
	sets map[progressKey]models.CompletionSet
}

// NewInMemoryStore returns an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sets: make(map[progressKey]models.CompletionSet)}
}

// Fetch returns the stored set for the user. Absence yields an empty set.
func (s *InMemoryStore) Fetch(_ context.Context, userID id.UserID, orgID id.OrgID) (models.CompletionSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.sets[progressKey{userID: userID, orgID: orgID}]
	if !ok {
		return models.NewCompletionSet(), nil
	}
	return set.Clone(), nil
}

// SaveAll merges the pushed set into the stored one. Existing records win so
// first completion timestamps survive replays and concurrent sessions.
func (s *InMemoryStore) SaveAll(_ context.Context, userID id.UserID, orgID id.OrgID, set models.CompletionSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := progressKey{userID: userID, orgID: orgID}
	stored, ok := s.sets[key]
	if !ok {
		stored = models.NewCompletionSet()
		s.sets[key] = stored
	}
	for _, rec := range set.Records() {
		stored.Add(rec)
	}
	return nil
}

// Clear wipes all stored sets. Test helper.
func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets = make(map[progressKey]models.CompletionSet)
}

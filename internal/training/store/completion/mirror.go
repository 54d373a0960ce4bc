package completion

import (
	"sync"
	"time"

	"tutela/internal/training/models"
	id "tutela/pkg/domain"
)

// Mirror is the session-local completion view. It is the authoritative input
// for unlock decisions within a session: marks land here synchronously and
// are never rolled back, regardless of what the remote write later does.
type Mirror struct {
	mu  sync.RWMutex
	set models.CompletionSet
}

// NewMirror returns an empty mirror.
func NewMirror() *Mirror {
	return &Mirror{set: models.NewCompletionSet()}
}

// Hydrate replaces the mirror's contents with the server-reported set.
// Called once per session at load; a failed fetch hydrates with nil, leaving
// the mirror empty (degraded mode).
func (m *Mirror) Hydrate(set models.CompletionSet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if set == nil {
		m.set = models.NewCompletionSet()
		return
	}
	m.set = set.Clone()
}

// MarkCompleted records the module as finished at the given time. Idempotent:
// re-marking keeps the original timestamp. Reports whether the set changed.
func (m *Mirror) MarkCompleted(moduleID id.ModuleID, completedAt time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set.Add(models.CompletionRecord{ModuleID: moduleID, CompletedAt: completedAt})
}

// IsCompleted reports whether the module is completed.
func (m *Mirror) IsCompleted(moduleID id.ModuleID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.set.Contains(moduleID)
}

// Size returns the number of completed modules.
func (m *Mirror) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.set.Size()
}

// Snapshot returns an independent copy of the current set, used when pushing
// the full set to the sync gateway.
func (m *Mirror) Snapshot() models.CompletionSet {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.set.Clone()
}

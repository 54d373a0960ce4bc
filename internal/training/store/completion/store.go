// Package completion tracks which training modules are finished.
//
// Two tiers exist, mirroring how the progression engine consumes them:
//
//   - Mirror: an in-memory, session-local view that unlock decisions read.
//     It is updated synchronously when a module is completed, so a network
//     problem can never re-lock content the delegate already finished.
//   - Store: the durable record behind the sync gateway, with memory,
//     postgres, and redis-cached implementations in the usual pairing.
package completion

import (
	"context"

	"tutela/internal/training/models"
	id "tutela/pkg/domain"
)

// Store is the durable side of the completion boundary.
//
// Fetch must report an empty set, not an error, for a user with no history.
// SaveAll persists the full set and must be idempotent under retry: replaying
// the same payload yields the same stored state, and a module's first
// recorded completion timestamp is never overwritten.
type Store interface {
	Fetch(ctx context.Context, userID id.UserID, orgID id.OrgID) (models.CompletionSet, error)
	SaveAll(ctx context.Context, userID id.UserID, orgID id.OrgID, set models.CompletionSet) error
}

// Package sync is the boundary between the progression engine and durable
// completion state.
//
// The Gateway abstracts the remote status service; the Syncer applies
// write-behind semantics on top of it: completion pushes are accepted
// immediately and persisted in the background with retry, so navigation
// never waits on the network. Gateway errors stop here — the engine always
// has a defined next state regardless of network outcome.
package sync

//go:generate mockgen -source=gateway.go -destination=mocks/mocks.go -package=mocks Gateway

import (
	"context"

	"tutela/internal/training/models"
	id "tutela/pkg/domain"
)

// Gateway reads and writes a user's completion set against the durable
// status backend.
//
// FetchStatus must report an empty set, not an error, for a user with no
// history. PushCompletion sends the entire updated set rather than a delta,
// which keeps server-side reconciliation trivial at the cost of payload
// size, and must be idempotent under retry.
type Gateway interface {
	FetchStatus(ctx context.Context, userID id.UserID, orgID id.OrgID) (models.CompletionSet, error)
	PushCompletion(ctx context.Context, userID id.UserID, orgID id.OrgID, set models.CompletionSet) error
}

package sync

import (
	"context"

	"tutela/internal/training/models"
	"tutela/internal/training/store/completion"
	id "tutela/pkg/domain"
)

// StoreGateway adapts a durable completion store to the Gateway interface for
// deployments where this process owns the status backend directly instead of
// calling a remote service.
type StoreGateway struct {
	store completion.Store
}

// NewStoreGateway wraps a completion store as a Gateway.
func NewStoreGateway(store completion.Store) *StoreGateway {
	return &StoreGateway{store: store}
}

func (g *StoreGateway) FetchStatus(ctx context.Context, userID id.UserID, orgID id.OrgID) (models.CompletionSet, error) {
	return g.store.Fetch(ctx, userID, orgID)
}

func (g *StoreGateway) PushCompletion(ctx context.Context, userID id.UserID, orgID id.OrgID, set models.CompletionSet) error {
	return g.store.SaveAll(ctx, userID, orgID, set)
}

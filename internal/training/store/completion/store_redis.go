package completion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tutela/internal/training/models"
	id "tutela/pkg/domain"
)

const completionCacheKeyPrefix = "training:completions:"

// CachedStore wraps a durable Store with a TTL-bounded Redis read-through
// cache. Hydration reads hit Redis first; writes go to the durable store and
// drop the cache entry so the next fetch rereads the truth.
//
// Cache failures degrade to the durable store; they are never surfaced as
// fetch or save errors.
type CachedStore struct {
	next   Store
	client *redis.Client
	ttl    time.Duration
}

// NewCachedStore builds a Redis cache in front of next.
func NewCachedStore(next Store, client *redis.Client, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedStore{next: next, client: client, ttl: ttl}
}

func cacheKey(userID id.UserID, orgID id.OrgID) string {
	return completionCacheKeyPrefix + userID.String() + ":" + orgID.String()
}

// Fetch returns the cached set when present, falling back to the durable
// store and repopulating the cache on a miss.
func (s *CachedStore) Fetch(ctx context.Context, userID id.UserID, orgID id.OrgID) (models.CompletionSet, error) {
	key := cacheKey(userID, orgID)

	payload, err := s.client.Get(ctx, key).Bytes()
	if err == nil {
		var records []models.CompletionRecord
		if err := json.Unmarshal(payload, &records); err == nil {
			set := models.NewCompletionSet()
			for _, rec := range records {
				set.Add(rec)
			}
			return set, nil
		}
		// Corrupt entry: drop it and reread from the durable store.
		s.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) && ctx.Err() != nil {
		return nil, fmt.Errorf("completion cache read: %w", ctx.Err())
	}

	set, err := s.next.Fetch(ctx, userID, orgID)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(set.Records()); err == nil {
		s.client.Set(ctx, key, encoded, s.ttl)
	}
	return set, nil
}

// SaveAll writes through to the durable store and invalidates the cache.
func (s *CachedStore) SaveAll(ctx context.Context, userID id.UserID, orgID id.OrgID, set models.CompletionSet) error {
	if err := s.next.SaveAll(ctx, userID, orgID, set); err != nil {
		return err
	}
	s.client.Del(ctx, cacheKey(userID, orgID))
	return nil
}

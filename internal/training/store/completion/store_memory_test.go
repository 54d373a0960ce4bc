package completion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutela/internal/training/models"
	id "tutela/pkg/domain"
)

func setOf(t *testing.T, recs ...models.CompletionRecord) models.CompletionSet {
	t.Helper()
	set := models.NewCompletionSet()
	for _, rec := range recs {
		set.Add(rec)
	}
	return set
}

func TestInMemoryStore(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	userID := id.NewUserID()
	orgID := id.NewOrgID()
	now := time.Now()

	t.Run("fetch for unknown user returns empty set", func(t *testing.T) {
		set, err := store.Fetch(ctx, userID, orgID)
		require.NoError(t, err)
		assert.Equal(t, 0, set.Size())
	})

	t.Run("save then fetch round-trips", func(t *testing.T) {
		err := store.SaveAll(ctx, userID, orgID, setOf(t,
			models.CompletionRecord{ModuleID: 1, CompletedAt: now},
			models.CompletionRecord{ModuleID: 2, CompletedAt: now},
		))
		require.NoError(t, err)

		set, err := store.Fetch(ctx, userID, orgID)
		require.NoError(t, err)
		assert.Equal(t, 2, set.Size())
		assert.True(t, set.Contains(1))
		assert.True(t, set.Contains(2))
	})

	t.Run("replay keeps first completed_at", func(t *testing.T) {
		later := now.Add(time.Hour)
		err := store.SaveAll(ctx, userID, orgID, setOf(t,
			models.CompletionRecord{ModuleID: 1, CompletedAt: later},
			models.CompletionRecord{ModuleID: 3, CompletedAt: later},
		))
		require.NoError(t, err)

		set, err := store.Fetch(ctx, userID, orgID)
		require.NoError(t, err)
		assert.Equal(t, 3, set.Size())
		assert.Equal(t, now, set[1].CompletedAt, "first completion timestamp must survive replay")
		assert.Equal(t, later, set[3].CompletedAt)
	})

	t.Run("sets are isolated per user and org", func(t *testing.T) {
		otherOrg := id.NewOrgID()
		set, err := store.Fetch(ctx, userID, otherOrg)
		require.NoError(t, err)
		assert.Equal(t, 0, set.Size())

		set, err = store.Fetch(ctx, id.NewUserID(), orgID)
		require.NoError(t, err)
		assert.Equal(t, 0, set.Size())
	})

	t.Run("fetched set is a copy", func(t *testing.T) {
		set, err := store.Fetch(ctx, userID, orgID)
		require.NoError(t, err)
		set.Add(models.CompletionRecord{ModuleID: 6, CompletedAt: now})

		again, err := store.Fetch(ctx, userID, orgID)
		require.NoError(t, err)
		assert.False(t, again.Contains(6))
	})
}

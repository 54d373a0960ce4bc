package completion

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutela/internal/training/models"
	id "tutela/pkg/domain"
)

func TestMirror_MarkCompleted(t *testing.T) {
	m := NewMirror()
	now := time.Now()

	t.Run("mark adds module", func(t *testing.T) {
		changed := m.MarkCompleted(1, now)
		assert.True(t, changed)
		assert.True(t, m.IsCompleted(1))
		assert.Equal(t, 1, m.Size())
	})

	t.Run("re-mark is a no-op preserving the first timestamp", func(t *testing.T) {
		later := now.Add(time.Hour)
		changed := m.MarkCompleted(1, later)
		assert.False(t, changed)
		assert.True(t, m.IsCompleted(1))
		assert.Equal(t, 1, m.Size())

		records := m.Snapshot().Records()
		require.Len(t, records, 1)
		assert.Equal(t, now, records[0].CompletedAt)
	})

	t.Run("size never decreases", func(t *testing.T) {
		sizes := []int{m.Size()}
		for _, moduleID := range []id.ModuleID{2, 2, 3, 1, 4} {
			m.MarkCompleted(moduleID, now)
			sizes = append(sizes, m.Size())
		}
		for i := 1; i < len(sizes); i++ {
			assert.GreaterOrEqual(t, sizes[i], sizes[i-1])
		}
	})
}

func TestMirror_Hydrate(t *testing.T) {
	t.Run("replaces contents entirely", func(t *testing.T) {
		m := NewMirror()
		m.MarkCompleted(5, time.Now())

		set := models.NewCompletionSet()
		set.Add(models.CompletionRecord{ModuleID: 1, CompletedAt: time.Now()})
		set.Add(models.CompletionRecord{ModuleID: 2, CompletedAt: time.Now()})
		m.Hydrate(set)

		assert.True(t, m.IsCompleted(1))
		assert.True(t, m.IsCompleted(2))
		assert.False(t, m.IsCompleted(5))
		assert.Equal(t, 2, m.Size())
	})

	t.Run("nil set hydrates empty", func(t *testing.T) {
		m := NewMirror()
		m.MarkCompleted(1, time.Now())
		m.Hydrate(nil)
		assert.Equal(t, 0, m.Size())
	})

	t.Run("hydrated set is independent of caller", func(t *testing.T) {
		m := NewMirror()
		set := models.NewCompletionSet()
		set.Add(models.CompletionRecord{ModuleID: 1, CompletedAt: time.Now()})
		m.Hydrate(set)

		set.Add(models.CompletionRecord{ModuleID: 2, CompletedAt: time.Now()})
		assert.False(t, m.IsCompleted(2))
	})
}

func TestMirror_Concurrent(t *testing.T) {
	m := NewMirror()
	now := time.Now()

	const goroutines = 100
	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		moduleID := id.ModuleID(i%10 + 1)
		go func() {
			defer wg.Done()
			m.MarkCompleted(moduleID, now)
			m.IsCompleted(moduleID)
			_ = m.Snapshot()
		}()
	}

	wg.Wait()
	assert.Equal(t, 10, m.Size())
}

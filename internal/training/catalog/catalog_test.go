package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "tutela/pkg/domain"
	"tutela/pkg/platform/sentinel"
)

func testModules(n int) []Module {
	modules := make([]Module, n)
	for i := range modules {
		modules[i] = Module{
			ID:      id.ModuleID(i + 1),
			Title:   "module",
			Content: "content/test",
		}
	}
	return modules
}

func TestNew(t *testing.T) {
	t.Run("accepts dense sequence", func(t *testing.T) {
		c, err := New(testModules(6))
		require.NoError(t, err)
		assert.Equal(t, 6, c.Len())
		assert.Equal(t, id.ModuleID(6), c.LastID())
	})

	t.Run("rejects empty catalog", func(t *testing.T) {
		_, err := New(nil)
		assert.Error(t, err)
	})

	t.Run("rejects gap in sequence", func(t *testing.T) {
		modules := testModules(3)
		modules[2].ID = 5
		_, err := New(modules)
		assert.Error(t, err)
	})

	t.Run("rejects duplicate id", func(t *testing.T) {
		modules := testModules(3)
		modules[2].ID = 2
		_, err := New(modules)
		assert.Error(t, err)
	})

	t.Run("rejects sequence not starting at 1", func(t *testing.T) {
		modules := testModules(2)
		modules[0].ID = 2
		modules[1].ID = 3
		_, err := New(modules)
		assert.Error(t, err)
	})
}

func TestGet(t *testing.T) {
	c, err := New(testModules(4))
	require.NoError(t, err)

	t.Run("returns module by id", func(t *testing.T) {
		m, err := c.Get(3)
		require.NoError(t, err)
		assert.Equal(t, id.ModuleID(3), m.ID)
	})

	t.Run("unknown id returns ErrNotFound", func(t *testing.T) {
		_, err := c.Get(5)
		assert.True(t, errors.Is(err, sentinel.ErrNotFound))

		_, err = c.Get(0)
		assert.True(t, errors.Is(err, sentinel.ErrNotFound))

		_, err = c.Get(-1)
		assert.True(t, errors.Is(err, sentinel.ErrNotFound))
	})
}

func TestList(t *testing.T) {
	c, err := New(testModules(3))
	require.NoError(t, err)

	t.Run("stable order across calls", func(t *testing.T) {
		first := c.List()
		second := c.List()
		assert.Equal(t, first, second)
		for i, m := range first {
			assert.Equal(t, id.ModuleID(i+1), m.ID)
		}
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		listed := c.List()
		listed[0].Title = "mutated"

		m, err := c.Get(1)
		require.NoError(t, err)
		assert.Equal(t, "module", m.Title)
	})
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, 6, c.Len())

	// Default construction must not panic and every module must resolve.
	for _, m := range c.List() {
		got, err := c.Get(m.ID)
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}

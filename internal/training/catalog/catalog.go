// Package catalog holds the fixed, ordered list of training modules.
//
// The catalog is pure data: it is validated once at construction, never
// mutated afterwards, and the progression engine only ever branches on module
// IDs, never on content.
package catalog

import (
	"fmt"

	id "tutela/pkg/domain"
	"tutela/pkg/platform/sentinel"
)

// Module is one unit of training content with a fixed position in the total
// order. Title, Description and Content are opaque display payloads.
type Module struct {
	ID          id.ModuleID `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Content     string      `json:"content"`
}

// Catalog is an immutable ordered module list. IDs are dense: module k sits
// at index k-1, which keeps lookups O(1) and makes the predecessor rule
// (module k unlocks when k-1 is complete) a pure index computation.
type Catalog struct {
	modules []Module
}

// New validates the module list and builds a catalog. IDs must form the
// contiguous sequence 1..N in order; anything else is a configuration error.
func New(modules []Module) (*Catalog, error) {
	if len(modules) == 0 {
		return nil, fmt.Errorf("catalog must contain at least one module")
	}
	for i, m := range modules {
		want := id.ModuleID(i + 1)
		if m.ID != want {
			return nil, fmt.Errorf("catalog module at position %d has id %d, want %d", i, m.ID, want)
		}
		if m.Title == "" {
			return nil, fmt.Errorf("catalog module %d has empty title", m.ID)
		}
	}
	owned := make([]Module, len(modules))
	copy(owned, modules)
	return &Catalog{modules: owned}, nil
}

// MustNew is New for static catalogs wired at startup; it panics on invalid
// definitions, which are build-time defects.
func MustNew(modules []Module) *Catalog {
	c, err := New(modules)
	if err != nil {
		panic(err)
	}
	return c
}

// Get returns the module with the given ID, or sentinel.ErrNotFound wrapped
// with the offending ID when the catalog has no such module.
func (c *Catalog) Get(moduleID id.ModuleID) (Module, error) {
	idx := int(moduleID) - 1
	if idx < 0 || idx >= len(c.modules) {
		return Module{}, fmt.Errorf("module %d: %w", moduleID, sentinel.ErrNotFound)
	}
	return c.modules[idx], nil
}

// List returns the modules in catalog order. The slice is a copy; callers may
// not mutate catalog state through it.
func (c *Catalog) List() []Module {
	out := make([]Module, len(c.modules))
	copy(out, c.modules)
	return out
}

// Len returns N, the number of modules in the sequence.
func (c *Catalog) Len() int { return len(c.modules) }

// LastID returns the ID of the final module in the sequence.
func (c *Catalog) LastID() id.ModuleID { return id.ModuleID(len(c.modules)) }

// Package export assembles the full training content into a single ordered
// artifact, used to hand a completed curriculum to archival or print systems.
package export

import (
	"time"

	"tutela/internal/training/catalog"
	id "tutela/pkg/domain"
)

// ModuleContent is one module's content in the export artifact.
type ModuleContent struct {
	ModuleID id.ModuleID `json:"module_id"`
	Title    string      `json:"title"`
	Content  string      `json:"content"`
}

// Artifact is the complete export. Modules appear in curriculum order.
type Artifact struct {
	GeneratedAt time.Time       `json:"generated_at"`
	ModuleCount int             `json:"module_count"`
	Modules     []ModuleContent `json:"modules"`
}

// Assembler builds export artifacts from the catalog.
type Assembler struct {
	catalog *catalog.Catalog
	now     func() time.Time
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithClock overrides the time source. Test hook.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAssembler builds an assembler over the catalog.
func NewAssembler(cat *catalog.Catalog, opts ...Option) *Assembler {
	a := &Assembler{catalog: cat, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble returns the full curriculum in order. Eligibility is the
// caller's concern; the assembler only knows content.
func (a *Assembler) Assemble() Artifact {
	modules := a.catalog.List()
	contents := make([]ModuleContent, 0, len(modules))
	for _, m := range modules {
		contents = append(contents, ModuleContent{
			ModuleID: m.ID,
			Title:    m.Title,
			Content:  m.Content,
		})
	}
	return Artifact{
		GeneratedAt: a.now().UTC(),
		ModuleCount: len(contents),
		Modules:     contents,
	}
}

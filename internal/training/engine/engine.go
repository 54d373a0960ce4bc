// Package engine implements the training progression state machine.
//
// A delegate works through the catalog strictly in order: module k is
// accessible once module k-1 is complete, module 1 always. Completing the
// current module marks the local mirror synchronously, hands the updated set
// to the write-behind pusher, and advances the view — next module while the
// sequence is unfinished, back to the listing after the last one. Remote
// persistence never gates a transition.
package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tutela/internal/training/catalog"
	"tutela/internal/training/metrics"
	"tutela/internal/training/models"
	"tutela/internal/training/store/completion"
	id "tutela/pkg/domain"
	dErrors "tutela/pkg/domain-errors"
)

// ViewState names where the delegate currently is.
type ViewState string

const (
	// StateListing is the catalog overview; no module is open.
	StateListing ViewState = "listing"
	// StateViewing means a specific unlocked module is open.
	StateViewing ViewState = "viewing"
)

// Pusher accepts completion pushes for background delivery. Implemented by
// sync.Syncer; the engine never learns whether delivery succeeded.
type Pusher interface {
	Enqueue(userID id.UserID, orgID id.OrgID, set models.CompletionSet) bool
}

// CompleteResult reports what a Complete transition did.
type CompleteResult struct {
	// Changed is false when the module was already completed; the
	// navigation below still happened.
	Changed bool
	// Finished is true when this completion closed the full sequence.
	Finished bool
	// Next is the module now open, or 0 when the engine returned to the
	// listing.
	Next id.ModuleID
}

// ModuleProgress is the per-module slice of a progress snapshot.
type ModuleProgress struct {
	ID         id.ModuleID `json:"id"`
	Title      string      `json:"title"`
	Completed  bool        `json:"completed"`
	Accessible bool        `json:"accessible"`
}

// Snapshot is a point-in-time view of progression state, derived fresh from
// the completion mirror on every call.
type Snapshot struct {
	State           ViewState        `json:"state"`
	CurrentModule   id.ModuleID      `json:"current_module,omitempty"`
	CompletedCount  int              `json:"completed_count"`
	TotalModules    int              `json:"total_modules"`
	HighestUnlocked id.ModuleID      `json:"highest_unlocked"`
	FullyComplete   bool             `json:"fully_complete"`
	Degraded        bool             `json:"degraded"`
	Modules         []ModuleProgress `json:"modules"`
}

// Engine drives one delegate's progression through one catalog. Identity is
// fixed at construction; a session owns exactly one engine.
type Engine struct {
	mu sync.Mutex

	catalog *catalog.Catalog
	mirror  *completion.Mirror
	pusher  Pusher
	logger  *slog.Logger
	metrics *metrics.Metrics

	userID id.UserID
	orgID  id.OrgID

	state    ViewState
	current  id.ModuleID // valid only in StateViewing
	degraded bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// New constructs an engine in the listing state.
func New(cat *catalog.Catalog, mirror *completion.Mirror, pusher Pusher, userID id.UserID, orgID id.OrgID, opts ...Option) *Engine {
	e := &Engine{
		catalog: cat,
		mirror:  mirror,
		pusher:  pusher,
		logger:  slog.Default(),
		userID:  userID,
		orgID:   orgID,
		state:   StateListing,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetDegraded flags that hydration failed and the session started from an
// empty completion set.
func (e *Engine) SetDegraded(degraded bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.degraded = degraded
}

// Accessible reports whether the module may be opened: module 1 always, any
// other module once its predecessor is complete. Always derived fresh from
// the mirror, never cached.
func (e *Engine) Accessible(moduleID id.ModuleID) bool {
	if moduleID == 1 {
		return true
	}
	if !moduleID.IsValid() || int(moduleID) > e.catalog.Len() {
		return false
	}
	return e.mirror.IsCompleted(moduleID - 1)
}

// Select opens a module. Inaccessible modules are refused with a locked
// error and no state change. An ID outside the catalog indicates a
// catalog/state mismatch: the engine logs it, falls back to the listing, and
// reports not_found.
func (e *Engine) Select(moduleID id.ModuleID) (catalog.Module, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	module, err := e.catalog.Get(moduleID)
	if err != nil {
		e.logger.Error("select for module outside catalog",
			"user_id", e.userID,
			"org_id", e.orgID,
			"module_id", moduleID,
		)
		e.state = StateListing
		e.current = 0
		return catalog.Module{}, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("module %d does not exist", moduleID))
	}

	if !e.Accessible(moduleID) {
		return catalog.Module{}, dErrors.New(dErrors.CodeModuleLocked,
			fmt.Sprintf("module %d is locked until module %d is completed", moduleID, moduleID-1))
	}

	e.state = StateViewing
	e.current = moduleID
	return module, nil
}

// Back returns to the listing without touching completion state.
func (e *Engine) Back() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = StateListing
	e.current = 0
}

// Complete finishes the currently open module. The mirror is marked
// synchronously, the full updated set is handed to the pusher without
// waiting, and the view advances: to the next module while the sequence is
// unfinished, to the listing once the final module is done. Completing an
// already-completed module is a data no-op that still navigates.
func (e *Engine) Complete(completedAt time.Time) (CompleteResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateViewing {
		return CompleteResult{}, dErrors.New(dErrors.CodeConflict, "no module is open")
	}

	moduleID := e.current
	changed := e.mirror.MarkCompleted(moduleID, completedAt)
	if changed && e.metrics != nil {
		e.metrics.IncrementModulesCompleted()
	}

	// Write-behind: hand off the full set and move on. Delivery outcome
	// never reaches this state machine.
	e.pusher.Enqueue(e.userID, e.orgID, e.mirror.Snapshot())

	result := CompleteResult{Changed: changed}
	if moduleID < e.catalog.LastID() {
		e.current = moduleID + 1
		result.Next = e.current
	} else {
		e.state = StateListing
		e.current = 0
	}

	if changed && e.mirror.Size() == e.catalog.Len() {
		result.Finished = true
		if e.metrics != nil {
			e.metrics.IncrementTrainingsCompleted()
		}
		e.logger.Info("training sequence completed",
			"user_id", e.userID,
			"org_id", e.orgID,
			"modules", e.catalog.Len(),
		)
	}
	return result, nil
}

// FullyComplete reports whether every catalog module is completed. This is
// the sole gate for the assessment handoff and the bulk export.
func (e *Engine) FullyComplete() bool {
	return e.mirror.Size() == e.catalog.Len()
}

// Progress derives a snapshot from the mirror and catalog.
func (e *Engine) Progress() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := e.catalog.Len()
	snap := Snapshot{
		State:          e.state,
		CurrentModule:  e.current,
		CompletedCount: e.mirror.Size(),
		TotalModules:   n,
		FullyComplete:  e.mirror.Size() == n,
		Degraded:       e.degraded,
		Modules:        make([]ModuleProgress, 0, n),
	}

	// First gap in the completed sequence; N+1 acts as the all-done
	// sentinel.
	snap.HighestUnlocked = id.ModuleID(n + 1)
	for _, m := range e.catalog.List() {
		completed := e.mirror.IsCompleted(m.ID)
		if !completed && m.ID < snap.HighestUnlocked {
			snap.HighestUnlocked = m.ID
		}
		snap.Modules = append(snap.Modules, ModuleProgress{
			ID:         m.ID,
			Title:      m.Title,
			Completed:  completed,
			Accessible: e.Accessible(m.ID),
		})
	}
	return snap
}

// View returns the current view state and open module (0 when listing).
func (e *Engine) View() (ViewState, id.ModuleID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state, e.current
}

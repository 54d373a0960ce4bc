// Package models defines the training domain's data shapes: completion
// records and the per-(user, org) completion set.
package models

import (
	"sort"
	"time"

	id "tutela/pkg/domain"
)

// CompletionRecord marks one module as finished at a point in time.
type CompletionRecord struct {
	ModuleID    id.ModuleID `json:"module_id"`
	CompletedAt time.Time   `json:"completed_at"`
}

// CompletionSet is the set of modules a user has finished within an
// organization context, unique by module ID. The zero value is usable.
//
// The set only grows. Adding an already-present module is a no-op that
// preserves the original completion timestamp, so replaying a completion
// (UI retry, gateway retry, second device) never rewrites history.
type CompletionSet map[id.ModuleID]CompletionRecord

// NewCompletionSet returns an empty set.
func NewCompletionSet() CompletionSet {
	return make(CompletionSet)
}

// Add inserts a completion record unless the module is already present.
// Reports whether the set changed.
func (s CompletionSet) Add(rec CompletionRecord) bool {
	if _, exists := s[rec.ModuleID]; exists {
		return false
	}
	s[rec.ModuleID] = rec
	return true
}

// Contains reports whether the module is completed.
func (s CompletionSet) Contains(moduleID id.ModuleID) bool {
	_, ok := s[moduleID]
	return ok
}

// Size returns the number of completed modules.
func (s CompletionSet) Size() int { return len(s) }

// Records returns the completion records ordered by module ID.
func (s CompletionSet) Records() []CompletionRecord {
	out := make([]CompletionRecord, 0, len(s))
	for _, rec := range s {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModuleID < out[j].ModuleID })
	return out
}

// ModuleIDs returns the completed module IDs in ascending order.
func (s CompletionSet) ModuleIDs() []id.ModuleID {
	out := make([]id.ModuleID, 0, len(s))
	for moduleID := range s {
		out = append(out, moduleID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone returns an independent copy of the set.
func (s CompletionSet) Clone() CompletionSet {
	out := make(CompletionSet, len(s))
	for moduleID, rec := range s {
		out[moduleID] = rec
	}
	return out
}

// Package audit captures compliance-relevant actions as structured events.
//
// Training progress is evidence under child-protection regulation: who
// completed which module when, and when the delegate became eligible for the
// final assessment. Events are emitted from domain logic, buffered through a
// channel, and fanned out to a durable store and an event stream.
package audit

import (
	"context"
	"time"

	id "tutela/pkg/domain"
)

// Action names a recorded fact. The set is closed; consumers key retention
// and alerting off these values.
type Action string

const (
	ActionModuleCompleted     Action = "module_completed"
	ActionTrainingCompleted   Action = "training_completed"
	ActionAssessmentRequested Action = "assessment_requested"
	ActionHydrationDegraded   Action = "hydration_degraded"
	ActionContentExported     Action = "content_exported"
)

// Event is emitted from domain logic to capture one key action. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time   `json:"timestamp"`
	UserID    id.UserID   `json:"user_id"`
	OrgID     id.OrgID    `json:"org_id"`
	Action    Action      `json:"action"`
	ModuleID  id.ModuleID `json:"module_id,omitempty"`
	Detail    string      `json:"detail,omitempty"`
	// RequestID correlates the event with the HTTP request that caused it.
	RequestID string `json:"request_id,omitempty"`
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByUser(ctx context.Context, userID id.UserID) ([]Event, error)
}

// Sink receives events that were durably stored, for streaming to external
// consumers. Implementations must not block the worker indefinitely.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

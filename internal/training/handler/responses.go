package handler

import (
	"tutela/internal/training/engine"
	id "tutela/pkg/domain"
)

// ListingResponse is the GET /training envelope: the progress snapshot plus
// how many completions are still queued for the status service.
type ListingResponse struct {
	engine.Snapshot
	PendingSync int `json:"pending_sync"`
}

// ModuleView is the full module content returned when a module is opened.
type ModuleView struct {
	ID          id.ModuleID `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Content     string      `json:"content"`
}

// OpenResponse is returned by POST /training/modules/{id}/open.
type OpenResponse struct {
	Module ModuleView       `json:"module"`
	State  engine.ViewState `json:"state"`
}

// CompleteResponse is returned by POST /training/modules/{id}/complete.
type CompleteResponse struct {
	Changed  bool            `json:"changed"`
	Finished bool            `json:"finished"`
	Next     id.ModuleID     `json:"next,omitempty"`
	Snapshot engine.Snapshot `json:"snapshot"`
}

// AssessmentResponse is returned by POST /training/assessment.
type AssessmentResponse struct {
	Requested bool `json:"requested"`
}

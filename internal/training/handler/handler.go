// Package handler exposes the training progression over HTTP.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tutela/internal/assessment"
	"tutela/internal/export"
	"tutela/internal/training/engine"
	"tutela/internal/training/metrics"
	"tutela/internal/training/session"
	id "tutela/pkg/domain"
	dErrors "tutela/pkg/domain-errors"
	"tutela/pkg/platform/audit"
	"tutela/pkg/platform/httputil"
	"tutela/pkg/requestcontext"
)

// PendingReporter exposes the count of completions queued but not yet
// delivered to the status service.
type PendingReporter interface {
	Pending() int
}

// Handler wires the training endpoints to sessions, assessment and export.
type Handler struct {
	sessions *session.Registry
	notifier assessment.Notifier
	exporter *export.Assembler
	auditor  audit.Emitter
	pending  PendingReporter
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New constructs a training handler with its dependencies.
func New(
	sessions *session.Registry,
	notifier assessment.Notifier,
	exporter *export.Assembler,
	auditor audit.Emitter,
	pending PendingReporter,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Handler {
	return &Handler{
		sessions: sessions,
		notifier: notifier,
		exporter: exporter,
		auditor:  auditor,
		pending:  pending,
		logger:   logger,
		metrics:  m,
	}
}

// Register mounts training endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/training", h.HandleListing)
	r.Post("/training/modules/{moduleID}/open", h.HandleOpen)
	r.Post("/training/modules/{moduleID}/complete", h.HandleComplete)
	r.Post("/training/back", h.HandleBack)
	r.Get("/training/status", h.HandleStatus)
	r.Post("/training/assessment", h.HandleAssessment)
	r.Get("/training/export", h.HandleExport)
}

// identity pulls the authenticated pair from the request context.
func (h *Handler) identity(w http.ResponseWriter, r *http.Request) (id.UserID, id.OrgID, bool) {
	ctx := r.Context()
	userID := requestcontext.UserID(ctx)
	orgID := requestcontext.OrgID(ctx)
	if userID.IsNil() || orgID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.UserID{}, id.OrgID{}, false
	}
	return userID, orgID, true
}

func moduleIDParam(r *http.Request) (id.ModuleID, error) {
	moduleID, err := id.ParseModuleID(chi.URLParam(r, "moduleID"))
	if err != nil {
		return 0, dErrors.New(dErrors.CodeBadRequest, "module id must be a positive number")
	}
	return moduleID, nil
}

// HandleListing handles GET /training requests.
func (h *Handler) HandleListing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, orgID, ok := h.identity(w, r)
	if !ok {
		return
	}

	sess := h.sessions.Get(ctx, userID, orgID)
	snap := sess.Engine.Progress()

	resp := ListingResponse{Snapshot: snap}
	if h.pending != nil {
		resp.PendingSync = h.pending.Pending()
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleOpen handles POST /training/modules/{moduleID}/open requests.
func (h *Handler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	userID, orgID, ok := h.identity(w, r)
	if !ok {
		return
	}

	moduleID, err := moduleIDParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	sess := h.sessions.Get(ctx, userID, orgID)
	module, err := sess.Engine.Select(moduleID)
	if err != nil {
		h.logger.InfoContext(ctx, "module open refused",
			"request_id", requestID,
			"user_id", userID,
			"module_id", moduleID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, OpenResponse{
		Module: ModuleView{
			ID:          module.ID,
			Title:       module.Title,
			Description: module.Description,
			Content:     module.Content,
		},
		State: engine.StateViewing,
	})
}

// HandleComplete handles POST /training/modules/{moduleID}/complete requests.
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()
	userID, orgID, ok := h.identity(w, r)
	if !ok {
		return
	}

	moduleID, err := moduleIDParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	sess := h.sessions.Get(ctx, userID, orgID)

	// The path names the module the client believes is open. A mismatch
	// means the client and server views diverged.
	if state, current := sess.Engine.View(); state != engine.StateViewing || current != moduleID {
		httputil.WriteError(w, dErrors.New(dErrors.CodeConflict, "module is not the one currently open"))
		return
	}

	result, err := sess.Engine.Complete(requestcontext.Now(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if result.Changed {
		_ = h.auditor.Emit(ctx, audit.Event{
			Timestamp: requestcontext.Now(ctx),
			UserID:    userID,
			OrgID:     orgID,
			Action:    audit.ActionModuleCompleted,
			ModuleID:  moduleID,
			RequestID: requestID,
		})
	}
	if result.Finished {
		_ = h.auditor.Emit(ctx, audit.Event{
			Timestamp: requestcontext.Now(ctx),
			UserID:    userID,
			OrgID:     orgID,
			Action:    audit.ActionTrainingCompleted,
			RequestID: requestID,
		})
	}

	h.logger.InfoContext(ctx, "module completed",
		"request_id", requestID,
		"user_id", userID,
		"module_id", moduleID,
		"changed", result.Changed,
		"finished", result.Finished,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, CompleteResponse{
		Changed:  result.Changed,
		Finished: result.Finished,
		Next:     result.Next,
		Snapshot: sess.Engine.Progress(),
	})
}

// HandleBack handles POST /training/back requests.
func (h *Handler) HandleBack(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, orgID, ok := h.identity(w, r)
	if !ok {
		return
	}

	sess := h.sessions.Get(ctx, userID, orgID)
	sess.Engine.Back()
	httputil.WriteJSON(w, http.StatusOK, sess.Engine.Progress())
}

// HandleStatus handles GET /training/status requests.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, orgID, ok := h.identity(w, r)
	if !ok {
		return
	}

	sess := h.sessions.Get(ctx, userID, orgID)
	httputil.WriteJSON(w, http.StatusOK, sess.Engine.Progress())
}

// HandleAssessment handles POST /training/assessment requests.
func (h *Handler) HandleAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	userID, orgID, ok := h.identity(w, r)
	if !ok {
		return
	}

	sess := h.sessions.Get(ctx, userID, orgID)
	if !sess.Engine.FullyComplete() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeConflict,
			"assessment requires all training modules to be completed"))
		return
	}

	if err := h.notifier.RequestAssessment(ctx, userID, orgID); err != nil {
		h.logger.ErrorContext(ctx, "assessment handoff failed",
			"request_id", requestID,
			"user_id", userID,
			"org_id", orgID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "assessment service unavailable"))
		return
	}

	if h.metrics != nil {
		h.metrics.IncrementAssessmentHandoffs()
	}
	_ = h.auditor.Emit(ctx, audit.Event{
		Timestamp: requestcontext.Now(ctx),
		UserID:    userID,
		OrgID:     orgID,
		Action:    audit.ActionAssessmentRequested,
		RequestID: requestID,
	})
	h.logger.InfoContext(ctx, "assessment requested",
		"request_id", requestID,
		"user_id", userID,
		"org_id", orgID,
	)

	httputil.WriteJSON(w, http.StatusAccepted, AssessmentResponse{Requested: true})
}

// HandleExport handles GET /training/export requests.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	userID, orgID, ok := h.identity(w, r)
	if !ok {
		return
	}

	sess := h.sessions.Get(ctx, userID, orgID)
	if !sess.Engine.FullyComplete() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden,
			"export requires all training modules to be completed"))
		return
	}

	artifact := h.exporter.Assemble()
	_ = h.auditor.Emit(ctx, audit.Event{
		Timestamp: requestcontext.Now(ctx),
		UserID:    userID,
		OrgID:     orgID,
		Action:    audit.ActionContentExported,
		RequestID: requestID,
	})

	httputil.WriteJSON(w, http.StatusOK, artifact)
}

// Package session owns one progression engine per (user, organization) pair.
//
// A session is created lazily on first access: the registry hydrates the
// completion mirror from the status gateway under a bounded timeout, and on
// failure starts the session from an empty set (degraded mode) instead of
// blocking the delegate. The engine serializes its own transitions; the
// registry only guards the session map.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tutela/internal/training/catalog"
	"tutela/internal/training/engine"
	"tutela/internal/training/metrics"
	"tutela/internal/training/store/completion"
	statussync "tutela/internal/training/sync"
	id "tutela/pkg/domain"
	"tutela/pkg/platform/audit"
)

const defaultHydrateTimeout = 5 * time.Second

type sessionKey struct {
	userID id.UserID
	orgID  id.OrgID
}

// Session is one delegate's live training state.
type Session struct {
	UserID id.UserID
	OrgID  id.OrgID
	Engine *engine.Engine
}

// Registry creates and caches sessions.
type Registry struct {
	mu       sync.RWMutex
	sessions map[sessionKey]*Session

	catalog *catalog.Catalog
	gateway statussync.Gateway
	pusher  engine.Pusher
	logger  *slog.Logger
	metrics *metrics.Metrics
	auditor audit.Emitter

	hydrateTimeout time.Duration
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// WithAuditEmitter records degraded hydrations as audit events.
func WithAuditEmitter(auditor audit.Emitter) Option {
	return func(r *Registry) { r.auditor = auditor }
}

// WithHydrateTimeout bounds the initial status fetch.
func WithHydrateTimeout(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.hydrateTimeout = d
		}
	}
}

// NewRegistry constructs a session registry.
func NewRegistry(cat *catalog.Catalog, gateway statussync.Gateway, pusher engine.Pusher, opts ...Option) *Registry {
	r := &Registry{
		sessions:       make(map[sessionKey]*Session),
		catalog:        cat,
		gateway:        gateway,
		pusher:         pusher,
		logger:         slog.Default(),
		hydrateTimeout: defaultHydrateTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the session for the pair, creating and hydrating it on first
// access. Hydration failure degrades to an empty set; it never fails the
// call or blocks beyond the hydrate timeout.
func (r *Registry) Get(ctx context.Context, userID id.UserID, orgID id.OrgID) *Session {
	key := sessionKey{userID: userID, orgID: orgID}

	r.mu.RLock()
	sess, ok := r.sessions[key]
	r.mu.RUnlock()
	if ok {
		return sess
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if sess, ok := r.sessions[key]; ok {
		return sess
	}

	mirror := completion.NewMirror()
	eng := engine.New(r.catalog, mirror, r.pusher, userID, orgID,
		engine.WithLogger(r.logger),
		engine.WithMetrics(r.metrics),
	)

	hydrateCtx, cancel := context.WithTimeout(ctx, r.hydrateTimeout)
	defer cancel()

	set, err := r.gateway.FetchStatus(hydrateCtx, userID, orgID)
	if err != nil {
		r.logger.Warn("status hydration failed, starting degraded",
			"user_id", userID,
			"org_id", orgID,
			"error", err,
		)
		if r.metrics != nil {
			r.metrics.IncrementHydrationsDegraded()
		}
		if r.auditor != nil {
			_ = r.auditor.Emit(ctx, audit.Event{
				Timestamp: time.Now().UTC(),
				UserID:    userID,
				OrgID:     orgID,
				Action:    audit.ActionHydrationDegraded,
				Detail:    err.Error(),
			})
		}
		eng.SetDegraded(true)
	} else {
		mirror.Hydrate(set)
	}

	sess = &Session{UserID: userID, OrgID: orgID, Engine: eng}
	r.sessions[key] = sess
	return sess
}

// Drop removes a session so the next access re-hydrates from the gateway.
func (r *Registry) Drop(userID id.UserID, orgID id.OrgID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionKey{userID: userID, orgID: orgID})
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

package sync

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"tutela/internal/training/metrics"
	"tutela/internal/training/models"
	id "tutela/pkg/domain"
	"tutela/pkg/platform/circuit"
)

const (
	defaultInboxSize   = 256
	defaultMaxAttempts = 3
	defaultBaseBackoff = 250 * time.Millisecond
	drainTimeout       = 10 * time.Second
)

type pushJob struct {
	userID id.UserID
	orgID  id.OrgID
	set    models.CompletionSet
}

// Syncer applies write-behind persistence for completion events.
//
// Enqueue never blocks and never fails the caller: the local mirror is
// already authoritative for navigation, so a push that cannot be delivered
// only shows up as a pending-sync count and a metric, never as a rolled-back
// completion. Each push carries the full set, so a later successful push
// also repairs an earlier dropped one.
type Syncer struct {
	gateway Gateway
	inbox   chan pushJob
	logger  *slog.Logger
	metrics *metrics.Metrics
	breaker *circuit.Breaker

	maxAttempts int
	baseBackoff time.Duration

	pending atomic.Int64
}

// SyncerOption configures a Syncer.
type SyncerOption func(*Syncer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) SyncerOption {
	return func(s *Syncer) { s.logger = logger }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) SyncerOption {
	return func(s *Syncer) { s.metrics = m }
}

// WithInboxSize sets the write-behind buffer capacity.
func WithInboxSize(n int) SyncerOption {
	return func(s *Syncer) {
		if n > 0 {
			s.inbox = make(chan pushJob, n)
		}
	}
}

// WithMaxAttempts sets how many delivery attempts each push gets.
func WithMaxAttempts(n int) SyncerOption {
	return func(s *Syncer) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithBaseBackoff sets the first retry delay; later retries double it.
func WithBaseBackoff(d time.Duration) SyncerOption {
	return func(s *Syncer) {
		if d > 0 {
			s.baseBackoff = d
		}
	}
}

// NewSyncer constructs a write-behind syncer over the gateway.
func NewSyncer(gateway Gateway, opts ...SyncerOption) *Syncer {
	s := &Syncer{
		gateway:     gateway,
		inbox:       make(chan pushJob, defaultInboxSize),
		logger:      slog.Default(),
		breaker:     circuit.New("status-gateway", circuit.WithFailureThreshold(5)),
		maxAttempts: defaultMaxAttempts,
		baseBackoff: defaultBaseBackoff,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enqueue accepts a completion push for background delivery. Returns false
// when the inbox is full and the push was dropped; the caller's local state
// is unaffected either way.
func (s *Syncer) Enqueue(userID id.UserID, orgID id.OrgID, set models.CompletionSet) bool {
	job := pushJob{userID: userID, orgID: orgID, set: set}
	select {
	case s.inbox <- job:
		s.pending.Add(1)
		if s.metrics != nil {
			s.metrics.SyncPending.Set(float64(s.pending.Load()))
		}
		return true
	default:
		s.logger.Warn("sync inbox full, dropping completion push",
			"user_id", userID,
			"org_id", orgID,
			"set_size", set.Size(),
		)
		if s.metrics != nil {
			s.metrics.SyncDroppedTotal.Inc()
		}
		return false
	}
}

// Pending returns the number of accepted pushes not yet durably persisted.
// Surfaced to clients as the "pending sync" indicator.
func (s *Syncer) Pending() int {
	return int(s.pending.Load())
}

// Run consumes the inbox until ctx is cancelled, then drains what is already
// queued under a bounded deadline so closing a session right after a
// completion does not silently lose the write.
func (s *Syncer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			s.drain()
			return ctx.Err()
		case job := <-s.inbox:
			s.deliver(ctx, job)
		}
	}
}

func (s *Syncer) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	for {
		select {
		case job := <-s.inbox:
			s.deliver(ctx, job)
		default:
			return
		}
	}
}

func (s *Syncer) deliver(ctx context.Context, job pushJob) {
	defer func() {
		s.pending.Add(-1)
		if s.metrics != nil {
			s.metrics.SyncPending.Set(float64(s.pending.Load()))
		}
	}()

	if s.breaker.IsOpen() {
		// Fail fast while the gateway is known-dead; the next successful
		// push carries the full set and repairs this one.
		if s.metrics != nil {
			s.metrics.SyncFailuresTotal.Inc()
		}
		return
	}

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		start := time.Now()
		err := s.gateway.PushCompletion(ctx, job.userID, job.orgID, job.set)
		if s.metrics != nil {
			s.metrics.SyncPushDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
		}
		if err == nil {
			if _, change := s.breaker.RecordSuccess(); change.Closed {
				s.logger.Info("status gateway recovered, circuit closed")
			}
			if s.metrics != nil {
				s.metrics.SyncPushesTotal.Inc()
			}
			return
		}

		lastErr = err
		if useFallback, change := s.breaker.RecordFailure(); change.Opened {
			s.logger.Error("status gateway failing, circuit opened", "error", err)
			break
		} else if useFallback {
			break
		}

		if attempt < s.maxAttempts {
			if s.metrics != nil {
				s.metrics.SyncRetriesTotal.Inc()
			}
			backoff := s.baseBackoff << (attempt - 1)
			select {
			case <-ctx.Done():
				attempt = s.maxAttempts
			case <-time.After(backoff):
			}
		}
	}

	s.logger.Error("completion push abandoned",
		"user_id", job.userID,
		"org_id", job.orgID,
		"set_size", job.set.Size(),
		"error", lastErr,
	)
	if s.metrics != nil {
		s.metrics.SyncFailuresTotal.Inc()
	}
}

package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	id "tutela/pkg/domain"
	audit "tutela/pkg/platform/audit"
	"tutela/pkg/platform/audit/store/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSink struct {
	mu     sync.Mutex
	events []audit.Event
	err    error
}

func (s *captureSink) Publish(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func (s *captureSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

type failingStore struct {
	fail  atomic.Bool
	inner *memory.InMemoryStore
}

func (s *failingStore) Append(ctx context.Context, event audit.Event) error {
	if s.fail.Load() {
		return errors.New("store down")
	}
	return s.inner.Append(ctx, event)
}

func (s *failingStore) ListByUser(ctx context.Context, userID id.UserID) ([]audit.Event, error) {
	return s.inner.ListByUser(ctx, userID)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestWorkerPersistsAndForwards(t *testing.T) {
	store := memory.NewInMemoryStore()
	sink := &captureSink{}
	recorder := audit.NewRecorder(16)
	worker := NewWorker(store, recorder.Inbox(), WithSink(sink))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	userID := id.UserID(uuid.New())
	event := audit.Event{
		Timestamp: time.Now().UTC(),
		UserID:    userID,
		Action:    audit.ActionModuleCompleted,
		ModuleID:  3,
	}
	require.NoError(t, recorder.Emit(ctx, event))

	waitFor(t, func() bool { return sink.count() == 1 })

	stored, err := store.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, audit.ActionModuleCompleted, stored[0].Action)
	assert.Equal(t, id.ModuleID(3), stored[0].ModuleID)
}

func TestWorkerContinuesAfterStoreFailure(t *testing.T) {
	store := &failingStore{inner: memory.NewInMemoryStore()}
	store.fail.Store(true)
	recorder := audit.NewRecorder(16)
	worker := NewWorker(store, recorder.Inbox())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	userID := id.UserID(uuid.New())
	require.NoError(t, recorder.Emit(ctx, audit.Event{UserID: userID, Action: audit.ActionModuleCompleted}))

	// Recover the store and confirm the next event lands.
	store.fail.Store(false)
	require.NoError(t, recorder.Emit(ctx, audit.Event{UserID: userID, Action: audit.ActionTrainingCompleted}))

	waitFor(t, func() bool {
		events, err := store.ListByUser(ctx, userID)
		return err == nil && len(events) >= 1 &&
			events[len(events)-1].Action == audit.ActionTrainingCompleted
	})

	events, err := store.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, audit.ActionTrainingCompleted, events[len(events)-1].Action)
}

func TestWorkerSinkFailureDoesNotBlockStore(t *testing.T) {
	store := memory.NewInMemoryStore()
	sink := &captureSink{err: errors.New("broker unavailable")}
	recorder := audit.NewRecorder(16)
	worker := NewWorker(store, recorder.Inbox(), WithSink(sink))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	userID := id.UserID(uuid.New())
	require.NoError(t, recorder.Emit(ctx, audit.Event{UserID: userID, Action: audit.ActionAssessmentRequested}))

	waitFor(t, func() bool {
		events, err := store.ListByUser(ctx, userID)
		return err == nil && len(events) == 1
	})
}

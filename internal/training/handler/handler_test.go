package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tutela/internal/assessment/mocks"
	"tutela/internal/export"
	"tutela/internal/training/catalog"
	"tutela/internal/training/engine"
	"tutela/internal/training/models"
	"tutela/internal/training/session"
	"tutela/internal/training/store/completion"
	statussync "tutela/internal/training/sync"
	id "tutela/pkg/domain"
	"tutela/pkg/platform/audit"
	"tutela/pkg/requestcontext"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// directPusher applies pushes synchronously. Tests don't need write-behind.
type directPusher struct {
	store *completion.InMemoryStore
}

func (p *directPusher) Enqueue(userID id.UserID, orgID id.OrgID, set models.CompletionSet) bool {
	_ = p.store.SaveAll(context.Background(), userID, orgID, set)
	return true
}

type fixedPending int

func (p fixedPending) Pending() int { return int(p) }

type testEnv struct {
	server   *httptest.Server
	notifier *mocks.MockNotifier
	store    *completion.InMemoryStore
	recorder *audit.Recorder
	userID   id.UserID
	orgID    id.OrgID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)

	store := completion.NewInMemoryStore()
	cat := catalog.Default()
	registry := session.NewRegistry(cat, statussync.NewStoreGateway(store), &directPusher{store: store})
	notifier := mocks.NewMockNotifier(ctrl)
	recorder := audit.NewRecorder(64)

	h := New(registry, notifier, export.NewAssembler(cat), recorder, fixedPending(0), testLogger(), nil)

	userID := id.NewUserID()
	orgID := id.NewOrgID()

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := requestcontext.WithUserID(req.Context(), userID)
			ctx = requestcontext.WithOrgID(ctx, orgID)
			ctx = requestcontext.WithRequestID(ctx, "test-request")
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	h.Register(r)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return &testEnv{
		server:   server,
		notifier: notifier,
		store:    store,
		recorder: recorder,
		userID:   userID,
		orgID:    orgID,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, out any) int {
	t.Helper()
	req, err := http.NewRequest(method, e.server.URL+path, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (e *testEnv) completeAll(t *testing.T) {
	t.Helper()
	n := catalog.Default().Len()
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/training/modules/1/open", nil))
	for i := 1; i <= n; i++ {
		status := e.do(t, http.MethodPost, fmt.Sprintf("/training/modules/%d/complete", i), nil)
		require.Equal(t, http.StatusOK, status)
	}
}

func TestListingStartsLocked(t *testing.T) {
	env := newTestEnv(t)

	var resp ListingResponse
	status := env.do(t, http.MethodGet, "/training", &resp)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, engine.StateListing, resp.State)
	assert.Equal(t, 0, resp.CompletedCount)
	require.Len(t, resp.Modules, catalog.Default().Len())
	for _, m := range resp.Modules {
		if m.ID == 1 {
			assert.True(t, m.Accessible)
		} else {
			assert.False(t, m.Accessible, "module %d should be locked", m.ID)
		}
	}
}

func TestOpenLockedModuleRefused(t *testing.T) {
	env := newTestEnv(t)
	status := env.do(t, http.MethodPost, "/training/modules/3/open", nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestOpenUnknownModule(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPost, "/training/modules/42/open", nil))
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/training/modules/zero/open", nil))
}

func TestOpenAndCompleteAdvances(t *testing.T) {
	env := newTestEnv(t)

	var open OpenResponse
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/training/modules/1/open", &open))
	assert.Equal(t, id.ModuleID(1), open.Module.ID)
	assert.NotEmpty(t, open.Module.Content)
	assert.Equal(t, engine.StateViewing, open.State)

	var complete CompleteResponse
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/training/modules/1/complete", &complete))
	assert.True(t, complete.Changed)
	assert.False(t, complete.Finished)
	assert.Equal(t, id.ModuleID(2), complete.Next)
	assert.Equal(t, engine.StateViewing, complete.Snapshot.State)
	assert.Equal(t, 1, complete.Snapshot.CompletedCount)
}

func TestCompleteWrongModuleConflicts(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/training/modules/1/open", nil))
	assert.Equal(t, http.StatusConflict, env.do(t, http.MethodPost, "/training/modules/2/complete", nil))
}

func TestCompleteWithoutOpenConflicts(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusConflict, env.do(t, http.MethodPost, "/training/modules/1/complete", nil))
}

func TestBackReturnsToListing(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/training/modules/1/open", nil))

	var snap engine.Snapshot
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/training/back", &snap))
	assert.Equal(t, engine.StateListing, snap.State)
}

func TestAssessmentRequiresFullCompletion(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusConflict, env.do(t, http.MethodPost, "/training/assessment", nil))
}

func TestAssessmentHandoffAfterFullRun(t *testing.T) {
	env := newTestEnv(t)
	env.completeAll(t)

	env.notifier.EXPECT().
		RequestAssessment(gomock.Any(), env.userID, env.orgID).
		Return(nil).
		Times(1)

	var resp AssessmentResponse
	status := env.do(t, http.MethodPost, "/training/assessment", &resp)
	assert.Equal(t, http.StatusAccepted, status)
	assert.True(t, resp.Requested)
}

func TestAssessmentNotifierFailure(t *testing.T) {
	env := newTestEnv(t)
	env.completeAll(t)

	env.notifier.EXPECT().
		RequestAssessment(gomock.Any(), env.userID, env.orgID).
		Return(assert.AnError)

	status := env.do(t, http.MethodPost, "/training/assessment", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestExportGatedOnFullCompletion(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodGet, "/training/export", nil))

	env.completeAll(t)

	var artifact export.Artifact
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/training/export", &artifact))
	require.Len(t, artifact.Modules, catalog.Default().Len())
	for i, m := range artifact.Modules {
		assert.Equal(t, id.ModuleID(i+1), m.ModuleID)
	}
}

func TestFullRunPersistsCompletions(t *testing.T) {
	env := newTestEnv(t)
	env.completeAll(t)

	set, err := env.store.Fetch(context.Background(), env.userID, env.orgID)
	require.NoError(t, err)
	assert.Equal(t, catalog.Default().Len(), set.Size())
}

func TestUnauthenticatedRejected(t *testing.T) {
	store := completion.NewInMemoryStore()
	cat := catalog.Default()
	registry := session.NewRegistry(cat, statussync.NewStoreGateway(store), &directPusher{store: store})
	h := New(registry, nil, export.NewAssembler(cat), audit.NewRecorder(8), nil, testLogger(), nil)

	r := chi.NewRouter()
	h.Register(r)
	server := httptest.NewServer(r)
	defer server.Close()

	resp, err := http.Get(server.URL + "/training")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"tutela/internal/training/models"
	id "tutela/pkg/domain"
	"tutela/pkg/platform/sentinel"
)

const defaultRequestTimeout = 5 * time.Second

var tracer = otel.Tracer("tutela/internal/training/sync")

// statusPayload is the wire shape shared by the read and write endpoints of
// the remote status service.
type statusPayload struct {
	CompletedCount int                       `json:"completed_count"`
	Completions    []models.CompletionRecord `json:"completions"`
}

// HTTPGateway talks to the remote training-status service.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// HTTPGatewayOption configures an HTTPGateway.
type HTTPGatewayOption func(*HTTPGateway)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) HTTPGatewayOption {
	return func(g *HTTPGateway) {
		if client != nil {
			g.client = client
		}
	}
}

// WithRequestTimeout bounds each individual gateway call.
func WithRequestTimeout(timeout time.Duration) HTTPGatewayOption {
	return func(g *HTTPGateway) {
		if timeout > 0 {
			g.timeout = timeout
		}
	}
}

// NewHTTPGateway constructs a gateway for the status service at baseURL.
func NewHTTPGateway(baseURL string, opts ...HTTPGatewayOption) *HTTPGateway {
	g := &HTTPGateway{
		baseURL: baseURL,
		client:  &http.Client{},
		timeout: defaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *HTTPGateway) statusURL(userID id.UserID, orgID id.OrgID) string {
	return fmt.Sprintf("%s/orgs/%s/users/%s/training-status", g.baseURL, orgID, userID)
}

// FetchStatus reads the stored completion set. A 404 means a new user and
// yields an empty set; other non-2xx statuses surface ErrUnavailable.
func (g *HTTPGateway) FetchStatus(ctx context.Context, userID id.UserID, orgID id.OrgID) (models.CompletionSet, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	ctx, span := tracer.Start(ctx, "status.fetch", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
		attribute.String("org.id", orgID.String()),
	))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.statusURL(userID, orgID), nil)
	if err != nil {
		return nil, fmt.Errorf("build status request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("fetch status: %w: %w", sentinel.ErrUnavailable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// New user: no history is a valid answer, not a failure.
		return models.NewCompletionSet(), nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		span.SetStatus(codes.Error, resp.Status)
		return nil, fmt.Errorf("fetch status: %w: unexpected status %d", sentinel.ErrUnavailable, resp.StatusCode)
	}

	var payload statusPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("decode status response: %w", err)
	}

	set := models.NewCompletionSet()
	for _, rec := range payload.Completions {
		if rec.ModuleID.IsValid() {
			set.Add(rec)
		}
	}
	return set, nil
}

// PushCompletion writes the full updated set. The payload carries both the
// count and the list so the server can reconcile without reading first.
func (g *HTTPGateway) PushCompletion(ctx context.Context, userID id.UserID, orgID id.OrgID, set models.CompletionSet) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	ctx, span := tracer.Start(ctx, "status.push", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
		attribute.String("org.id", orgID.String()),
		attribute.Int("completions.count", set.Size()),
	))
	defer span.End()

	body, err := json.Marshal(statusPayload{
		CompletedCount: set.Size(),
		Completions:    set.Records(),
	})
	if err != nil {
		return fmt.Errorf("encode status payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, g.statusURL(userID, orgID), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("push completion: %w: %w", sentinel.ErrUnavailable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		span.SetStatus(codes.Error, resp.Status)
		return fmt.Errorf("push completion: %w: unexpected status %d", sentinel.ErrUnavailable, resp.StatusCode)
	}
	return nil
}

package assessment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	id "tutela/pkg/domain"
	"tutela/pkg/platform/sentinel"
)

const defaultRequestTimeout = 5 * time.Second

// assessmentRequest is the wire shape accepted by the assessment service.
type assessmentRequest struct {
	UserID      string    `json:"user_id"`
	OrgID       string    `json:"org_id"`
	RequestedAt time.Time `json:"requested_at"`
}

// HTTPNotifier posts assessment requests to the external assessment service.
type HTTPNotifier struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	now     func() time.Time
}

// Option configures an HTTPNotifier.
type Option func(*HTTPNotifier)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(n *HTTPNotifier) {
		if client != nil {
			n.client = client
		}
	}
}

// WithRequestTimeout bounds each notification call.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(n *HTTPNotifier) {
		if timeout > 0 {
			n.timeout = timeout
		}
	}
}

// WithClock overrides the time source. Test hook.
func WithClock(now func() time.Time) Option {
	return func(n *HTTPNotifier) {
		if now != nil {
			n.now = now
		}
	}
}

// NewHTTPNotifier constructs a notifier for the service at baseURL.
func NewHTTPNotifier(baseURL string, opts ...Option) *HTTPNotifier {
	n := &HTTPNotifier{
		baseURL: baseURL,
		client:  &http.Client{},
		timeout: defaultRequestTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// RequestAssessment posts the hand-off. Conflict from the remote side (an
// assessment already pending) is treated as success: the intent holds either
// way. Other non-2xx statuses surface ErrUnavailable.
func (n *HTTPNotifier) RequestAssessment(ctx context.Context, userID id.UserID, orgID id.OrgID) error {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	body, err := json.Marshal(assessmentRequest{
		UserID:      userID.String(),
		OrgID:       orgID.String(),
		RequestedAt: n.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal assessment request: %w", err)
	}

	url := fmt.Sprintf("%s/assessments", n.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build assessment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("request assessment: %w: %w", sentinel.ErrUnavailable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusConflict:
		return nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("request assessment: %w: unexpected status %d", sentinel.ErrUnavailable, resp.StatusCode)
	}
	return nil
}

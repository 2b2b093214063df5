package probe

import (
	"context"
	"net/http"
	"time"

	"github.com/hamed0406/swgrab/internal/domain"
)

type HTTPChecker struct {
	Client *http.Client
}

func NewHTTPChecker(timeout time.Duration) *HTTPChecker {
	return &HTTPChecker{
		Client: &http.Client{Timeout: timeout},
	}
}

// Check issues a HEAD request, falling back to GET when the server rejects
// HEAD. Status 2xx-3xx counts as available, 4xx-5xx as unavailable.
func (h *HTTPChecker) Check(ctx context.Context, target string) (domain.ObservedState, error) {
	start := time.Now()

	resp, err := h.do(ctx, http.MethodHead, target)
	if err != nil {
		return domain.ObservedState{}, err
	}
	resp.Body.Close()

	if resp.StatusCode == http.StatusMethodNotAllowed {
		resp, err = h.do(ctx, http.MethodGet, target)
		if err != nil {
			return domain.ObservedState{}, err
		}
		resp.Body.Close()
	}

	return domain.ObservedState{
		Available:  resp.StatusCode >= 200 && resp.StatusCode < 400,
		HTTPStatus: resp.StatusCode,
		LatencyMS:  time.Since(start).Seconds() * 1000,
		Detail:     resp.Status,
		CheckedAt:  time.Now().UTC(),
	}, nil
}

func (h *HTTPChecker) do(ctx context.Context, method, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, err
	}
	return h.Client.Do(req)
}

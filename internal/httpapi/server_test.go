package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/swgrab/internal/domain"
	"github.com/hamed0406/swgrab/internal/grab"
)

type fakeSource struct{ out *grab.Outcome }

func (f fakeSource) Last() *grab.Outcome { return f.out }

func newTestServer(out *grab.Outcome) *httptest.Server {
	s := NewServer(zap.NewNop(), domain.Target{Name: "api", URL: "https://api.example.com"}, fakeSource{out})
	return httptest.NewServer(s.Router())
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
}

func TestState_BeforeFirstPassIs503(t *testing.T) {
	ts := newTestServer(nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/state")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("want 503 before first pass, got %d", resp.StatusCode)
	}
}

func TestState_ReturnsLastOutcome(t *testing.T) {
	out := &grab.Outcome{
		State: domain.ObservedState{
			Available:  true,
			HTTPStatus: 200,
			LatencyMS:  42,
			CheckedAt:  time.Date(2026, 8, 18, 12, 0, 0, 0, time.UTC),
		},
		Transition: domain.TransitionUnchanged,
	}
	ts := newTestServer(out)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/state")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}

	var got grab.Outcome
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.State.Available || got.Transition != domain.TransitionUnchanged {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestTarget_Endpoint(t *testing.T) {
	ts := newTestServer(nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/target")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var got domain.Target
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "api" || got.URL != "https://api.example.com" {
		t.Fatalf("unexpected target: %+v", got)
	}
}

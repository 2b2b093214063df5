package domain

import "time"

// Target identifies the external resource being watched. It is immutable
// for the lifetime of a run; Name keys the persisted state record.
type Target struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ObservedState is the outcome of one successful fetch.
type ObservedState struct {
	Available  bool      `json:"available"`
	HTTPStatus int       `json:"http_status,omitempty"` // 0 for non-HTTP probes
	LatencyMS  float64   `json:"latency_ms"`
	Detail     string    `json:"detail,omitempty"`
	CheckedAt  time.Time `json:"checked_at"`
}

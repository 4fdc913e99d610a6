package model

import "time"

// Run records one aggregation invocation for diagnostics: its summary
// counters and when it happened. Lead payloads are stored alongside,
// keyed by run id.
type Run struct {
	ID        string     `json:"id"`
	Source    string     `json:"source,omitempty"` // cli | api
	Summary   RunSummary `json:"summary"`
	CreatedAt time.Time  `json:"created_at"`
}

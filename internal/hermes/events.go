package hermes

import "time"

type RunCompletedEvent struct {
	RunID        string    `json:"run_id"`
	SourceName   string    `json:"source_name"`
	Alternatives int       `json:"alternatives"`
	Criteria     int       `json:"criteria"`
	BestLabel    string    `json:"best_label,omitempty"`
	DurationMs   float64   `json:"duration_ms"`
	Timestamp    time.Time `json:"timestamp"`
}

type RunFailedEvent struct {
	RunID      string    `json:"run_id"`
	SourceName string    `json:"source_name,omitempty"`
	Kind       string    `json:"kind"`
	Error      string    `json:"error"`
	Timestamp  time.Time `json:"timestamp"`
}

type RunEmailedEvent struct {
	RunID     string    `json:"run_id"`
	Recipient string    `json:"recipient"`
	Timestamp time.Time `json:"timestamp"`
}

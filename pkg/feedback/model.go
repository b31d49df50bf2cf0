package feedback

import "time"

// Feedback is free-text commentary tied to a report identifier.
type Feedback struct {
	ID          int64     `json:"id,omitempty"`
	EventID     string    `json:"event_id"`
	Name        string    `json:"name,omitempty"`
	Email       string    `json:"email,omitempty"`
	Comments    string    `json:"comments"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Dialog describes the remote feedback form for one report.
type Dialog struct {
	EventID string        `json:"event_id"`
	URL     string        `json:"url"`
	Options DialogOptions `json:"options"`
}

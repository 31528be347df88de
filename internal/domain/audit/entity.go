package audit

import "time"

// Status enum
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// StageRun records one generation-backed stage execution.
type StageRun struct {
	ID          string    `json:"id"`
	DocumentID  string    `json:"document_id"`
	Stage       string    `json:"stage"`
	Status      Status    `json:"status"`
	ErrorKind   string    `json:"error_kind,omitempty"`
	Message     string    `json:"message,omitempty"`
	RawResponse string    `json:"raw_response,omitempty"`
	DurationMS  int64     `json:"duration_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

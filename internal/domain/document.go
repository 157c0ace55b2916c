package domain

import (
	"time"

	"github.com/google/uuid"
)

// DocumentStatus is the processing state of an uploaded document.
type DocumentStatus string

const (
	DocumentStatusUploaded   DocumentStatus = "uploaded"
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusProcessed  DocumentStatus = "processed"
	DocumentStatusError      DocumentStatus = "error"
)

// documentTransitions encodes the forward-only status machine:
// uploaded -> processing -> processed, with error reachable from uploaded and
// processing. error is terminal except for the explicit reprocess action,
// which is the only path back to uploaded.
var documentTransitions = map[DocumentStatus][]DocumentStatus{
	DocumentStatusUploaded:   {DocumentStatusProcessing, DocumentStatusError},
	DocumentStatusProcessing: {DocumentStatusProcessed, DocumentStatusError},
	DocumentStatusProcessed:  {},
	DocumentStatusError:      {},
}

// Valid reports whether the status is a known one.
func (s DocumentStatus) Valid() bool {
	_, ok := documentTransitions[s]
	return ok
}

// CanTransitionTo reports whether the ordinary status machine allows moving
// from s to next. The error -> uploaded reset is deliberately excluded; it is
// only reachable through the reprocess operation.
func (s DocumentStatus) CanTransitionTo(next DocumentStatus) bool {
	for _, allowed := range documentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Document is upload metadata for a file owned by a tenant and registered by
// one of its users.
type Document struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	TenantID     uuid.UUID      `json:"tenant_id" db:"tenant_id"`
	UserID       uuid.UUID      `json:"user_id" db:"user_id"`
	Filename     string         `json:"filename" db:"filename"`
	OriginalName string         `json:"original_name" db:"original_name"`
	Size         int64          `json:"size" db:"size"`
	MimeType     string         `json:"mime_type" db:"mime_type"`
	Status       DocumentStatus `json:"status" db:"status"`
	ErrorDetail  *string        `json:"error,omitempty" db:"error_detail"`
	ProcessedAt  *time.Time     `json:"processed_at" db:"processed_at"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

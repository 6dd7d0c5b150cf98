package domain

import (
	"time"

	"github.com/google/uuid"
)

// ImportStatus is the outcome of one raw entry in an import.
type ImportStatus string

const (
	ImportStatusSuccess ImportStatus = "success"
	ImportStatusSkipped ImportStatus = "skipped"
	ImportStatusFailed  ImportStatus = "failed"
)

func (s ImportStatus) String() string { return string(s) }

func (s ImportStatus) IsValid() bool {
	switch s {
	case ImportStatusSuccess, ImportStatusSkipped, ImportStatusFailed:
		return true
	}
	return false
}

// ImportErrorDetail describes one rejected (skipped) or failed raw entry.
// Index is the 0-based position in the input array.
type ImportErrorDetail struct {
	Index    int          `json:"index"`
	Headword string       `json:"headword"`
	Reason   string       `json:"reason"`
	Status   ImportStatus `json:"status"`
}

// ImportBatch is the audit record of one non-dry-run import invocation.
type ImportBatch struct {
	ID         uuid.UUID
	SourceName *string
	Total      int
	Success    int
	Skipped    int
	Failed     int
	Errors     []ImportErrorDetail
	CreatedAt  time.Time
	FinishedAt *time.Time
}

// ImportLog ties the outcome of one raw entry to its batch.
type ImportLog struct {
	ID         uuid.UUID
	BatchID    uuid.UUID
	EntryIndex int
	Headword   string
	Status     ImportStatus
	Message    *string
	WordID     *uuid.UUID
	CreatedAt  time.Time
}

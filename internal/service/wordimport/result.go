package wordimport

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/wordbook-admin/internal/domain"
)

// Options control one import invocation.
type Options struct {
	// DryRun runs validation, deduplication and the existence check but
	// writes nothing: no books, no batch, no logs, no words.
	DryRun bool
	// SourceName labels the batch. Falls back to the configured default.
	SourceName *string
}

// Summary is the outcome of one import. Success+Skipped+Failed == Total.
type Summary struct {
	Total   int        `json:"total"`
	Success int        `json:"success"`
	Skipped int        `json:"skipped"`
	Failed  int        `json:"failed"`
	BatchID *uuid.UUID `json:"batchId"`
	// NewBooks lists the book ids provisioned by this import, or the ones a
	// dry run would provision.
	NewBooks []string                   `json:"newBooks"`
	Errors   []domain.ImportErrorDetail `json:"errors"`
}

// BatchReport is a stored batch with its per-entry logs.
type BatchReport struct {
	Batch domain.ImportBatch
	Logs  []domain.ImportLog
}

// Package wordimport turns raw dictionary JSON entries into stored words.
// It validates each entry (falling back to the legacy export format),
// removes duplicates, provisions referenced books, skips words already
// stored and writes the rest one transaction per word, keeping an audit
// trail of batches and per-entry logs.
package wordimport

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordbook-admin/internal/config"
	"github.com/heartmarshall/wordbook-admin/internal/domain"
)

// Caller-contract errors.
var (
	ErrInvalidPayload = errors.New("invalid import payload")
	ErrTooManyEntries = errors.New("too many entries")
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordRepo interface {
	FindExisting(ctx context.Context, keys []domain.WordKey) (map[domain.WordKey]struct{}, error)
	Create(ctx context.Context, w domain.NormalizedWord) (uuid.UUID, error)
}

type bookRepo interface {
	FindExisting(ctx context.Context, ids []string) (map[string]struct{}, error)
	CreateMissing(ctx context.Context, ids []string) (int, error)
}

type importLogRepo interface {
	CreateBatch(ctx context.Context, b domain.ImportBatch) error
	FinishBatch(ctx context.Context, b domain.ImportBatch) error
	GetBatch(ctx context.Context, id uuid.UUID) (*domain.ImportBatch, error)
	CreateLog(ctx context.Context, l domain.ImportLog) error
	CreateLogs(ctx context.Context, logs []domain.ImportLog) error
	ListLogs(ctx context.Context, batchID uuid.UUID) ([]domain.ImportLog, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service runs word imports.
type Service struct {
	log   *slog.Logger
	words wordRepo
	books bookRepo
	audit importLogRepo
	tx    txManager
	cfg   config.ImportConfig
}

// NewService creates a new import service.
func NewService(
	logger *slog.Logger,
	words wordRepo,
	books bookRepo,
	audit importLogRepo,
	tx txManager,
	cfg config.ImportConfig,
) *Service {
	return &Service{
		log:   logger.With("service", "wordimport"),
		words: words,
		books: books,
		audit: audit,
		tx:    tx,
		cfg:   cfg,
	}
}

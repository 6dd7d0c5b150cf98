// Package word is the edit path of the back office: single-word create,
// replace and delete through the same validation and write rules as imports.
package word

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordbook-admin/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)
	Create(ctx context.Context, w domain.NormalizedWord) (uuid.UUID, error)
	Replace(ctx context.Context, id uuid.UUID, w domain.NormalizedWord) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type bookRepo interface {
	CreateMissing(ctx context.Context, ids []string) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service manages individual words.
type Service struct {
	log   *slog.Logger
	words wordRepo
	books bookRepo
	tx    txManager
}

// NewService creates a new word service.
func NewService(logger *slog.Logger, words wordRepo, books bookRepo, tx txManager) *Service {
	return &Service{
		log:   logger.With("service", "word"),
		words: words,
		books: books,
		tx:    tx,
	}
}
